package vm

// Step performs one fetch-decode-execute cycle, per spec.md §4.6:
//
//  1. Fetch four words starting at memory[IP].
//  2. Decode them into an Instruction.
//  3. Advance IP by 4 (so CALL, which executes after this point, pushes
//     the address of the following instruction as its return address).
//  4. Execute the decoded instruction.
//  5. Increment IC.
//
// Step transitions the Context to Running on its first call from Ready,
// and to Halted or Faulted when execution stops. It must not be called
// again on a terminal Context without an intervening Reset.
func (c *Context) Step() *Fault {
	if c.State == StateReady {
		c.State = StateRunning
	}
	if c.State == StateFaulted {
		return c.LastFault
	}
	if c.State != StateRunning {
		return newFault(FaultOutOfBounds, c.Registers[IP], "Step called in state %s, not Ready or Running", c.State)
	}

	ip := c.Registers[IP]
	if ip+instructionWords > MemorySize {
		f := newFault(FaultOutOfBounds, ip, "fetch at %d exceeds memory (size %d)", ip, MemorySize)
		c.fail(f)
		return f
	}

	data := ReadInstructionData(c.Memory[:], ip)
	instr := Decode(&data)

	c.Registers[IP] = ip + instructionWords

	if f := c.execute(&instr); f != nil {
		c.fail(f)
		return f
	}

	c.Registers[IC]++

	return nil
}

// Run repeatedly steps the Context until it halts or faults. It returns
// the fault that stopped it, or nil if execution halted cleanly via HALT.
func (c *Context) Run() *Fault {
	if c.State == StateReady {
		c.State = StateRunning
	}
	for c.State == StateRunning {
		if f := c.Step(); f != nil {
			return f
		}
	}
	return nil
}
