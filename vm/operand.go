package vm

// Fetch reads the effective value of operand i of instr under its
// addressing mode, per spec.md §4.2:
//
//	LITERAL            -> the operand word itself
//	MEMORY              -> memory[operand]
//	REGISTER            -> registers[operand]
//	(mode) | INDIRECT   -> memory[<above>]
//
// Out-of-range register indices or memory addresses fault OutOfBounds.
func (c *Context) Fetch(instr *Instruction, i int) (Word, *Fault) {
	mode, operand := instr.Addressing[i], instr.Operands[i]

	var value Word
	switch {
	case mode&Literal != 0:
		value = operand
	case mode&Memory != 0:
		v, f := c.readMemory(operand)
		if f != nil {
			return 0, f
		}
		value = v
	case mode&Register != 0:
		v, f := c.readRegister(operand)
		if f != nil {
			return 0, f
		}
		value = v
	default:
		return 0, newFault(FaultOutOfBounds, c.Registers[IP], "operand %d has no primary addressing mode", i)
	}

	if mode&Indirect != 0 {
		v, f := c.readMemory(value)
		if f != nil {
			return 0, f
		}
		value = v
	}

	return value, nil
}

// Store writes v to the effective location of operand i of instr, per
// spec.md §4.2. It faults IllegalAssignmentToLiteral if the operand's mode
// includes LITERAL, and OutOfBounds for an invalid register index or
// memory address.
func (c *Context) Store(instr *Instruction, i int, v Word) *Fault {
	mode, operand := instr.Addressing[i], instr.Operands[i]

	if mode&Literal != 0 {
		return newFault(FaultIllegalAssignmentToLiteral, c.Registers[IP], "operand %d is a literal", i)
	}

	targetAddr := operand
	isMemory := mode&Memory != 0

	if mode&Indirect != 0 {
		var base Word
		var f *Fault
		if isMemory {
			base, f = c.readMemory(operand)
		} else {
			base, f = c.readRegister(operand)
		}
		if f != nil {
			return f
		}
		targetAddr = base
		isMemory = true
	}

	if isMemory {
		return c.writeMemory(targetAddr, v)
	}
	return c.writeRegister(targetAddr, v)
}

func (c *Context) readMemory(addr Word) (Word, *Fault) {
	if addr >= MemorySize {
		return 0, newFault(FaultOutOfBounds, c.Registers[IP], "memory read at %d out of bounds (size %d)", addr, MemorySize)
	}
	return c.Memory[addr], nil
}

func (c *Context) writeMemory(addr Word, v Word) *Fault {
	if addr >= MemorySize {
		return newFault(FaultOutOfBounds, c.Registers[IP], "memory write at %d out of bounds (size %d)", addr, MemorySize)
	}
	c.Memory[addr] = v
	return nil
}

func (c *Context) readRegister(idx Word) (Word, *Fault) {
	r := Register(idx)
	if !r.Valid() {
		return 0, newFault(FaultOutOfBounds, c.Registers[IP], "register index %d out of bounds", idx)
	}
	return c.Registers[r], nil
}

func (c *Context) writeRegister(idx Word, v Word) *Fault {
	r := Register(idx)
	if !r.Valid() {
		return newFault(FaultOutOfBounds, c.Registers[IP], "register index %d out of bounds", idx)
	}
	c.Registers[r] = v
	return nil
}
