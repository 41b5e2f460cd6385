package vm

// top returns the memory address of the current top-of-stack word. SP
// counts elements pushed; the stack grows by decreasing address away from
// SBP. The SP==-1 case in spec.md §4.3 ("used only transiently during
// increment") cannot be observed here because SP is an unsigned Word and
// push never increments before checking the overflow bound - it is called
// out in the spec because the original C++ stored SP as a signed int and
// briefly allowed -1 mid push; the Go port avoids that state entirely by
// computing the post-increment top address directly in push.
func (c *Context) top() Word {
	return c.Registers[SBP] - c.Registers[SP]
}

// push writes v to the top of the stack, growing it by one word. It faults
// StackOverflow if the stack pointer is already at SBP.
func (c *Context) push(v Word) *Fault {
	if c.Registers[SP] >= c.Registers[SBP] {
		return newFault(FaultStackOverflow, c.Registers[IP],
			"SP=%d SBP=%d", c.Registers[SP], c.Registers[SBP])
	}
	c.Registers[SP]++
	c.Memory[c.top()] = v
	return nil
}

// pop reads and removes the top of the stack. It faults StackUnderflow if
// the stack is empty (SP==0).
func (c *Context) pop() (Word, *Fault) {
	if c.Registers[SP] <= 0 {
		return 0, newFault(FaultStackUnderflow, c.Registers[IP],
			"SP=%d", c.Registers[SP])
	}
	v := c.Memory[c.top()]
	c.Registers[SP]--
	return v, nil
}
