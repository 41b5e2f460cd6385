package vm

// execute dispatches instr to its opcode semantics, mutating c in place.
// All arithmetic on operand values is unsigned and wraps; CMP is the sole
// opcode that reinterprets operands as signed (spec.md §4.4). Every branch
// below reads its operands with Fetch and writes results with Store so
// that addressing-mode resolution (literal/memory/register, optionally
// indirect) is applied uniformly regardless of opcode.
func (c *Context) execute(instr *Instruction) *Fault {
	switch instr.Opcode {
	case OpNOP:
		return nil

	case OpHALT:
		c.State = StateHalted
		return nil

	case OpPUSH:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		return c.push(a)

	case OpPOP:
		v, f := c.pop()
		if f != nil {
			return f
		}
		return c.Store(instr, 0, v)

	case OpADD:
		return c.binaryOp(instr, func(b, cc Word) Word { return b + cc })
	case OpSUB:
		return c.binaryOp(instr, func(b, cc Word) Word { return b - cc })
	case OpMUL:
		return c.binaryOp(instr, func(b, cc Word) Word { return b * cc })

	case OpDIV:
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		cc, f := c.Fetch(instr, 2)
		if f != nil {
			return f
		}
		if cc == 0 {
			return newFault(FaultDivideByZero, c.Registers[IP], "DIV by zero")
		}
		if f := c.Store(instr, 0, b/cc); f != nil {
			return f
		}
		c.Registers[RMD] = b % cc
		return nil

	case OpMOD:
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		cc, f := c.Fetch(instr, 2)
		if f != nil {
			return f
		}
		if cc == 0 {
			return newFault(FaultDivideByZero, c.Registers[IP], "MOD by zero")
		}
		return c.Store(instr, 0, b%cc)

	case OpSHL:
		return c.binaryOp(instr, func(b, cc Word) Word { return b << (cc & 63) })
	case OpSHR:
		return c.binaryOp(instr, func(b, cc Word) Word { return b >> (cc & 63) })

	case OpINC:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		return c.Store(instr, 0, a+1)

	case OpDEC:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		return c.Store(instr, 0, a-1)

	case OpNOT:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		return c.Store(instr, 0, ^a)

	case OpCMP:
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		cc, f := c.Fetch(instr, 2)
		if f != nil {
			return f
		}
		return c.Store(instr, 0, signOf(int64(cc), int64(b)))

	case OpMOV:
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		return c.Store(instr, 0, b)

	case OpCALL:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		if pushFault := c.push(c.Registers[IP]); pushFault != nil {
			return pushFault
		}
		c.Registers[IP] = a
		return nil

	case OpRET:
		addr, f := c.pop()
		if f != nil {
			return f
		}
		c.Registers[IP] = addr
		return nil

	case OpJMP:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		c.Registers[IP] = a
		return nil

	case OpJEQ:
		return c.conditionalJump(instr, func(b, cc Word) bool { return b == cc })
	case OpJNE:
		return c.conditionalJump(instr, func(b, cc Word) bool { return b != cc })

	case OpJNZ:
		a, f := c.Fetch(instr, 0)
		if f != nil {
			return f
		}
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		if b != 0 {
			c.Registers[IP] = a
		}
		return nil

	case OpRDRAND:
		b, f := c.Fetch(instr, 1)
		if f != nil {
			return f
		}
		cc, f := c.Fetch(instr, 2)
		if f != nil {
			return f
		}
		lo, hi := b, cc
		if lo == 0 && hi == 0 {
			hi = ^Word(0)
		}
		return c.Store(instr, 0, uniformWord(c.Rand, lo, hi))

	default:
		return newFault(FaultUnknownOpcode, c.Registers[IP], "opcode %d", instr.Opcode)
	}
}

// binaryOp implements the common a <- op(fetch(b), fetch(c)) shape shared
// by ADD/SUB/MUL/SHL/SHR.
func (c *Context) binaryOp(instr *Instruction, op func(b, cc Word) Word) *Fault {
	b, f := c.Fetch(instr, 1)
	if f != nil {
		return f
	}
	cc, f := c.Fetch(instr, 2)
	if f != nil {
		return f
	}
	return c.Store(instr, 0, op(b, cc))
}

// conditionalJump implements the common "if pred(fetch(b), fetch(c)) then
// IP <- fetch(a)" shape shared by JEQ/JNE.
func (c *Context) conditionalJump(instr *Instruction, pred func(b, cc Word) bool) *Fault {
	a, f := c.Fetch(instr, 0)
	if f != nil {
		return f
	}
	b, f := c.Fetch(instr, 1)
	if f != nil {
		return f
	}
	cc, f := c.Fetch(instr, 2)
	if f != nil {
		return f
	}
	if pred(b, cc) {
		c.Registers[IP] = a
	}
	return nil
}

// signOf returns the wrapped-Word encoding of sign(lhs - rhs): 1, 0, or
// -1 (as 0xFFFF...FFFF), comparing lhs and rhs as signed 64-bit values per
// CMP's contract in spec.md §4.4.
func signOf(lhs, rhs int64) Word {
	switch {
	case lhs > rhs:
		return 1
	case lhs < rhs:
		return ^Word(0)
	default:
		return 0
	}
}
