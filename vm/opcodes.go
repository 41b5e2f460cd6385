package vm

// Opcode identifies an instruction's operation.
type Opcode uint32

const (
	OpNOP Opcode = iota
	OpHALT
	OpPUSH
	OpPOP
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpMOD
	OpSHL
	OpSHR
	OpINC
	OpDEC
	OpNOT
	OpCMP
	OpMOV
	OpCALL
	OpRET
	OpJMP
	OpJEQ
	OpJNE
	OpJNZ
	OpRDRAND

	opcodeCount
)

var opcodeNames = map[Opcode]string{
	OpNOP: "NOP", OpHALT: "HALT", OpPUSH: "PUSH", OpPOP: "POP",
	OpADD: "ADD", OpSUB: "SUB", OpMUL: "MUL", OpDIV: "DIV", OpMOD: "MOD",
	OpSHL: "SHL", OpSHR: "SHR", OpINC: "INC", OpDEC: "DEC", OpNOT: "NOT",
	OpCMP: "CMP", OpMOV: "MOV", OpCALL: "CALL", OpRET: "RET", OpJMP: "JMP",
	OpJEQ: "JEQ", OpJNE: "JNE", OpJNZ: "JNZ", OpRDRAND: "RDRAND",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "???"
}

// Valid reports whether op names a known instruction.
func (op Opcode) Valid() bool {
	return op < opcodeCount
}

// Arity is the number of operands op expects. The dispatcher does not use
// this at execution time (each implementation reads exactly the operands
// it needs); it exists for assemblers and tests that need to validate
// operand counts before encoding.
func (op Opcode) Arity() int {
	switch op {
	case OpNOP, OpHALT, OpRET:
		return 0
	case OpPUSH, OpPOP, OpINC, OpDEC, OpNOT, OpCALL, OpJMP:
		return 1
	case OpMOV, OpJNZ:
		return 2
	case OpADD, OpSUB, OpMUL, OpDIV, OpMOD, OpSHL, OpSHR, OpCMP, OpJEQ, OpJNE, OpRDRAND:
		return 3
	default:
		return 0
	}
}
