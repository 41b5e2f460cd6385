package asm

// ElementKind identifies which variant of ParsedElement a line parsed
// into. Defined here so that a line parser (not part of this package;
// see spec.md §6) has a concrete Go shape to populate.
type ElementKind int

const (
	ElementLabel ElementKind = iota
	ElementSpecifier
	ElementInstruction
	ElementError
)

// OperandType identifies how an instruction's operand should be
// resolved at assemble time.
type OperandType int

const (
	OperandLiteral OperandType = iota
	OperandRegister
	OperandMemory
	OperandLabelRef
)

// Operand is one resolved or to-be-resolved instruction operand: a
// register index, a memory address, a literal value, or a reference to
// a label whose address is not yet known.
type Operand struct {
	Indirect bool
	Type     OperandType
	Value    uint64 // register index, address, literal, or (if Type == OperandLabelRef) unused
	Label    string // set only when Type == OperandLabelRef
}

// ParsedElement is the shape-only contract for what one assembled line
// produces: a label definition, a specifier directive (e.g. `.base`),
// a machine instruction with up to three operands, or an error. No
// parsing logic lives here; a line parser builds these values from a
// TokenBuffer.
type ParsedElement struct {
	Kind ElementKind

	// Set when Kind == ElementLabel.
	LabelName string

	// Set when Kind == ElementSpecifier.
	SpecifierName string
	SpecifierArg  uint64

	// Set when Kind == ElementInstruction.
	Mnemonic     string
	OperandCount int
	Operands     [3]Operand

	// Set when Kind == ElementError.
	ErrorKind    ErrorKind
	ErrorToken   HLToken
	ErrorMessage string
}
