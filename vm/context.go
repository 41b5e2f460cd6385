package vm

import (
	"fmt"
	mathrand "math/rand/v2"
)

// State is a Context's position in the run-state machine:
//
//	Fresh -> Ready -> Running -> Halted | Faulted
//
// Only Fresh->Ready->Running is reversible, via Reset; Halted and Faulted
// are terminal until the Context is reset.
type State int

const (
	StateFresh State = iota
	StateReady
	StateRunning
	StateHalted
	StateFaulted
)

var stateNames = map[State]string{
	StateFresh:   "fresh",
	StateReady:   "ready",
	StateRunning: "running",
	StateHalted:  "halted",
	StateFaulted: "faulted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Context owns a Context's linear memory, register file, and run state. It
// is the Go analogue of the original source's VMContext / the spec's
// "Memory & context" component: a single flat arena plus the fixed register
// file, with no ARM-style memory segmentation (that division of code/data/
// heap/stack belongs to the teacher's ARM memory model, not this one -
// TinyVM's memory is one undifferentiated array of Words per spec.md §3).
type Context struct {
	Memory    [MemorySize]Word
	Registers [registerCount]Word
	State     State
	LastFault *Fault

	// Rand backs the RDRAND opcode. Exported so tests can substitute a
	// deterministic source; defaults to a per-context CSPRNG-seeded one.
	Rand *mathrand.Rand

	// stackSet and baseSet record whether InitializeStack and
	// SetProgramBase have run since creation or the last Reset.
	stackSet, baseSet bool
}

// NewContext creates a zeroed Context in state Fresh: memory and registers
// are all zero, SP=0, and running is false (the Fresh state itself encodes
// "not running" - there is no separate boolean).
func NewContext() *Context {
	return &Context{
		State: StateFresh,
		Rand:  newSeededRand(),
	}
}

// Running reports whether the Context is presently executing.
func (c *Context) Running() bool {
	return c.State == StateRunning
}

// Reset returns the Context to state Fresh: memory and registers are
// zeroed and any recorded fault is cleared. Use InitializeStack and
// SetProgramBase (and LoadProgram) again to bring it back to Ready.
func (c *Context) Reset() {
	c.Memory = [MemorySize]Word{}
	c.Registers = [registerCount]Word{}
	c.State = StateFresh
	c.LastFault = nil
	c.stackSet, c.baseSet = false, false
}

// InitializeStack sets the stack base pointer and zeroes the stack
// pointer, per spec.md §4.3: "Initialisation sets SP = 0 and SBP to a
// user-chosen word index". sbp must address a valid memory word.
func (c *Context) InitializeStack(sbp Word) error {
	if sbp >= MemorySize {
		return fmt.Errorf("tinyvm: stack base %d is out of bounds (memory size %d)", sbp, MemorySize)
	}
	c.Registers[SBP] = sbp
	c.Registers[SP] = 0
	c.stackSet = true
	c.advanceToReady()
	return nil
}

// SetProgramBase sets the instruction pointer, i.e. where fetch-decode
// will begin on the next Step/Run. Program loading does not advance IP
// itself (spec.md §3 "Lifecycle"); callers set the base once up front.
func (c *Context) SetProgramBase(ip Word) error {
	if ip >= MemorySize {
		return fmt.Errorf("tinyvm: program base %d is out of bounds (memory size %d)", ip, MemorySize)
	}
	c.Registers[IP] = ip
	c.baseSet = true
	c.advanceToReady()
	return nil
}

// advanceToReady promotes a Fresh context to Ready once both stack and
// program base have been configured. It is idempotent and a no-op once
// execution has begun.
func (c *Context) advanceToReady() {
	if c.State == StateFresh && c.stackSet && c.baseSet {
		c.State = StateReady
	}
}

// LoadProgram copies the encoded instructions in program into memory
// starting at the current IP, without advancing IP. It faults
// ProgramTooLarge if the program would not fit in the remaining memory.
func (c *Context) LoadProgram(program []InstructionData) error {
	base := c.Registers[IP]
	need := Word(len(program)) * instructionWords
	if base+need > MemorySize {
		fault := newFault(FaultProgramTooLarge, base,
			"program of %d words does not fit at base %d (memory size %d)", need, base, MemorySize)
		c.fail(fault)
		return fault
	}

	for i, instr := range program {
		offset := base + Word(i)*instructionWords
		copy(c.Memory[offset:offset+instructionWords], instr.Words[:])
	}
	return nil
}

// fail records a fault and transitions the Context to Faulted. It never
// overwrites an already-terminal state such as Halted.
func (c *Context) fail(f *Fault) {
	if c.State == StateHalted {
		return
	}
	c.State = StateFaulted
	c.LastFault = f
}
