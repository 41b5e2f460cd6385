package vm_test

import (
	"testing"

	"github.com/lookbusy1344/tinyvm/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_StartsFresh(t *testing.T) {
	c := vm.NewContext()
	assert.Equal(t, vm.StateFresh, c.State)
	assert.False(t, c.Running())
}

func TestContext_BecomesReadyOnceBothInitialized(t *testing.T) {
	c := vm.NewContext()
	require.NoError(t, c.InitializeStack(100))
	assert.Equal(t, vm.StateFresh, c.State, "still Fresh with only the stack configured")

	require.NoError(t, c.SetProgramBase(0))
	assert.Equal(t, vm.StateReady, c.State)
}

func TestContext_InitializeStackOutOfBounds(t *testing.T) {
	c := vm.NewContext()
	err := c.InitializeStack(vm.MemorySize)
	assert.Error(t, err)
}

func TestContext_SetProgramBaseOutOfBounds(t *testing.T) {
	c := vm.NewContext()
	err := c.SetProgramBase(vm.MemorySize)
	assert.Error(t, err)
}

func TestContext_RunTransitionsToHalted(t *testing.T) {
	c := freshContext(t)
	halt := vm.NewInstruction0(vm.OpHALT)
	require.NoError(t, c.LoadProgram([]vm.InstructionData{vm.Encode(&halt)}))

	require.Nil(t, c.Run())
	assert.Equal(t, vm.StateHalted, c.State)
	assert.False(t, c.Running())
}

func TestContext_RunTransitionsToFaulted(t *testing.T) {
	c := freshContext(t)
	div := vm.NewInstruction3(vm.OpDIV, vm.Register, vm.Word(vm.R0), vm.Literal, 1, vm.Literal, 0)
	require.NoError(t, c.LoadProgram([]vm.InstructionData{vm.Encode(&div)}))

	f := c.Run()
	require.NotNil(t, f)
	assert.Equal(t, vm.StateFaulted, c.State)
	assert.Equal(t, f, c.LastFault)
}

func TestContext_ResetReturnsToFresh(t *testing.T) {
	c := freshContext(t)
	c.Registers[vm.R0] = 42
	c.Memory[10] = 99

	halt := vm.NewInstruction0(vm.OpHALT)
	require.NoError(t, c.LoadProgram([]vm.InstructionData{vm.Encode(&halt)}))
	require.Nil(t, c.Run())

	c.Reset()
	assert.Equal(t, vm.StateFresh, c.State)
	assert.Nil(t, c.LastFault)
	assert.Equal(t, vm.Word(0), c.Registers[vm.R0])
	assert.Equal(t, vm.Word(0), c.Memory[10])
}

func TestContext_LoadProgramTooLargeFaults(t *testing.T) {
	c := vm.NewContext()
	require.NoError(t, c.InitializeStack(100))
	require.NoError(t, c.SetProgramBase(vm.MemorySize - 4))

	nop := vm.NewInstruction0(vm.OpNOP)
	program := []vm.InstructionData{vm.Encode(&nop), vm.Encode(&nop)}

	err := c.LoadProgram(program)
	require.Error(t, err)
	assert.Equal(t, vm.StateFaulted, c.State)

	var fault *vm.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, vm.FaultProgramTooLarge, fault.Kind)
}

func TestContext_StepRejectsTerminalState(t *testing.T) {
	c := freshContext(t)
	halt := vm.NewInstruction0(vm.OpHALT)
	require.NoError(t, c.LoadProgram([]vm.InstructionData{vm.Encode(&halt)}))
	require.Nil(t, c.Run())

	f := c.Step()
	require.NotNil(t, f)
}

func TestContext_FaultedPreservesLastFault(t *testing.T) {
	c := freshContext(t)
	div := vm.NewInstruction3(vm.OpDIV, vm.Register, vm.Word(vm.R0), vm.Literal, 1, vm.Literal, 0)
	require.NoError(t, c.LoadProgram([]vm.InstructionData{vm.Encode(&div)}))

	first := c.Run()
	require.NotNil(t, first)
	second := c.Step()
	assert.Same(t, first, second)
}
