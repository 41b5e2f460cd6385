package vm_test

import (
	"testing"

	"github.com/lookbusy1344/tinyvm/vm"
	"github.com/stretchr/testify/assert"
)

func TestOpcode_Arity(t *testing.T) {
	tests := []struct {
		op    vm.Opcode
		arity int
	}{
		{vm.OpNOP, 0},
		{vm.OpHALT, 0},
		{vm.OpRET, 0},
		{vm.OpPUSH, 1},
		{vm.OpPOP, 1},
		{vm.OpJMP, 1},
		{vm.OpMOV, 2},
		{vm.OpJNZ, 2},
		{vm.OpADD, 3},
		{vm.OpDIV, 3},
		{vm.OpCMP, 3},
		{vm.OpRDRAND, 3},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.arity, tt.op.Arity())
		})
	}
}

func TestOpcode_Valid(t *testing.T) {
	assert.True(t, vm.OpNOP.Valid())
	assert.True(t, vm.OpRDRAND.Valid())
	assert.False(t, vm.Opcode(999).Valid())
}

func TestOpcode_StringUnknown(t *testing.T) {
	assert.Equal(t, "???", vm.Opcode(999).String())
}

func TestRegister_ValidAndString(t *testing.T) {
	assert.True(t, vm.R0.Valid())
	assert.True(t, vm.RMD.Valid())
	assert.False(t, vm.Register(-1).Valid())
	assert.Equal(t, "SBP", vm.SBP.String())
}
