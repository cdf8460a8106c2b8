package brillig

import (
	"testing"

	"github.com/consensys/acvm/field"
	"github.com/stretchr/testify/require"
)

func registerValue(t *testing.T, vm *VM, r Register) field.Element {
	t.Helper()
	v, err := vm.Registers().Get(r)
	require.NoError(t, err)
	return v
}

func TestAddSmoke(t *testing.T) {
	// load 1 and 2, add them into register 2
	vm := New(
		[]field.Element{field.NewElement(1), field.NewElement(2), field.Zero()},
		nil,
		[]Instruction{BinaryField(2, FieldAdd, 0, 1)},
	)

	require.Equal(t, StatusFinished, vm.Process())

	got := registerValue(t, vm, 2)
	want := field.NewElement(3)
	require.True(t, want.Equal(&got))
}

func TestConditionalLoop(t *testing.T) {
	// sum the integers 1..5 with a counted loop:
	//   r0 counter, r1 accumulator, r2 constant 5, r3 constant 1, r4 scratch
	bytecode := []Instruction{
		Const(0, field.Zero()),          // 0: counter = 0
		Const(1, field.Zero()),          // 1: acc = 0
		Const(2, field.NewElement(5)),   // 2: limit
		Const(3, field.NewElement(1)),   // 3: one
		BinaryInt(4, IntEquals, 32, 0, 2), // 4: scratch = counter == limit
		JumpIf(4, 9),                    // 5: done?
		BinaryInt(0, IntAdd, 32, 0, 3),  // 6: counter++
		BinaryField(1, FieldAdd, 1, 0),  // 7: acc += counter
		Jump(4),                         // 8: loop
		Stop(),                          // 9
	}
	vm := New(nil, nil, bytecode)

	require.Equal(t, StatusFinished, vm.Process())

	got := registerValue(t, vm, 1)
	want := field.NewElement(15)
	require.True(t, want.Equal(&got))
}

func TestCallReturn(t *testing.T) {
	// call a subroutine that doubles r0
	bytecode := []Instruction{
		Call(3),                        // 0
		Mov(1, 0),                      // 1
		Stop(),                         // 2
		BinaryField(0, FieldAdd, 0, 0), // 3: r0 *= 2
		Return(),                       // 4
	}
	vm := New([]field.Element{field.NewElement(21)}, nil, bytecode)

	require.Equal(t, StatusFinished, vm.Process())

	got := registerValue(t, vm, 1)
	want := field.NewElement(42)
	require.True(t, want.Equal(&got))
}

func TestMemoryLoadStore(t *testing.T) {
	// store r1 at address held in r0 (past the end), then load it back
	bytecode := []Instruction{
		Store(0, 1),
		Load(2, 0),
		Stop(),
	}
	vm := New([]field.Element{field.NewElement(7), field.NewElement(99)}, nil, bytecode)

	require.Equal(t, StatusFinished, vm.Process())
	require.Equal(t, 8, vm.Memory().Len(), "store should zero-fill up to the address")

	got := registerValue(t, vm, 2)
	want := field.NewElement(99)
	require.True(t, want.Equal(&got))
}

func TestLoadOutOfBoundsFails(t *testing.T) {
	vm := New([]field.Element{field.NewElement(3)}, nil, []Instruction{Load(1, 0)})

	require.Equal(t, StatusFailure, vm.Process())
	require.Contains(t, vm.Err().Message, "out of bounds")
}

func TestTrapCarriesCallStack(t *testing.T) {
	bytecode := []Instruction{
		Call(2),
		Stop(),
		Trap(),
	}
	vm := New(nil, nil, bytecode)

	require.Equal(t, StatusFailure, vm.Process())
	require.Equal(t, []uint32{1, 2}, vm.Err().CallStack)
}

func TestUninitializedRegisterReadFails(t *testing.T) {
	vm := New(nil, nil, []Instruction{BinaryField(1, FieldAdd, 0, 0)})

	require.Equal(t, StatusFailure, vm.Process())
	require.Contains(t, vm.Err().Message, "uninitialized register")
}

func TestJumpOutOfBoundsFails(t *testing.T) {
	vm := New(nil, nil, []Instruction{Jump(17)})

	require.Equal(t, StatusFailure, vm.Process())
	require.Contains(t, vm.Err().Message, "jump target")
}

func TestForeignCallSuspendResume(t *testing.T) {
	assert := require.New(t)

	// ask the host to sum registers 0 and 1 into register 2
	bytecode := []Instruction{
		ForeignCall("sum",
			[]CallOperand{RegisterOperand(2)},
			[]CallOperand{RegisterOperand(0), RegisterOperand(1)},
		),
		Stop(),
	}
	vm := New([]field.Element{field.NewElement(1), field.NewElement(1)}, nil, bytecode)

	assert.Equal(StatusForeignCallWait, vm.Process())

	wait := vm.ForeignCallWait()
	assert.Equal("sum", wait.Function)
	assert.Len(wait.Inputs, 2)
	one := field.NewElement(1)
	assert.True(one.Equal(&wait.Inputs[0].Value))
	assert.True(one.Equal(&wait.Inputs[1].Value))

	// wrong shape is rejected and leaves the VM suspended
	err := vm.ResolveForeignCall(ForeignCallResult{Values: []ForeignCallParam{ArrayParam(field.NewElement(2))}})
	assert.Error(err)
	assert.Equal(StatusForeignCallWait, vm.Status())

	assert.NoError(vm.ResolveForeignCall(ForeignCallResult{Values: []ForeignCallParam{SingleParam(field.NewElement(2))}}))
	assert.Equal(StatusFinished, vm.Process())

	got := registerValue(t, vm, 2)
	want := field.NewElement(2)
	assert.True(want.Equal(&got))
}

func TestForeignCallArrayOperands(t *testing.T) {
	assert := require.New(t)

	// memory holds [10, 20]; the host reverses it in place
	bytecode := []Instruction{
		Const(0, field.Zero()), // base pointer
		ForeignCall("reverse",
			[]CallOperand{HeapArrayOperand(0, 2)},
			[]CallOperand{HeapArrayOperand(0, 2)},
		),
		Stop(),
	}
	vm := New(nil, []field.Element{field.NewElement(10), field.NewElement(20)}, bytecode)

	assert.Equal(StatusForeignCallWait, vm.Process())

	wait := vm.ForeignCallWait()
	assert.True(wait.Inputs[0].IsArray)
	assert.Len(wait.Inputs[0].Array, 2)

	assert.NoError(vm.ResolveForeignCall(ForeignCallResult{
		Values: []ForeignCallParam{ArrayParam(field.NewElement(20), field.NewElement(10))},
	}))
	assert.Equal(StatusFinished, vm.Process())

	got, err := vm.Memory().Load(0)
	assert.NoError(err)
	want := field.NewElement(20)
	assert.True(want.Equal(&got))
}
