package acir

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/acvm/brillig"
	"github.com/consensys/acvm/field"
)

func sampleCircuit() *Circuit {
	pred := NewConstantExpression(field.One())
	return &Circuit{
		CurrentWitnessIndex: 12,
		PublicParameters:    PublicInputs{0, 1},
		ReturnValues:        PublicInputs{11},
		Opcodes: []Opcode{
			AssertZero{Expr: Expression{
				MulTerms:    []MulTerm{{Coeff: field.NewElement(2), WitnessL: 1, WitnessR: 2}},
				LinearTerms: []LinearTerm{{Coeff: field.NewElement(3), Witness: 3}},
				Constant:    field.NewElement(7),
			}},
			BlackBoxCall{
				Function: Range,
				Inputs:   []FunctionInput{{Witness: 1, NumBits: 32}},
			},
			DirectiveInvert{X: 1, Result: 4},
			DirectiveQuotient{
				A:         WitnessExpression(1),
				B:         NewConstantExpression(field.NewElement(3)),
				Q:         5,
				R:         6,
				Predicate: &pred,
			},
			DirectiveToLeRadix{A: WitnessExpression(2), B: []Witness{7, 8}, Radix: 2},
			MemoryInit{Block: 0, Init: []Witness{1, 2}},
			MemoryOp{
				Block:     0,
				Operation: NewConstantExpression(field.Zero()),
				Index:     NewConstantExpression(field.One()),
				Value:     WitnessExpression(9),
			},
			BrilligCall{
				Inputs: []BrilligInput{
					SingleInput(WitnessExpression(1)),
					ArrayInput(WitnessExpression(2), NewConstantExpression(field.NewElement(5))),
				},
				Outputs: []BrilligOutput{SimpleOutput(10), ArrayOutput(11)},
				Bytecode: []brillig.Instruction{
					brillig.BinaryField(0, brillig.FieldAdd, 0, 1),
					brillig.ForeignCall("oracle",
						[]brillig.CallOperand{brillig.RegisterOperand(0)},
						[]brillig.CallOperand{brillig.HeapArrayOperand(1, 2)},
					),
					brillig.Stop(),
				},
			},
		},
	}
}

func TestCircuitRoundTrip(t *testing.T) {
	circuit := sampleCircuit()

	data, err := circuit.ToBytes()
	require.NoError(t, err)

	decoded, err := FromBytes(data)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(circuit, decoded))
}

func TestCircuitReadWrite(t *testing.T) {
	circuit := sampleCircuit()

	var buf bytes.Buffer
	require.NoError(t, circuit.Write(&buf))

	decoded, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(circuit, decoded))
}

func TestFromBytesTruncated(t *testing.T) {
	data, err := sampleCircuit().ToBytes()
	require.NoError(t, err)

	for _, n := range []int{0, 4, len(data) / 2} {
		_, err := FromBytes(data[:n])
		assert.Error(t, err, "length %d", n)
	}
}

func TestFromBytesGarbage(t *testing.T) {
	_, err := FromBytes([]byte("not a circuit at all, nowhere near one"))
	require.Error(t, err)
}
