package acir

// BlackBoxFunc names a cryptographic black-box function. The set is closed;
// the implementations live outside the core (see the blackbox package).
type BlackBoxFunc uint8

const (
	// AND and XOR are bitwise operations over the declared bit width. RANGE
	// checks a value fits its declared width. All three have built-in
	// deterministic implementations.
	AND BlackBoxFunc = iota
	XOR
	Range

	// The remaining functions require an external cryptographic routine.
	SHA256
	Blake2s
	Keccak256
	HashToField128Security
	SchnorrVerify
	Pedersen
	EcdsaSecp256k1
	FixedBaseScalarMul
	ComputeMerkleRoot
)

func (f BlackBoxFunc) String() string {
	switch f {
	case AND:
		return "and"
	case XOR:
		return "xor"
	case Range:
		return "range"
	case SHA256:
		return "sha256"
	case Blake2s:
		return "blake2s"
	case Keccak256:
		return "keccak256"
	case HashToField128Security:
		return "hash_to_field_128_security"
	case SchnorrVerify:
		return "schnorr_verify"
	case Pedersen:
		return "pedersen"
	case EcdsaSecp256k1:
		return "ecdsa_secp256k1"
	case FixedBaseScalarMul:
		return "fixed_base_scalar_mul"
	case ComputeMerkleRoot:
		return "compute_merkle_root"
	default:
		return "unknown"
	}
}

// FunctionInput is a black-box input witness with its declared bit width.
type FunctionInput struct {
	Witness Witness
	NumBits uint32
}
