package brillig

import "github.com/consensys/acvm/field"

// ForeignCallParam is one value crossing the foreign-call boundary: either a
// single field element or an array of them, matching the shape of the operand
// it came from or feeds.
type ForeignCallParam struct {
	Value   field.Element
	Array   []field.Element
	IsArray bool
}

// SingleParam wraps a single field element.
func SingleParam(v field.Element) ForeignCallParam {
	return ForeignCallParam{Value: v}
}

// ArrayParam wraps an array of field elements.
func ArrayParam(vs ...field.Element) ForeignCallParam {
	return ForeignCallParam{Array: vs, IsArray: true}
}

// ForeignCallWaitInfo describes a pending foreign call: the function name the
// host should interpret, and its fully evaluated inputs. Execution is
// suspended until the caller supplies a matching ForeignCallResult.
type ForeignCallWaitInfo struct {
	Function string
	Inputs   []ForeignCallParam
}

// ForeignCallResult carries the outputs of a resolved foreign call, one param
// per destination operand of the suspended call instruction, matching shapes.
type ForeignCallResult struct {
	Values []ForeignCallParam
}
