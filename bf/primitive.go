package bf

// Primitive returns a formula equivalent to f that only uses negations and implications.
// The other binary connectives are expanded as follows:
//
//	(a | b)   = ((!a) -> b)
//	(a & b)   = (!(a -> (!b)))
//	(a <-> b) = (!((a -> b) -> (!(b -> a))))
//	(a ^ b)   = (!(a <-> b)), with <-> expanded as above
//
// If f already is primitive, f itself is returned.
func Primitive(f *Formula) *Formula {
	switch f.op {
	case OpPass:
		return f
	case OpNot:
		sub := Primitive(f.subs[0])
		if sub == f.subs[0] {
			return f
		}
		return Not(sub)
	}
	a, b := Primitive(f.subs[0]), Primitive(f.subs[1])
	switch f.op {
	case OpImplies:
		if a == f.subs[0] && b == f.subs[1] {
			return f
		}
		return Implies(a, b)
	case OpOr:
		return Implies(Not(a), b)
	case OpAnd:
		return Not(Implies(a, Not(b)))
	case OpEq:
		return primitiveEq(a, b)
	case OpXor:
		return Not(primitiveEq(a, b))
	default:
		panic("invalid connective")
	}
}

func primitiveEq(a, b *Formula) *Formula {
	return Not(Implies(Implies(a, b), Not(Implies(b, a))))
}

// IsPrimitive returns true iff f only uses negations and implications.
func IsPrimitive(f *Formula) bool {
	switch f.op {
	case OpPass:
		return true
	case OpNot:
		return IsPrimitive(f.subs[0])
	case OpImplies:
		return IsPrimitive(f.subs[0]) && IsPrimitive(f.subs[1])
	default:
		return false
	}
}
