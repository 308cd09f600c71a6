package runtime

// Equal implements ==. None equals only None; Numbers, Strings and Bools
// compare by underlying value; ClassInstances defer to their __eq__
// method, which must return a Bool.
func Equal(lhs, rhs Value, ctx Context) bool {
	if lhs == nil || rhs == nil {
		return lhs == nil && rhs == nil
	}

	switch l := lhs.(type) {
	case Number:
		r, ok := rhs.(Number)
		return ok && l == r
	case String:
		r, ok := rhs.(String)
		return ok && l == r
	case Bool:
		r, ok := rhs.(Bool)
		return ok && l == r
	case *ClassInstance:
		return dispatchComparison(l, "__eq__", rhs, ctx)
	default:
		Raise("Equal(): unable to compare %T values", lhs)
		panic("unreachable")
	}
}

// Less implements <. Numbers, Strings and Bools compare by value against
// the same kind; unlike Equal, a kind mismatch or a None operand is a
// RuntimeError. ClassInstances defer to their __lt__ method.
func Less(lhs, rhs Value, ctx Context) bool {
	switch l := lhs.(type) {
	case Number:
		r, ok := rhs.(Number)
		if !ok {
			Raise("Less(): cannot compare Number with %T", rhs)
		}
		return l < r
	case String:
		r, ok := rhs.(String)
		if !ok {
			Raise("Less(): cannot compare String with %T", rhs)
		}
		return l < r
	case Bool:
		r, ok := rhs.(Bool)
		if !ok {
			Raise("Less(): cannot compare Bool with %T", rhs)
		}
		return !bool(l) && bool(r)
	case *ClassInstance:
		return dispatchComparison(l, "__lt__", rhs, ctx)
	default:
		Raise("Less(): unable to compare %T values", lhs)
		panic("unreachable")
	}
}

// NotEqual, Greater, LessOrEqual and GreaterOrEqual are all defined in
// terms of Equal and Less, exactly as the language spec requires: a class
// only ever needs to implement __eq__ and __lt__ to support the full set.
func NotEqual(lhs, rhs Value, ctx Context) bool { return !Equal(lhs, rhs, ctx) }

func Greater(lhs, rhs Value, ctx Context) bool {
	return !Less(lhs, rhs, ctx) && !Equal(lhs, rhs, ctx)
}

func LessOrEqual(lhs, rhs Value, ctx Context) bool {
	return !Greater(lhs, rhs, ctx)
}

func GreaterOrEqual(lhs, rhs Value, ctx Context) bool {
	return !Less(lhs, rhs, ctx)
}

func dispatchComparison(self *ClassInstance, method string, rhs Value, ctx Context) bool {
	if !self.HasMethod(method, 1) {
		Raise("dispatchComparison(): %s has no %s method", self.Class.Name, method)
	}
	result := self.Call(method, []Value{rhs}, ctx)
	b, ok := result.(Bool)
	if !ok {
		Raise("dispatchComparison(): %s.%s must return a Bool, got %T", self.Class.Name, method, result)
	}
	return bool(b)
}
