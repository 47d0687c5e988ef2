package transduce

// Both returns a predicate that holds when p and q both hold. q is not
// evaluated when p fails.
func Both[T any](p, q func(T) bool) func(T) bool {
	return func(v T) bool { return p(v) && q(v) }
}

// Either returns a predicate that holds when p or q holds. q is not
// evaluated when p holds.
func Either[T any](p, q func(T) bool) func(T) bool {
	return func(v T) bool { return p(v) || q(v) }
}

// Complement negates p.
func Complement[T any](p func(T) bool) func(T) bool {
	return func(v T) bool { return !p(v) }
}

// AllPass holds when every predicate holds. It holds vacuously for no
// predicates.
func AllPass[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// AnyPass holds when at least one predicate holds. It never holds for no
// predicates.
func AnyPass[T any](preds ...func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// When applies f to the elements satisfying pred and passes the others
// through unchanged.
func When[T any](pred func(T) bool, f func(T) T) Transducer[T, T] {
	mustFunc("pred", pred)
	mustFunc("f", f)
	return mapT[T, T]{f: func(v T) T {
		if pred(v) {
			return f(v)
		}
		return v
	}}
}

// Unless applies f to the elements that do not satisfy pred.
func Unless[T any](pred func(T) bool, f func(T) T) Transducer[T, T] {
	mustFunc("pred", pred)
	mustFunc("f", f)
	return When(Complement(pred), f)
}

// IfElse routes every element through onTrue or onFalse depending on pred.
// Unlike When, the branches may change the element type.
func IfElse[In, Out any](pred func(In) bool, onTrue, onFalse func(In) Out) Transducer[In, Out] {
	mustFunc("pred", pred)
	mustFunc("onTrue", onTrue)
	mustFunc("onFalse", onFalse)
	return mapT[In, Out]{f: func(v In) Out {
		if pred(v) {
			return onTrue(v)
		}
		return onFalse(v)
	}}
}
