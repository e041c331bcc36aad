// Package monoid defines the algebraic core used by batched scoring: a value
// type closed under an associative combine operation, and a factory that lifts
// raw inputs into such values and converts them back to a final result.
package monoid

// Monoid is a value that can be combined with another value of the same type.
// Combine must be associative and must not mutate either operand. No identity
// element is required; reductions always start from a real value.
//
// The type parameter closes the set at compile time: values of different
// concrete monoid types cannot be combined.
type Monoid[M any] interface {
	Combine(other M) M
}

// Factory converts a raw input I into a monoid value M and a monoid value
// back into a result R. ToMonoid may be called independently on disjoint
// subsets of a dataset; the combined value converts to the same result as if
// the whole dataset had been lifted at once.
type Factory[I, R any, M Monoid[M]] interface {
	ToMonoid(in I) (M, error)
	FromMonoid(v M) (R, error)
}

// Reduce left-folds values with Combine. It reports false when values is
// empty, since there is no identity element to start from.
func Reduce[M Monoid[M]](values []M) (M, bool) {
	var acc M
	if len(values) == 0 {
		return acc, false
	}
	acc = values[0]
	for _, v := range values[1:] {
		acc = acc.Combine(v)
	}
	return acc, true
}
