package utils

// Pair runs two tasks concurrently and waits for both. The first non-nil
// error wins; the zero values are returned alongside it. Used by the listing
// endpoints to issue a page query and its count in parallel.
func Pair[A, B any](first func() (A, error), second func() (B, error)) (A, B, error) {
	type result[T any] struct {
		value T
		err   error
	}

	firstChan := make(chan result[A], 1)
	go func() {
		v, err := first()
		firstChan <- result[A]{v, err}
	}()

	b, errB := second()
	resA := <-firstChan

	if resA.err != nil {
		var zeroA A
		var zeroB B
		return zeroA, zeroB, resA.err
	}
	if errB != nil {
		var zeroA A
		var zeroB B
		return zeroA, zeroB, errB
	}
	return resA.value, b, nil
}
