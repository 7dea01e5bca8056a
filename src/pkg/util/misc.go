package util

import "time"

// Ptr returns a pointer to the given value. Handy for optional fields.
func Ptr[T any](value T) *T {
	return &value
}

// WaitForSeconds sleeps for the given amount of seconds (fractions allowed).
func WaitForSeconds(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}
