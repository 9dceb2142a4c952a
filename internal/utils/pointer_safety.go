package utils

// PtrOrNil returns nil for the zero value, so optional request fields are omitted.
func PtrOrNil[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
