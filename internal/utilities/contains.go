package utilities

// Contains reports whether want is present in items.
func Contains[T comparable](items []T, want T) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
