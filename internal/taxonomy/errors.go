package taxonomy

// unknownCategoryError signals a category name outside the closed set.
type unknownCategoryError struct{ name string }

func (e unknownCategoryError) Error() string { return "unknown category: " + e.name }

// ErrUnknownCategory returns an error for a category name that is not recognized.
func ErrUnknownCategory(name string) error { return unknownCategoryError{name: name} }

// IsUnknownCategory reports whether err indicates an unrecognized category.
func IsUnknownCategory(err error) bool {
	_, ok := err.(unknownCategoryError)
	return ok
}
