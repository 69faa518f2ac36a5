package pointer

func String(s string) *string {
	return &s
}

// StringValue dereferences s, returning an empty string for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
