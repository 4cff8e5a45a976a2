package extract

// Disabled reports whether content looks like a removed, disabled or error
// page. Field accessors never call it; callers check availability explicitly.
func Disabled(content string) bool {
	return DisabledMarkers.Re.MatchString(content)
}
