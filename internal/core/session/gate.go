package session

// CanRender reports whether views behind the admin gate may be shown. Any
// logged-in session qualifies; the token value itself is never inspected.
// Pure predicate: no I/O, no state.
func CanRender(s State) bool {
	return s == LoggedIn
}
