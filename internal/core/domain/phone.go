package domain

import "strings"

// FormatPhone renders the digits typed so far in the canonical
// +1-DDD-DDD-DDDD form. It is re-invoked on every keystroke, so partial
// inputs get partial groupings:
//
//	""            → ""            (displayed as typed)
//	"55"          → "+1-55"
//	"555"         → "+1-555-"
//	"55512"       → "+1-555-12"
//	"555123"      → "+1-555-123-"
//	"5551234567"  → "+1-555-123-4567"
//	"15551234567" → "+1-555-123-4567" (leading country code dropped)
//
// The function is pure and makes no assumption about monotonic growth; the
// user may delete characters between calls.
func FormatPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if digits == "" {
		return raw
	}

	if len(digits) >= 10 {
		if len(digits) == 11 && digits[0] == '1' {
			digits = digits[1:]
		}
		digits = digits[:10]
	}

	switch {
	case len(digits) >= 6:
		return "+1-" + digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) >= 3:
		return "+1-" + digits[:3] + "-" + digits[3:]
	default:
		return "+1-" + digits
	}
}
