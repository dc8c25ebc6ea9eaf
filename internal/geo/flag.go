package geo

import "strings"

const regionalIndicatorOffset = 0x1F1E6 - 'A'

// FlagEmoji converts an ISO alpha-2 code into its flag emoji.
// Anything that is not two ASCII letters yields an empty string.
func FlagEmoji(alpha2 string) string {
	code := strings.ToUpper(strings.TrimSpace(alpha2))
	if len(code) != 2 {
		return ""
	}

	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(r + regionalIndicatorOffset)
	}
	return b.String()
}
