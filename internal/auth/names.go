package auth

import "strings"

// SplitName takes the first whitespace-separated word as the first name and
// joins the rest with single spaces as the last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
