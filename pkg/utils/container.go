package utils

import "regexp"

const tagPattern = `^(([a-zA-Z0-9.-]+:\d{2,5}\/)?[a-z0-9]+(?:[._-][a-z0-9]+)*\/)?[a-z0-9]+(?:[._-][a-z0-9]+)*(?::[a-zA-Z0-9._-]+)?$`

// IsValidTag reports whether the input is a valid container image tag.
func IsValidTag(input string) bool {
	matched, _ := regexp.MatchString(tagPattern, input)
	return matched
}
