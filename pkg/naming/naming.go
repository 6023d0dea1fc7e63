package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Prefix for the images slipway builds.
var ImagePrefix = "slipway"

var invalidTagChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ImageTag derives the default image tag from the application source
// directory name.
func ImageTag(sourceDir string) string {
	base := filepath.Base(absOrClean(sourceDir))
	name := invalidTagChars.ReplaceAllString(strings.ToLower(base), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "app"
	}
	return fmt.Sprintf("%s/%s:latest", ImagePrefix, name)
}

func absOrClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
