package launcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/slipway-sh/slipway/pkg/utils"
)

// wsgiTargetPattern matches a WSGI application target of the form
// module.path:attribute. Bind addresses like 0.0.0.0:5000 do not match
// because their segments are not valid identifiers.
var wsgiTargetPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*):([A-Za-z_][A-Za-z0-9_]*)$`)

// WsgiTarget is the application entry point of the launch command: the
// module holding the WSGI callable and the attribute naming it.
type WsgiTarget struct {
	Module    string
	Attribute string
}

func (t *WsgiTarget) String() string {
	return t.Module + ":" + t.Attribute
}

// ParseWsgiTarget extracts the WSGI application target from the launch
// command's arguments.
func ParseWsgiTarget(command recipe.Command) (*WsgiTarget, error) {
	for _, arg := range command.Args {
		match := wsgiTargetPattern.FindStringSubmatch(arg)
		if match == nil {
			continue
		}
		return &WsgiTarget{Module: match[1], Attribute: match[2]}, nil
	}
	return nil, fmt.Errorf("launch command declares no module:attribute target: %s", command)
}

// Check verifies the target module resolves to a module file or package in
// the given source tree.
func (t *WsgiTarget) Check(sourceDir string) error {
	segments := strings.Split(t.Module, ".")
	base := filepath.Join(append([]string{sourceDir}, segments...)...)

	if exists, _ := utils.FileExists(base + ".py"); exists {
		return nil
	}
	if exists, _ := utils.FileExists(filepath.Join(base, "__init__.py")); exists {
		return nil
	}
	return &EntryPointMissingError{Module: t.Module, SearchDir: sourceDir}
}
