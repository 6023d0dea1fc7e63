package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWsgiTargetDefaultLaunch(t *testing.T) {
	rcp := recipe.Default()

	target, err := ParseWsgiTarget(rcp.Launch)
	require.NoError(t, err)

	// the bind address 0.0.0.0:5000 must not be mistaken for the target
	assert.Equal(t, "app", target.Module)
	assert.Equal(t, "app", target.Attribute)
}

func TestParseWsgiTargetDottedModule(t *testing.T) {
	command := recipe.Command{
		Program: "gunicorn",
		Args:    []string{"-b", "0.0.0.0:5000", "myservice.wsgi:application"},
	}

	target, err := ParseWsgiTarget(command)
	require.NoError(t, err)

	assert.Equal(t, "myservice.wsgi", target.Module)
	assert.Equal(t, "application", target.Attribute)
}

func TestParseWsgiTargetMissing(t *testing.T) {
	command := recipe.Command{
		Program: "gunicorn",
		Args:    []string{"-b", "0.0.0.0:5000"},
	}

	_, err := ParseWsgiTarget(command)
	assert.Error(t, err)
}

func TestCheckModuleFile(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "app.py"), []byte("app = object()\n"), 0o644))

	target := &WsgiTarget{Module: "app", Attribute: "app"}
	assert.NoError(t, target.Check(sourceDir))
}

func TestCheckPackageModule(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "myservice", "wsgi"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "myservice", "wsgi", "__init__.py"), []byte(""), 0o644))

	target := &WsgiTarget{Module: "myservice.wsgi", Attribute: "application"}
	assert.NoError(t, target.Check(sourceDir))
}

func TestCheckMissingModule(t *testing.T) {
	sourceDir := t.TempDir()

	target := &WsgiTarget{Module: "app", Attribute: "app"}
	err := target.Check(sourceDir)

	var missing *EntryPointMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "app", missing.Module)
}
