package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesStockContract(t *testing.T) {
	r := Default()

	assert.Equal(t, "python:3.11-slim", r.BaseImage)
	assert.Equal(t, "/app", r.WorkDir)
	assert.Equal(t, "requirements.txt", r.ManifestFile)
	assert.Equal(t, 5000, r.ExposePort)
	assert.Equal(t, []string{
		"gunicorn",
		"-b", "0.0.0.0:5000",
		"app:app",
		"--workers=2",
		"--threads=2",
	}, r.Launch.Argv())
	require.NoError(t, r.Validate())
}

func TestBuildEnvGuaranteesCannotBeOverridden(t *testing.T) {
	r := Default()
	r.Env = map[string]string{
		"PYTHONDONTWRITEBYTECODE": "0",
		"PYTHONUNBUFFERED":        "",
		"APP_MODE":                "production",
	}

	env := r.BuildEnv()
	assert.Equal(t, "1", env[EnvNoBytecodeCache])
	assert.Equal(t, "1", env[EnvUnbufferedOutput])
	assert.Equal(t, "production", env["APP_MODE"])
}

func TestEnvSliceIsSorted(t *testing.T) {
	r := Default()
	r.Env = map[string]string{"ZED": "z", "ALPHA": "a"}

	assert.Equal(t, []string{
		"ALPHA=a",
		"PYTHONDONTWRITEBYTECODE=1",
		"PYTHONUNBUFFERED=1",
		"ZED=z",
	}, r.EnvSlice())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	content := `baseImage: python:3.12-slim
env:
  APP_MODE: staging
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "python:3.12-slim", r.BaseImage)
	assert.Equal(t, "staging", r.Env["APP_MODE"])
	// untouched fields keep their defaults
	assert.Equal(t, "/app", r.WorkDir)
	assert.Equal(t, 5000, r.ExposePort)
	assert.Equal(t, "gunicorn", r.Launch.Program)
}

func TestLoadRejectsInvalidRecipe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("exposePort: 70000\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsRelativeWorkDir(t *testing.T) {
	r := Default()
	r.WorkDir = "app"

	assert.Error(t, r.Validate())
}

func TestResolvePrecedence(t *testing.T) {
	sourceDir := t.TempDir()
	sourceRecipe := filepath.Join(sourceDir, DefaultFileName)
	require.NoError(t, os.WriteFile(sourceRecipe, []byte("exposePort: 8080\n"), 0o644))

	explicitDir := t.TempDir()
	explicitRecipe := filepath.Join(explicitDir, "custom.yaml")
	require.NoError(t, os.WriteFile(explicitRecipe, []byte("exposePort: 9000\n"), 0o644))

	r, err := Resolve(explicitRecipe, sourceDir)
	require.NoError(t, err)
	assert.Equal(t, 9000, r.ExposePort)

	r, err = Resolve("", sourceDir)
	require.NoError(t, err)
	assert.Equal(t, 8080, r.ExposePort)

	r, err = Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5000, r.ExposePort)
}
