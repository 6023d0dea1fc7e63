package buildfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultRecipe(t *testing.T) {
	rcp := recipe.Default()

	rendered, err := Render(&rcp)
	require.NoError(t, err)

	assert.Contains(t, rendered, "FROM python:3.11-slim\n")
	assert.Contains(t, rendered, "ENV PYTHONDONTWRITEBYTECODE=1\n")
	assert.Contains(t, rendered, "ENV PYTHONUNBUFFERED=1\n")
	assert.Contains(t, rendered, "WORKDIR /app\n")
	assert.Contains(t, rendered, "COPY requirements.txt .\n")
	assert.Contains(t, rendered, "RUN pip install --no-cache-dir -r requirements.txt\n")
	assert.Contains(t, rendered, "EXPOSE 5000\n")
	assert.Contains(t, rendered, `CMD ["gunicorn","-b","0.0.0.0:5000","app:app","--workers=2","--threads=2"]`)
}

func TestRenderInstallPrecedesSourceCopy(t *testing.T) {
	rcp := recipe.Default()

	rendered, err := Render(&rcp)
	require.NoError(t, err)

	install := strings.Index(rendered, "RUN pip install")
	sourceCopy := strings.Index(rendered, "COPY . .")
	require.NotEqual(t, -1, install)
	require.NotEqual(t, -1, sourceCopy)
	assert.Less(t, install, sourceCopy)
}

func TestRenderIsDeterministic(t *testing.T) {
	rcp := recipe.Default()
	rcp.Env = map[string]string{"B_VAR": "2", "A_VAR": "1", "C_VAR": "3"}

	first, err := Render(&rcp)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Render(&rcp)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// env lines render sorted
	assert.Less(t, strings.Index(first, "ENV A_VAR=1"), strings.Index(first, "ENV B_VAR=2"))
	assert.Less(t, strings.Index(first, "ENV B_VAR=2"), strings.Index(first, "ENV C_VAR=3"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	rcp := recipe.Default()

	path, err := WriteFile(dir, &rcp)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	rendered, err := Render(&rcp)
	require.NoError(t, err)
	assert.Equal(t, rendered, string(content))
}
