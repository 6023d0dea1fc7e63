package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slipway-sh/slipway/pkg/container"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLog = logger.NewLogger("slipway.launcher.test")

type fakeEngine struct {
	createErr error
	startErr  error
	waitErr   error
	exitCode  int64

	calls   []string
	created []container.Spec
	stopped []string
	removed []string
}

func (f *fakeEngine) PullImage(_ context.Context, _ string) error {
	f.calls = append(f.calls, "pull")
	return nil
}

func (f *fakeEngine) BuildImage(_ context.Context, _ string, _ string, _ string, _ map[string]string) error {
	f.calls = append(f.calls, "build")
	return nil
}

func (f *fakeEngine) InspectImageLabels(_ context.Context, _ string) (map[string]string, bool, error) {
	f.calls = append(f.calls, "inspect")
	return nil, false, nil
}

func (f *fakeEngine) CreateContainer(_ context.Context, spec container.Spec) (string, error) {
	f.calls = append(f.calls, "create")
	f.created = append(f.created, spec)
	return "cafebabe4712", f.createErr
}

func (f *fakeEngine) StartContainer(_ context.Context, _ string) error {
	f.calls = append(f.calls, "start")
	return f.startErr
}

func (f *fakeEngine) ContainerLogs(_ context.Context, _ string) (io.ReadCloser, error) {
	f.calls = append(f.calls, "logs")
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeEngine) WaitContainer(_ context.Context, _ string) (int64, error) {
	f.calls = append(f.calls, "wait")
	return f.exitCode, f.waitErr
}

func (f *fakeEngine) StopContainer(_ context.Context, containerId string) {
	f.calls = append(f.calls, "stop")
	f.stopped = append(f.stopped, containerId)
}

func (f *fakeEngine) RemoveContainer(_ context.Context, containerId string) {
	f.calls = append(f.calls, "remove")
	f.removed = append(f.removed, containerId)
}

func writeAppTree(t *testing.T) string {
	t.Helper()
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "app.py"), []byte("app = object()\n"), 0o644))
	return sourceDir
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	engine := &fakeEngine{exitCode: 3}
	rcp := recipe.Default()

	exitCode, err := New(testLog, engine).Launch(context.Background(), &rcp, "slipway/app:latest", Options{SourceDir: writeAppTree(t)})
	require.NoError(t, err)

	// the container's own exit code comes back untranslated
	assert.Equal(t, int64(3), exitCode)
	assert.Contains(t, engine.calls, "create")
	assert.Contains(t, engine.calls, "start")
	assert.Contains(t, engine.calls, "wait")
	assert.Equal(t, []string{"cafebabe4712"}, engine.stopped)
	assert.Equal(t, []string{"cafebabe4712"}, engine.removed)
}

func TestLaunchContainerSpec(t *testing.T) {
	engine := &fakeEngine{}
	rcp := recipe.Default()
	rcp.Env = map[string]string{"APP_MODE": "production"}

	_, err := New(testLog, engine).Launch(context.Background(), &rcp, "slipway/app:latest", Options{SourceDir: writeAppTree(t)})
	require.NoError(t, err)

	require.Len(t, engine.created, 1)
	spec := engine.created[0]
	assert.Equal(t, "slipway/app:latest", spec.Image)
	assert.Equal(t, 5000, spec.Port)
	assert.Contains(t, spec.Env, "PYTHONDONTWRITEBYTECODE=1")
	assert.Contains(t, spec.Env, "PYTHONUNBUFFERED=1")
	assert.Contains(t, spec.Env, "APP_MODE=production")
	assert.True(t, strings.HasPrefix(spec.Name, "slipway-"))
}

func TestLaunchPortBindConflict(t *testing.T) {
	engine := &fakeEngine{startErr: errors.New("driver failed programming external connectivity: Bind for 0.0.0.0:5000 failed: port is already allocated")}
	rcp := recipe.Default()

	_, err := New(testLog, engine).Launch(context.Background(), &rcp, "slipway/app:latest", Options{SourceDir: writeAppTree(t)})

	var conflict *PortBindConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 5000, conflict.Port)
	// the failed container does not stay behind
	assert.Equal(t, []string{"cafebabe4712"}, engine.removed)
}

func TestLaunchEntryPointMissing(t *testing.T) {
	engine := &fakeEngine{}
	rcp := recipe.Default()

	_, err := New(testLog, engine).Launch(context.Background(), &rcp, "slipway/app:latest", Options{SourceDir: t.TempDir()})

	var missing *EntryPointMissingError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, engine.calls, "a refused launch must not touch the engine")
}

func TestLaunchDetach(t *testing.T) {
	engine := &fakeEngine{}
	rcp := recipe.Default()

	exitCode, err := New(testLog, engine).Launch(context.Background(), &rcp, "slipway/app:latest", Options{Detach: true, SourceDir: writeAppTree(t)})
	require.NoError(t, err)

	assert.Equal(t, int64(0), exitCode)
	assert.NotContains(t, engine.calls, "wait")
	assert.Empty(t, engine.stopped, "a detached container stays running")
	assert.Empty(t, engine.removed)
}
