package launcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/uuid"
	"github.com/slipway-sh/slipway/pkg/container"
	"github.com/slipway-sh/slipway/pkg/defers"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/slipway-sh/slipway/pkg/recipe"
)

// Options control how the image is launched.
type Options struct {
	// Detach starts the container and returns without waiting for it.
	Detach bool

	// SourceDir enables the entry-point precheck against the given source
	// tree. Empty skips the precheck.
	SourceDir string
}

// Launcher starts exactly one foreground process per container from a built
// image, per the runtime contract: the declared port is bound on all host
// interfaces, the build environment variables are inherited and the
// container's exit code is propagated unchanged. Request handling, worker
// supervision and restart-on-crash stay with the WSGI server inside.
type Launcher struct {
	log    logger.Logger
	engine container.Engine
}

// New returns a Launcher on the given engine.
func New(log logger.Logger, engine container.Engine) *Launcher {
	return &Launcher{log: log, engine: engine}
}

// Launch starts a container from the tagged image and, unless detached,
// streams its output and blocks until it exits. The returned code is the
// container process's own exit code, untranslated.
func (l *Launcher) Launch(ctx context.Context, rcp *recipe.Recipe, tag string, opts Options) (int64, error) {
	if opts.SourceDir != "" {
		target, err := ParseWsgiTarget(rcp.Launch)
		if err != nil {
			l.log.Warnf("skipping entry point check: %v", err)
		} else if err := target.Check(opts.SourceDir); err != nil {
			return 0, err
		}
	}

	cleanup := defers.NewDefers()
	defer cleanup.CallAll()

	name := containerName()
	log := l.log.WithFields(map[string]any{"image-tag": tag, "container-name": name})

	containerId, err := l.engine.CreateContainer(ctx, container.Spec{
		Image: tag,
		Name:  name,
		Env:   rcp.EnvSlice(),
		Port:  rcp.ExposePort,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create container: %w", err)
	}
	cleanup.Add(func() {
		l.engine.RemoveContainer(context.Background(), containerId)
	})

	log = log.WithFields(map[string]any{"container-id": containerId})

	if err := l.engine.StartContainer(ctx, containerId); err != nil {
		if isPortBindConflict(err) {
			return 0, &PortBindConflictError{Port: rcp.ExposePort, Err: err}
		}
		return 0, fmt.Errorf("failed to start container: %w", err)
	}
	log.Infof("listening on 0.0.0.0:%d", rcp.ExposePort)

	if opts.Detach {
		// a detached container stays behind on purpose
		cleanup.Trigger(false)
		return 0, nil
	}
	cleanup.Add(func() {
		l.engine.StopContainer(context.Background(), containerId)
	})

	logsReader, err := l.engine.ContainerLogs(ctx, containerId)
	if err != nil {
		log.Warnf("failed to attach to container logs: %v", err)
	} else {
		go func() {
			defer logsReader.Close()
			if _, err := stdcopy.StdCopy(os.Stdout, os.Stderr, logsReader); err != nil && !strings.Contains(err.Error(), "context canceled") {
				log.Debugf("container log stream ended: %v", err)
			}
		}()
	}

	exitCode, err := l.engine.WaitContainer(ctx, containerId)
	if err != nil {
		return 0, fmt.Errorf("failed to wait for container: %w", err)
	}
	log.Infof("container exited with code %d", exitCode)

	return exitCode, nil
}

func containerName() string {
	return "slipway-" + strings.Split(uuid.NewString(), "-")[0]
}
