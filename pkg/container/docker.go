package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	docker "github.com/docker/docker/client"
	dockerArchive "github.com/docker/docker/pkg/archive"
	"github.com/docker/go-connections/nat"
	"github.com/slipway-sh/slipway/pkg/logger"
)

var config = LoadConfig()

// DockerEngine implements Engine on the Docker Engine API.
type DockerEngine struct {
	client *docker.Client
	log    logger.Logger
}

// NewDockerEngine returns an Engine backed by the default Docker client.
func NewDockerEngine(log logger.Logger) (*DockerEngine, error) {
	client, err := docker.NewClientWithOpts(docker.FromEnv, docker.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &DockerEngine{client: client, log: log}, nil
}

// PullImage resolves an image reference into the local image store.
func (e *DockerEngine) PullImage(ctx context.Context, ref string) error {
	log := e.log.WithFields(map[string]any{"image-ref": ref})

	if !config.AlwaysPullBase {
		if _, exists, err := e.InspectImageLabels(ctx, ref); err == nil && exists {
			log.Debug("image present locally, skipping pull")
			return nil
		}
	}

	log.Debug("pulling image")
	response, err := e.client.ImagePull(ctx, ref, types.ImagePullOptions{})
	if err != nil {
		log.Errorf("failed to pull image: %v", err)
		return err
	}

	return processEngineOutput(log, response, engineReaderStatus())
}

// BuildImage builds an image from the given context directory.
func (e *DockerEngine) BuildImage(ctx context.Context, contextDir string, buildfileName string, tag string, labels map[string]string) error {
	if !strings.HasSuffix(contextDir, string(os.PathSeparator)) {
		contextDir = fmt.Sprintf("%s%s", contextDir, string(os.PathSeparator))
	}

	log := e.log.WithFields(map[string]any{"context-dir": contextDir, "buildfile": buildfileName, "image-tag": tag})

	buildContext, err := dockerArchive.TarWithOptions(contextDir, &dockerArchive.TarOptions{})
	if err != nil {
		log.Errorf("failed to create tar archive as build context: %v", err)
		return err
	}
	defer buildContext.Close()

	buildResponse, err := e.client.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Dockerfile:  buildfileName,
		Tags:        []string{tag},
		Labels:      labels,
		ForceRemove: true,
		Remove:      true,
		PullParent:  false,
	})
	if err != nil {
		log.Errorf("failed to build image: %v", err)
		return err
	}

	return processEngineOutput(log, buildResponse.Body, engineReaderStream())
}

// InspectImageLabels returns the labels of an image reference and whether the
// reference exists locally.
func (e *DockerEngine) InspectImageLabels(ctx context.Context, ref string) (map[string]string, bool, error) {
	inspect, _, err := e.client.ImageInspectWithRaw(ctx, ref)
	if err != nil {
		if docker.IsErrNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to inspect image: %w", err)
	}
	if inspect.Config == nil {
		return map[string]string{}, true, nil
	}
	return inspect.Config.Labels, true, nil
}

// CreateContainer creates a container from the spec and returns its id.
func (e *DockerEngine) CreateContainer(ctx context.Context, spec Spec) (string, error) {
	log := e.log.WithFields(map[string]any{"image-tag": spec.Image})

	port, err := nat.NewPort("tcp", strconv.Itoa(spec.Port))
	if err != nil {
		return "", fmt.Errorf("invalid container port: %w", err)
	}

	containerConfig := container.Config{
		Image: spec.Image,
		Env:   spec.Env,
		ExposedPorts: nat.PortSet{
			port: struct{}{},
		},
	}
	hostConfig := container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{
				{HostIP: "0.0.0.0", HostPort: strconv.Itoa(spec.Port)},
			},
		},
	}

	log.Debugf("creating container from image: %s", spec.Image)
	createResponse, err := e.client.ContainerCreate(ctx, &containerConfig, &hostConfig, nil, nil, spec.Name)
	if err != nil {
		log.Errorf("failed to create container: %v", err)
		return "", err
	}

	return createResponse.ID, nil
}

// StartContainer starts a created container.
func (e *DockerEngine) StartContainer(ctx context.Context, containerId string) error {
	e.log.WithFields(map[string]any{"container-id": shortId(containerId)}).Debug("starting container")
	return e.client.ContainerStart(ctx, containerId, container.StartOptions{})
}

// ContainerLogs follows the combined output streams of a container.
func (e *DockerEngine) ContainerLogs(ctx context.Context, containerId string) (io.ReadCloser, error) {
	return e.client.ContainerLogs(ctx, containerId, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
}

// WaitContainer blocks until the container is no longer running and returns
// its exit code.
func (e *DockerEngine) WaitContainer(ctx context.Context, containerId string) (int64, error) {
	chanWaitOk, chanWaitErr := e.client.ContainerWait(ctx, containerId, container.WaitConditionNotRunning)
	select {
	case ok := <-chanWaitOk:
		return ok.StatusCode, nil
	case err := <-chanWaitErr:
		return 0, err
	}
}

// StopContainer stops a container gracefully or kills it after a timeout.
func (e *DockerEngine) StopContainer(ctx context.Context, containerId string) {
	log := e.log.WithFields(map[string]any{"container-id": shortId(containerId)})

	log.Debug("stopping container")
	go func() {
		if err := e.client.ContainerStop(ctx, containerId, container.StopOptions{Timeout: &config.ContainerStopTimeout}); err != nil {
			log.Warnf("failed to stop container gracefully, killing: %v", err)
			if err := e.client.ContainerKill(ctx, containerId, "SIGKILL"); err != nil {
				log.Warnf("failed to kill container: %v", err)
			}
		}
	}()

	log.Debug("waiting for container to stop")
	chanStopOk, chanStopErr := e.client.ContainerWait(ctx, containerId, container.WaitConditionNotRunning)
	select {
	case ok := <-chanStopOk:
		log.Debugf("container stopped with exit code: %d, reason: %v", ok.StatusCode, ok.Error)
	case err := <-chanStopErr:
		log.Warnf("error while waiting for container to be stopped: %v", err)
	}
}

// RemoveContainer removes a container instance.
func (e *DockerEngine) RemoveContainer(ctx context.Context, containerId string) {
	log := e.log.WithFields(map[string]any{"container-id": shortId(containerId)})

	log.Debug("removing container")
	containerRemoveOptions := container.RemoveOptions{
		RemoveVolumes: true,
		Force:         true,
	}
	go func() {
		if err := e.client.ContainerRemove(ctx, containerId, containerRemoveOptions); err != nil {
			log.Warnf("failed to remove container: %v", err)
		}
	}()

	log.Debug("waiting for container to be removed")
	chanRemoveOk, chanRemoveErr := e.client.ContainerWait(ctx, containerId, container.WaitConditionRemoved)
	select {
	case ok := <-chanRemoveOk:
		log.Debugf("container removed with exit code: %d, reason: %v", ok.StatusCode, ok.Error)
	case err := <-chanRemoveErr:
		log.Warnf("error while waiting for container to be removed: %v", err)
	}
}

func shortId(containerId string) string {
	if len(containerId) > 12 {
		return containerId[:12]
	}
	return containerId
}
