package container

import (
	"context"
	"io"
)

// Spec describes the single container a built image is launched as.
type Spec struct {
	// Image is the tag of the image to launch.
	Image string

	// Name of the container, empty for an engine-assigned name.
	Name string

	// Env holds the KEY=VALUE pairs of the process environment.
	Env []string

	// Port is bound on all host interfaces to the same container port.
	Port int
}

// ImageService defines the build-time engine operations.
type ImageService interface {
	// PullImage resolves the given reference into the local image store.
	PullImage(ctx context.Context, ref string) error

	// BuildImage builds an image from the given context directory using the
	// named build file and records the labels on the result.
	BuildImage(ctx context.Context, contextDir string, buildfileName string, tag string, labels map[string]string) error

	// InspectImageLabels returns the labels of the given image reference and
	// whether the reference exists locally at all.
	InspectImageLabels(ctx context.Context, ref string) (map[string]string, bool, error)
}

// ContainerService defines the runtime engine operations.
type ContainerService interface {
	// CreateContainer creates a container from the spec and returns its id.
	CreateContainer(ctx context.Context, spec Spec) (string, error)

	// StartContainer starts a created container.
	StartContainer(ctx context.Context, containerId string) error

	// ContainerLogs follows the combined output streams of a container.
	ContainerLogs(ctx context.Context, containerId string) (io.ReadCloser, error)

	// WaitContainer blocks until the container is no longer running and
	// returns its exit code.
	WaitContainer(ctx context.Context, containerId string) (int64, error)

	// StopContainer stops a container gracefully or kills it after a timeout.
	StopContainer(ctx context.Context, containerId string)

	// RemoveContainer removes a container instance.
	RemoveContainer(ctx context.Context, containerId string)
}

// Engine is the combined engine surface the build pipeline and the launcher
// operate against.
type Engine interface {
	ImageService
	ContainerService
}
