package docker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/slipwaylabs/slipway/internal/config"
	"github.com/slipwaylabs/slipway/internal/core/domain"
)

// Adapter implements ports.AppService using the Docker SDK.
type Adapter struct {
	cli     *client.Client
	appPort string
}

// NewAdapter creates a new Docker adapter instance. appPort is the port
// used for containers whose launch spec names none.
func NewAdapter(appPort string) (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli, appPort: appPort}, nil
}

// ListApps returns the running app containers with details.
func (a *Adapter) ListApps(ctx context.Context) ([]domain.App, error) {
	containers, err := a.cli.ContainerList(ctx, types.ContainerListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var result []domain.App
	for _, c := range containers {
		// Use the first name if available, remove slash
		name := ""
		if len(c.Names) > 0 {
			name = c.Names[0][1:]
		}

		ip := ""
		if c.NetworkSettings != nil {
			for _, n := range c.NetworkSettings.Networks {
				ip = n.IPAddress
				break
			}
		}

		result = append(result, domain.App{
			ID:        c.ID[:12], // Short ID
			Name:      name,
			Image:     c.Image,
			Status:    c.Status,
			State:     c.State,
			IPAddress: ip,
			Port:      listeningPort(c.Ports),
		})
	}
	return result, nil
}

// listeningPort picks the app's server port from a container's port list.
// The daemon does not order the slice, so a published port (the one
// LaunchApp binds on the host) wins over unpublished expose-only entries;
// only when none is published does the first entry apply.
func listeningPort(ports []types.Port) string {
	if len(ports) == 0 {
		return ""
	}
	for _, p := range ports {
		if p.PublicPort != 0 {
			return fmt.Sprintf("%d", p.PrivatePort)
		}
	}
	return fmt.Sprintf("%d", ports[0].PrivatePort)
}

// LaunchApp creates and starts a container from the given spec. The
// listening port is the spec's value when non-empty, the configured
// default otherwise; it is handed to the container as PORT and published
// on all host interfaces. The value is never validated here: an
// unbindable port fails inside the container, with the server's own
// error and exit code.
func (a *Adapter) LaunchApp(ctx context.Context, spec domain.LaunchSpec) (string, error) {
	port := config.Resolve(spec.Port, a.appPort)
	portKey := nat.Port(port + "/tcp")

	if err := a.ensureImage(ctx, spec.Image); err != nil {
		return "", err
	}

	resp, err := a.cli.ContainerCreate(ctx, &container.Config{
		Image:        spec.Image,
		Env:          []string{"PORT=" + port},
		ExposedPorts: nat.PortSet{portKey: struct{}{}},
	}, &container.HostConfig{
		PortBindings: nat.PortMap{
			portKey: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: port}},
		},
	}, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := a.cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	return resp.ID, nil
}

// ensureImage pulls the image only when the daemon doesn't have it;
// locally built images are not pullable from a registry.
func (a *Adapter) ensureImage(ctx context.Context, image string) error {
	if _, _, err := a.cli.ImageInspectWithRaw(ctx, image); err == nil {
		return nil
	}

	reader, err := a.cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer reader.Close()
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// StopApp stops a running app container.
func (a *Adapter) StopApp(ctx context.Context, id string) error {
	// Timeout can be configurable, but keeping it simple for now
	timeout := 10 * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.cli.ContainerStop(ctx, id, container.StopOptions{})
}

// GetAppLogs returns a stream of container logs.
func (a *Adapter) GetAppLogs(ctx context.Context, id string) (io.ReadCloser, error) {
	options := types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     false, // Can be true for streaming
		Timestamps: true,
	}
	return a.cli.ContainerLogs(ctx, id, options)
}
