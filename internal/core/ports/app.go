package ports

import (
	"context"
	"io"

	"github.com/slipwaylabs/slipway/internal/core/domain"
)

// AppService defines the core operations for managing app containers.
// This interface allows us to switch between Docker, Podman, or Kubernetes
// without changing the business logic.
type AppService interface {
	ListApps(ctx context.Context) ([]domain.App, error)
	LaunchApp(ctx context.Context, spec domain.LaunchSpec) (string, error)
	StopApp(ctx context.Context, id string) error
	GetAppLogs(ctx context.Context, id string) (io.ReadCloser, error)
}
