package ports

import (
	"context"

	"github.com/slipwaylabs/slipway/internal/core/domain"
)

// BuilderService defines operations for building container images from source code.
type BuilderService interface {
	// BuildImage stages the project named by src, generates a recipe for
	// it when it carries none, and builds an image tagged imageName.
	// It returns the tag of the built image or an error; on error no
	// image is reported and nothing partial is tagged.
	BuildImage(ctx context.Context, src domain.BuildSource, imageName string) (string, error)
}
