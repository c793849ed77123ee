package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/go-git/go-git/v5"

	"github.com/slipwaylabs/slipway/internal/core/domain"
	"github.com/slipwaylabs/slipway/internal/recipe"
)

type Adapter struct {
	cli     *client.Client
	appPort string
}

// NewAdapter creates a builder backed by the local Docker daemon. appPort
// is the default port baked into generated recipes.
func NewAdapter(appPort string) (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli, appPort: appPort}, nil
}

// BuildImage stages the project, ensures it has a recipe, and builds an
// image from it. Any failure (clone, staging, recipe generation, or an
// error on the build stream) aborts the build; no tag is returned for a
// partial build.
func (a *Adapter) BuildImage(ctx context.Context, src domain.BuildSource, imageName string) (string, error) {
	buildDir, err := stage(ctx, src, a.appPort)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(buildDir)

	tar, err := archive.TarWithOptions(buildDir, &archive.TarOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to create build context: %w", err)
	}

	log.Printf("Building image %s from %s", imageName, describe(src))
	resp, err := a.cli.ImageBuild(ctx, tar, types.ImageBuildOptions{
		Tags:       []string{imageName},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	if err := drainBuildStream(resp.Body); err != nil {
		return "", err
	}
	return imageName, nil
}

// stage prepares a throwaway build directory: a shallow clone for git
// sources, a verbatim copy for local directories. Projects that carry
// their own Dockerfile keep it; otherwise one is generated from the
// detected runtime. The caller removes the returned directory.
func stage(ctx context.Context, src domain.BuildSource, appPort string) (string, error) {
	buildDir, err := os.MkdirTemp("", "slipway-build-*")
	if err != nil {
		return "", fmt.Errorf("failed to create build dir: %w", err)
	}

	switch {
	case src.RepoURL != "":
		_, err = git.PlainCloneContext(ctx, buildDir, false, &git.CloneOptions{
			URL:   src.RepoURL,
			Depth: 1, // shallow clone for speed
		})
		if err != nil {
			os.RemoveAll(buildDir)
			return "", fmt.Errorf("failed to clone repo: %w", err)
		}
	case src.Dir != "":
		if err := os.CopyFS(buildDir, os.DirFS(src.Dir)); err != nil {
			os.RemoveAll(buildDir)
			return "", fmt.Errorf("failed to copy project: %w", err)
		}
	default:
		os.RemoveAll(buildDir)
		return "", errors.New("build source is empty: need a repo URL or a directory")
	}

	if err := ensureRecipe(buildDir, appPort); err != nil {
		os.RemoveAll(buildDir)
		return "", err
	}
	return buildDir, nil
}

// ensureRecipe writes a generated Dockerfile into dir unless the project
// ships one already.
func ensureRecipe(dir, appPort string) error {
	path := filepath.Join(dir, "Dockerfile")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	rt, err := recipe.Detect(dir)
	if err != nil {
		return err
	}
	dockerfile, err := recipe.Generate(rt, appPort)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(dockerfile), 0644); err != nil {
		return fmt.Errorf("failed to write recipe: %w", err)
	}
	return nil
}

// drainBuildStream reads the daemon's JSON build output to completion and
// fails on the first error message. The daemon reports step failures
// in-stream with a 200 response, so skipping this check would tag nothing
// while reporting success.
func drainBuildStream(body io.Reader) error {
	dec := json.NewDecoder(body)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read build output: %w", err)
		}
		if msg.Error != nil {
			return fmt.Errorf("build failed: %s", msg.Error.Message)
		}
	}
}

func describe(src domain.BuildSource) string {
	if src.RepoURL != "" {
		return src.RepoURL
	}
	return src.Dir
}
