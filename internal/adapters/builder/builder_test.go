package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipwaylabs/slipway/internal/core/domain"
	"github.com/slipwaylabs/slipway/internal/recipe"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestStageGeneratesRecipeForPythonProject(t *testing.T) {
	src := writeProject(t, map[string]string{
		"requirements.txt": "fastapi==0.110.0\nuvicorn==0.29.0\n",
		"app/main.py":      "app = ...\n",
	})

	buildDir, err := stage(context.Background(), domain.BuildSource{Dir: src}, "8080")
	require.NoError(t, err)
	defer os.RemoveAll(buildDir)

	data, err := os.ReadFile(filepath.Join(buildDir, "Dockerfile"))
	require.NoError(t, err)
	dockerfile := string(data)

	assert.Contains(t, dockerfile, "FROM python:3.11-slim")
	assert.Contains(t, dockerfile, "COPY requirements.txt ./")
	// The copied project must be staged verbatim alongside the recipe.
	assert.FileExists(t, filepath.Join(buildDir, "requirements.txt"))
	assert.FileExists(t, filepath.Join(buildDir, "app", "main.py"))
}

func TestStageKeepsExistingDockerfile(t *testing.T) {
	own := "FROM scratch\n"
	src := writeProject(t, map[string]string{
		"Dockerfile":       own,
		"requirements.txt": "flask\n",
	})

	buildDir, err := stage(context.Background(), domain.BuildSource{Dir: src}, "8080")
	require.NoError(t, err)
	defer os.RemoveAll(buildDir)

	data, err := os.ReadFile(filepath.Join(buildDir, "Dockerfile"))
	require.NoError(t, err)
	assert.Equal(t, own, string(data))
}

func TestStageFailsOnUnknownRuntime(t *testing.T) {
	src := writeProject(t, map[string]string{"README.md": "hello\n"})

	_, err := stage(context.Background(), domain.BuildSource{Dir: src}, "8080")
	assert.ErrorIs(t, err, recipe.ErrUnknownRuntime)
}

func TestStageFailsOnEmptySource(t *testing.T) {
	_, err := stage(context.Background(), domain.BuildSource{}, "8080")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build source is empty")
}

func TestDrainBuildStreamPassesCleanBuild(t *testing.T) {
	stream := `{"stream":"Step 1/6 : FROM python:3.11-slim"}
{"stream":" ---> abc123"}
{"stream":"Successfully built abc123"}
`
	assert.NoError(t, drainBuildStream(strings.NewReader(stream)))
}

func TestDrainBuildStreamReportsDaemonError(t *testing.T) {
	stream := `{"stream":"Step 3/6 : RUN pip install --no-cache-dir -r requirements.txt"}
{"errorDetail":{"message":"executor failed running: exit code: 1"},"error":"executor failed running: exit code: 1"}
`
	err := drainBuildStream(strings.NewReader(stream))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executor failed")
}
