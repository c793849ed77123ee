package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// Runtime identifies the application stack a project is built with.
type Runtime string

const (
	RuntimePython Runtime = "python"
	RuntimeNode   Runtime = "node"
	RuntimeGo     Runtime = "go"
)

// ErrUnknownRuntime is returned when no recognized dependency manifest is
// found in the project root. Builds fail outright rather than guessing a
// base image.
var ErrUnknownRuntime = errors.New("no recognized dependency manifest (requirements.txt, package.json, or go.mod)")

// manifests maps each runtime to its dependency manifest file, checked in
// this order.
var manifests = []struct {
	file    string
	runtime Runtime
}{
	{"requirements.txt", RuntimePython},
	{"package.json", RuntimeNode},
	{"go.mod", RuntimeGo},
}

// Detect inspects the project root for a dependency manifest and reports
// the runtime it belongs to.
func Detect(dir string) (Runtime, error) {
	for _, m := range manifests {
		if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
			return m.runtime, nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, ErrUnknownRuntime)
}

// Manifest returns the dependency manifest filename for a runtime.
func Manifest(rt Runtime) string {
	for _, m := range manifests {
		if m.runtime == rt {
			return m.file
		}
	}
	return ""
}

type templateData struct {
	Port string
}

// Every template follows the same layer order: pinned base image, workdir,
// dependency manifest COPY plus install as their own layer, application
// source COPY last. Rebuilds that touch only source reuse the cached
// install layer; that ordering is the whole point of these recipes, so
// Generate is tested against it.
//
// CMDs either use shell `exec` or exec form directly, so the server ends
// up as PID 1 and receives the orchestrator's signals without a shell in
// between.
var templates = map[Runtime]string{
	RuntimePython: `FROM python:3.11-slim
WORKDIR /app
COPY requirements.txt ./
RUN pip install --no-cache-dir -r requirements.txt
COPY app ./app
ENV PORT={{.Port}}
EXPOSE {{.Port}}
CMD exec uvicorn app.main:app --host 0.0.0.0 --port ${PORT:-{{.Port}}}
`,
	RuntimeNode: `FROM node:20-alpine
WORKDIR /app
COPY package*.json ./
RUN npm ci --omit=dev
COPY . .
ENV PORT={{.Port}}
EXPOSE {{.Port}}
CMD ["node", "server.js"]
`,
	RuntimeGo: `FROM golang:1.24-alpine AS builder
WORKDIR /src
COPY go.mod go.sum* ./
RUN go mod download
COPY . .
RUN CGO_ENABLED=0 go build -o /out/server .

FROM alpine:3.21
RUN apk --no-cache add ca-certificates
WORKDIR /app
COPY --from=builder /out/server ./
ENV PORT={{.Port}}
EXPOSE {{.Port}}
CMD ["./server"]
`,
}

// Generate renders the Dockerfile for a runtime with the given default
// port baked in as the ENV fallback. The port is not validated; an
// unbindable value surfaces when the server tries to listen.
func Generate(rt Runtime, port string) (string, error) {
	text, ok := templates[rt]
	if !ok {
		return "", fmt.Errorf("runtime %q: %w", rt, ErrUnknownRuntime)
	}

	tmpl, err := template.New(string(rt)).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse recipe template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Port: port}); err != nil {
		return "", fmt.Errorf("failed to render recipe: %w", err)
	}
	return buf.String(), nil
}
