package domain

// App represents a deployed application container (Docker today, anything
// that can run an image tomorrow).
type App struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	State     string `json:"state"` // running, exited, etc.
	IPAddress string `json:"ip_address,omitempty"`
	Port      string `json:"port,omitempty"` // port the server listens on inside the container
}

// BuildSource points at the project to build: a remote git repository or a
// local directory. Exactly one of the two should be set.
type BuildSource struct {
	RepoURL string
	Dir     string
}

// LaunchSpec describes how to start an app container. Port is the value
// handed to the container as PORT; when empty the launcher's configured
// default applies.
type LaunchSpec struct {
	Image string
	Name  string
	Port  string
}
