// Package launch builds the final server command for the exec entrypoint.
// The entrypoint replaces itself with the server process, so the argv it
// execs is the whole contract; constructing it lives here, separately
// testable from the exec itself.
package launch

import (
	"errors"
	"strings"
)

// BindAllHost is the address substituted for {host}: all interfaces, not
// loopback, so the server is reachable from outside the container.
const BindAllHost = "0.0.0.0"

// ErrNoCommand is returned when the entrypoint is given nothing to exec.
var ErrNoCommand = errors.New("no server command given")

// Argv returns the server command with {port} and {host} placeholders
// replaced. The port value is substituted as-is; whether it is bindable
// is for the server to find out.
func Argv(args []string, port string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	out := make([]string, len(args))
	for i, a := range args {
		a = strings.ReplaceAll(a, "{port}", port)
		a = strings.ReplaceAll(a, "{host}", BindAllHost)
		out[i] = a
	}
	return out, nil
}
