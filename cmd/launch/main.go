// slipway-launch is a tiny exec entrypoint for app containers: it resolves
// the listening port from the environment and replaces itself with the
// server command, so the server runs as PID 1 and receives the
// orchestrator's signals directly. Placeholders {port} and {host} in the
// command are substituted before the exec.
//
//	slipway-launch uvicorn app.main:app --host {host} --port {port}
package main

import (
	"log"
	"os"
	"os/exec"
	"syscall"

	"github.com/slipwaylabs/slipway/internal/config"
	"github.com/slipwaylabs/slipway/internal/launch"
)

func main() {
	port := config.Resolve(os.Getenv("PORT"), config.DefaultAppPort)

	// Apps that read PORT themselves should see the resolved value too.
	if os.Getenv("PORT") != port {
		_ = os.Setenv("PORT", port)
	}

	argv, err := launch.Argv(os.Args[1:], port)
	if err != nil {
		log.Fatalf("slipway-launch: %v", err)
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		log.Fatalf("slipway-launch: %v", err)
	}

	// Exec never returns on success; the server takes over this process.
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		log.Fatalf("slipway-launch: failed to exec %s: %v", path, err)
	}
}
