// Package cli holds what every s2x subcommand shares: the global flags and
// the construction of the application from them.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"s2x/internal/app"
	"s2x/internal/app/jobs"
)

// Flags are the persistent flags of the root command.
type Flags struct {
	ConfigPath string
	APIBase    string
	Verbose    bool
}

// Global is bound to the root command's persistent flags.
var Global Flags

// Open builds the application from the global flags.
func Open(ctx context.Context, onUpdate func(jobs.Snapshot)) (*app.App, error) {
	return app.New(ctx, app.Options{
		ConfigPath: Global.ConfigPath,
		APIBase:    Global.APIBase,
		Verbose:    Global.Verbose,
		OnUpdate:   onUpdate,
	})
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
