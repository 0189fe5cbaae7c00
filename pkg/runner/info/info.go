// Package info prints where daybook keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/store"
)

type Info struct {
	Config  *config.Config
	Storage store.Storage
	// Out defaults to color.Output.
	Out io.Writer
}

// Details is the machine readable form of Do.
type Details struct {
	ConfigPath string   `json:"configPath,omitempty"`
	ConfigFile string   `json:"configFile,omitempty"`
	Driver     string   `json:"driver"`
	Path       string   `json:"path"`
	Currency   string   `json:"currency"`
	Keys       []string `json:"keys"`
}

// Collect gathers the details without printing them.
func (n *Info) Collect(ctx context.Context) (Details, error) {
	if n.Config == nil {
		return Details{}, fmt.Errorf("info: no config loaded")
	}
	if n.Storage == nil {
		return Details{}, fmt.Errorf("info: failed to create storage")
	}
	keys, err := n.Storage.Keys(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("info: list keys: %w", err)
	}
	return Details{
		ConfigPath: os.Getenv(config.EnvConfigPath),
		ConfigFile: n.Config.File,
		Driver:     n.Config.Driver(),
		Path:       n.Config.BasePath(),
		Currency:   n.Config.Currency,
		Keys:       keys,
	}, nil
}

func (n *Info) Do(ctx context.Context) error {
	d, err := n.Collect(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if d.ConfigPath != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", d.ConfigPath)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}
	if d.ConfigFile != "" {
		_, _ = fmt.Fprintln(out, "Config file:", d.ConfigFile)
	}
	_, _ = fmt.Fprintln(out, "Driver:     ", d.Driver)
	_, _ = fmt.Fprintln(out, "Path:       ", d.Path)
	_, _ = fmt.Fprintln(out, "Currency:   ", d.Currency)

	_, _ = fmt.Fprintf(out, "Keys:\n")
	for _, k := range d.Keys {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(d.Keys) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "nothing stored yet")
	}
	return nil
}
