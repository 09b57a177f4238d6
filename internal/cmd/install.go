package cmd

import "log/slog"

// Install registers `petkey run` as a service that starts at boot. Flags
// after `--` are passed to run, e.g. `petkey install -- --output=viiper`.
type Install struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Flags for the run command"`
}

func (i *Install) Run(logger *slog.Logger) error {
	return install(logger, i.Args)
}

// Uninstall stops and removes the service.
type Uninstall struct{}

func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}
