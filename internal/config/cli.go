// Package config holds the root command line of petkey.
package config

import (
	"github.com/petkey/petkey/internal/cmd"
	"github.com/petkey/petkey/internal/log"
)

// CLI is parsed by kong. Values come from flags, then PETKEY_* environment
// variables, then the first configuration file found.
type CLI struct {
	Config string     `help:"Configuration file (.json, .yaml or .toml)" type:"path" env:"PETKEY_CONFIG"`
	Log    log.Config `embed:"" prefix:"log."`

	Run       cmd.Run           `cmd:"" help:"Type incoming Commodore codes on the host keyboard"`
	Send      cmd.Send          `cmd:"" help:"Type a BASIC listing into a running bridge over serial"`
	Table     cmd.Table         `cmd:"" help:"Print the key mapping table"`
	Configure cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install   cmd.Install       `cmd:"" help:"Install 'petkey run' as a systemd service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the systemd service"`
}
