package opts

import (
	"github.com/walteh/scenereplace/pkg/config"
	"github.com/walteh/scenereplace/pkg/log"
)

// RootOpts contains shared options used by all commands.
// It is filled in by the root command before any subcommand runs.
type RootOpts struct {
	Config  *config.Config
	Console *log.Logger
}
