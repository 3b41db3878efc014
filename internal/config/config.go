// Package config centralizes the kernel's boot-time tunables as an
// explicit, flag-overridable struct rather than scattered main()-local
// constants.
package config

import "github.com/spf13/pflag"

// Defaults mirror the constants.
const (
	DefaultMaxProcs     = 16
	DefaultMaxFDs       = 32
	DefaultMaxOpenFDs   = 16 // per-process fd_tab size
	DefaultStackSize    = 0x2000
	DefaultPipeCapacity = 32
	DefaultTimerReload  = 0x00100000
)

// Config holds the kernel's fixed-size-table and timing parameters.
type Config struct {
	MaxProcs     int
	MaxFDs       int
	MaxOpenFDs   int
	StackSize    int
	PipeCapacity int
	TimerReload  uint32
}

// Default returns the conventional boot configuration.
func Default() Config {
	return Config{
		MaxProcs:     DefaultMaxProcs,
		MaxFDs:       DefaultMaxFDs,
		MaxOpenFDs:   DefaultMaxOpenFDs,
		StackSize:    DefaultStackSize,
		PipeCapacity: DefaultPipeCapacity,
		TimerReload:  DefaultTimerReload,
	}
}

// RegisterFlags binds the config fields to a flag set, so
// cmd/armkernel can override boot parameters from the command line
// without recompiling, following the pflag idiom used for daemon
// configuration elsewhere in the ecosystem.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.MaxProcs, "max-procs", c.MaxProcs, "size of the process table")
	fs.IntVar(&c.MaxFDs, "max-fds", c.MaxFDs, "size of the open-file table")
	fs.IntVar(&c.MaxOpenFDs, "max-open-fds", c.MaxOpenFDs, "per-process descriptor table size")
	fs.IntVar(&c.StackSize, "stack-size", c.StackSize, "bytes reserved per process stack")
	fs.IntVar(&c.PipeCapacity, "pipe-capacity", c.PipeCapacity, "pipe buffer capacity in bytes")
	fs.Uint32Var(&c.TimerReload, "timer-reload", c.TimerReload, "timer reload value in ticks")
}
