// Command armkernel boots the simulated kernel and drives it for a
// bounded number of scheduling quanta, following a boot-banner-then-run
// shape, minus the raw-hardware bring-up (lap_id, phys_init, trap
// handler installation) this simulation has no equivalent for.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/config"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernel"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/userprog"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(pflag.CommandLine)
	quanta := pflag.Int("quanta", 256, "number of scheduling quanta to run before halting")
	pflag.Parse()

	logrus.WithFields(logrus.Fields{
		"max-procs":     cfg.MaxProcs,
		"max-fds":       cfg.MaxFDs,
		"pipe-capacity": cfg.PipeCapacity,
		"timer-reload":  cfg.TimerReload,
	}).Info("armkernel booting")

	k := kernel.New(cfg)
	userprog.Register(k)
	k.Reset(userprog.ConsoleEntry)

	k.Run(*quanta)

	os.Stdout.Write(k.Board.UART.Bytes())

	families, err := k.Metrics.Snapshot()
	if err != nil {
		logrus.WithError(err).Warn("failed to snapshot scheduler metrics")
		return
	}
	for _, f := range families {
		logrus.WithField("metric", f.GetName()).Debugf("%d samples", len(f.Metric))
	}
}
