package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultMaxProcs, c.MaxProcs)
	assert.Equal(t, DefaultMaxFDs, c.MaxFDs)
	assert.Equal(t, uint32(DefaultTimerReload), c.TimerReload)
}

func TestRegisterFlagsOverride(t *testing.T) {
	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(fs)

	err := fs.Parse([]string{"--max-procs=4", "--pipe-capacity=64"})
	require.NoError(t, err)

	assert.Equal(t, 4, c.MaxProcs)
	assert.Equal(t, 64, c.PipeCapacity)
	assert.Equal(t, DefaultMaxFDs, c.MaxFDs)
}
