package fdtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernerr"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/pipebuf"
)

func newTab(n int) []int32 {
	tab := make([]int32, n)
	for i := range tab {
		tab[i] = -1
	}
	return tab
}

func TestBootReservedEntries(t *testing.T) {
	tbl := New(8)
	assert.Equal(t, 1, tbl.RefCount(FDStdin))
	assert.Equal(t, 1, tbl.RefCount(FDStdout))
	assert.Equal(t, 1, tbl.RefCount(FDStderr))
}

func TestOpenThenCloseRestoresState(t *testing.T) {
	tbl := New(8)
	tab := newTab(4)
	p := pipebuf.New(16)

	fdR, err := tbl.Open(tab, p, RDONLY)
	require.NoError(t, err)
	assert.Equal(t, FirstAlloc, fdR)

	fdW, err := tbl.Open(tab, p, WRONLY)
	require.NoError(t, err)
	assert.Equal(t, FirstAlloc+1, fdW)

	assert.NoError(t, tbl.Close(tab, fdR))
	assert.NoError(t, tbl.Close(tab, fdW))

	assert.Equal(t, 0, tbl.RefCount(fdR))
	assert.Equal(t, 0, tbl.RefCount(fdW))
	assert.Nil(t, tbl.Pipe(fdR))
}

func TestForkDuplicationIncrementsRefCount(t *testing.T) {
	tbl := New(8)
	parent := newTab(4)
	p := pipebuf.New(16)
	fdR, _ := tbl.Open(parent, p, RDONLY)
	fdW, _ := tbl.Open(parent, p, WRONLY)

	child := newTab(4)
	tbl.DupInto(parent, child)

	assert.Equal(t, parent, child)
	assert.Equal(t, 2, tbl.RefCount(fdR))
	assert.Equal(t, 2, tbl.RefCount(fdW))
}

func TestCloseRejectsUnownedFD(t *testing.T) {
	tbl := New(8)
	owner := newTab(4)
	p := pipebuf.New(16)
	fd, _ := tbl.Open(owner, p, RDONLY)

	other := newTab(4) // does not list fd
	err := tbl.Close(other, fd)
	assert.ErrorIs(t, kernerr.Cause(err), kernerr.ErrNotOwner)
	// ref count is untouched by the rejected close
	assert.Equal(t, 1, tbl.RefCount(fd))
}

func TestCloseRejectsOutOfRangeFD(t *testing.T) {
	tbl := New(8)
	tab := newTab(4)
	assert.ErrorIs(t, kernerr.Cause(tbl.Close(tab, -1)), kernerr.ErrNegFD)
	assert.ErrorIs(t, kernerr.Cause(tbl.Close(tab, 99)), kernerr.ErrBadFD)
}

func TestOpenFailsWhenTablesFull(t *testing.T) {
	tbl := New(FirstAlloc + 1) // room for exactly one pipe fd
	tab := newTab(1)
	p := pipebuf.New(16)

	_, err := tbl.Open(tab, p, RDONLY)
	require.NoError(t, err)

	_, err = tbl.Open(tab, p, WRONLY)
	assert.ErrorIs(t, kernerr.Cause(err), kernerr.ErrFDTableFull)
}

func TestOpenFailsWhenCallerFDTabFull(t *testing.T) {
	tbl := New(8)
	tab := newTab(1)
	p := pipebuf.New(16)

	_, err := tbl.Open(tab, p, RDONLY)
	require.NoError(t, err)

	_, err = tbl.Open(tab, p, WRONLY)
	assert.ErrorIs(t, kernerr.Cause(err), kernerr.ErrNoFDSlot)
}

func TestCloseAllReleasesEverything(t *testing.T) {
	tbl := New(8)
	tab := newTab(4)
	p := pipebuf.New(16)
	fdR, _ := tbl.Open(tab, p, RDONLY)
	fdW, _ := tbl.Open(tab, p, WRONLY)

	tbl.CloseAll(tab)

	assert.Equal(t, 0, tbl.RefCount(fdR))
	assert.Equal(t, 0, tbl.RefCount(fdW))
	for _, fd := range tab {
		assert.Equal(t, int32(-1), fd)
	}
}
