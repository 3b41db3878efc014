// Package fdtable implements the process-wide open-file table and the
// open/close/fork-duplication operations.
package fdtable

import (
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernerr"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/pipebuf"
)

// Flag is an open-file entry's access mode.
type Flag int

const (
	RDONLY Flag = iota
	WRONLY
)

// Reserved fd numbers for stdin/stdout/stderr.
const (
	FDStdin  = 0
	FDStdout = 1
	FDStderr = 2
	// FirstAlloc is the first fd open() ever assigns: the open-file
	// table is scanned for a free slot starting at this index.
	FirstAlloc = 3
)

// entry is one open-file table row.
type entry struct {
	refCount int
	flag     Flag
	pipe     *pipebuf.Buffer // nil for reserved entries 0/1/2
	inUse    bool
}

// Table is the fixed-size, process-wide open-file table.
type Table struct {
	entries []entry
}

// New builds a table of the given size with entries 0/1/2 reserved
// for stdin/stdout/stderr, per the boot sequence.
func New(size int) *Table {
	if size < FirstAlloc {
		panic("fdtable: size must be at least 3")
	}
	t := &Table{entries: make([]entry, size)}
	t.entries[FDStdin] = entry{refCount: 1, flag: RDONLY, inUse: true}
	t.entries[FDStdout] = entry{refCount: 1, flag: WRONLY, inUse: true}
	t.entries[FDStderr] = entry{refCount: 1, flag: WRONLY, inUse: true}
	return t
}

// RefCount returns the reference count of fd, or -1 if fd is out of
// range.
func (t *Table) RefCount(fd int) int {
	if fd < 0 || fd >= len(t.entries) {
		return -1
	}
	return t.entries[fd].refCount
}

// Pipe returns the pipe buffer backing fd, or nil if fd is out of
// range or not a pipe-backed entry.
func (t *Table) Pipe(fd int) *pipebuf.Buffer {
	if fd < 0 || fd >= len(t.entries) {
		return nil
	}
	return t.entries[fd].pipe
}

// Flag returns the access mode of fd.
func (t *Table) Flag(fd int) Flag {
	return t.entries[fd].flag
}

// fdTab is the narrow view fdtable needs of a PCB's descriptor array,
// so this package does not depend on internal/proc at all.
type fdTab = []int32

// Open installs pipe as a new open-file entry with the given flag,
// scanning from FirstAlloc for the first unused slot, then records
// the resulting fd into the first free (-1) slot of tab. Returns
// kernerr.ErrFDTableFull if the process-wide table has no free entry,
// or kernerr.ErrNoFDSlot if the caller's own descriptor table is full.
func (t *Table) Open(tab fdTab, pipe *pipebuf.Buffer, flag Flag) (int, error) {
	fd := -1
	for i := FirstAlloc; i < len(t.entries); i++ {
		if !t.entries[i].inUse {
			fd = i
			break
		}
	}
	if fd == -1 {
		return -1, kernerr.ErrFDTableFull
	}
	slot := -1
	for i := range tab {
		if tab[i] == -1 {
			slot = i
			break
		}
	}
	if slot == -1 {
		return -1, kernerr.ErrNoFDSlot
	}
	t.entries[fd] = entry{refCount: 1, flag: flag, pipe: pipe, inUse: true}
	tab[slot] = int32(fd)
	return fd, nil
}

// Close implements the close(fd, pid): it clears every
// occurrence of fd in tab, decrements the entry's ref count, and
// releases the backing pipe when the count reaches zero.
//
// Per DESIGN.md's resolution of the open question, closing an
// fd the caller does not own is rejected (kernerr.ErrNotOwner) rather
// than silently decrementing a ref count the caller has no claim to.
func (t *Table) Close(tab fdTab, fd int) error {
	if fd < 0 {
		return kernerr.ErrNegFD
	}
	if fd >= len(t.entries) {
		return kernerr.ErrBadFD
	}
	owned := false
	for i := range tab {
		if tab[i] == int32(fd) {
			tab[i] = -1
			owned = true
		}
	}
	if !owned {
		return kernerr.ErrNotOwner
	}
	e := &t.entries[fd]
	e.refCount--
	if e.refCount <= 0 {
		e.inUse = false
		e.pipe = nil
		e.refCount = 0
	}
	return nil
}

// DupInto duplicates every non-negative entry of parent into child at
// the same index and bumps the corresponding ref count once, per
// the fork-duplication rule.
func (t *Table) DupInto(parent, child fdTab) {
	for i := range parent {
		fd := parent[i]
		if fd < 0 {
			continue
		}
		child[i] = fd
		t.entries[fd].refCount++
	}
}

// CloseAll closes every non-negative descriptor in tab: the
// exit/kill cleanup rule.
func (t *Table) CloseAll(tab fdTab) {
	for i := range tab {
		if tab[i] >= 0 {
			// Close always succeeds here: tab[i] is owned by
			// construction (we are iterating tab itself).
			_ = t.Close(tab, int(tab[i]))
		}
	}
}
