// This file implements the ten supervisor-call handlers. Each handler
// takes the caller's pid first, standing in for "the current context
// record," since this simulation keeps each process's context resident
// on its own PCB rather than in a separate scratch register file (see
// kernel.go).
package kernel

import (
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/fdtable"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernerr"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/pipebuf"
)

// Yield is SVC 0x00: invoke the scheduler on the current context
// record.
func (k *Kernel) Yield(pid int) {
	k.Schedule()
}

// Write is SVC 0x01: (fd, buf) -> bytes written, or -1. n is implicit
// in len(buf), matching the ABI's (fd, buf, n) with buf already sized
// to n.
func (k *Kernel) Write(pid int, fd int, buf []byte) int32 {
	switch {
	case fd < 0:
		k.diagnostic(kernerr.Wrapf(kernerr.ErrNegFD, "write: pid %d fd %d", pid, fd))
		return -1
	case fd == fdtable.FDStdin:
		return 0
	case fd == fdtable.FDStdout:
		k.Board.UART.Write(buf)
		return int32(len(buf))
	case fd == fdtable.FDStderr:
		k.diagnostic(kernerr.Wrapf(kernerr.ErrBadFD, "write: pid %d fd %d is write-only stderr", pid, fd))
		return -1
	default:
		pipe := k.FD.Pipe(fd)
		if pipe == nil {
			k.diagnostic(kernerr.Wrapf(kernerr.ErrNotPipe, "write: pid %d fd %d", pid, fd))
			return -1
		}
		return int32(pipe.Enqueue(buf))
	}
}

// Read is SVC 0x02: (fd, buf) -> bytes read, or -1. Non-blocking: an
// empty pipe returns 0.
func (k *Kernel) Read(pid int, fd int, buf []byte) int32 {
	switch {
	case fd < 0:
		k.diagnostic(kernerr.Wrapf(kernerr.ErrNegFD, "read: pid %d fd %d", pid, fd))
		return -1
	case fd == fdtable.FDStdin, fd == fdtable.FDStdout:
		k.diagnostic(kernerr.Wrapf(kernerr.ErrBadFD, "read: pid %d fd %d is not readable", pid, fd))
		return 0
	case fd == fdtable.FDStderr:
		return -1
	default:
		pipe := k.FD.Pipe(fd)
		if pipe == nil {
			k.diagnostic(kernerr.Wrapf(kernerr.ErrNotPipe, "read: pid %d fd %d", pid, fd))
			return -1
		}
		return int32(pipe.Dequeue(buf))
	}
}

// Fork is SVC 0x03: duplicate the caller into a new PCB slot. Returns
// the child's PID, or -1 if the process table is full. The return
// value is always written to the caller's own return register too
// (proc.Table.Fork only does this itself on the success path), so a
// full table never leaves a stale value sitting in r0.
func (k *Kernel) Fork(pid int) int32 {
	child, err := k.Proc.Fork(pid, k.FD.DupInto)
	if err != nil {
		k.diagnostic(kernerr.Wrapf(err, "fork: pid %d", pid))
		k.Proc.PCBs[pid].Ctx.SetReturn(-1)
		return -1
	}
	k.cursor[child] = k.cursor[pid]
	k.Log.SVCMarker('F')
	return int32(child)
}

// Exit is SVC 0x04: close the caller's descriptors, terminate it, and
// immediately schedule a replacement. status is accepted but not
// recorded; there is no persisted exit-status surface.
func (k *Kernel) Exit(pid int, status int32) {
	k.FD.CloseAll(k.Proc.PCBs[pid].FDTab)
	k.Proc.Terminate(pid)
	k.Log.SVCMarker('X')
	if k.Executing == pid {
		k.Executing = -1
	}
	k.Schedule()
}

// Exec is SVC 0x05: replace the caller's pc with entry and reset sp to
// tos. Per the open question, the fd table and niceness are
// left untouched, matching the original's (undecided) behaviour.
func (k *Kernel) Exec(pid int, entry uintptr) {
	k.Proc.Exec(pid, entry)
	k.cursor[pid] = 0
	k.Log.SVCMarker('E')
}

// Kill is SVC 0x06: close the victim's descriptors and terminate it;
// unlike Exit, the caller keeps running (no reschedule). The signal
// argument is accepted but unused, per the open question.
func (k *Kernel) Kill(pid int, targetPID int, signal int32) int32 {
	if !k.Proc.Valid(targetPID) {
		k.diagnostic(kernerr.Wrapf(kernerr.ErrBadPID, "kill: pid %d target %d", pid, targetPID))
		return -1
	}
	k.FD.CloseAll(k.Proc.PCBs[targetPID].FDTab)
	k.Proc.Terminate(targetPID)
	k.Log.SVCMarker('K')
	if k.Executing == targetPID {
		k.Executing = -1
	}
	return 0
}

// Nice is SVC 0x07: clamp value to [MinNiceness, MaxNiceness] and
// store it on targetPID's PCB, returning the stored value.
func (k *Kernel) Nice(pid int, targetPID int, value int) int32 {
	stored := k.Proc.Nice(targetPID, value)
	k.Log.SVCMarker('N')
	return int32(stored)
}

// Pipe is SVC 0x08: allocate a pipe buffer, open a RDONLY fd and a
// WRONLY fd on it in that order, and write [fd_read, fd_write] into
// out. If either open fails, undo whichever succeeded and return -1.
func (k *Kernel) Pipe(pid int, out []int32) int32 {
	buf := pipebuf.New(k.cfg.PipeCapacity)
	tab := k.Proc.PCBs[pid].FDTab

	fdRead, err := k.FD.Open(tab, buf, fdtable.RDONLY)
	if err != nil {
		k.diagnostic(kernerr.Wrapf(err, "pipe: pid %d read end", pid))
		return -1
	}
	fdWrite, err := k.FD.Open(tab, buf, fdtable.WRONLY)
	if err != nil {
		_ = k.FD.Close(tab, fdRead)
		k.diagnostic(kernerr.Wrapf(err, "pipe: pid %d write end", pid))
		return -1
	}

	out[0] = int32(fdRead)
	out[1] = int32(fdWrite)
	return 0
}

// Close is SVC 0x09: delegates to fdtable.Table.Close.
func (k *Kernel) Close(pid int, fd int) int32 {
	err := k.FD.Close(k.Proc.PCBs[pid].FDTab, fd)
	if err != nil {
		k.diagnostic(kernerr.Wrapf(err, "close: pid %d fd %d", pid, fd))
		return -1
	}
	return 0
}

// diagnostic prints a short message to the UART and records it on the
// diagnostics channel.
func (k *Kernel) diagnostic(err error) {
	k.Board.UART.Write([]byte(err.Error()))
	switch kernerr.Cause(err) {
	case kernerr.ErrProcTableFull, kernerr.ErrFDTableFull, kernerr.ErrNoFDSlot:
		k.Log.Exhausted(err.Error())
	default:
		k.Log.BadArg(err.Error())
	}
}
