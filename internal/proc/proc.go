// Package proc implements the process table and process life-cycle
// operations: the fixed PCB array, the stack arena, and
// boot/fork/exec/exit/kill/nice.
package proc

import (
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernerr"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/trapframe"
)

// Status is a PCB's life-cycle state.
type Status int

const (
	Invalid Status = iota
	Ready
	Executing
	Terminated
)

// Niceness bounds, per the nice clamp.
const (
	MinNiceness = -19
	MaxNiceness = 20
)

// PCB is a process control block.
type PCB struct {
	PID      int
	Status   Status
	TOS      uintptr
	Ctx      trapframe.Context
	LastExec uint64
	Niceness int
	FDTab    []int32
}

// Arena is the pre-reserved stack region all PCB stacks live in, keyed
// by PCB index: a per-index stack layout adapted from per-CPU
// interrupt stacks to per-process user stacks.
type Arena struct {
	mem       []byte
	stackSize int
}

// NewArena reserves stack space for maxProcs processes of stackSize
// bytes each.
func NewArena(maxProcs, stackSize int) *Arena {
	return &Arena{
		mem:       make([]byte, maxProcs*stackSize),
		stackSize: stackSize,
	}
}

// Base returns the stack base address (low end) for the process at
// the given table index, per the "stacks stamped at
// tos_p - (index-1) * 0x2000" — here indices map onto contiguous
// arena slices rather than raw addresses.
func (a *Arena) Base(index int) uintptr {
	return uintptr(index * a.stackSize)
}

// TOS returns the top-of-stack address for the process at the given
// table index.
func (a *Arena) TOS(index int) uintptr {
	return a.Base(index) + uintptr(a.stackSize)
}

// Slice returns the byte region backing the stack at the given table
// index, used for the fork stack-image copy.
func (a *Arena) Slice(index int) []byte {
	base := a.Base(index)
	return a.mem[base : base+uintptr(a.stackSize)]
}

// Table is the fixed-size process table.
type Table struct {
	PCBs             []PCB
	CurrentProcesses int
	Arena            *Arena
	openFDsPerProc   int
}

// New allocates a process table with every PCB marked Invalid, per
// the boot sequence.
func New(maxProcs, stackSize, openFDsPerProc int) *Table {
	t := &Table{
		PCBs:           make([]PCB, maxProcs),
		Arena:          NewArena(maxProcs, stackSize),
		openFDsPerProc: openFDsPerProc,
	}
	for i := range t.PCBs {
		t.PCBs[i] = PCB{PID: i, Status: Invalid, FDTab: newFDTab(openFDsPerProc)}
	}
	return t
}

func newFDTab(n int) []int32 {
	tab := make([]int32, n)
	for i := range tab {
		tab[i] = -1
	}
	return tab
}

// BootConsole builds PCB 0 (the console): zeroed context except
// cpsr = 0x50, pc = entry, sp = tos, niceness = 0, every fd_tab
// entry -1. Marked Ready; CurrentProcesses set to 1.
func (t *Table) BootConsole(entry uintptr) {
	p := &t.PCBs[0]
	p.Ctx = trapframe.Context{
		PC:   entry,
		SP:   t.Arena.TOS(0),
		CPSR: trapframe.CPSRUserIRQUnmasked,
	}
	p.TOS = t.Arena.TOS(0)
	p.Niceness = 0
	p.FDTab = newFDTab(t.openFDsPerProc)
	p.Status = Ready
	t.CurrentProcesses = 1
}

// freeSlot finds the lowest index >= 1 whose PCB is Invalid or
// Terminated, per the fork slot-preference rule. It returns
// -1 if none is free and the table is not yet at CurrentProcesses
// capacity (the caller then falls back to using CurrentProcesses as
// the new index).
func (t *Table) freeSlot() int {
	for i := 1; i < len(t.PCBs); i++ {
		if t.PCBs[i].Status == Invalid || t.PCBs[i].Status == Terminated {
			return i
		}
	}
	return -1
}

// Fork duplicates caller's saved context, stack image, descriptor
// table, and niceness into a new PCB slot. Returns
// the child's PID, or -1 (with an error) if the process table is
// full.
func (t *Table) Fork(callerPID int, dup func(parentTab, childTab []int32)) (int, error) {
	if t.CurrentProcesses >= len(t.PCBs) {
		return -1, kernerr.ErrProcTableFull
	}

	idx := t.freeSlot()
	if idx == -1 {
		idx = t.CurrentProcesses
	}
	t.CurrentProcesses++

	parent := &t.PCBs[callerPID]
	child := &t.PCBs[idx]

	*child = PCB{
		PID:      idx,
		Status:   Ready,
		TOS:      t.Arena.TOS(idx),
		Ctx:      parent.Ctx,
		Niceness: parent.Niceness,
		FDTab:    newFDTab(len(parent.FDTab)),
	}

	// child.sp = child.tos - (parent.tos - parent.sp)
	usage := parent.TOS - parent.Ctx.SP
	child.Ctx.SP = child.TOS - usage

	// byte-copy the active portion of the parent stack into the
	// child's stack region.
	parentStack := t.Arena.Slice(callerPID)
	childStack := t.Arena.Slice(idx)
	copy(childStack[len(childStack)-int(usage):], parentStack[len(parentStack)-int(usage):])

	dup(parent.FDTab, child.FDTab)

	parent.Ctx.SetReturn(int32(idx))
	child.Ctx.SetReturn(0)

	return idx, nil
}

// Exec replaces the current context's pc with entry and resets sp to
// the process's tos. The descriptor table and
// niceness are preserved.
func (t *Table) Exec(pid int, entry uintptr) {
	p := &t.PCBs[pid]
	p.Ctx.PC = entry
	p.Ctx.SP = p.TOS
}

// Terminate marks pid Terminated and decrements CurrentProcesses, per
// the exit/kill cleanup. Callers are responsible for
// closing descriptors first (internal/kernel wires this to
// fdtable.CloseAll).
func (t *Table) Terminate(pid int) {
	p := &t.PCBs[pid]
	if p.Status == Ready || p.Status == Executing {
		t.CurrentProcesses--
	}
	p.Status = Terminated
}

// Nice clamps value to [MinNiceness, MaxNiceness] and stores it on
// pid's PCB, returning the stored value.
func (t *Table) Nice(pid int, value int) int {
	if value < MinNiceness {
		value = MinNiceness
	}
	if value > MaxNiceness {
		value = MaxNiceness
	}
	t.PCBs[pid].Niceness = value
	return value
}

// Valid reports whether pid is a usable index into the table.
func (t *Table) Valid(pid int) bool {
	return pid >= 0 && pid < len(t.PCBs)
}
