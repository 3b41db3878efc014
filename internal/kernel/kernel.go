// Package kernel is the single owning structure holding every global
// mutable table -- process table, fd table, board, scheduling clock --
// passed by reference to every handler, eliminating process-wide
// singletons. Every supervisor-call handler and the scheduler itself
// operate only on a *Kernel.
//
// Because this is a hosted simulation rather than bare-metal ARM code,
// there is no real assembly trap shim or live register file separate
// from memory: a process's saved context (internal/trapframe.Context)
// lives directly on its PCB and IS the register state "the CPU" is
// using while that PCB is Executing. A quantum of a user program is
// modeled as a Step function (see Program) that performs some
// supervisor calls and then returns; RunQuantum advances a per-PID
// program counter so a multi-step program resumes where it left off.
package kernel

import (
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/board"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/config"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/fdtable"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/klog"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kmetrics"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/proc"
)

// Step is one quantum's worth of a user program's work: a handful of
// supervisor calls, usually ending in a voluntary Yield or an Exit (Read
// is non-blocking and never yields by itself). A step that does neither
// leaves the process Executing, so its next step runs in the next
// quantum. Once the program's last step has run, RunQuantum calls Exit
// on the process's behalf.
type Step func(k *Kernel, pid int)

// Program is a user program's full instruction stream, broken into
// steps at the granularity this simulation can schedule at. Process
// entry points (the pc) index into Kernel.Programs by this
// trapframe.Context.PC value.
type Program []Step

// Kernel bundles the process table, open-file table, simulated board,
// and scheduling state every supervisor-call and trap handler
// consults.
type Kernel struct {
	cfg     config.Config
	Board   *board.Board
	Proc    *proc.Table
	FD      *fdtable.Table
	Log     *klog.Logger
	Metrics *kmetrics.Metrics

	Time      uint64
	Executing int

	Programs map[uintptr]Program
	cursor   []int
}

// New builds an unbooted kernel from the given configuration.
func New(cfg config.Config) *Kernel {
	b := board.New(cfg.TimerReload)
	return &Kernel{
		cfg:       cfg,
		Board:     b,
		Proc:      proc.New(cfg.MaxProcs, cfg.StackSize, cfg.MaxOpenFDs),
		FD:        fdtable.New(cfg.MaxFDs),
		Log:       klog.New(b.UART),
		Metrics:   kmetrics.New(),
		Executing: -1,
		Programs:  make(map[uintptr]Program),
		cursor:    make([]int, cfg.MaxProcs),
	}
}

// RegisterProgram associates entry with prog, so a process whose
// context record's PC equals entry runs prog one step per quantum.
func (k *Kernel) RegisterProgram(entry uintptr, prog Program) {
	k.Programs[entry] = prog
}

// RunQuantum runs one step of the currently executing process's
// program. If the process has no registered program, or has run off
// the end of it, the process exits with status 0, matching a user
// program that falls off its own main function.
func (k *Kernel) RunQuantum() {
	pid := k.Executing
	if pid < 0 {
		return
	}
	pcb := &k.Proc.PCBs[pid]
	if pcb.Status != proc.Executing {
		return
	}
	prog, ok := k.Programs[pcb.Ctx.PC]
	if !ok || k.cursor[pid] >= len(prog) {
		k.Exit(pid, 0)
		return
	}
	step := prog[k.cursor[pid]]
	k.cursor[pid]++
	step(k, pid)
}

// Run drives up to maxQuanta scheduling quanta, ticking the timer and
// routing it through the IRQ entry point before each quantum (so a
// long-running process is still preemptible), and stops early if no
// process remains runnable.
func (k *Kernel) Run(maxQuanta int) {
	for i := 0; i < maxQuanta && k.Executing >= 0; i++ {
		k.Board.TickTimer()
		k.Metrics.Ticks.Inc()
		k.IRQ()
		k.RunQuantum()
	}
}
