package kernel

import (
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/board"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/proc"
)

// Reset performs the boot sequence: builds PCB 0 around
// consoleEntry, marks it Ready, and dispatches into it. The board
// (timer reload, GIC priority mask, timer-line enable) is already
// configured by board.New at construction time; Reset's job is the
// process-table side and the initial "[?→0]" dispatch.
func (k *Kernel) Reset(consoleEntry uintptr) {
	k.Proc.BootConsole(consoleEntry)
	k.Log.Boot()

	k.Executing = 0
	k.Proc.PCBs[0].Status = proc.Executing
	k.Log.Switch(-1, 0)
}

// IRQ is the timer-interrupt entry point: read IAR;
// if the source is the timer, clear it and schedule; write the same
// line to EOIR. Any other (spurious) source is a no-op.
func (k *Kernel) IRQ() {
	line := k.Board.GIC.IAR()
	if line != board.TimerLine {
		return
	}
	k.Board.Timer.IntClr()
	k.Schedule()
	k.Board.GIC.EOIR(line)
}

// Supervisor-call immediate operands, per the ABI table.
const (
	SVCYield = 0x00
	SVCWrite = 0x01
	SVCRead  = 0x02
	SVCFork  = 0x03
	SVCExit  = 0x04
	SVCExec  = 0x05
	SVCKill  = 0x06
	SVCNice  = 0x07
	SVCPipe  = 0x08
	SVCClose = 0x09
)

// SVC is the supervisor-call entry point: dispatch by immediate
// operand, taking arguments from pid's own context record registers
// per the ABI, and writing a return value back to register 0 where
// the call has one.
//
// Write, Read, and Pipe carry a raw buffer pointer in their argument
// list; since a flat addressable memory model is out of scope (no
// virtual memory / MMU management here), those three have no
// meaningful decoding from a bare uint32 register here and are only
// reachable through their typed, []byte/[]int32-taking methods above.
// Any operand this dispatcher does not handle is a silent no-op.
func (k *Kernel) SVC(pid int, id uint8) {
	ctx := &k.Proc.PCBs[pid].Ctx
	switch id {
	case SVCYield:
		k.Yield(pid)
	case SVCFork:
		ctx.SetReturn(k.Fork(pid))
	case SVCExit:
		k.Exit(pid, int32(ctx.Arg(0)))
	case SVCExec:
		k.Exec(pid, uintptr(ctx.Arg(0)))
	case SVCKill:
		ctx.SetReturn(k.Kill(pid, int(ctx.Arg(0)), int32(ctx.Arg(1))))
	case SVCNice:
		ctx.SetReturn(k.Nice(pid, int(ctx.Arg(0)), int(int32(ctx.Arg(1)))))
	case SVCClose:
		ctx.SetReturn(k.Close(pid, int(ctx.Arg(0))))
	}
}
