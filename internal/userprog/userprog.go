// Package userprog implements two demo user programs that exercise the
// kernel end to end: a console and a dining-philosophers worker. They
// give the scheduler, pipe layer, and fd layer something realistic to
// run, modeled as an exec(cmd string, args []string) closure table —
// here, a kernel.Program registered against a fixed entry address a
// boot or exec call can jump to.
//
// Both programs share the pipe console creates right before its first
// fork: fd 3 (read end) and fd 4 (write end), which is the fd pair a
// fresh boot's first pipe call always hands out.
package userprog

import (
	"fmt"

	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/fdtable"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/kernel"
)

// Entry addresses the boot sequence and exec calls jump to. Real
// addresses would come from the linker; these stand in for "known
// symbol" values in this hosted simulation.
const (
	ConsoleEntry      uintptr = 0x8000
	PhilosophersEntry uintptr = 0x8100
)

const (
	demoPipeRead  = 3
	demoPipeWrite = 4
)

// Register installs both demo programs on k, so a booted kernel can
// exec into either by address.
func Register(k *kernel.Kernel) {
	k.RegisterProgram(ConsoleEntry, consoleProgram())
	k.RegisterProgram(PhilosophersEntry, philosophersProgram())
}

func consoleProgram() kernel.Program {
	const readRounds = 5

	prog := kernel.Program{
		// step 0: announce, open the shared pipe, fork the
		// philosopher.
		func(k *kernel.Kernel, pid int) {
			k.Write(pid, fdtable.FDStdout, []byte("console: starting philosophers\n"))
			var fds [2]int32
			if k.Pipe(pid, fds[:]) != 0 {
				k.Exit(pid, 1)
				return
			}
			k.Fork(pid)
		},
		// step 1: both the parent and the freshly forked child
		// resume here (fork copies the context verbatim); branch
		// on the fork return value already sitting in register 0.
		func(k *kernel.Kernel, pid int) {
			if k.Proc.PCBs[pid].Ctx.R[0] == 0 {
				k.Exec(pid, PhilosophersEntry)
				return
			}
			k.Yield(pid)
		},
	}

	for i := 0; i < readRounds; i++ {
		prog = append(prog, func(k *kernel.Kernel, pid int) {
			buf := make([]byte, 32)
			n := k.Read(pid, demoPipeRead, buf)
			if n > 0 {
				k.Write(pid, fdtable.FDStdout, []byte(fmt.Sprintf("console: %s\n", buf[:n])))
			}
			k.Yield(pid)
		})
	}

	prog = append(prog, func(k *kernel.Kernel, pid int) {
		k.Write(pid, fdtable.FDStdout, []byte("console: done\n"))
		k.Exit(pid, 0)
	})

	return prog
}

func philosophersProgram() kernel.Program {
	states := []string{"thinking", "eating", "thinking", "eating"}

	prog := kernel.Program{
		func(k *kernel.Kernel, pid int) {
			k.Nice(pid, pid, -2)
			k.Yield(pid)
		},
	}

	for _, state := range states {
		s := state
		prog = append(prog, func(k *kernel.Kernel, pid int) {
			k.Write(pid, demoPipeWrite, []byte(s))
			k.Yield(pid)
		})
	}

	prog = append(prog, func(k *kernel.Kernel, pid int) {
		k.Close(pid, demoPipeWrite)
		k.Exit(pid, 0)
	})

	return prog
}
