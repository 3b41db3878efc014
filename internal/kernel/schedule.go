package kernel

import (
	"strconv"

	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/proc"
	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/sched"
)

// Schedule runs the priority-aging selection rule and performs the
// dispatch: the outgoing PCB (if any) goes back to Ready, the incoming
// one becomes Executing, last_exec/time are updated, and a
// "[prev→next]" trace line is emitted. It is invoked both by Yield
// and by the timer IRQ path (see trap.go).
//
// Unlike a real trap shim, there is no separate live register file to
// save/restore here: a PCB's Ctx already holds its full state whether
// or not it is currently Executing (see kernel.go's package comment),
// so "saving the outgoing context" is a no-op past setting its status.
func (k *Kernel) Schedule() {
	next := sched.Select(k.Proc.PCBs, k.Executing, k.Time)
	if next < 0 {
		return
	}

	prev := k.Executing
	if prev >= 0 && k.Proc.PCBs[prev].Status == proc.Executing {
		k.Proc.PCBs[prev].Status = proc.Ready
	}
	if prev >= 0 {
		k.Proc.PCBs[prev].LastExec = k.Time
	}
	k.Proc.PCBs[next].Status = proc.Executing
	k.Executing = next
	k.Time++

	k.Log.Switch(prev, next)
	k.Metrics.Dispatches.WithLabelValues(strconv.Itoa(next)).Inc()
	k.Metrics.LastScore.WithLabelValues(strconv.Itoa(next)).Set(
		float64(sched.Score(k.Time, k.Proc.PCBs[next].LastExec, k.Proc.PCBs[next].Niceness)),
	)
}
