package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daniel-salter-ds/ARM-OS-kernel/internal/proc"
)

func TestSelectAgingFavorsLongWaiter(t *testing.T) {
	pcbs := []proc.PCB{
		{Status: proc.Executing, Niceness: 0, LastExec: 10},
		{Status: proc.Ready, Niceness: 0, LastExec: 0},
	}
	got := Select(pcbs, 0, 10)
	assert.Equal(t, 1, got)
}

func TestSelectNicenessBiasesTowardsLowerValue(t *testing.T) {
	pcbs := []proc.PCB{
		{Status: proc.Executing, Niceness: 0, LastExec: 5},
		{Status: proc.Ready, Niceness: -5, LastExec: 5},
		{Status: proc.Ready, Niceness: 5, LastExec: 5},
	}
	got := Select(pcbs, 0, 5)
	assert.Equal(t, 1, got, "lower niceness should win when last-exec ties")
}

func TestSelectTieBreaksOnHighestIndex(t *testing.T) {
	pcbs := []proc.PCB{
		{Status: proc.Invalid},
		{Status: proc.Ready, Niceness: 0, LastExec: 0},
		{Status: proc.Ready, Niceness: 0, LastExec: 0},
	}
	got := Select(pcbs, -1, 0)
	assert.Equal(t, 2, got)
}

func TestSelectIncumbentPenaltyAvoidsMonopoly(t *testing.T) {
	pcbs := []proc.PCB{
		{Status: proc.Executing, Niceness: 0, LastExec: 3},
		{Status: proc.Ready, Niceness: 0, LastExec: 3},
	}
	got := Select(pcbs, 0, 3)
	assert.Equal(t, 1, got, "incumbent penalty should hand off to an equally-eligible peer")
}

func TestSelectPriorityAgingScenario(t *testing.T) {
	// P0 (nice 0) yields to P1 (nice 0) and P2 (nice -5). Over many
	// ticks P2 should be picked strictly more often than P0 or P1.
	pcbs := []proc.PCB{
		{Status: proc.Executing, Niceness: 0},
		{Status: proc.Ready, Niceness: 0},
		{Status: proc.Ready, Niceness: -5},
	}
	executing := 0
	var time uint64
	counts := map[int]int{}
	for i := 0; i < 30; i++ {
		next := Select(pcbs, executing, time)
		counts[next]++
		pcbs[executing].Status = proc.Ready
		pcbs[executing].LastExec = time
		pcbs[next].Status = proc.Executing
		executing = next
		time++
	}
	assert.Greater(t, counts[2], counts[0])
	assert.Greater(t, counts[2], counts[1])
}
