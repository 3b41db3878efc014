// Package sched implements the scheduler's selection rule: integer
// aging plus niceness, with an incumbent-penalty tie-break. The score
// is computed in integers rather than floating point, since it holds
// only integer quantities.
package sched

import "github.com/daniel-salter-ds/ARM-OS-kernel/internal/proc"

// Score computes priority(i) = (time - lastExec) - niceness.
func Score(time, lastExec uint64, niceness int) int64 {
	return int64(time) - int64(lastExec) - int64(niceness)
}

// Select chooses the next process to run among those with status
// Ready, seeding the contest with the incumbent (executing) using
// niceness-1 as its baseline score. The incumbent
// has not been waiting at all this tick, so its baseline skips the
// aging term entirely and uses executing.niceness - 1 directly. When
// the incumbent's niceness is <= 0, this is strictly lower than the
// score any equally-or-more-favored Ready peer would present, so such a
// peer displaces it in the tie-break scan below -- the penalty paid for
// holding the CPU. With a positive niceness the baseline is >= 0 and a
// peer must first age past it. Ties among
// non-incumbent candidates break toward the highest index (a scan
// updates the winner on >=). Returns -1 if no PCB is Ready and the
// incumbent is not Executing either (nothing runnable).
func Select(pcbs []proc.PCB, executing int, time uint64) int {
	winner := -1
	var winnerScore int64

	if executing >= 0 && executing < len(pcbs) && pcbs[executing].Status == proc.Executing {
		winner = executing
		winnerScore = int64(pcbs[executing].Niceness) - 1
	}

	for i := range pcbs {
		if pcbs[i].Status != proc.Ready {
			continue
		}
		s := Score(time, pcbs[i].LastExec, pcbs[i].Niceness)
		if winner == -1 || s >= winnerScore {
			winner = i
			winnerScore = s
		}
	}

	return winner
}
