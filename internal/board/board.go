package board

// Board bundles the simulated PL011 UART, SP804 timer, and GICv2
// controller, matching the hardware mapping.
type Board struct {
	UART  *UART
	Timer *Timer
	GIC   *GIC
}

// New configures a board exactly as the Reset handler
// would: timer reloaded and started, GIC configured with the timer
// line unmasked.
func New(timerReload uint32) *Board {
	b := &Board{
		UART:  NewUART(),
		Timer: NewTimer(timerReload),
		GIC:   NewGIC(),
	}
	return b
}

// TickTimer advances the timer by one step and, if it fires, asserts
// the timer's SPI line on the GIC, modeling the hardware link between
// the two blocks.
func (b *Board) TickTimer() {
	b.Timer.Tick()
	if b.Timer.Pending() {
		b.GIC.Assert(TimerLine)
	}
}
