package board

// GIC models the GICv2-style interrupt controller's CPU interface
// (IAR, EOIR, PMR, CTLR) and distributor (ISENABLER1, CTLR), configured
// per the Reset handler: priority mask 0xF0, timer line 36
// enabled via ISENABLER1 |= 0x10, both CPU interface and distributor
// enabled.
//
// The enable/pending bookkeeping here mirrors the IMR/IRR/ISR state
// machine of a classic 8259-style controller, transposed onto
// GICv2's register names.
type GIC struct {
	PMR            uint32 // priority mask register
	CPUEnabled     bool   // CTLR (CPU interface)
	DistEnabled    bool   // CTLR (distributor)
	ISENABLER1     uint32 // SPI enable bits for interrupts 32-63
	pendingLine    int    // currently asserted interrupt line, or -1
}

// TimerLine is the SPI number the SP804 timer asserts: line 36,
// enabled via ISENABLER1 |= 0x10.
const TimerLine = 36

// timerEnableBit is the ISENABLER1 bit corresponding to TimerLine
// (line 36 is bit 4 of ISENABLER1, which covers lines 32-63).
const timerEnableBit uint32 = 0x10

// NewGIC configures the GIC per the Reset handler.
func NewGIC() *GIC {
	return &GIC{
		PMR:         0xF0,
		CPUEnabled:  true,
		DistEnabled: true,
		ISENABLER1:  timerEnableBit,
		pendingLine: -1,
	}
}

// lineEnabled reports whether the given SPI line is unmasked.
func (g *GIC) lineEnabled(line int) bool {
	if line != TimerLine {
		return false
	}
	return g.ISENABLER1&timerEnableBit != 0
}

// Assert raises an interrupt on the given line, if the controller and
// that line are enabled.
func (g *GIC) Assert(line int) {
	if !g.CPUEnabled || !g.DistEnabled || !g.lineEnabled(line) {
		return
	}
	g.pendingLine = line
}

// IAR reads the interrupt-acknowledge register: the currently pending
// line, or -1 ("spurious") if none.
func (g *GIC) IAR() int {
	return g.pendingLine
}

// EOIR writes the end-of-interrupt register for the given line,
// clearing it if it matches the pending one.
func (g *GIC) EOIR(line int) {
	if g.pendingLine == line {
		g.pendingLine = -1
	}
}
