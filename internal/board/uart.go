// Package board simulates the PL011 UART, SP804 timer, and GICv2
// interrupt controller of a QEMU Versatile-class target. Real register
// accesses on that board are memory loads/stores against fixed
// addresses; this hosted simulation backs each "register" with a plain
// Go field, since there is no MMIO page to map.
package board

import "sync"

// UART models a PL011 character sink: a blocking putc with no flow
// control modeled.
type UART struct {
	mu  sync.Mutex
	out []byte
}

// NewUART returns an empty UART sink.
func NewUART() *UART {
	return &UART{}
}

// Putc writes a single byte to the sink.
func (u *UART) Putc(c byte) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.out = append(u.out, c)
}

// Write implements io.Writer so the UART can double as klog's trace
// sink.
func (u *UART) Write(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.out = append(u.out, p...)
	return len(p), nil
}

// Bytes returns a copy of everything written to the sink so far; tests
// use this to assert on the exact trace stream produced.
func (u *UART) Bytes() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]byte, len(u.out))
	copy(out, u.out)
	return out
}
