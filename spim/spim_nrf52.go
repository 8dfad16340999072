//go:build !nrf51

package spim

// nRF52-only SPIM surface: the SHORTS register, the END event and its
// interrupt. Building with the nrf51 tag removes these symbols, since
// that silicon has no shortcut wiring and no combined END event.

// EventEnd is generated when the ends of both the RXD and TXD buffers
// have been reached.
const EventEnd Event = 0x118

// IntEnd is the interrupt mask for the END event.
const IntEnd uint32 = 1 << 6

// ShortEndStart wires the END event to the START task in hardware, so
// back-to-back transactions run without software latency.
const ShortEndStart uint32 = 1 << 17

// EnableShortcuts enables the shortcuts selected by mask; other
// shortcut bits are left unchanged.
func (p *RegisterBlock) EnableShortcuts(mask uint32) {
	p.SHORTS.SetBits(mask)
}

// DisableShortcuts disables the shortcuts selected by mask.
func (p *RegisterBlock) DisableShortcuts(mask uint32) {
	p.SHORTS.ClearBits(mask)
}
