// Package spim is the register-level hardware abstraction for the nRF52
// SPI master with EasyDMA (SPIM). Every operation is a single register
// access on a caller-supplied RegisterBlock; the package holds no state,
// performs no validation and never blocks. Sequencing registers in a
// hardware-sanctioned order, buffer lifetime across a DMA transfer and
// serialization between execution contexts are all the caller's
// responsibility. See the spibus package for a blocking transfer driver
// built on top of these accessors.
package spim

import (
	"unsafe"

	"github.com/msiris/nRF52/mmio"
)

// Task identifies a SPIM task register by its byte offset from the
// peripheral base address. Writing 1 to a task register triggers the
// corresponding hardware action.
type Task uint32

const (
	TaskStart   Task = 0x010 // Start SPI transaction
	TaskStop    Task = 0x014 // Stop SPI transaction
	TaskSuspend Task = 0x01C // Suspend SPI transaction
	TaskResume  Task = 0x020 // Resume SPI transaction
)

// Event identifies a SPIM event register by its byte offset from the
// peripheral base address. Events are set by hardware and cleared by
// software. The END event is nRF52 only; see EventEnd.
type Event uint32

const (
	EventStopped Event = 0x104 // SPI transaction has stopped
	EventEndRx   Event = 0x110 // End of RXD buffer reached
	EventEndTx   Event = 0x120 // End of TXD buffer reached
	EventStarted Event = 0x14C // Transaction started
)

func (p *RegisterBlock) reg(offset uintptr) *mmio.Register32 {
	return (*mmio.Register32)(unsafe.Add(unsafe.Pointer(p), offset))
}

// TriggerTask activates the given task.
func (p *RegisterBlock) TriggerTask(t Task) {
	p.reg(uintptr(t)).Set(1)
}

// TaskAddress returns the absolute address of a task register, for use
// with the PPI.
func (p *RegisterBlock) TaskAddress(t Task) uintptr {
	return uintptr(unsafe.Pointer(p)) + uintptr(t)
}

// ClearEvent clears the given event.
func (p *RegisterBlock) ClearEvent(e Event) {
	p.reg(uintptr(e)).Set(0)
}

// EventOccurred reports whether the given event has been generated
// since it was last cleared.
func (p *RegisterBlock) EventOccurred(e Event) bool {
	return p.reg(uintptr(e)).Get() != 0
}

// EventAddress returns the absolute address of an event register, for
// use with the PPI.
func (p *RegisterBlock) EventAddress(e Event) uintptr {
	return uintptr(unsafe.Pointer(p)) + uintptr(e)
}

// EnableInterrupts enables the interrupts selected by mask. Bits not
// in mask keep their previous state; the set/clear register pair makes
// this atomic without a read-modify-write.
func (p *RegisterBlock) EnableInterrupts(mask uint32) {
	p.INTENSET.Set(mask)
}

// DisableInterrupts disables the interrupts selected by mask.
func (p *RegisterBlock) DisableInterrupts(mask uint32) {
	p.INTENCLR.Set(mask)
}

// InterruptEnabled reports whether any interrupt in mask is enabled.
func (p *RegisterBlock) InterruptEnabled(mask uint32) bool {
	return p.INTENSET.HasBits(mask)
}

// Enable enables the SPIM peripheral.
func (p *RegisterBlock) Enable() {
	p.ENABLE.Set(EnableEnabled)
}

// Disable disables the SPIM peripheral.
func (p *RegisterBlock) Disable() {
	p.ENABLE.Set(EnableDisabled)
}

// SetPins routes the SCK, MOSI and MISO signals to the given pins.
// Pass PinNotConnected for a signal that is not needed; unused lines
// must be disconnected explicitly, not omitted.
func (p *RegisterBlock) SetPins(sck, mosi, miso uint32) {
	p.PSEL.SCK.Set(sck)
	p.PSEL.MOSI.Set(mosi)
	p.PSEL.MISO.Set(miso)
}

// SetFrequency sets the SPI master data rate.
func (p *RegisterBlock) SetFrequency(f Frequency) {
	p.FREQUENCY.Set(uint32(f))
}

// SetTxBuffer points the TXD EasyDMA channel at buf and sets the
// maximum number of bytes to transmit. buf must stay valid until the
// transaction ends.
func (p *RegisterBlock) SetTxBuffer(buf *byte, n uint8) {
	p.TXD.PTR.Set(uint32(uintptr(unsafe.Pointer(buf))))
	p.TXD.MAXCNT.Set(uint32(n))
}

// SetRxBuffer points the RXD EasyDMA channel at buf and sets the
// maximum number of bytes to receive. buf must stay valid until the
// transaction ends.
func (p *RegisterBlock) SetRxBuffer(buf *byte, n uint8) {
	p.RXD.PTR.Set(uint32(uintptr(unsafe.Pointer(buf))))
	p.RXD.MAXCNT.Set(uint32(n))
}

// Configure sets the SPI mode and bit order. An out-of-range mode
// falls back to Mode0.
func (p *RegisterBlock) Configure(mode Mode, order BitOrder) {
	config := uint32(order) << configOrderPos
	switch mode {
	case Mode1:
		config |= configCPOLActiveHigh<<configCPOLPos |
			configCPHATrailing<<configCPHAPos
	case Mode2:
		config |= configCPOLActiveLow<<configCPOLPos |
			configCPHALeading<<configCPHAPos
	case Mode3:
		config |= configCPOLActiveLow<<configCPOLPos |
			configCPHATrailing<<configCPHAPos
	default: // Mode0
		config |= configCPOLActiveHigh<<configCPOLPos |
			configCPHALeading<<configCPHAPos
	}
	p.CONFIG.Set(config)
}

// SetOverReadChar sets the byte clocked out when a transaction keeps
// transferring past the end of the TXD buffer.
func (p *RegisterBlock) SetOverReadChar(orc uint8) {
	p.ORC.Set(uint32(orc))
}
