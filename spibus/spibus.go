//go:build !nrf51

// Package spibus is a blocking SPI transfer driver on top of the spim
// register accessors. It owns the register programming order the spim
// package leaves to its callers: buffers before START, END polled and
// cleared after. Bus satisfies the tinygo.org/x/drivers SPI interface,
// so any driver from that collection can sit on top of it.
//
// The driver is strictly synchronous. There is no queueing and no
// interrupt use; one Tx call is one or more back-to-back DMA
// transactions, each polled to completion.
package spibus

import (
	"tinygo.org/x/drivers"

	"github.com/msiris/nRF52/spim"
)

// Config holds the bus parameters for Configure.
//
// Frequency is in Hz and is rounded down to the nearest rate the
// hardware supports; zero selects 4 MHz. A line that is not wired must
// be set to spim.PinNotConnected, not left zero: pin 0 is a valid pin.
type Config struct {
	Frequency uint32
	SCK       uint32
	MOSI      uint32
	MISO      uint32
	LSBFirst  bool
	Mode      uint8
}

// Bus drives one SPIM instance.
type Bus struct {
	Periph *spim.RegisterBlock
}

var _ drivers.SPI = (*Bus)(nil)

// New returns a Bus for the given SPIM instance, typically one of
// spim.SPIM0 through spim.SPIM2.
func New(p *spim.RegisterBlock) *Bus {
	return &Bus{Periph: p}
}

// Configure programs the bus parameters. The peripheral is disabled
// while its registers are written and re-enabled afterwards.
func (b *Bus) Configure(cfg Config) {
	p := b.Periph

	p.Disable()

	if cfg.Frequency == 0 {
		cfg.Frequency = 4000000
	}
	p.SetFrequency(frequencyFor(cfg.Frequency))

	order := spim.OrderMSBFirst
	if cfg.LSBFirst {
		order = spim.OrderLSBFirst
	}
	p.Configure(spim.Mode(cfg.Mode), order)

	p.SetPins(cfg.SCK, cfg.MOSI, cfg.MISO)

	p.Enable()
}

// frequencyFor maps a rate in Hz to the nearest supported frequency
// code, rounding down. Rates below 250 kHz select the lowest rate.
func frequencyFor(hz uint32) spim.Frequency {
	switch {
	case hz >= 8000000:
		return spim.Freq8M
	case hz >= 4000000:
		return spim.Freq4M
	case hz >= 2000000:
		return spim.Freq2M
	case hz >= 1000000:
		return spim.Freq1M
	case hz >= 500000:
		return spim.Freq500K
	case hz >= 250000:
		return spim.Freq250K
	default:
		return spim.Freq125K
	}
}

// Transfer writes a single byte and returns the byte clocked in.
func (b *Bus) Transfer(w byte) (byte, error) {
	var wbuf, rbuf [1]byte
	wbuf[0] = w
	err := b.Tx(wbuf[:], rbuf[:])
	return rbuf[0], err
}

// Tx sends w while receiving into r. The two sides need not be the
// same length: extra receive bytes are clocked against the over-read
// character, extra sent bytes are received and dropped by the
// hardware. The DMA length registers hold at most 255 bytes, so
// longer slices are transferred in chunks.
func (b *Bus) Tx(w, r []byte) error {
	p := b.Periph

	for len(w) != 0 || len(r) != 0 {
		nw := len(w)
		if nw > 255 {
			nw = 255
		}
		if nw > 0 {
			p.SetTxBuffer(&w[0], uint8(nw))
		} else {
			p.SetTxBuffer(nil, 0)
		}

		nr := len(r)
		if nr > 255 {
			nr = 255
		}
		if nr > 0 {
			p.SetRxBuffer(&r[0], uint8(nr))
		} else {
			p.SetRxBuffer(nil, 0)
		}

		p.ClearEvent(spim.EventEnd)
		p.TriggerTask(spim.TaskStart)
		for !p.EventOccurred(spim.EventEnd) {
		}
		p.ClearEvent(spim.EventEnd)

		w = w[nw:]
		r = r[nr:]
	}
	return nil
}
