//go:build !tinygo && !nrf51

// Package spimsim emulates the SPIM peripheral behind an ordinary
// in-memory register block, so driver code can be exercised with go
// test on the host. The emulation is cooperative: the code under test
// programs the registers through the spim package, and each call to
// Step makes the "silicon" act on what was written — run a pending
// transaction, latch interrupt enable writes, raise events.
package spimsim

import (
	"unsafe"

	"github.com/msiris/nRF52/spim"
)

// Slave models the device on the other end of the bus. For every byte
// clocked out on MOSI it returns the byte the slave drives on MISO.
type Slave interface {
	Exchange(mosi byte) (miso byte)
}

// SlaveFunc adapts a function to the Slave interface.
type SlaveFunc func(byte) byte

func (f SlaveFunc) Exchange(mosi byte) byte { return f(mosi) }

// Loopback is a slave that echoes every byte back.
var Loopback = SlaveFunc(func(b byte) byte { return b })

// region is a host memory range registered for EasyDMA access, keyed
// by the truncated 32-bit address the PTR registers hold.
type region struct {
	start uint32
	mem   []byte
}

// Peripheral is one simulated SPIM instance.
type Peripheral struct {
	Block *spim.RegisterBlock

	slave   Slave
	regions []region

	// Interrupt enable state. INTENSET writes are latched into it on
	// each Step; intenWritten remembers the readback value the sim
	// last published, to tell fresh software writes apart from it.
	inten        uint32
	intenWritten uint32
}

// New returns a simulated SPIM with a zeroed register block attached
// to the given slave.
func New(slave Slave) *Peripheral {
	return &Peripheral{Block: new(spim.RegisterBlock), slave: slave}
}

// Map registers buf as DMA-reachable memory. Buffers handed to
// SetTxBuffer or SetRxBuffer must be inside a mapped region, or the
// transfer reads over-read characters and discards received bytes.
// Sub-slices of a mapped buffer need no mapping of their own.
func (p *Peripheral) Map(buf []byte) {
	if len(buf) == 0 {
		return
	}
	p.regions = append(p.regions, region{
		start: uint32(uintptr(unsafe.Pointer(&buf[0]))),
		mem:   buf,
	})
}

// resolve translates a PTR register value into mapped host memory,
// clamped to n bytes. It returns nil for unmapped addresses.
func (p *Peripheral) resolve(addr uint32, n uint32) []byte {
	for _, r := range p.regions {
		if addr < r.start {
			continue
		}
		off := addr - r.start
		if off > uint32(len(r.mem)) {
			continue
		}
		mem := r.mem[off:]
		if uint32(len(mem)) > n {
			mem = mem[:n]
		}
		return mem
	}
	return nil
}

// Step makes the simulated hardware act once on the current register
// state. It reports whether a transaction ran. A STOP task is honored
// before a pending START; an enabled END->START shortcut re-arms the
// START task so the next Step runs the follow-up transaction with
// whatever buffers the driver has set by then.
func (p *Peripheral) Step() bool {
	b := p.Block

	p.latchInterrupts()

	if b.TASKS_STOP.Get() != 0 {
		b.TASKS_STOP.Set(0)
		b.TASKS_START.Set(0)
		b.EVENTS_STOPPED.Set(1)
		return false
	}

	if b.TASKS_START.Get() == 0 {
		return false
	}
	b.TASKS_START.Set(0)

	if b.ENABLE.Get() != spim.EnableEnabled {
		return false
	}

	b.EVENTS_STARTED.Set(1)

	txN := b.TXD.MAXCNT.Get()
	rxN := b.RXD.MAXCNT.Get()
	tx := p.resolve(b.TXD.PTR.Get(), txN)
	rx := p.resolve(b.RXD.PTR.Get(), rxN)
	orc := byte(b.ORC.Get())

	n := txN
	if rxN > n {
		n = rxN
	}
	for i := uint32(0); i < n; i++ {
		out := orc
		if i < txN && i < uint32(len(tx)) {
			out = tx[i]
		}
		in := p.slave.Exchange(out)
		if i < rxN && i < uint32(len(rx)) {
			rx[i] = in
		}
	}

	b.TXD.AMOUNT.Set(txN)
	b.RXD.AMOUNT.Set(rxN)
	b.EVENTS_ENDTX.Set(1)
	b.EVENTS_ENDRX.Set(1)
	b.EVENTS_END.Set(1)

	if b.SHORTS.HasBits(spim.ShortEndStart) {
		b.TASKS_START.Set(1)
	}
	return true
}

// latchInterrupts applies the set/clear semantics of the INTENSET and
// INTENCLR register pair. Software writes a mask; the hardware ORs it
// into (or clears it from) the single underlying enable state and the
// mask reads back through INTENSET. INTENCLR reads back as zero here;
// the accessors only ever write it.
func (p *Peripheral) latchInterrupts() {
	b := p.Block

	if w := b.INTENSET.Get(); w != p.intenWritten {
		p.inten |= w
	}
	if w := b.INTENCLR.Get(); w != 0 {
		p.inten &^= w
		b.INTENCLR.Set(0)
	}
	p.intenWritten = p.inten
	b.INTENSET.Set(p.inten)
}
