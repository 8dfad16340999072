//go:build !tinygo && !nrf51

package spibus

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/msiris/nRF52/spim"
	"github.com/msiris/nRF52/spimsim"
)

// run executes f on its own goroutine while stepping the simulated
// peripheral, so the busy-wait in Tx sees the transaction complete.
func run(t *testing.T, p *spimsim.Peripheral, f func() error) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- f() }()
	for {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("transfer failed: %v", err)
			}
			return
		default:
			p.Step()
			runtime.Gosched()
		}
	}
}

func TestConfigure(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)

	bus.Configure(Config{
		Frequency: 2000000,
		SCK:       14,
		MOSI:      13,
		MISO:      spim.PinNotConnected,
		LSBFirst:  true,
		Mode:      3,
	})

	b := p.Block
	if got := b.FREQUENCY.Get(); got != 0x20000000 {
		t.Errorf("FREQUENCY = %#x, want 0x20000000", got)
	}
	if got := b.CONFIG.Get(); got != 0x7 {
		t.Errorf("CONFIG = %#x, want 0x7 (mode 3, LSB first)", got)
	}
	if b.PSEL.SCK.Get() != 14 || b.PSEL.MOSI.Get() != 13 {
		t.Errorf("PSEL = %d/%d, want 14/13", b.PSEL.SCK.Get(), b.PSEL.MOSI.Get())
	}
	if got := b.PSEL.MISO.Get(); got != 0xFFFFFFFF {
		t.Errorf("PSEL.MISO = %#x, want 0xFFFFFFFF", got)
	}
	if got := b.ENABLE.Get(); got != 7 {
		t.Errorf("ENABLE = %#x after Configure, want 7", got)
	}
}

func TestConfigureDefaultFrequency(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)

	bus.Configure(Config{SCK: 1, MOSI: 2, MISO: 3})

	if got := p.Block.FREQUENCY.Get(); got != uint32(spim.Freq4M) {
		t.Errorf("FREQUENCY = %#x, want Freq4M", got)
	}
}

func TestFrequencyFor(t *testing.T) {
	rates := []struct {
		hz   uint32
		want spim.Frequency
	}{
		{100000, spim.Freq125K},
		{125000, spim.Freq125K},
		{250000, spim.Freq250K},
		{400000, spim.Freq250K},
		{500000, spim.Freq500K},
		{1000000, spim.Freq1M},
		{2000000, spim.Freq2M},
		{4000000, spim.Freq4M},
		{6000000, spim.Freq4M},
		{8000000, spim.Freq8M},
		{16000000, spim.Freq8M},
	}

	for _, tc := range rates {
		if got := frequencyFor(tc.hz); got != tc.want {
			t.Errorf("frequencyFor(%d) = %#x, want %#x", tc.hz, got, tc.want)
		}
	}
}

func TestTransfer(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)
	bus.Configure(Config{SCK: 1, MOSI: 2, MISO: 3})

	// Transfer's scratch buffers live on its own stack, outside the
	// sim's mapped DMA memory, so assert the register traffic rather
	// than the echoed byte.
	run(t, p, func() error {
		_, err := bus.Transfer(0x5A)
		return err
	})

	b := p.Block
	if got := b.TXD.MAXCNT.Get(); got != 1 {
		t.Errorf("TXD.MAXCNT = %d, want 1", got)
	}
	if got := b.RXD.MAXCNT.Get(); got != 1 {
		t.Errorf("RXD.MAXCNT = %d, want 1", got)
	}
	if !b.EventOccurred(spim.EventStarted) {
		t.Error("no transaction ran")
	}
}

func TestTxLoopback(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)
	bus.Configure(Config{SCK: 1, MOSI: 2, MISO: 3})

	// 300 bytes exceeds the 255-byte DMA length limit, so this runs
	// as two chained transactions.
	w := make([]byte, 300)
	for i := range w {
		w[i] = byte(i)
	}
	r := make([]byte, 300)
	p.Map(w)
	p.Map(r)

	run(t, p, func() error { return bus.Tx(w, r) })

	if !bytes.Equal(r, w) {
		t.Error("loopback receive does not match transmit")
	}
}

func TestTxUnevenLengths(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)
	bus.Configure(Config{SCK: 1, MOSI: 2, MISO: 3})
	p.Block.SetOverReadChar('.')

	w := []byte{'a', 'b'}
	r := make([]byte, 5)
	p.Map(w)
	p.Map(r)

	run(t, p, func() error { return bus.Tx(w, r) })

	// The transmit side ran out after two bytes; the rest of the
	// receive buffer was clocked against the over-read character.
	if want := []byte{'a', 'b', '.', '.', '.'}; !bytes.Equal(r, want) {
		t.Errorf("r = %q, want %q", r, want)
	}
}

func TestTxWriteOnly(t *testing.T) {
	p := spimsim.New(spimsim.Loopback)
	bus := New(p.Block)
	bus.Configure(Config{SCK: 1, MOSI: 2, MISO: spim.PinNotConnected})

	w := []byte{1, 2, 3}
	p.Map(w)

	run(t, p, func() error { return bus.Tx(w, nil) })

	if got := p.Block.TXD.AMOUNT.Get(); got != 3 {
		t.Errorf("TXD.AMOUNT = %d, want 3", got)
	}
}
