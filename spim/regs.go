package spim

import "github.com/msiris/nRF52/mmio"

// RegisterBlock is the SPIM peripheral register map. Field offsets
// follow the nRF52 datasheet; the blank fields are the undocumented
// gaps between registers. Instances are caller supplied: on hardware
// they are the fixed peripheral base addresses, in tests an ordinary
// zeroed block works (see the spimsim package).
type RegisterBlock struct {
	_              [4]mmio.Register32
	TASKS_START    mmio.Register32 // 0x010 Start SPI transaction
	TASKS_STOP     mmio.Register32 // 0x014 Stop SPI transaction
	_              mmio.Register32
	TASKS_SUSPEND  mmio.Register32 // 0x01C Suspend SPI transaction
	TASKS_RESUME   mmio.Register32 // 0x020 Resume SPI transaction
	_              [56]mmio.Register32
	EVENTS_STOPPED mmio.Register32 // 0x104 SPI transaction has stopped
	_              [2]mmio.Register32
	EVENTS_ENDRX   mmio.Register32 // 0x110 End of RXD buffer reached
	_              mmio.Register32
	EVENTS_END     mmio.Register32 // 0x118 End of RXD and TXD buffers reached
	_              mmio.Register32
	EVENTS_ENDTX   mmio.Register32 // 0x120 End of TXD buffer reached
	_              [10]mmio.Register32
	EVENTS_STARTED mmio.Register32 // 0x14C Transaction started
	_              [44]mmio.Register32
	SHORTS         mmio.Register32 // 0x200 Shortcut register
	_              [64]mmio.Register32
	INTENSET       mmio.Register32 // 0x304 Enable interrupt
	INTENCLR       mmio.Register32 // 0x308 Disable interrupt
	_              [125]mmio.Register32
	ENABLE         mmio.Register32 // 0x500 Enable SPIM
	_              mmio.Register32
	PSEL           PinSelect // 0x508 Pin select registers
	_              [4]mmio.Register32
	FREQUENCY      mmio.Register32 // 0x524 SPI frequency
	_              [3]mmio.Register32
	RXD            DMADescriptor   // 0x534 RXD EasyDMA channel
	TXD            DMADescriptor   // 0x544 TXD EasyDMA channel
	CONFIG         mmio.Register32 // 0x554 Configuration register
	_              [26]mmio.Register32
	ORC            mmio.Register32 // 0x5C0 Over-read character
}

// PinSelect holds the pin select registers for the three SPI lines.
// A register holds a pin number, or PinNotConnected if the line is
// not routed to a physical pin.
type PinSelect struct {
	SCK  mmio.Register32 // Pin select for SCK
	MOSI mmio.Register32 // Pin select for MOSI
	MISO mmio.Register32 // Pin select for MISO
}

// DMADescriptor is one EasyDMA channel: a data pointer, the maximum
// number of bytes to transfer, the number of bytes transferred in the
// last transaction, and the array list type.
type DMADescriptor struct {
	PTR    mmio.Register32
	MAXCNT mmio.Register32
	AMOUNT mmio.Register32
	LIST   mmio.Register32
}

// PinNotConnected disconnects a signal from its pin select register.
const PinNotConnected = 0xFFFFFFFF

// ENABLE register encodings. Enabling the peripheral is not a boolean
// write; the silicon defines a dedicated code.
const (
	EnableDisabled = 0 // Disable SPIM
	EnableEnabled  = 7 // Enable SPIM
)

// Interrupt bit masks for the INTENSET and INTENCLR registers.
const (
	IntStopped uint32 = 1 << 1  // Interrupt on STOPPED event
	IntEndRx   uint32 = 1 << 4  // Interrupt on ENDRX event
	IntEndTx   uint32 = 1 << 8  // Interrupt on ENDTX event
	IntStarted uint32 = 1 << 19 // Interrupt on STARTED event
)

// Frequency is one of the data rates supported by the SPIM clock
// generator, as written to the FREQUENCY register.
type Frequency uint32

const (
	Freq125K Frequency = 0x02000000 // 125 kbps
	Freq250K Frequency = 0x04000000 // 250 kbps
	Freq500K Frequency = 0x08000000 // 500 kbps
	Freq1M   Frequency = 0x10000000 // 1 Mbps
	Freq2M   Frequency = 0x20000000 // 2 Mbps
	Freq4M   Frequency = 0x40000000 // 4 Mbps
	Freq8M   Frequency = 0x80000000 // 8 Mbps
)

// Mode selects the SPI clock polarity and phase.
type Mode uint8

const (
	Mode0 Mode = iota // SCK active high, sample on leading edge
	Mode1             // SCK active high, sample on trailing edge
	Mode2             // SCK active low, sample on leading edge
	Mode3             // SCK active low, sample on trailing edge
)

// BitOrder selects which bit of a byte is shifted out first.
type BitOrder uint32

const (
	OrderMSBFirst BitOrder = 0
	OrderLSBFirst BitOrder = 1
)

// CONFIG register fields.
const (
	configOrderPos = 0 // Bit order
	configCPHAPos  = 1 // Clock phase
	configCPOLPos  = 2 // Clock polarity

	configCPHALeading  = 0
	configCPHATrailing = 1

	configCPOLActiveHigh = 0
	configCPOLActiveLow  = 1
)
