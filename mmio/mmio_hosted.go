//go:build !tinygo

// Package mmio provides the 32-bit volatile register cell used by the
// peripheral register blocks in this module.
//
// On TinyGo builds Register32 is the compiler's volatile register type,
// so every access is a true volatile load or store on the hardware. On
// hosted builds the same API is backed by sync/atomic, which likewise
// guarantees that no access is elided or reordered; this lets a
// register block live in ordinary memory and be driven by a simulated
// peripheral during go test.
package mmio

import "sync/atomic"

// Register32 is a single 32-bit memory-mapped hardware register.
// It is exactly 4 bytes in both builds, so structs of Register32
// fields keep their datasheet byte offsets.
type Register32 struct {
	Reg uint32
}

// Get returns the register value.
func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

// Set writes v to the register.
func (r *Register32) Set(v uint32) {
	atomic.StoreUint32(&r.Reg, v)
}

// SetBits sets the bits in mask, leaving the others unchanged.
func (r *Register32) SetBits(mask uint32) {
	r.Set(r.Get() | mask)
}

// ClearBits clears the bits in mask, leaving the others unchanged.
func (r *Register32) ClearBits(mask uint32) {
	r.Set(r.Get() &^ mask)
}

// HasBits reports whether any bit in mask is set.
func (r *Register32) HasBits(mask uint32) bool {
	return r.Get()&mask != 0
}

// ReplaceBits writes value into the field of width mask at bit
// position pos, leaving the rest of the register unchanged.
func (r *Register32) ReplaceBits(value, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | value<<pos)
}
