//go:build tinygo

package spim

import "unsafe"

// SPIM peripheral instances at their nRF52 base addresses.
var (
	SPIM0 = (*RegisterBlock)(unsafe.Pointer(uintptr(0x40003000)))
	SPIM1 = (*RegisterBlock)(unsafe.Pointer(uintptr(0x40004000)))
	SPIM2 = (*RegisterBlock)(unsafe.Pointer(uintptr(0x40023000)))
)
