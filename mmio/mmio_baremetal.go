//go:build tinygo

package mmio

import "runtime/volatile"

// Register32 is TinyGo's volatile register type. The compiler lowers
// every access to a volatile load or store.
type Register32 = volatile.Register32
