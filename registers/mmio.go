//go:build tinygo || baremetal

package registers

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO accesses the registers at their physical addresses. Only valid on
// the target, where the RADIO and FICR blocks are mapped at fixed locations.
type MMIO struct{}

func (MMIO) Read(r Register) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(r))).Get()
}

func (MMIO) Write(r Register, v uint32) {
	(*volatile.Register32)(unsafe.Pointer(uintptr(r))).Set(v)
}
