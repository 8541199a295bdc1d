//go:build linux && !tinygo && !baremetal

package registers

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Window is a File over the RADIO and FICR pages mapped from a device file
// such as /dev/mem, a UIO node, or an emulator's shared-memory peripheral
// file. The file offset of each page equals its bus address.
type Window struct {
	fd      int
	radio   []byte
	factory []byte
	dma     [][]byte
}

// OpenWindow maps both register pages from path.
func OpenWindow(path string) (*Window, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	radio, err := unix.Mmap(fd, int64(RadioBase), PageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to map radio page: %w", err)
	}

	factory, err := unix.Mmap(fd, int64(FactoryBase), PageSize, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Munmap(radio)
		unix.Close(fd)
		return nil, fmt.Errorf("failed to map factory page: %w", err)
	}

	return &Window{fd: fd, radio: radio, factory: factory}, nil
}

func (w *Window) word(r Register) *uint32 {
	switch {
	case r >= RadioBase && r < RadioBase+PageSize:
		return (*uint32)(unsafe.Pointer(&w.radio[r-RadioBase]))
	case r >= FactoryBase && r < FactoryBase+PageSize:
		return (*uint32)(unsafe.Pointer(&w.factory[r-FactoryBase]))
	}
	panic(fmt.Errorf("%w: 0x%08X", ErrUnmappedRegister, uint32(r)))
}

func (w *Window) Read(r Register) uint32 { return atomic.LoadUint32(w.word(r)) }

func (w *Window) Write(r Register, v uint32) {
	if r >= FactoryBase && r < FactoryBase+PageSize {
		panic(fmt.Errorf("%w: factory page is read-only", ErrUnmappedRegister))
	}
	atomic.StoreUint32(w.word(r), v)
}

// MapDMA maps size bytes of memory at bus address addr from the same
// device file, for buffers the peripheral reads and writes directly.
// The mapping is released by Close.
func (w *Window) MapDMA(addr uint32, size int) ([]byte, error) {
	if addr%4 != 0 || size <= 0 || uint64(addr)+uint64(size) > 1<<32 {
		return nil, fmt.Errorf("%w: 0x%08X+%d", ErrDMARegion, addr, size)
	}
	pageSize := unix.Getpagesize()
	start := int64(addr) &^ int64(pageSize-1)
	off := int(int64(addr) - start)
	length := (off + size + pageSize - 1) &^ (pageSize - 1)

	m, err := unix.Mmap(w.fd, start, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to map DMA region 0x%08X: %w", addr, err)
	}
	w.dma = append(w.dma, m)
	return m[off : off+size : off+size], nil
}

// Close unmaps all pages and closes the device file.
func (w *Window) Close() error {
	var firstErr error
	for _, m := range w.dma {
		if err := unix.Munmap(m); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.dma = nil
	if err := unix.Munmap(w.radio); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := unix.Munmap(w.factory); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := unix.Close(w.fd); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
