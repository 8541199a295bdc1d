// Package registers describes the nRF52840 RADIO peripheral and the factory
// information block as a set of named 32-bit registers behind the File
// interface, so the driver logic can run against real hardware or memory.
package registers

// File is read/write access to memory-mapped peripheral registers.
// Implementations must not cache: every Read observes the current value.
type File interface {
	Read(r Register) uint32
	Write(r Register, v uint32)
}

// Register is the absolute bus address of a 32-bit register.
type Register uint32

const (
	RadioBase   Register = 0x40001000
	FactoryBase Register = 0x10000000

	// PageSize is the span of one peripheral register block.
	PageSize = 0x1000

	// Data RAM, the only memory the radio's EasyDMA can reach.
	DataRAMBase = 0x20000000
	DataRAMSize = 0x40000
)

// Tasks (write 1 to trigger).
const (
	TasksTXEN      = RadioBase + 0x000
	TasksRXEN      = RadioBase + 0x004
	TasksSTART     = RadioBase + 0x008
	TasksSTOP      = RadioBase + 0x00C
	TasksDISABLE   = RadioBase + 0x010
	TasksRSSISTART = RadioBase + 0x014
	TasksRSSISTOP  = RadioBase + 0x018
	TasksBCSTART   = RadioBase + 0x01C
	TasksBCSTOP    = RadioBase + 0x020
	TasksEDSTART   = RadioBase + 0x024
	TasksEDSTOP    = RadioBase + 0x028
	TasksCCASTART  = RadioBase + 0x02C
	TasksCCASTOP   = RadioBase + 0x030
)

// Events (read, write 0 to clear).
const (
	EventsREADY   = RadioBase + 0x100
	EventsADDRESS = RadioBase + 0x104
	EventsPAYLOAD = RadioBase + 0x108
	EventsEND     = RadioBase + 0x10C
)

// SHORTS chains events to tasks in hardware. This driver always clears it.
const SHORTS = RadioBase + 0x200

// Received packet details.
const (
	CRCSTATUS = RadioBase + 0x400
	RXMATCH   = RadioBase + 0x408
	RXCRC     = RadioBase + 0x40C
	DAI       = RadioBase + 0x410
)

// Configuration and state.
const (
	PACKETPTR   = RadioBase + 0x504
	FREQUENCY   = RadioBase + 0x508
	TXPOWER     = RadioBase + 0x50C
	MODE        = RadioBase + 0x510
	PCNF0       = RadioBase + 0x514
	PCNF1       = RadioBase + 0x518
	BASE0       = RadioBase + 0x51C
	BASE1       = RadioBase + 0x520
	PREFIX0     = RadioBase + 0x524
	PREFIX1     = RadioBase + 0x528
	TXADDRESS   = RadioBase + 0x52C
	RXADDRESSES = RadioBase + 0x530
	CRCCNF      = RadioBase + 0x534
	CRCPOLY     = RadioBase + 0x538
	CRCINIT     = RadioBase + 0x53C
	TIFS        = RadioBase + 0x544
	RSSISAMPLE  = RadioBase + 0x548
	STATE       = RadioBase + 0x550
	POWER       = RadioBase + 0xFFC
)

// Factory information: the 64-bit device identifier, high word first.
const (
	DeviceIDHigh = FactoryBase + 0x060
	DeviceIDLow  = FactoryBase + 0x064
)

// Trigger fires a task register.
func Trigger(f File, task Register) { f.Write(task, 1) }

// GetState reads the radio state machine.
func GetState(f File) RadioState { return RadioState(f.Read(STATE) & 0xF) }

// DeviceID combines the two factory identifier words into the device's
// 64-bit long address. The words are read-only and never written.
func DeviceID(f File) uint64 {
	return uint64(f.Read(DeviceIDHigh))<<32 | uint64(f.Read(DeviceIDLow))
}
