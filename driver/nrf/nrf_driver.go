package nrf

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/registers"
)

// PacketBuffer is the radio's DMA arena. Byte 0 holds the on-air length.
// On target it must be a static variable so its address stays valid for
// the lifetime of the driver.
type PacketBuffer [256]byte

// MaxPacketLength is the largest on-air length the driver will program.
const MaxPacketLength = 255

// Driver drives the RADIO state machine through a register file.
// Every returned slice aliases the packet buffer and is only valid until
// the next driver call. A Driver is not safe for concurrent use.
type Driver struct {
	regs      registers.File
	buf       *PacketBuffer
	deviceID  uint64
	pollLimit int
	busAddr   uint32
	busSet    bool
	log       *zap.Logger
}

// Option customizes a Driver.
type Option func(*Driver)

// WithPollLimit bounds every busy-wait to n register polls. Zero means
// wait forever, which is the behaviour on hardware.
func WithPollLimit(n int) Option {
	return func(d *Driver) { d.pollLimit = n }
}

// WithBusAddress sets the address the radio's DMA sees for the packet
// buffer. Without it the buffer's own address is used, which is only
// correct on target.
func WithBusAddress(addr uint32) Option {
	return func(d *Driver) {
		d.busAddr = addr
		d.busSet = true
	}
}

// WithLogger sets the driver's logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// New takes ownership of buf, programs its bus address into PACKETPTR and sets
// the maximum packet length. The device identity is read once here.
func New(regs registers.File, buf *PacketBuffer, opts ...Option) *Driver {
	d := &Driver{regs: regs, buf: buf, log: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}

	if !d.busSet {
		d.busAddr = uint32(uintptr(unsafe.Pointer(&buf[0])))
	}
	regs.Write(registers.PACKETPTR, d.busAddr)
	cfg := registers.DecodePacketConfig1(regs.Read(registers.PCNF1))
	cfg.MaxLength = MaxPacketLength
	regs.Write(registers.PCNF1, cfg.Encode())

	d.deviceID = registers.DeviceID(regs)
	d.log.Info("radio driver ready",
		zap.Stringer("state", d.State()),
		zap.String("device_id", fmt.Sprintf("%016x", d.deviceID)))
	return d
}

// State returns the current radio state.
func (d *Driver) State() registers.RadioState { return registers.GetState(d.regs) }

// DeviceID returns the factory identity read at construction.
func (d *Driver) DeviceID() uint64 { return d.deviceID }

// TransmitBlocking sends frame with the given on-air length and returns
// once the radio is back in TxIdle.
func (d *Driver) TransmitBlocking(frame []byte, onAirLength uint8) error {
	if len(frame) > len(d.buf)-1 {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLong, len(frame))
	}
	d.buf[0] = onAirLength
	copy(d.buf[1:], frame)

	d.regs.Write(registers.SHORTS, 0)
	if d.State().IsRx() {
		if err := d.disable(); err != nil {
			return err
		}
	}
	if d.State() != registers.StateTxIdle {
		registers.Trigger(d.regs, registers.TasksTXEN)
	}
	if err := d.waitState(registers.StateTxIdle); err != nil {
		return d.abort(err)
	}

	d.regs.Write(registers.EventsEND, 0)
	registers.Trigger(d.regs, registers.TasksSTART)
	if err := d.waitEnd(); err != nil {
		return d.abort(err)
	}
	if err := d.waitState(registers.StateTxIdle); err != nil {
		return d.abort(err)
	}
	return nil
}

// ReceiveBlocking waits for one packet and returns the length-prefixed view
// of the packet buffer.
func (d *Driver) ReceiveBlocking() ([]byte, error) {
	d.regs.Write(registers.SHORTS, 0)
	if d.State().IsTx() {
		if err := d.disable(); err != nil {
			return nil, err
		}
	}
	if d.State() != registers.StateRxIdle {
		registers.Trigger(d.regs, registers.TasksRXEN)
	}
	if err := d.waitState(registers.StateRxIdle); err != nil {
		return nil, d.abort(err)
	}

	d.regs.Write(registers.EventsEND, 0)
	registers.Trigger(d.regs, registers.TasksSTART)
	if err := d.waitEnd(); err != nil {
		return nil, d.abort(err)
	}
	if err := d.waitState(registers.StateRxIdle); err != nil {
		return nil, d.abort(err)
	}
	return d.buf[:1+int(d.buf[0])], nil
}

func (d *Driver) disable() error {
	registers.Trigger(d.regs, registers.TasksDISABLE)
	return d.waitState(registers.StateDisabled)
}

// abort stops an operation whose wait ran out, so the next call starts
// from Disabled instead of finding a half-finished transfer. cause is
// returned unless the radio also fails to disable.
func (d *Driver) abort(cause error) error {
	if err := d.disable(); err != nil {
		return err
	}
	return cause
}

func (d *Driver) waitState(want registers.RadioState) error {
	return d.poll(want.String(), func() bool { return d.State() == want })
}

func (d *Driver) waitEnd() error {
	return d.poll("END", func() bool { return d.regs.Read(registers.EventsEND) != 0 })
}

func (d *Driver) poll(what string, done func() bool) error {
	for n := 0; d.pollLimit == 0 || n < d.pollLimit; n++ {
		if done() {
			return nil
		}
	}
	d.log.Warn("poll limit reached", zap.String("waiting_for", what), zap.Int("polls", d.pollLimit))
	return fmt.Errorf("%w: waiting for %s", ErrPollLimit, what)
}
