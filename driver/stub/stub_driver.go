package stub

import (
	"errors"
	"sync"
	"time"

	"github.com/ystepanoff/nrfbee/mac"
)

var (
	// ErrTimeout reports Timeout() == true so callers can retry.
	ErrTimeout error = timeoutError("stub: receive timeout")
	ErrClosed        = errors.New("stub: driver closed")
)

type timeoutError string

func (e timeoutError) Error() string { return string(e) }
func (e timeoutError) Timeout() bool { return true }

// Responder produces the frames a peer sends back in reply to a
// transmitted frame. Replies are queued for reception in order.
type Responder func(frame []byte) [][]byte

// Driver implements a mock radio driver for host-side testing
type Driver struct {
	mu      sync.Mutex
	rxBuf   ringBuffer
	txBuf   ringBuffer
	timeout time.Duration
	respond Responder
	closed  bool

	// pkt backs the view returned by ReceiveBlocking.
	pkt [256]byte
}

type Option func(*Driver)

// WithTimeout bounds ReceiveBlocking. Zero blocks until a frame arrives
// or the driver is closed.
func WithTimeout(d time.Duration) Option {
	return func(drv *Driver) { drv.timeout = d }
}

// WithResponder attaches a simulated peer.
func WithResponder(r Responder) Option {
	return func(drv *Driver) { drv.respond = r }
}

func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) TransmitBlocking(frame []byte, onAirLength uint8) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	sent := make([]byte, len(frame))
	copy(sent, frame)
	d.txBuf.push(sent)
	respond := d.respond
	d.mu.Unlock()

	if respond != nil {
		for _, reply := range respond(sent) {
			d.InjectRx(reply)
		}
	}
	return nil
}

// ReceiveBlocking returns the next queued packet, length-prefixed. The view
// is valid until the next call.
func (d *Driver) ReceiveBlocking() ([]byte, error) {
	var deadline time.Time
	if d.timeout > 0 {
		deadline = time.Now().Add(d.timeout)
	}
	for {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return nil, ErrClosed
		}
		packet, ok := d.rxBuf.pop()
		if ok {
			n := copy(d.pkt[:], packet)
			d.mu.Unlock()
			return d.pkt[:n], nil
		}
		d.mu.Unlock()

		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		time.Sleep(1 * time.Millisecond)
	}
}

// InjectRx queues a MAC frame as the radio delivers it: a length prefix
// covering the frame and its FCS, the frame, then the FCS.
func (d *Driver) InjectRx(frame []byte) {
	packet := make([]byte, 0, 1+len(frame)+mac.FCSSize)
	packet = append(packet, byte(len(frame)+mac.FCSSize))
	packet = append(packet, frame...)
	packet = mac.AppendFCS(packet, frame)
	d.InjectRaw(packet)
}

// InjectRaw queues packet exactly as given.
func (d *Driver) InjectRaw(packet []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := make([]byte, len(packet))
	copy(p, packet)
	d.rxBuf.push(p)
}

func (d *Driver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBuf.snapshot()
}

// Close unblocks pending and future receives.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		// Overwrite the oldest when buffer is full to keep memory bounded
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	frame := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return frame, true
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, rb.count)
	idx := 0
	i := rb.head
	for c := 0; c < rb.count; c++ {
		p := rb.data[i]
		cp := make([]byte, len(p))
		copy(cp, p)
		out[idx] = cp
		idx++
		i = (i + 1) % ringCapacity
	}
	return out
}
