package transport

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/mac"
	"github.com/ystepanoff/nrfbee/nwk"
)

// SessionConfig identifies the device and the network it joins.
type SessionConfig struct {
	// ExtendedAddress is the factory device identity.
	ExtendedAddress uint64
	PANID           uint16
	Coordinator     uint16
	Capabilities    mac.CapabilityInfo
}

// DataHandler receives NWK frames carried by MAC data frames. Both frames
// alias session buffers and are only valid during the call.
type DataHandler func(m *mac.Frame, n *nwk.Frame)

// Session runs the MAC layer of a joining end device over a RadioDriver.
// It is not safe for concurrent use.
type Session struct {
	driver  RadioDriver
	cfg     SessionConfig
	assoc   AssociationSession
	log     *zap.Logger
	handler DataHandler

	txBuf [mac.MaxPHYPacketSize]byte
	rxBuf [256]byte
}

// NewSession creates a session in the NotAssociated state. A nil logger
// disables logging.
func NewSession(d RadioDriver, cfg SessionConfig, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		driver: d,
		cfg:    cfg,
		log:    log.With(zap.String("ext_addr", extString(cfg.ExtendedAddress))),
	}
}

// Association returns a copy of the association state.
func (s *Session) Association() AssociationSession { return s.assoc }

// HandleData registers the handler for inbound data frames.
func (s *Session) HandleData(h DataHandler) { s.handler = h }

func (s *Session) transmit(frame []byte) error {
	return s.driver.TransmitBlocking(frame, uint8(len(frame)+mac.FCSSize))
}

// receive copies one packet out of the driver buffer without its length
// prefix and hardware FCS.
func (s *Session) receive() ([]byte, error) {
	raw, err := s.driver.ReceiveBlocking()
	if err != nil {
		return nil, err
	}
	if len(raw) < 1 {
		return nil, mac.ErrParse
	}
	n := int(raw[0])
	if n < mac.FCSSize || n > len(raw)-1 {
		return nil, mac.ErrParse
	}
	return s.rxBuf[:copy(s.rxBuf[:], raw[1:1+n-mac.FCSSize])], nil
}

// ReceiveOnce receives and decodes one frame. Frames addressed to this
// device are acknowledged when requested and their command content is
// applied to the association state. The frame is returned either way and
// stays valid until the next receive.
func (s *Session) ReceiveOnce() (mac.Frame, error) {
	body, err := s.receive()
	if err != nil {
		return mac.Frame{}, err
	}
	f, err := mac.Decode(body, mac.FooterNone)
	if err != nil {
		return mac.Frame{}, err
	}

	if !s.addressedToMe(f.Header.Destination) {
		return f, nil
	}
	if f.Header.AckRequest {
		ack := mac.Ack(f.Header.Seq)
		if err := s.transmit(ack.AppendTo(s.txBuf[:0], mac.FooterNone)); err != nil {
			return f, err
		}
		s.log.Debug("ack sent", zap.Uint8("seq", f.Header.Seq))
	}
	s.dispatch(&f)
	return f, nil
}

func (s *Session) addressedToMe(dst mac.Address) bool {
	switch dst.Mode {
	case mac.AddrShort:
		return s.assoc.HasShortAddress && dst.Short == s.assoc.ShortAddress && !dst.IsBroadcast()
	case mac.AddrExtended:
		return s.assoc.ExtendedActive && dst.Extended == s.cfg.ExtendedAddress
	}
	return false
}

func (s *Session) dispatch(f *mac.Frame) {
	if f.Header.FrameType != mac.FrameTypeCommand {
		return
	}
	switch f.Command.ID {
	case mac.CmdAssociationResponse:
		s.onAssociationResponse(f.Command)
	}
}

// ProcessPacket runs one iteration of the receive loop: frames that fail
// to decode are dropped, data frames for this device (or broadcast) are
// parsed as NWK frames and passed to the data handler. Only driver errors
// are returned.
func (s *Session) ProcessPacket() error {
	f, err := s.ReceiveOnce()
	if err != nil {
		if errors.Is(err, mac.ErrParse) {
			s.log.Debug("dropping undecodable frame")
			return nil
		}
		return err
	}
	if f.Header.FrameType != mac.FrameTypeData {
		return nil
	}
	dst := f.Header.Destination
	if !dst.IsBroadcast() && !s.addressedToMe(dst) {
		return nil
	}

	n, err := nwk.ParsePacket(f.Payload)
	if err != nil {
		s.log.Debug("dropping undecodable NWK frame", zap.Uint8("seq", f.Header.Seq))
		return nil
	}
	s.log.Debug("nwk frame",
		zap.Stringer("type", n.FrameControl.FrameType),
		zap.Uint16("src", n.Source),
		zap.Uint16("dst", n.Destination),
		zap.Bool("secured", n.Secured()),
		zap.Int("payload_len", len(n.Payload)))
	if s.handler != nil {
		s.handler(&f, &n)
	}
	return nil
}

// Run processes packets until ctx is cancelled or the driver fails. A
// blocked receive is not interrupted by cancellation.
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.ProcessPacket(); err != nil {
			return err
		}
	}
}
