package transport

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/mac"
)

const (
	// AckAttempts bounds the receptions WriteAndExpectAck waits through.
	AckAttempts = 30

	BeaconRequestSeq      uint8 = 42
	AssociationRequestSeq uint8 = 43
	DataRequestSeq        uint8 = 44
)

// AssociationState is the progress of the join handshake.
type AssociationState uint8

const (
	NotAssociated AssociationState = iota
	AssociationRequested
	AwaitingResponse
	Associated
	DataRequestSent
	DataRequestAcked
)

func (s AssociationState) String() string {
	switch s {
	case NotAssociated:
		return "NotAssociated"
	case AssociationRequested:
		return "AssociationRequested"
	case AwaitingResponse:
		return "AwaitingResponse"
	case Associated:
		return "Associated"
	case DataRequestSent:
		return "DataRequestSent"
	case DataRequestAcked:
		return "DataRequestAcked"
	}
	return "Unknown"
}

// AssociationSession is the device's view of its membership in the PAN.
type AssociationSession struct {
	State AssociationState
	// ShortAddress is valid when HasShortAddress.
	ShortAddress    uint16
	HasShortAddress bool
	// ExtendedActive is set once the coordinator has acknowledged the
	// association request; from then on frames sent to the extended
	// address are accepted.
	ExtendedActive bool
}

// BroadcastBeacon transmits a beacon request. No state changes.
func (s *Session) BroadcastBeacon() error {
	req := mac.BeaconRequest(BeaconRequestSeq)
	if err := s.transmit(req.AppendTo(s.txBuf[:0], mac.FooterNone)); err != nil {
		return fmt.Errorf("failed to send beacon request: %w", err)
	}
	s.log.Info("beacon request sent", zap.Uint8("seq", BeaconRequestSeq))
	return nil
}

// WriteAndExpectAck transmits frame and then receives up to AckAttempts
// times looking for an acknowledgement of seq. Frames that fail to decode
// or do not match, and receives that time out, count as attempts. Other
// driver errors end the wait.
func (s *Session) WriteAndExpectAck(seq uint8, frame []byte) error {
	if err := s.transmit(frame); err != nil {
		return err
	}
	for attempt := 0; attempt < AckAttempts; attempt++ {
		f, err := s.ReceiveOnce()
		if err != nil {
			if errors.Is(err, mac.ErrParse) || IsTimeout(err) {
				continue
			}
			return err
		}
		if f.Header.FrameType == mac.FrameTypeAck && f.Header.Seq == seq {
			return nil
		}
	}
	return fmt.Errorf("%w: seq %d after %d attempts", ErrAckTimeout, seq, AckAttempts)
}

// Associate asks the coordinator to admit the device, then polls it with
// a data request. The assigned short address arrives later as an
// association response handled by ReceiveOnce. A failed phase leaves the
// state where it was before that phase.
func (s *Session) Associate() error {
	prior := s.assoc.State
	s.assoc.State = AssociationRequested

	req := mac.AssociationRequest(s.cfg.ExtendedAddress, s.cfg.PANID, s.cfg.Coordinator,
		AssociationRequestSeq, s.cfg.Capabilities)
	if err := s.WriteAndExpectAck(AssociationRequestSeq, req.AppendTo(s.txBuf[:0], mac.FooterNone)); err != nil {
		s.assoc.State = prior
		s.log.Warn("association request failed", zap.Error(err))
		return fmt.Errorf("association request: %w", err)
	}
	s.assoc.ExtendedActive = true
	s.assoc.State = AwaitingResponse
	s.log.Info("association request acknowledged")

	prior = s.assoc.State
	s.assoc.State = DataRequestSent
	poll := mac.DataRequest(s.cfg.PANID, s.cfg.ExtendedAddress, s.cfg.PANID, s.cfg.Coordinator, DataRequestSeq)
	if err := s.WriteAndExpectAck(DataRequestSeq, poll.AppendTo(s.txBuf[:0], mac.FooterNone)); err != nil {
		if s.assoc.HasShortAddress && prior < Associated {
			prior = Associated
		}
		s.assoc.State = prior
		s.log.Warn("data request failed", zap.Error(err))
		return fmt.Errorf("data request: %w", err)
	}
	s.assoc.State = DataRequestAcked
	s.log.Info("data request acknowledged")
	return nil
}

func (s *Session) onAssociationResponse(cmd mac.Command) {
	if cmd.Status != mac.AssociationSuccessful && cmd.Status != mac.AssociationFastSuccessful {
		s.log.Warn("association rejected", zap.Stringer("status", cmd.Status))
		return
	}
	s.assoc.ShortAddress = cmd.ShortAddress
	s.assoc.HasShortAddress = true
	if s.assoc.State < Associated {
		s.assoc.State = Associated
	}
	s.log.Info("associated", zap.String("short_addr", fmt.Sprintf("%04x", cmd.ShortAddress)))
}

func extString(v uint64) string { return fmt.Sprintf("%016x", v) }
