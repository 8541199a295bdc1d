package stub

import (
	"sync"

	"github.com/ystepanoff/nrfbee/mac"
)

// Coordinator simulates a PAN coordinator that admits every device asking
// to join. Use its Respond method as a Responder.
type Coordinator struct {
	PANID    uint16
	Short    uint16
	Extended uint64
	// Assign is the short address handed to joining devices.
	Assign uint16
	Status mac.AssociationStatus

	mu      sync.Mutex
	seq     uint8
	pending map[uint64]bool
}

// Respond acknowledges frames that request it, answers beacon requests
// with a beacon and answers the data request of a device that asked to
// associate with an association response.
func (c *Coordinator) Respond(frame []byte) [][]byte {
	f, err := mac.Decode(frame, mac.FooterNone)
	if err != nil || f.Header.FrameType == mac.FrameTypeAck {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var out [][]byte
	if f.Header.AckRequest {
		out = append(out, mac.EncodeAck(f.Header.Seq))
	}
	if f.Header.FrameType != mac.FrameTypeCommand {
		return out
	}

	src := f.Header.Source
	switch f.Command.ID {
	case mac.CmdBeaconRequest:
		out = append(out, c.beacon())
	case mac.CmdAssociationRequest:
		if src.Mode == mac.AddrExtended {
			if c.pending == nil {
				c.pending = make(map[uint64]bool)
			}
			c.pending[src.Extended] = true
		}
	case mac.CmdDataRequest:
		if src.Mode == mac.AddrExtended && c.pending[src.Extended] {
			delete(c.pending, src.Extended)
			out = append(out, c.associationResponse(src.Extended))
		}
	}
	return out
}

func (c *Coordinator) nextSeq() uint8 {
	c.seq++
	return c.seq
}

func (c *Coordinator) beacon() []byte {
	f := mac.Frame{
		Header: mac.Header{
			FrameType: mac.FrameTypeBeacon,
			Seq:       c.nextSeq(),
			Source:    mac.ShortAddress(c.PANID, c.Short),
		},
		Beacon: mac.Beacon{
			Superframe: mac.Superframe{
				BeaconOrder:       15,
				SuperframeOrder:   15,
				FinalCAPSlot:      15,
				PANCoordinator:    true,
				AssociationPermit: true,
			},
		},
	}
	return f.Encode(mac.FooterNone)
}

func (c *Coordinator) associationResponse(device uint64) []byte {
	f := mac.Frame{
		Header: mac.Header{
			FrameType:     mac.FrameTypeCommand,
			AckRequest:    true,
			PANIDCompress: true,
			Seq:           c.nextSeq(),
			Destination:   mac.ExtendedAddress(c.PANID, device),
			Source:        mac.ExtendedAddress(c.PANID, c.Extended),
		},
		Command: mac.Command{
			ID:           mac.CmdAssociationResponse,
			ShortAddress: c.Assign,
			Status:       c.Status,
		},
	}
	return f.Encode(mac.FooterNone)
}
