// Package nwk parses Zigbee network layer frames carried in MAC data
// frame payloads. Parsing is read-only: secured payloads are not
// decrypted and the MIC is not verified.
package nwk

// Frame is a parsed NWK frame. Optional fields are only meaningful when
// the matching FrameControl flag is set. Payload aliases the input.
type Frame struct {
	FrameControl        FrameControl
	Destination         uint16
	Source              uint16
	Radius              uint8
	Seq                 uint8
	ExtendedDestination uint64
	ExtendedSource      uint64
	MulticastControl    uint8
	// RelayCount and RelayIndex are kept; the relay list is skipped.
	RelayCount uint8
	RelayIndex uint8
	Security   SecurityHeader
	Payload    []byte
}

// HeaderSize is the size of the fixed part of the NWK header.
const HeaderSize = 8

// ParsePacket parses data as a NWK frame. Any short read yields ErrParse.
func ParsePacket(data []byte) (Frame, error) {
	var f Frame
	r := &reader{buf: data}

	fc, ok := r.u16()
	if !ok {
		return Frame{}, ErrParse
	}
	f.FrameControl = ParseFrameControl(fc)

	if f.Destination, ok = r.u16(); !ok {
		return Frame{}, ErrParse
	}
	if f.Source, ok = r.u16(); !ok {
		return Frame{}, ErrParse
	}
	if f.Radius, ok = r.u8(); !ok {
		return Frame{}, ErrParse
	}
	if f.Seq, ok = r.u8(); !ok {
		return Frame{}, ErrParse
	}

	if f.FrameControl.DestinationPresent {
		if f.ExtendedDestination, ok = r.u64(); !ok {
			return Frame{}, ErrParse
		}
	}
	if f.FrameControl.SourceAddressPresent {
		if f.ExtendedSource, ok = r.u64(); !ok {
			return Frame{}, ErrParse
		}
	}
	if f.FrameControl.MulticastPresent {
		if f.MulticastControl, ok = r.u8(); !ok {
			return Frame{}, ErrParse
		}
	}
	if f.FrameControl.SourceRoutePresent {
		if f.RelayCount, ok = r.u8(); !ok {
			return Frame{}, ErrParse
		}
		if f.RelayIndex, ok = r.u8(); !ok {
			return Frame{}, ErrParse
		}
		if _, ok = r.take(int(f.RelayCount)); !ok {
			return Frame{}, ErrParse
		}
	}

	rest := data[r.pos:]
	if f.FrameControl.SecurityPresent {
		sec, err := parseSecurityHeader(r, data)
		if err != nil {
			return Frame{}, err
		}
		f.Security = sec
		rest = data[r.pos : len(data)-MICSize]
	}
	if len(rest) > 0 {
		f.Payload = rest
	}
	return f, nil
}

// Secured reports whether the frame carried a security header.
func (f *Frame) Secured() bool { return f.FrameControl.SecurityPresent }
