package mac

import "encoding/binary"

// Header is the MAC header: frame control, sequence number and addressing.
type Header struct {
	FrameType     FrameType
	Security      bool
	FramePending  bool
	AckRequest    bool
	PANIDCompress bool
	// Reserved is frame control bit 7, kept as received.
	Reserved      bool
	SeqNoSuppress bool
	IEPresent     bool
	Version       FrameVersion
	Seq           uint8
	Destination   Address
	Source        Address
}

// FrameControl packs the header flags and address modes.
func (h *Header) FrameControl() uint16 {
	fc := uint16(h.FrameType) & fcTypeMask
	if h.Security {
		fc |= fcSecurity
	}
	if h.FramePending {
		fc |= fcFramePending
	}
	if h.AckRequest {
		fc |= fcAckRequest
	}
	if h.PANIDCompress {
		fc |= fcPANIDCompress
	}
	if h.Reserved {
		fc |= fcReserved
	}
	if h.SeqNoSuppress {
		fc |= fcSeqSuppress
	}
	if h.IEPresent {
		fc |= fcIEPresent
	}
	fc |= uint16(h.Destination.Mode&0x3) << fcDstModeShift
	fc |= uint16(h.Version&0x3) << fcVersionShift
	fc |= uint16(h.Source.Mode&0x3) << fcSrcModeShift
	return fc
}

func (h *Header) appendTo(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, h.FrameControl())
	if !h.SeqNoSuppress {
		dst = append(dst, h.Seq)
	}
	if h.Destination.Mode != AddrNone {
		dst = binary.LittleEndian.AppendUint16(dst, h.Destination.PANID)
		dst = appendAddr(dst, h.Destination)
	}
	if h.Source.Mode != AddrNone {
		if !h.PANIDCompress {
			dst = binary.LittleEndian.AppendUint16(dst, h.Source.PANID)
		}
		dst = appendAddr(dst, h.Source)
	}
	return dst
}

func appendAddr(dst []byte, a Address) []byte {
	switch a.Mode {
	case AddrShort:
		return binary.LittleEndian.AppendUint16(dst, a.Short)
	case AddrExtended:
		return binary.LittleEndian.AppendUint64(dst, a.Extended)
	}
	return dst
}

func (h *Header) decode(data []byte) (int, error) {
	if len(data) < FrameControlSize {
		return 0, ErrParse
	}
	fc := binary.LittleEndian.Uint16(data)
	h.FrameType = FrameType(fc & fcTypeMask)
	h.Security = fc&fcSecurity != 0
	h.FramePending = fc&fcFramePending != 0
	h.AckRequest = fc&fcAckRequest != 0
	h.PANIDCompress = fc&fcPANIDCompress != 0
	h.Reserved = fc&fcReserved != 0
	h.SeqNoSuppress = fc&fcSeqSuppress != 0
	h.IEPresent = fc&fcIEPresent != 0
	h.Destination.Mode = AddressMode(fc>>fcDstModeShift) & 0x3
	h.Version = FrameVersion(fc>>fcVersionShift) & 0x3
	h.Source.Mode = AddressMode(fc>>fcSrcModeShift) & 0x3

	if h.FrameType > FrameTypeCommand || h.Version > Version2015 {
		return 0, ErrParse
	}
	// No auxiliary security header or information element support.
	if h.Security || h.IEPresent {
		return 0, ErrParse
	}
	if h.Destination.Mode == AddrReserved || h.Source.Mode == AddrReserved {
		return 0, ErrParse
	}
	if h.PANIDCompress && h.Source.Mode != AddrNone && h.Destination.Mode == AddrNone {
		return 0, ErrParse
	}

	pos := FrameControlSize
	if !h.SeqNoSuppress {
		if len(data) < pos+SequenceSize {
			return 0, ErrParse
		}
		h.Seq = data[pos]
		pos += SequenceSize
	}

	if h.Destination.Mode != AddrNone {
		n, err := readAddr(data[pos:], &h.Destination, true)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	if h.Source.Mode != AddrNone {
		withPAN := !h.PANIDCompress
		if !withPAN {
			h.Source.PANID = h.Destination.PANID
		}
		n, err := readAddr(data[pos:], &h.Source, withPAN)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

func readAddr(data []byte, a *Address, withPAN bool) (int, error) {
	need := a.size()
	if withPAN {
		need += PANIDSize
	}
	if len(data) < need {
		return 0, ErrParse
	}
	pos := 0
	if withPAN {
		a.PANID = binary.LittleEndian.Uint16(data)
		pos = PANIDSize
	}
	if a.Mode == AddrShort {
		a.Short = binary.LittleEndian.Uint16(data[pos:])
	} else {
		a.Extended = binary.LittleEndian.Uint64(data[pos:])
	}
	return need, nil
}

// Frame is a decoded MAC frame. Beacon is set for beacon frames and Command
// for command frames; Payload holds the remaining bytes (data payload,
// beacon payload) and aliases the decoded input.
type Frame struct {
	Header  Header
	Beacon  Beacon
	Command Command
	Payload []byte
	Footer  [FCSSize]byte
}

// AppendTo appends the encoded frame to dst and returns the extended
// slice. No allocation happens when dst has enough capacity.
func (f *Frame) AppendTo(dst []byte, mode FooterMode) []byte {
	start := len(dst)
	dst = f.Header.appendTo(dst)
	switch f.Header.FrameType {
	case FrameTypeBeacon:
		dst = f.Beacon.appendTo(dst)
	case FrameTypeCommand:
		dst = f.Command.appendTo(dst)
	}
	dst = append(dst, f.Payload...)
	if mode == FooterExplicit {
		dst = AppendFCS(dst, dst[start:])
	}
	return dst
}

// Encode returns the encoded frame in a new slice.
func (f *Frame) Encode(mode FooterMode) []byte {
	return f.AppendTo(make([]byte, 0, MaxPHYPacketSize), mode)
}

// Decode parses a MAC frame. Under FooterExplicit the trailing FCS is
// verified and stored in Footer.
func Decode(data []byte, mode FooterMode) (Frame, error) {
	var f Frame
	if mode == FooterExplicit {
		if len(data) < FCSSize || !CheckFCS(data) {
			return Frame{}, ErrParse
		}
		copy(f.Footer[:], data[len(data)-FCSSize:])
		data = data[:len(data)-FCSSize]
	}

	pos, err := f.Header.decode(data)
	if err != nil {
		return Frame{}, err
	}

	var n int
	switch f.Header.FrameType {
	case FrameTypeBeacon:
		n, err = f.Beacon.decode(data[pos:])
	case FrameTypeCommand:
		n, err = f.Command.decode(data[pos:])
	}
	if err != nil {
		return Frame{}, err
	}
	pos += n

	if pos < len(data) {
		f.Payload = data[pos:]
	}
	return f, nil
}
