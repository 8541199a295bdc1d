package mac

// IEEE 802.15.4 MAC constants. Multi-byte fields are little-endian on air.
const (
	// Frame layout:
	//   FrameControl (2) | Seq (0/1) | DstPAN (0/2) | DstAddr (0/2/8) |
	//   SrcPAN (0/2) | SrcAddr (0/2/8) | Content | Payload | FCS (0/2)
	FrameControlSize = 2
	SequenceSize     = 1
	PANIDSize        = 2
	ShortAddrSize    = 2
	ExtendedAddrSize = 8
	FCSSize          = 2

	// MaxPHYPacketSize is aMaxPHYPacketSize, the largest PSDU including FCS.
	MaxPHYPacketSize = 127

	BroadcastPANID = 0xFFFF
	BroadcastShort = 0xFFFF

	// Short address values that mean "no short address assigned".
	ShortAddrUnassigned = 0xFFFE
)

// FrameType is the frame control frame type field (bits 0-2).
type FrameType uint8

const (
	FrameTypeBeacon  FrameType = 0
	FrameTypeData    FrameType = 1
	FrameTypeAck     FrameType = 2
	FrameTypeCommand FrameType = 3
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeBeacon:
		return "Beacon"
	case FrameTypeData:
		return "Data"
	case FrameTypeAck:
		return "Ack"
	case FrameTypeCommand:
		return "Command"
	}
	return "Unknown"
}

// AddressMode is the addressing mode field of the frame control.
type AddressMode uint8

const (
	AddrNone     AddressMode = 0
	AddrReserved AddressMode = 1
	AddrShort    AddressMode = 2
	AddrExtended AddressMode = 3
)

// FrameVersion is the frame control frame version field.
type FrameVersion uint8

const (
	Version2003 FrameVersion = 0
	Version2006 FrameVersion = 1
	Version2015 FrameVersion = 2
)

// Frame control bit positions.
const (
	fcTypeMask      = 0x0007
	fcSecurity      = 1 << 3
	fcFramePending  = 1 << 4
	fcAckRequest    = 1 << 5
	fcPANIDCompress = 1 << 6
	fcReserved      = 1 << 7
	fcSeqSuppress   = 1 << 8
	fcIEPresent     = 1 << 9
	fcDstModeShift  = 10
	fcVersionShift  = 12
	fcSrcModeShift  = 14
)

// FooterMode selects how the 2-byte FCS is handled by the codec.
type FooterMode uint8

const (
	// FooterNone leaves the FCS to the radio: nothing is appended on encode
	// and nothing is consumed on decode.
	FooterNone FooterMode = iota
	// FooterExplicit appends the FCS on encode and verifies it on decode.
	FooterExplicit
)
