package nwk

// KeyIdentifier is the key identifier of the security control field
// (bits 3-4).
type KeyIdentifier uint8

const (
	KeyData      KeyIdentifier = 0
	KeyNetwork   KeyIdentifier = 1
	KeyTransport KeyIdentifier = 2
	KeyLoad      KeyIdentifier = 3
)

func (k KeyIdentifier) String() string {
	switch k {
	case KeyData:
		return "Data"
	case KeyNetwork:
		return "Network"
	case KeyTransport:
		return "KeyTransport"
	}
	return "KeyLoad"
}

// MICSize is the length of the message integrity code in bytes.
const MICSize = 4

// SecurityHeader is the auxiliary NWK security header plus the MIC taken
// from the end of the packet.
type SecurityHeader struct {
	Control       uint8
	KeyID         KeyIdentifier
	ExtendedNonce bool
	// UsingEncryption and MICLength do not follow the security level bits
	// of Control: frames are always treated as ENC-MIC-32.
	UsingEncryption   bool
	MICLength         int
	FrameCounter      uint32
	ExtendedSource    uint64 // valid when ExtendedNonce
	KeySequenceNumber uint8
	MIC               [MICSize]byte
}

// parseSecurityHeader reads the header at r's cursor. packet is the whole
// NWK input, whose last MICSize bytes are the MIC.
func parseSecurityHeader(r *reader, packet []byte) (SecurityHeader, error) {
	var h SecurityHeader
	ctl, ok := r.u8()
	if !ok {
		return h, ErrParse
	}
	h.Control = ctl
	h.KeyID = KeyIdentifier(ctl>>3) & 0x3
	h.ExtendedNonce = ctl&(1<<5) != 0
	h.UsingEncryption = true
	h.MICLength = MICSize

	if h.FrameCounter, ok = r.u32(); !ok {
		return h, ErrParse
	}
	if h.ExtendedNonce {
		if h.ExtendedSource, ok = r.u64(); !ok {
			return h, ErrParse
		}
	}
	if h.KeySequenceNumber, ok = r.u8(); !ok {
		return h, ErrParse
	}

	if r.remaining() < MICSize {
		return h, ErrParse
	}
	copy(h.MIC[:], packet[len(packet)-MICSize:])
	return h, nil
}
