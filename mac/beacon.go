package mac

import "encoding/binary"

// Superframe is the superframe specification field of a beacon.
type Superframe struct {
	BeaconOrder          uint8 // bits 0-3
	SuperframeOrder      uint8 // bits 4-7
	FinalCAPSlot         uint8 // bits 8-11
	BatteryLifeExtension bool  // bit 12
	PANCoordinator       bool  // bit 14
	AssociationPermit    bool  // bit 15
}

func (s Superframe) encode() uint16 {
	v := uint16(s.BeaconOrder&0xF) | uint16(s.SuperframeOrder&0xF)<<4 | uint16(s.FinalCAPSlot&0xF)<<8
	if s.BatteryLifeExtension {
		v |= 1 << 12
	}
	if s.PANCoordinator {
		v |= 1 << 14
	}
	if s.AssociationPermit {
		v |= 1 << 15
	}
	return v
}

func decodeSuperframe(v uint16) Superframe {
	return Superframe{
		BeaconOrder:          uint8(v & 0xF),
		SuperframeOrder:      uint8(v>>4) & 0xF,
		FinalCAPSlot:         uint8(v>>8) & 0xF,
		BatteryLifeExtension: v&(1<<12) != 0,
		PANCoordinator:       v&(1<<14) != 0,
		AssociationPermit:    v&(1<<15) != 0,
	}
}

// GTSDescriptor is one guaranteed time slot allocation.
type GTSDescriptor struct {
	Short     uint16
	StartSlot uint8
	Length    uint8
}

// MaxListEntries bounds the GTS and pending address lists (3-bit counts).
const MaxListEntries = 7

// Beacon is the content of a beacon frame. The lists are held inline, the
// counts say how many entries are used. The beacon payload, if any, is
// carried in Frame.Payload.
type Beacon struct {
	Superframe    Superframe
	GTSPermit     bool
	GTSDirections uint8 // 7-bit mask, one bit per descriptor

	GTSCount             uint8
	GTS                  [MaxListEntries]GTSDescriptor
	PendingShortCount    uint8
	PendingShort         [MaxListEntries]uint16
	PendingExtendedCount uint8
	PendingExtended      [MaxListEntries]uint64
}

// GTSList returns the used GTS descriptors.
func (b *Beacon) GTSList() []GTSDescriptor { return b.GTS[:clampCount(b.GTSCount)] }

// PendingShortList returns the used pending short addresses.
func (b *Beacon) PendingShortList() []uint16 { return b.PendingShort[:clampCount(b.PendingShortCount)] }

// PendingExtendedList returns the used pending extended addresses.
func (b *Beacon) PendingExtendedList() []uint64 {
	return b.PendingExtended[:clampCount(b.PendingExtendedCount)]
}

func clampCount(n uint8) int {
	if n > MaxListEntries {
		return MaxListEntries
	}
	return int(n)
}

// appendTo writes the beacon content. Counts above seven are clamped.
func (b *Beacon) appendTo(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, b.Superframe.encode())

	gts := b.GTSList()
	spec := byte(len(gts))
	if b.GTSPermit {
		spec |= 1 << 7
	}
	dst = append(dst, spec)
	if len(gts) > 0 {
		dst = append(dst, b.GTSDirections&0x7F)
		for _, g := range gts {
			dst = binary.LittleEndian.AppendUint16(dst, g.Short)
			dst = append(dst, g.StartSlot&0xF|g.Length<<4&0xF0)
		}
	}

	shorts, exts := b.PendingShortList(), b.PendingExtendedList()
	dst = append(dst, byte(len(shorts))|byte(len(exts))<<4)
	for _, s := range shorts {
		dst = binary.LittleEndian.AppendUint16(dst, s)
	}
	for _, e := range exts {
		dst = binary.LittleEndian.AppendUint64(dst, e)
	}
	return dst
}

func (b *Beacon) decode(data []byte) (int, error) {
	// superframe (2), GTS spec (1), pending address spec (1)
	if len(data) < 4 {
		return 0, ErrParse
	}
	b.Superframe = decodeSuperframe(binary.LittleEndian.Uint16(data[0:2]))
	pos := 2

	spec := data[pos]
	pos++
	b.GTSPermit = spec&(1<<7) != 0
	if n := int(spec & 0x7); n > 0 {
		if len(data) < pos+1+3*n+1 {
			return 0, ErrParse
		}
		b.GTSDirections = data[pos] & 0x7F
		pos++
		b.GTSCount = uint8(n)
		for i := 0; i < n; i++ {
			b.GTS[i] = GTSDescriptor{
				Short:     binary.LittleEndian.Uint16(data[pos : pos+2]),
				StartSlot: data[pos+2] & 0xF,
				Length:    data[pos+2] >> 4,
			}
			pos += 3
		}
	}

	pending := data[pos]
	pos++
	nShort, nExt := int(pending&0x7), int(pending>>4&0x7)
	if len(data) < pos+2*nShort+8*nExt {
		return 0, ErrParse
	}
	b.PendingShortCount = uint8(nShort)
	for i := 0; i < nShort; i++ {
		b.PendingShort[i] = binary.LittleEndian.Uint16(data[pos : pos+2])
		pos += 2
	}
	b.PendingExtendedCount = uint8(nExt)
	for i := 0; i < nExt; i++ {
		b.PendingExtended[i] = binary.LittleEndian.Uint64(data[pos : pos+8])
		pos += 8
	}
	return pos, nil
}
