package registers

import "fmt"

// PreambleType is the PCNF0.PLEN field.
type PreambleType uint8

const (
	Preamble8Bit      PreambleType = 0
	Preamble16Bit     PreambleType = 1
	Preamble32BitZero PreambleType = 2
	PreambleLongRange PreambleType = 3
)

// PacketConfig0 is the on-air packet layout (PCNF0).
//
//	bits  0-3  LFLEN   length field width in bits
//	bit   8    S0LEN   S0 field present (1 byte)
//	bits 16-19 S1LEN   S1 field width in bits
//	bit  20    S1INCL  S1 always included in RAM
//	bits 24-25 PLEN    preamble type
//	bit  26    CRCINC  length field includes the CRC
type PacketConfig0 struct {
	LengthBits  uint8
	S0Byte      bool
	S1Bits      uint8
	S1InRAM     bool
	Preamble    PreambleType
	CRCInLength bool
}

// Encode packs the configuration into the PCNF0 register value.
func (c PacketConfig0) Encode() uint32 {
	v := uint32(c.LengthBits & 0xF)
	if c.S0Byte {
		v |= 1 << 8
	}
	v |= uint32(c.S1Bits&0xF) << 16
	if c.S1InRAM {
		v |= 1 << 20
	}
	v |= uint32(c.Preamble&0x3) << 24
	if c.CRCInLength {
		v |= 1 << 26
	}
	return v
}

// DecodePacketConfig0 unpacks a PCNF0 register value.
func DecodePacketConfig0(v uint32) PacketConfig0 {
	return PacketConfig0{
		LengthBits:  uint8(v & 0xF),
		S0Byte:      v&(1<<8) != 0,
		S1Bits:      uint8(v>>16) & 0xF,
		S1InRAM:     v&(1<<20) != 0,
		Preamble:    PreambleType(v>>24) & 0x3,
		CRCInLength: v&(1<<26) != 0,
	}
}

// IEEE802154PacketConfig is the PCNF0 layout required for 802.15.4 mode:
// 8-bit PHR length, no S0/S1, 32-bit zero preamble, CRC counted in length.
var IEEE802154PacketConfig = PacketConfig0{
	LengthBits:  8,
	Preamble:    Preamble32BitZero,
	CRCInLength: true,
}

// PacketConfig1 is PCNF1: MAXLEN in byte 0, STATLEN in byte 1, BALEN in
// byte 2, ENDIAN bit 24, WHITEEN bit 25.
type PacketConfig1 struct {
	MaxLength     uint8
	StaticLength  uint8
	BaseAddrBytes uint8
	BigEndian     bool
	Whitening     bool
}

// Encode packs the configuration into the PCNF1 register value.
func (c PacketConfig1) Encode() uint32 {
	v := uint32(c.MaxLength) | uint32(c.StaticLength)<<8 | uint32(c.BaseAddrBytes&0x7)<<16
	if c.BigEndian {
		v |= 1 << 24
	}
	if c.Whitening {
		v |= 1 << 25
	}
	return v
}

// DecodePacketConfig1 unpacks a PCNF1 register value.
func DecodePacketConfig1(v uint32) PacketConfig1 {
	return PacketConfig1{
		MaxLength:     uint8(v),
		StaticLength:  uint8(v >> 8),
		BaseAddrBytes: uint8(v>>16) & 0x7,
		BigEndian:     v&(1<<24) != 0,
		Whitening:     v&(1<<25) != 0,
	}
}

// CRCSkipAddress is the CRCCNF.SKIPADDR field.
type CRCSkipAddress uint8

const (
	CRCIncludeAddress CRCSkipAddress = 0
	CRCSkipAddr       CRCSkipAddress = 1
	CRCIEEE802154     CRCSkipAddress = 2
)

// CRCConfig covers CRCCNF, CRCPOLY and CRCINIT.
type CRCConfig struct {
	Length      uint8 // bytes, 0 disables the CRC
	SkipAddress CRCSkipAddress
	Polynomial  uint32
	Init        uint32
}

// Encode returns the CRCCNF register value.
func (c CRCConfig) Encode() uint32 {
	return uint32(c.Length&0x3) | uint32(c.SkipAddress&0x3)<<8
}

// IEEE802154CRC is the 16-bit ITU-T CRC used by 802.15.4 (x^16+x^12+x^5+1).
var IEEE802154CRC = CRCConfig{
	Length:      2,
	SkipAddress: CRCIEEE802154,
	Polynomial:  0x011021,
	Init:        0,
}

const (
	MinFrequencyMHz = 2360
	MaxFrequencyMHz = 2500

	frequencyLowBase = 2360
	frequencyBase    = 2400
	frequencyMapBit  = 1 << 8
)

// EncodeFrequency returns the FREQUENCY register value for a carrier in MHz.
// Below 2400 MHz the MAP bit selects the 2360 MHz base.
func EncodeFrequency(mhz int) (uint32, error) {
	if mhz < MinFrequencyMHz || mhz > MaxFrequencyMHz {
		return 0, fmt.Errorf("%w: %d MHz", ErrFrequencyOutOfRange, mhz)
	}
	if mhz < frequencyBase {
		return frequencyMapBit | uint32(mhz-frequencyLowBase)&0x7F, nil
	}
	return uint32(mhz-frequencyBase) & 0x7F, nil
}

// DecodeFrequency is the inverse of EncodeFrequency.
func DecodeFrequency(v uint32) int {
	if v&frequencyMapBit != 0 {
		return frequencyLowBase + int(v&0x7F)
	}
	return frequencyBase + int(v&0x7F)
}

// ChannelFrequency returns the carrier of an 802.15.4 2.4 GHz channel (11-26).
func ChannelFrequency(channel uint8) int {
	return 2405 + 5*(int(channel)-11)
}
