package nwk

// FrameType is the NWK frame control frame type (bits 0-1).
type FrameType uint8

const (
	FrameTypeData     FrameType = 0
	FrameTypeCommand  FrameType = 1
	FrameTypeReserved FrameType = 2
	FrameTypeInterPAN FrameType = 3
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeData:
		return "Data"
	case FrameTypeCommand:
		return "Command"
	case FrameTypeInterPAN:
		return "InterPAN"
	}
	return "Reserved"
}

// DiscoverRoute is the discover route field (bits 6-7). Both 0b10 and
// 0b11 map to DiscoverRouteReserved.
type DiscoverRoute uint8

const (
	DiscoverRouteSuppress DiscoverRoute = 0
	DiscoverRouteEnable   DiscoverRoute = 1
	DiscoverRouteReserved DiscoverRoute = 2
)

// FrameControl is the decoded 16-bit NWK frame control field.
type FrameControl struct {
	FrameType            FrameType
	ProtocolVersion      uint8
	DiscoverRoute        DiscoverRoute
	MulticastPresent     bool
	SecurityPresent      bool
	SourceRoutePresent   bool
	DestinationPresent   bool
	SourceAddressPresent bool
	EndDeviceInitiator   bool
}

// ParseFrameControl decodes a frame control value. Every input is valid.
func ParseFrameControl(field uint16) FrameControl {
	dr := DiscoverRoute(field>>6) & 0x3
	if dr > DiscoverRouteReserved {
		dr = DiscoverRouteReserved
	}
	return FrameControl{
		FrameType:            FrameType(field & 0x3),
		ProtocolVersion:      uint8(field>>2) & 0xF,
		DiscoverRoute:        dr,
		MulticastPresent:     field&(1<<8) != 0,
		SecurityPresent:      field&(1<<9) != 0,
		SourceRoutePresent:   field&(1<<10) != 0,
		DestinationPresent:   field&(1<<11) != 0,
		SourceAddressPresent: field&(1<<12) != 0,
		EndDeviceInitiator:   field&(1<<13) != 0,
	}
}
