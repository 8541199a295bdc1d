package mac

import "fmt"

// Address is one side of the MAC addressing fields. PANID is meaningful
// whenever Mode is not AddrNone; for a source address under PAN ID
// compression it mirrors the destination PAN.
type Address struct {
	Mode     AddressMode
	PANID    uint16
	Short    uint16
	Extended uint64
}

// ShortAddress returns a short address on pan.
func ShortAddress(pan, short uint16) Address {
	return Address{Mode: AddrShort, PANID: pan, Short: short}
}

// ExtendedAddress returns an extended address on pan.
func ExtendedAddress(pan uint16, ext uint64) Address {
	return Address{Mode: AddrExtended, PANID: pan, Extended: ext}
}

// Broadcast is the broadcast short address on the broadcast PAN.
var Broadcast = ShortAddress(BroadcastPANID, BroadcastShort)

// IsBroadcast reports whether a is the short broadcast address.
func (a Address) IsBroadcast() bool {
	return a.Mode == AddrShort && a.Short == BroadcastShort
}

func (a Address) String() string {
	switch a.Mode {
	case AddrShort:
		return fmt.Sprintf("%04x/%04x", a.PANID, a.Short)
	case AddrExtended:
		return fmt.Sprintf("%04x/%016x", a.PANID, a.Extended)
	}
	return "none"
}

func (a Address) size() int {
	switch a.Mode {
	case AddrShort:
		return ShortAddrSize
	case AddrExtended:
		return ExtendedAddrSize
	}
	return 0
}
