package mac

import "encoding/binary"

// CommandID is the first byte of a MAC command frame's content.
type CommandID uint8

const (
	CmdAssociationRequest         CommandID = 0x01
	CmdAssociationResponse        CommandID = 0x02
	CmdDisassociationNotification CommandID = 0x03
	CmdDataRequest                CommandID = 0x04
	CmdPANIDConflictNotification  CommandID = 0x05
	CmdOrphanNotification         CommandID = 0x06
	CmdBeaconRequest              CommandID = 0x07
)

func (c CommandID) String() string {
	switch c {
	case CmdAssociationRequest:
		return "AssociationRequest"
	case CmdAssociationResponse:
		return "AssociationResponse"
	case CmdDisassociationNotification:
		return "DisassociationNotification"
	case CmdDataRequest:
		return "DataRequest"
	case CmdPANIDConflictNotification:
		return "PANIDConflictNotification"
	case CmdOrphanNotification:
		return "OrphanNotification"
	case CmdBeaconRequest:
		return "BeaconRequest"
	}
	return "Unknown"
}

// CapabilityInfo is the capability information byte of an association
// request.
type CapabilityInfo struct {
	AltPANCoordinator bool  // bit 0
	FullFunction      bool  // bit 1
	MainsPower        bool  // bit 2
	RxOnWhenIdle      bool  // bit 3
	Reserved          uint8 // bits 4-5, kept as received
	Security          bool  // bit 6
	AllocateAddress   bool  // bit 7
}

// Byte packs the capability flags.
func (c CapabilityInfo) Byte() byte {
	b := c.Reserved & 0x3 << 4
	if c.AltPANCoordinator {
		b |= 1 << 0
	}
	if c.FullFunction {
		b |= 1 << 1
	}
	if c.MainsPower {
		b |= 1 << 2
	}
	if c.RxOnWhenIdle {
		b |= 1 << 3
	}
	if c.Security {
		b |= 1 << 6
	}
	if c.AllocateAddress {
		b |= 1 << 7
	}
	return b
}

// ParseCapabilityInfo unpacks a capability byte.
func ParseCapabilityInfo(b byte) CapabilityInfo {
	return CapabilityInfo{
		AltPANCoordinator: b&(1<<0) != 0,
		FullFunction:      b&(1<<1) != 0,
		MainsPower:        b&(1<<2) != 0,
		RxOnWhenIdle:      b&(1<<3) != 0,
		Reserved:          b >> 4 & 0x3,
		Security:          b&(1<<6) != 0,
		AllocateAddress:   b&(1<<7) != 0,
	}
}

// AssociationStatus is the status byte of an association response.
type AssociationStatus uint8

const (
	AssociationSuccessful                       AssociationStatus = 0x00
	AssociationPANAtCapacity                    AssociationStatus = 0x01
	AssociationPANAccessDenied                  AssociationStatus = 0x02
	AssociationHoppingSequenceOffsetDuplication AssociationStatus = 0x03
	AssociationFastSuccessful                   AssociationStatus = 0x80
)

func (s AssociationStatus) valid() bool {
	switch s {
	case AssociationSuccessful, AssociationPANAtCapacity, AssociationPANAccessDenied,
		AssociationHoppingSequenceOffsetDuplication, AssociationFastSuccessful:
		return true
	}
	return false
}

func (s AssociationStatus) String() string {
	switch s {
	case AssociationSuccessful:
		return "Successful"
	case AssociationPANAtCapacity:
		return "PANAtCapacity"
	case AssociationPANAccessDenied:
		return "PANAccessDenied"
	case AssociationHoppingSequenceOffsetDuplication:
		return "HoppingSequenceOffsetDuplication"
	case AssociationFastSuccessful:
		return "FastAssociationSuccessful"
	}
	return "Unknown"
}

// DisassociationReason is the reason byte of a disassociation notification.
type DisassociationReason uint8

const (
	CoordinatorWishesDeviceToLeave DisassociationReason = 0x01
	DeviceWishesToLeave            DisassociationReason = 0x02
)

// Command is the content of a MAC command frame. Only the fields relevant
// to ID are encoded.
type Command struct {
	ID           CommandID
	Capability   CapabilityInfo       // AssociationRequest
	ShortAddress uint16               // AssociationResponse
	Status       AssociationStatus    // AssociationResponse
	Reason       DisassociationReason // DisassociationNotification
}

func (c *Command) appendTo(dst []byte) []byte {
	dst = append(dst, byte(c.ID))
	switch c.ID {
	case CmdAssociationRequest:
		dst = append(dst, c.Capability.Byte())
	case CmdAssociationResponse:
		dst = binary.LittleEndian.AppendUint16(dst, c.ShortAddress)
		dst = append(dst, byte(c.Status))
	case CmdDisassociationNotification:
		dst = append(dst, byte(c.Reason))
	}
	return dst
}

// decode reads a command from data and returns the bytes consumed.
func (c *Command) decode(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, ErrParse
	}
	c.ID = CommandID(data[0])
	switch c.ID {
	case CmdDataRequest, CmdBeaconRequest, CmdPANIDConflictNotification, CmdOrphanNotification:
		return 1, nil
	case CmdAssociationRequest:
		if len(data) < 2 {
			return 0, ErrParse
		}
		c.Capability = ParseCapabilityInfo(data[1])
		return 2, nil
	case CmdAssociationResponse:
		if len(data) < 4 {
			return 0, ErrParse
		}
		c.ShortAddress = binary.LittleEndian.Uint16(data[1:3])
		c.Status = AssociationStatus(data[3])
		if !c.Status.valid() {
			return 0, ErrParse
		}
		return 4, nil
	case CmdDisassociationNotification:
		if len(data) < 2 {
			return 0, ErrParse
		}
		c.Reason = DisassociationReason(data[1])
		if c.Reason != CoordinatorWishesDeviceToLeave && c.Reason != DeviceWishesToLeave {
			return 0, ErrParse
		}
		return 2, nil
	}
	return 0, ErrParse
}
