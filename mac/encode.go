package mac

// BeaconRequest is a broadcast beacon request command.
func BeaconRequest(seq uint8) Frame {
	return Frame{
		Header: Header{
			FrameType:   FrameTypeCommand,
			Seq:         seq,
			Destination: Broadcast,
		},
		Command: Command{ID: CmdBeaconRequest},
	}
}

// AssociationRequest asks the coordinator dstShort on dstPan to admit the
// device srcExtended. The source PAN is the broadcast PAN since the device
// has not joined yet.
func AssociationRequest(srcExtended uint64, dstPan, dstShort uint16, seq uint8, capabilities CapabilityInfo) Frame {
	return Frame{
		Header: Header{
			FrameType:   FrameTypeCommand,
			AckRequest:  true,
			Seq:         seq,
			Destination: ShortAddress(dstPan, dstShort),
			Source:      ExtendedAddress(BroadcastPANID, srcExtended),
		},
		Command: Command{ID: CmdAssociationRequest, Capability: capabilities},
	}
}

// DataRequest polls the coordinator for pending data.
func DataRequest(srcPan uint16, srcExtended uint64, dstPan, dstShort uint16, seq uint8) Frame {
	return Frame{
		Header: Header{
			FrameType:     FrameTypeCommand,
			AckRequest:    true,
			PANIDCompress: srcPan == dstPan,
			Seq:           seq,
			Destination:   ShortAddress(dstPan, dstShort),
			Source:        ExtendedAddress(srcPan, srcExtended),
		},
		Command: Command{ID: CmdDataRequest},
	}
}

// Ack acknowledges the frame with sequence number seq.
func Ack(seq uint8) Frame {
	return Frame{Header: Header{FrameType: FrameTypeAck, Seq: seq}}
}

func EncodeBeaconRequest(seq uint8) []byte {
	f := BeaconRequest(seq)
	return f.Encode(FooterNone)
}

func EncodeAssociationRequest(srcExtended uint64, dstPan, dstShort uint16, seq uint8, capabilities CapabilityInfo) []byte {
	f := AssociationRequest(srcExtended, dstPan, dstShort, seq, capabilities)
	return f.Encode(FooterNone)
}

func EncodeDataRequest(srcPan uint16, srcExtended uint64, dstPan, dstShort uint16, seq uint8) []byte {
	f := DataRequest(srcPan, srcExtended, dstPan, dstShort, seq)
	return f.Encode(FooterNone)
}

func EncodeAck(seq uint8) []byte {
	f := Ack(seq)
	return f.Encode(FooterNone)
}
