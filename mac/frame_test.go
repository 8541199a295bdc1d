package mac

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

var testCapabilities = CapabilityInfo{
	FullFunction:    true,
	MainsPower:      true,
	RxOnWhenIdle:    true,
	AllocateAddress: true,
}

func TestEncodeBeaconRequest(t *testing.T) {
	want := []byte{0x03, 0x08, 0x2a, 0xff, 0xff, 0xff, 0xff, 0x07}
	if got := EncodeBeaconRequest(42); !bytes.Equal(got, want) {
		t.Errorf("EncodeBeaconRequest(42) = % x, want % x", got, want)
	}

	for _, seq := range []uint8{0, 1, 42, 127, 255} {
		f, err := Decode(EncodeBeaconRequest(seq), FooterNone)
		if err != nil {
			t.Fatalf("Decode(EncodeBeaconRequest(%d)) error = %v", seq, err)
		}
		if f.Header.FrameType != FrameTypeCommand {
			t.Errorf("FrameType = %v, want %v", f.Header.FrameType, FrameTypeCommand)
		}
		if f.Command.ID != CmdBeaconRequest {
			t.Errorf("Command.ID = %v, want %v", f.Command.ID, CmdBeaconRequest)
		}
		if !f.Header.Destination.IsBroadcast() || f.Header.Destination.PANID != BroadcastPANID {
			t.Errorf("Destination = %v, want broadcast", f.Header.Destination)
		}
		if f.Header.Seq != seq {
			t.Errorf("Seq = %d, want %d", f.Header.Seq, seq)
		}
	}
}

func TestEncodeCommands(t *testing.T) {
	const ext = 0x0102030405060708
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{
			name: "ack",
			got:  EncodeAck(0x2b),
			want: []byte{0x02, 0x00, 0x2b},
		},
		{
			name: "association request",
			got:  EncodeAssociationRequest(ext, 0x1a62, 0x0000, 43, testCapabilities),
			want: []byte{
				0x23, 0xc8, 0x2b,
				0x62, 0x1a, 0x00, 0x00,
				0xff, 0xff, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
				0x01, 0x8e,
			},
		},
		{
			name: "data request, same PAN",
			got:  EncodeDataRequest(0x1a62, ext, 0x1a62, 0x0000, 44),
			want: []byte{
				0x63, 0xc8, 0x2c,
				0x62, 0x1a, 0x00, 0x00,
				0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
				0x04,
			},
		},
		{
			name: "data request, different PAN",
			got:  EncodeDataRequest(0xffff, ext, 0x1a62, 0x0000, 44),
			want: []byte{
				0x23, 0xc8, 0x2c,
				0x62, 0x1a, 0x00, 0x00,
				0xff, 0xff, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
				0x04,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("encoded = % x, want % x", tt.got, tt.want)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{name: "beacon request", frame: BeaconRequest(42)},
		{name: "association request", frame: AssociationRequest(0xdeadbeefcafe0001, 0x1a62, 0, 43, testCapabilities)},
		{name: "data request", frame: DataRequest(0x1a62, 0xdeadbeefcafe0001, 0x1a62, 0, 44)},
		{name: "ack", frame: Ack(200)},
		{
			name: "association response",
			frame: Frame{
				Header: Header{
					FrameType:     FrameTypeCommand,
					AckRequest:    true,
					PANIDCompress: true,
					Version:       Version2006,
					Seq:           9,
					Destination:   ExtendedAddress(0x1a62, 0xdeadbeefcafe0001),
					Source:        ExtendedAddress(0x1a62, 0x00124b0001020304),
				},
				Command: Command{ID: CmdAssociationResponse, ShortAddress: 0x4f21, Status: AssociationSuccessful},
			},
		},
		{
			name: "disassociation",
			frame: Frame{
				Header: Header{
					FrameType:   FrameTypeCommand,
					Seq:         1,
					Destination: ShortAddress(0x1a62, 0x0000),
					Source:      ExtendedAddress(0xffff, 0x1),
				},
				Command: Command{ID: CmdDisassociationNotification, Reason: DeviceWishesToLeave},
			},
		},
		{
			name: "data with payload",
			frame: Frame{
				Header: Header{
					FrameType:     FrameTypeData,
					FramePending:  true,
					AckRequest:    true,
					PANIDCompress: true,
					Seq:           255,
					Destination:   ShortAddress(0x1a62, 0x4f21),
					Source:        ShortAddress(0x1a62, 0x0000),
				},
				Payload: []byte{0x08, 0x02, 0x21, 0x4f, 0x00, 0x00, 0x1e, 0x10},
			},
		},
		{
			name: "sequence suppressed",
			frame: Frame{
				Header: Header{
					FrameType:     FrameTypeData,
					SeqNoSuppress: true,
					Version:       Version2015,
					Destination:   ShortAddress(0x1a62, 0xffff),
				},
				Payload: []byte{0xaa},
			},
		},
		{
			name: "beacon",
			frame: Frame{
				Header: Header{
					FrameType: FrameTypeBeacon,
					Seq:       7,
					Source:    ShortAddress(0x1a62, 0x0000),
				},
				Beacon: Beacon{
					Superframe: Superframe{
						BeaconOrder:       15,
						SuperframeOrder:   15,
						FinalCAPSlot:      15,
						PANCoordinator:    true,
						AssociationPermit: true,
					},
					GTSPermit:            true,
					GTSDirections:        0x01,
					GTSCount:             1,
					GTS:                  [MaxListEntries]GTSDescriptor{{Short: 0x1234, StartSlot: 3, Length: 2}},
					PendingShortCount:    1,
					PendingShort:         [MaxListEntries]uint16{0x0001},
					PendingExtendedCount: 1,
					PendingExtended:      [MaxListEntries]uint64{0x1122334455667788},
				},
				Payload: []byte{0x00, 0x22, 0x84},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.frame.Encode(FooterNone)

			decoded, err := Decode(encoded, FooterNone)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.frame) {
				t.Errorf("Decode() = %+v, want %+v", decoded, tt.frame)
			}

			if again := decoded.Encode(FooterNone); !bytes.Equal(again, encoded) {
				t.Errorf("re-encoded = % x, want % x", again, encoded)
			}

			withFCS := tt.frame.Encode(FooterExplicit)
			checked, err := Decode(withFCS, FooterExplicit)
			if err != nil {
				t.Fatalf("Decode(FooterExplicit) error = %v", err)
			}
			if again := checked.Encode(FooterExplicit); !bytes.Equal(again, withFCS) {
				t.Errorf("re-encoded with FCS = % x, want % x", again, withFCS)
			}
		})
	}
}

func TestDecodeInvalidFrames(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil data", data: nil},
		{name: "one byte", data: []byte{0x03}},
		{name: "missing sequence", data: []byte{0x03, 0x08}},
		{name: "truncated destination", data: []byte{0x03, 0x08, 0x2a, 0xff, 0xff, 0xff}},
		{name: "missing command id", data: []byte{0x03, 0x08, 0x2a, 0xff, 0xff, 0xff, 0xff}},
		{name: "unknown command", data: []byte{0x03, 0x08, 0x2a, 0xff, 0xff, 0xff, 0xff, 0x09}},
		{name: "security enabled", data: []byte{0x0b, 0x08, 0x2a, 0xff, 0xff, 0xff, 0xff, 0x07}},
		{name: "information elements", data: []byte{0x03, 0x0a, 0x2a, 0xff, 0xff, 0xff, 0xff, 0x07}},
		{name: "reserved destination mode", data: []byte{0x03, 0x04, 0x2a, 0xff, 0xff, 0x07}},
		{name: "reserved frame type", data: []byte{0x05, 0x00, 0x2a}},
		{name: "reserved version", data: []byte{0x02, 0x30, 0x2a}},
		{
			name: "bad association status",
			data: []byte{0x43, 0xcc, 0x09, 0x62, 0x1a, 1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x21, 0x4f, 0x04},
		},
		{
			name: "truncated association response",
			data: []byte{0x43, 0xcc, 0x09, 0x62, 0x1a, 1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x21},
		},
		{name: "bad disassociation reason", data: []byte{0x03, 0x08, 0x01, 0x62, 0x1a, 0x00, 0x00, 0x03, 0x07}},
		{name: "truncated pending list", data: []byte{0x00, 0x80, 0x07, 0x62, 0x1a, 0x00, 0x00, 0xff, 0xcf, 0x00, 0x02, 0x01}},
		{name: "compressed PAN without destination", data: []byte{0x41, 0x80, 0x01, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(tt.data, FooterNone)
			if !errors.Is(err, ErrParse) {
				t.Errorf("Decode() error = %v, want %v", err, ErrParse)
			}
			if !reflect.DeepEqual(f, Frame{}) {
				t.Errorf("Decode() returned partial frame %+v", f)
			}
		})
	}
}

func TestFCS(t *testing.T) {
	if got := FCS([]byte("123456789")); got != 0x2189 {
		t.Errorf("FCS(\"123456789\") = 0x%04X, want 0x2189", got)
	}

	ack := Ack(0x2b)
	encoded := ack.Encode(FooterExplicit)
	if len(encoded) != 5 {
		t.Fatalf("len(encoded) = %d, want 5", len(encoded))
	}
	if !CheckFCS(encoded) {
		t.Error("CheckFCS() = false on freshly encoded frame")
	}
	f, err := Decode(encoded, FooterExplicit)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f.Footer != [2]byte{encoded[3], encoded[4]} {
		t.Errorf("Footer = % x, want % x", f.Footer, encoded[3:])
	}

	encoded[2] ^= 0xFF
	if _, err := Decode(encoded, FooterExplicit); !errors.Is(err, ErrParse) {
		t.Errorf("Decode(corrupt) error = %v, want %v", err, ErrParse)
	}
	if _, err := Decode([]byte{0x02}, FooterExplicit); !errors.Is(err, ErrParse) {
		t.Errorf("Decode(short) error = %v, want %v", err, ErrParse)
	}
}

func TestFooterNoneConsumesNothing(t *testing.T) {
	// Trailing bytes under FooterNone are payload, not an FCS.
	data := []byte{0x41, 0x88, 0x01, 0x62, 0x1a, 0xff, 0xff, 0x00, 0x00, 0xde, 0xad}
	f, err := Decode(data, FooterNone)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(f.Payload, []byte{0xde, 0xad}) {
		t.Errorf("Payload = % x, want de ad", f.Payload)
	}
	if f.Footer != [2]byte{} {
		t.Errorf("Footer = % x, want zero", f.Footer)
	}
	if f.Header.Source.PANID != 0x1a62 {
		t.Errorf("Source.PANID = 0x%04x, want compressed 0x1a62", f.Header.Source.PANID)
	}
}

func TestAppendToNoAlloc(t *testing.T) {
	buf := make([]byte, 0, MaxPHYPacketSize)
	f := AssociationRequest(0xdeadbeefcafe0001, 0x1a62, 0, 43, testCapabilities)
	allocs := testing.AllocsPerRun(100, func() {
		buf = f.AppendTo(buf[:0], FooterExplicit)
	})
	if allocs != 0 {
		t.Errorf("AppendTo() allocs = %v, want 0", allocs)
	}
}

func TestDecodeBeaconNoAlloc(t *testing.T) {
	data := []byte{
		0x00, 0x80, 0x07, 0x62, 0x1a, 0x00, 0x00, // header
		0xff, 0xcf, // superframe
		0x81, 0x01, 0x34, 0x12, 0x23, // one GTS
		0x12, 0x01, 0x00, 0x02, 0x00, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, // pending lists
	}
	f, err := Decode(data, FooterNone)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := f.Beacon.GTSList(); len(got) != 1 || got[0] != (GTSDescriptor{Short: 0x1234, StartSlot: 3, Length: 2}) {
		t.Errorf("GTSList() = %+v", got)
	}
	if got := f.Beacon.PendingShortList(); len(got) != 2 || got[0] != 0x0001 {
		t.Errorf("PendingShortList() = %04x", got)
	}
	if got := f.Beacon.PendingExtendedList(); len(got) != 1 || got[0] != 0x1122334455667788 {
		t.Errorf("PendingExtendedList() = %016x", got)
	}

	allocs := testing.AllocsPerRun(100, func() {
		f, _ = Decode(data, FooterNone)
	})
	if allocs != 0 {
		t.Errorf("Decode(beacon) allocs = %v, want 0", allocs)
	}
}

func TestBeaconCountsClamped(t *testing.T) {
	f := Frame{
		Header: Header{FrameType: FrameTypeBeacon, Source: ShortAddress(0x1a62, 0)},
		Beacon: Beacon{PendingShortCount: 9},
	}
	decoded, err := Decode(f.Encode(FooterNone), FooterNone)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.Beacon.PendingShortCount != MaxListEntries {
		t.Errorf("PendingShortCount = %d, want %d", decoded.Beacon.PendingShortCount, MaxListEntries)
	}
}

func TestReservedBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		// Data frame with frame control bit 7 set.
		{name: "frame control bit 7", data: []byte{0xc1, 0x88, 0x05, 0x62, 0x1a, 0x21, 0x4f, 0x00, 0x00, 0xaa}},
		// Association request whose capability byte has bits 4 and 5 set.
		{name: "capability bits 4-5", data: []byte{
			0x23, 0xc8, 0x2b, 0x62, 0x1a, 0x00, 0x00, 0xff, 0xff,
			0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
			0x01, 0xbe,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(tt.data, FooterNone)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := f.Encode(FooterNone); !bytes.Equal(got, tt.data) {
				t.Errorf("re-encoded = % x, want % x", got, tt.data)
			}
		})
	}
}

func TestCapabilityInfo(t *testing.T) {
	if got := testCapabilities.Byte(); got != 0x8e {
		t.Errorf("Byte() = 0x%02x, want 0x8e", got)
	}
	if got := ParseCapabilityInfo(0x8e); got != testCapabilities {
		t.Errorf("ParseCapabilityInfo(0x8e) = %+v, want %+v", got, testCapabilities)
	}
	for _, b := range []byte{0x10, 0x20, 0x30, 0xff} {
		if got := ParseCapabilityInfo(b).Byte(); got != b {
			t.Errorf("ParseCapabilityInfo(0x%02x).Byte() = 0x%02x, want 0x%02x", b, got, b)
		}
	}
}
