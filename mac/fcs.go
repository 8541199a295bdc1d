package mac

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
)

// The 802.15.4 FCS is the ITU-T CRC-16 computed LSB first with a zero
// initial value, i.e. CRC-16/KERMIT, sent little-endian.
var fcsTable = crc16.MakeTable(crc16.CRC16_KERMIT)

// FCS returns the frame check sequence over data.
func FCS(data []byte) uint16 {
	return crc16.Checksum(data, fcsTable)
}

// AppendFCS appends the FCS of covered to dst.
func AppendFCS(dst, covered []byte) []byte {
	return binary.LittleEndian.AppendUint16(dst, FCS(covered))
}

// CheckFCS reports whether the last two bytes of frame are a valid FCS
// over the rest.
func CheckFCS(frame []byte) bool {
	if len(frame) < FCSSize {
		return false
	}
	body := frame[:len(frame)-FCSSize]
	return binary.LittleEndian.Uint16(frame[len(body):]) == FCS(body)
}
