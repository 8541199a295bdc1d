package transport

// RadioDriver is the interface that wraps the blocking radio operations.
//
// TransmitBlocking sends frame with the given on-air length (frame plus
// the FCS the radio appends). ReceiveBlocking returns one received packet
// as a length-prefixed view that is only valid until the next call.
type RadioDriver interface {
	TransmitBlocking(frame []byte, onAirLength uint8) error
	ReceiveBlocking() ([]byte, error)
}
