// Package nrfbee provides a façade to join a Zigbee network as an end
// device with the nRF52840 radio.
package nrfbee

import (
	"github.com/ystepanoff/nrfbee/mac"
	"github.com/ystepanoff/nrfbee/nwk"
	"github.com/ystepanoff/nrfbee/transport"
)

// The actual implementation is split into build-tag specific files:
// - constructors_nrf.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing (//go:build !tinygo && !baremetal)
// - constructors_linux.go - register window over a mapped file (linux hosts)

// Re-export types for convenience
type (
	Session            = transport.Session
	SessionConfig      = transport.SessionConfig
	AssociationSession = transport.AssociationSession
	AssociationState   = transport.AssociationState
	DataHandler        = transport.DataHandler
	MACFrame           = mac.Frame
	NWKFrame           = nwk.Frame
	CapabilityInfo     = mac.CapabilityInfo
)

// Error constants exposed in the public API
var (
	ErrAckTimeout = transport.ErrAckTimeout
	ErrMACParse   = mac.ErrParse
	ErrNWKParse   = nwk.ErrParse
)

// Constants exposed in the public API
const (
	NotAssociated        = transport.NotAssociated
	AssociationRequested = transport.AssociationRequested
	AwaitingResponse     = transport.AwaitingResponse
	Associated           = transport.Associated
	DataRequestSent      = transport.DataRequestSent
	DataRequestAcked     = transport.DataRequestAcked

	DefaultChannel = 15
)
