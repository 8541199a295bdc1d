//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package nrfbee

import (
	"time"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/driver/stub"
	"github.com/ystepanoff/nrfbee/mac"
)

// StubExtendedAddress is the identity of nodes built on the stub driver.
const StubExtendedAddress = 0x00124b0001c0ffee

// NewStubNode builds a node on the stub driver with a simulated
// coordinator that admits it and assigns assign as its short address.
func NewStubNode(cfg NodeConfig, assign uint16, log *zap.Logger) (*Node, *stub.Driver) {
	c := &stub.Coordinator{
		PANID:    cfg.PANID,
		Short:    cfg.Coordinator,
		Extended: 0x00124b0000000001,
		Assign:   assign,
		Status:   mac.AssociationSuccessful,
	}
	d := stub.New(stub.WithTimeout(100*time.Millisecond), stub.WithResponder(c.Respond))
	return newNode(d, StubExtendedAddress, cfg, log), d
}
