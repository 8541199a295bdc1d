package nrfbee

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/driver/nrf"
	"github.com/ystepanoff/nrfbee/transport"
)

// NodeConfig describes the network a node joins. The extended address
// comes from the radio's factory identity.
type NodeConfig struct {
	Radio        RadioConfig
	PANID        uint16
	Coordinator  uint16
	Capabilities CapabilityInfo
	// PollLimit bounds each register busy-wait; 0 waits forever.
	PollLimit int
}

// Node is an end device: a radio driver and the MAC session running on it.
type Node struct {
	session *transport.Session
	log     *zap.Logger
}

func newNode(d transport.RadioDriver, ext uint64, cfg NodeConfig, log *zap.Logger) *Node {
	if log == nil {
		log = zap.NewNop()
	}
	s := transport.NewSession(d, transport.SessionConfig{
		ExtendedAddress: ext,
		PANID:           cfg.PANID,
		Coordinator:     cfg.Coordinator,
		Capabilities:    cfg.Capabilities,
	}, log)
	return &Node{session: s, log: log}
}

// newRadioNode configures the radio and builds a node on it.
func newRadioNode(d *nrf.Driver, cfg NodeConfig, log *zap.Logger) (*Node, error) {
	if err := ConfigureRadio(d, cfg.Radio); err != nil {
		return nil, err
	}
	return newNode(d, d.DeviceID(), cfg, log), nil
}

// Session returns the node's MAC session.
func (n *Node) Session() *Session { return n.session }

// Join broadcasts a beacon request and associates with the coordinator.
func (n *Node) Join() error {
	if err := n.session.BroadcastBeacon(); err != nil {
		return err
	}
	if err := n.session.Associate(); err != nil {
		return fmt.Errorf("failed to associate: %w", err)
	}
	return nil
}

// Run processes packets until ctx is done. Receive waits that ran out
// without a packet are retried.
func (n *Node) Run(ctx context.Context) error {
	for {
		err := n.session.Run(ctx)
		if ctx.Err() != nil || !transport.IsTimeout(err) {
			return err
		}
		n.log.Debug("receive idle", zap.Error(err))
	}
}
