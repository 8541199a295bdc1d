//go:build tinygo || baremetal

// This file is built only for embedded targets (using real radio hardware).
package nrfbee

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/driver/nrf"
	"github.com/ystepanoff/nrfbee/registers"
)

// packetBuffer is the radio's DMA arena; it must outlive the driver.
var packetBuffer nrf.PacketBuffer

// NewRadio returns the driver for the on-chip radio.
func NewRadio(opts ...nrf.Option) *nrf.Driver {
	return nrf.New(registers.MMIO{}, &packetBuffer, opts...)
}

// NewNode configures the on-chip radio and builds a node on it.
func NewNode(cfg NodeConfig, log *zap.Logger) (*Node, error) {
	d := NewRadio(nrf.WithPollLimit(cfg.PollLimit), nrf.WithLogger(log))
	return newRadioNode(d, cfg, log)
}
