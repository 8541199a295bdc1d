//go:build linux && !tinygo && !baremetal

package nrfbee

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/driver/nrf"
	"github.com/ystepanoff/nrfbee/registers"
)

// OpenMappedNode builds a node on the register window mapped from path.
// The packet buffer is mapped from the same file at bus address
// packetBuffer, which must lie in data RAM so the radio can reach it.
// Close the returned window once the node is no longer used.
func OpenMappedNode(path string, packetBuffer uint32, cfg NodeConfig, log *zap.Logger) (*Node, *registers.Window, error) {
	w, err := registers.OpenWindow(path)
	if err != nil {
		return nil, nil, err
	}
	mem, err := w.MapDMA(packetBuffer, len(nrf.PacketBuffer{}))
	if err != nil {
		w.Close()
		return nil, nil, err
	}
	d := nrf.New(w, (*nrf.PacketBuffer)(mem),
		nrf.WithBusAddress(packetBuffer),
		nrf.WithPollLimit(cfg.PollLimit),
		nrf.WithLogger(log))
	n, err := newRadioNode(d, cfg, log)
	if err != nil {
		w.Close()
		return nil, nil, err
	}
	return n, w, nil
}
