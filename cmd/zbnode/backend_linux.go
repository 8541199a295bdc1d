//go:build linux

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee"
	"github.com/ystepanoff/nrfbee/config"
)

func openBackend(rc config.RegistersConfig, cfg nrfbee.NodeConfig, assign uint16, log *zap.Logger) (*nrfbee.Node, func() error, error) {
	switch rc.Backend {
	case config.BackendStub:
		node, closeFn := openStub(cfg, assign, log)
		return node, closeFn, nil
	case config.BackendMMap:
		node, w, err := nrfbee.OpenMappedNode(rc.Device, rc.PacketBuffer, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return node, w.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown register backend %q", rc.Backend)
}
