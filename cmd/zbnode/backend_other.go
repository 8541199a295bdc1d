//go:build !linux

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee"
	"github.com/ystepanoff/nrfbee/config"
)

func openBackend(rc config.RegistersConfig, cfg nrfbee.NodeConfig, assign uint16, log *zap.Logger) (*nrfbee.Node, func() error, error) {
	if rc.Backend == config.BackendStub {
		node, closeFn := openStub(cfg, assign, log)
		return node, closeFn, nil
	}
	return nil, nil, fmt.Errorf("register backend %q is only available on linux", rc.Backend)
}
