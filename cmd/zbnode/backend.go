package main

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee"
)

func openStub(cfg nrfbee.NodeConfig, assign uint16, log *zap.Logger) (*nrfbee.Node, func() error) {
	node, d := nrfbee.NewStubNode(cfg, assign, log)
	return node, d.Close
}
