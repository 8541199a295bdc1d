// Command zbnode joins a Zigbee network as an end device and logs the
// network frames it receives.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee"
	"github.com/ystepanoff/nrfbee/config"
	"github.com/ystepanoff/nrfbee/logging"
)

func main() {
	cfgPath := flag.String("config", "", "path to the node configuration (YAML)")
	assign := flag.Uint("stub-assign", 0x4f21, "short address the simulated coordinator assigns (stub backend)")
	flag.Parse()

	if err := run(*cfgPath, uint16(*assign)); err != nil {
		fmt.Fprintln(os.Stderr, "zbnode:", err)
		os.Exit(1)
	}
}

func run(cfgPath string, assign uint16) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log, closeLog, err := logging.Open(logging.Options{
		Level:      cfg.Log.Level,
		SerialPort: cfg.Log.SerialPort,
		Baud:       cfg.Log.Baud,
	})
	if err != nil {
		return err
	}
	defer closeLog()
	defer log.Sync()

	nodeCfg := nrfbee.NodeConfig{
		Radio: nrfbee.RadioConfig{
			Channel: cfg.Radio.Channel,
			TxPower: cfg.Radio.TxPower(),
		},
		PANID:        cfg.Network.PANID,
		Coordinator:  cfg.Network.Coordinator,
		Capabilities: cfg.Network.Capabilities.Info(),
		PollLimit:    cfg.Radio.PollLimit,
	}

	// --------------------
	// Build backend
	// --------------------

	node, closeBackend, err := openBackend(cfg.Registers, nodeCfg, assign, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	node.Session().HandleData(func(m *nrfbee.MACFrame, n *nrfbee.NWKFrame) {
		log.Info("network frame",
			zap.Uint8("mac_seq", m.Header.Seq),
			zap.Stringer("type", n.FrameControl.FrameType),
			zap.String("src", fmt.Sprintf("%04x", n.Source)),
			zap.String("dst", fmt.Sprintf("%04x", n.Destination)),
			zap.Bool("secured", n.Secured()),
			zap.Binary("payload", n.Payload))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Join + run
	// --------------------

	log.Info("joining", zap.String("pan_id", fmt.Sprintf("%04x", cfg.Network.PANID)),
		zap.Uint8("channel", cfg.Radio.Channel))
	if err := node.Join(); err != nil {
		return err
	}

	// Receives return on the stub timeout or the radio poll limit, so
	// cancellation is noticed between packets.
	err = node.Run(ctx)
	if ctx.Err() != nil {
		a := node.Session().Association()
		log.Info("stopped", zap.Stringer("state", a.State), zap.Bool("has_short_addr", a.HasShortAddress))
		return nil
	}
	return err
}
