package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/ystepanoff/nrfbee/mac"
	"github.com/ystepanoff/nrfbee/registers"
)

// SupportedChannel is the only IEEE 802.15.4 channel the radio setup
// supports (2425 MHz).
const SupportedChannel = 15

var ErrUnsupportedChannel = errors.New("unsupported channel")

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Radio.Channel != SupportedChannel {
		return fmt.Errorf("radio: %w: %d (only %d is supported)",
			ErrUnsupportedChannel, cfg.Radio.Channel, SupportedChannel)
	}
	if _, err := registers.TxPowerFromDBm(cfg.Radio.TxPowerDBm); err != nil {
		return fmt.Errorf("radio: tx_power_dbm %d: %w", cfg.Radio.TxPowerDBm, err)
	}
	if cfg.Radio.PollLimit < 0 {
		return fmt.Errorf("radio: poll_limit must not be negative")
	}

	if cfg.Network.PANID == mac.BroadcastPANID {
		return fmt.Errorf("network: pan_id 0x%04x is the broadcast PAN", cfg.Network.PANID)
	}
	if cfg.Network.Coordinator >= mac.ShortAddrUnassigned {
		return fmt.Errorf("network: coordinator 0x%04x is not a unicast address", cfg.Network.Coordinator)
	}

	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if cfg.Log.SerialPort != "" && cfg.Log.Baud <= 0 {
		return fmt.Errorf("log: baud must be positive when serial_port is set")
	}

	switch cfg.Registers.Backend {
	case BackendStub:
	case BackendMMap:
		if cfg.Registers.Device == "" {
			return fmt.Errorf("registers: mmap backend requires device")
		}
		pb := uint64(cfg.Registers.PacketBuffer)
		if pb%4 != 0 || pb < registers.DataRAMBase || pb+packetBufferSize > registers.DataRAMBase+registers.DataRAMSize {
			return fmt.Errorf("registers: packet_buffer 0x%08x must be word aligned in data RAM", pb)
		}
	default:
		return fmt.Errorf("registers: unknown backend %q", cfg.Registers.Backend)
	}
	return nil
}

// TxPower returns the validated transmit power setting.
func (r RadioConfig) TxPower() registers.TxPower {
	p, _ := registers.TxPowerFromDBm(r.TxPowerDBm)
	return p
}

// Info converts the capability flags to their MAC representation.
func (c CapabilitiesConfig) Info() mac.CapabilityInfo {
	return mac.CapabilityInfo{
		AltPANCoordinator: c.AltPANCoordinator,
		FullFunction:      c.FullFunction,
		MainsPower:        c.MainsPower,
		RxOnWhenIdle:      c.RxOnWhenIdle,
		Security:          c.Security,
		AllocateAddress:   c.AllocateAddress,
	}
}
