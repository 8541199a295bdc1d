// Package config loads the YAML configuration of a node.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ystepanoff/nrfbee/registers"
)

const packetBufferSize = 256

type Config struct {
	Radio     RadioConfig     `yaml:"radio"`
	Network   NetworkConfig   `yaml:"network"`
	Log       LogConfig       `yaml:"log"`
	Registers RegistersConfig `yaml:"registers"`
}

// ---- RADIO ----

type RadioConfig struct {
	Channel    uint8 `yaml:"channel"`
	TxPowerDBm int   `yaml:"tx_power_dbm"`
	// PollLimit bounds register polling per wait; 0 waits forever.
	PollLimit int `yaml:"poll_limit"`
}

// ---- NETWORK ----

type NetworkConfig struct {
	PANID        uint16             `yaml:"pan_id"`
	Coordinator  uint16             `yaml:"coordinator"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
}

type CapabilitiesConfig struct {
	AltPANCoordinator bool `yaml:"alt_pan_coordinator"`
	FullFunction      bool `yaml:"full_function"`
	MainsPower        bool `yaml:"mains_power"`
	RxOnWhenIdle      bool `yaml:"rx_on_when_idle"`
	Security          bool `yaml:"security"`
	AllocateAddress   bool `yaml:"allocate_address"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
	// SerialPort sends log output to a serial device instead of stderr.
	SerialPort string `yaml:"serial_port"`
	Baud       int    `yaml:"baud"`
}

// ---- REGISTERS ----

const (
	BackendStub = "stub"
	BackendMMap = "mmap"
)

type RegistersConfig struct {
	Backend string `yaml:"backend"`
	// Device is the file mapped by the mmap backend, e.g. /dev/mem.
	Device string `yaml:"device"`
	// PacketBuffer is the bus address in data RAM the mmap backend maps
	// and hands to the radio as its packet buffer.
	PacketBuffer uint32 `yaml:"packet_buffer"`
}

// Default returns the configuration used for fields absent from a file.
func Default() *Config {
	return &Config{
		Radio: RadioConfig{
			Channel:   15,
			PollLimit: 1_000_000,
		},
		Network: NetworkConfig{
			PANID:       0x1a62,
			Coordinator: 0x0000,
			Capabilities: CapabilitiesConfig{
				RxOnWhenIdle:    true,
				AllocateAddress: true,
			},
		},
		Log: LogConfig{
			Level: "info",
			Baud:  115200,
		},
		Registers: RegistersConfig{
			Backend:      BackendStub,
			PacketBuffer: registers.DataRAMBase + registers.DataRAMSize - packetBufferSize,
		},
	}
}

// Load reads path over Default. It does not validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
