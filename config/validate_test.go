package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ystepanoff/nrfbee/registers"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Validate(Default()) error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		is      error
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{
			name:    "channel 11",
			mutate:  func(c *Config) { c.Radio.Channel = 11 },
			wantErr: true,
			is:      ErrUnsupportedChannel,
		},
		{
			name:    "channel 26",
			mutate:  func(c *Config) { c.Radio.Channel = 26 },
			wantErr: true,
			is:      ErrUnsupportedChannel,
		},
		{
			name:    "tx power not in table",
			mutate:  func(c *Config) { c.Radio.TxPowerDBm = 1 },
			wantErr: true,
			is:      registers.ErrInvalidTxPower,
		},
		{name: "tx power -40", mutate: func(c *Config) { c.Radio.TxPowerDBm = -40 }},
		{name: "negative poll limit", mutate: func(c *Config) { c.Radio.PollLimit = -1 }, wantErr: true},
		{name: "broadcast pan", mutate: func(c *Config) { c.Network.PANID = 0xFFFF }, wantErr: true},
		{name: "coordinator unassigned", mutate: func(c *Config) { c.Network.Coordinator = 0xFFFE }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{
			name: "serial without baud",
			mutate: func(c *Config) {
				c.Log.SerialPort = "/dev/ttyACM0"
				c.Log.Baud = 0
			},
			wantErr: true,
		},
		{name: "mmap without device", mutate: func(c *Config) { c.Registers.Backend = BackendMMap }, wantErr: true},
		{
			name: "mmap with device",
			mutate: func(c *Config) {
				c.Registers.Backend = BackendMMap
				c.Registers.Device = "/dev/mem"
			},
		},
		{
			name: "mmap packet buffer outside data RAM",
			mutate: func(c *Config) {
				c.Registers.Backend = BackendMMap
				c.Registers.Device = "/dev/mem"
				c.Registers.PacketBuffer = 0x10000000
			},
			wantErr: true,
		},
		{
			name: "mmap packet buffer past the end of data RAM",
			mutate: func(c *Config) {
				c.Registers.Backend = BackendMMap
				c.Registers.Device = "/dev/mem"
				c.Registers.PacketBuffer = registers.DataRAMBase + registers.DataRAMSize - 128
			},
			wantErr: true,
		},
		{
			name: "mmap packet buffer unaligned",
			mutate: func(c *Config) {
				c.Registers.Backend = BackendMMap
				c.Registers.Device = "/dev/mem"
				c.Registers.PacketBuffer = registers.DataRAMBase + 2
			},
			wantErr: true,
		},
		{name: "unknown backend", mutate: func(c *Config) { c.Registers.Backend = "spi" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Validate() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := Default()
	cfg.Radio.Channel = 20
	before := *cfg
	_ = Validate(cfg)
	if *cfg != before {
		t.Errorf("Validate() mutated config: %+v, want %+v", *cfg, before)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
radio:
  tx_power_dbm: -8
network:
  pan_id: 0x2b3c
  capabilities:
    mains_power: true
    allocate_address: true
log:
  level: debug
  serial_port: /dev/ttyACM0
registers:
  backend: mmap
  device: /dev/mem
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Radio.Channel != SupportedChannel {
		t.Errorf("Radio.Channel = %d, want default %d", cfg.Radio.Channel, SupportedChannel)
	}
	if cfg.Radio.TxPower() != registers.TxPowerNeg8dBm {
		t.Errorf("TxPower() = 0x%02x, want 0x%02x", cfg.Radio.TxPower(), registers.TxPowerNeg8dBm)
	}
	if cfg.Network.PANID != 0x2b3c {
		t.Errorf("Network.PANID = 0x%04x, want 0x2b3c", cfg.Network.PANID)
	}
	// A capabilities block replaces the default flags it sets and keeps the rest.
	caps := cfg.Network.Capabilities.Info()
	if !caps.MainsPower || !caps.AllocateAddress || !caps.RxOnWhenIdle {
		t.Errorf("Capabilities = %+v", caps)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Baud != 115200 {
		t.Errorf("Log = %+v, want debug at default baud", cfg.Log)
	}
	if cfg.Registers.Backend != BackendMMap || cfg.Registers.Device != "/dev/mem" {
		t.Errorf("Registers = %+v", cfg.Registers)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("radio:\n  chanel: 15\n")); err == nil {
		t.Error("Parse() accepted a misspelled key")
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", *cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.yaml")
	if err := os.WriteFile(path, []byte("radio:\n  channel: 11\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := Validate(cfg); !errors.Is(err, ErrUnsupportedChannel) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnsupportedChannel)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}
