package nrfbee

import (
	"fmt"

	"github.com/ystepanoff/nrfbee/driver/nrf"
	"github.com/ystepanoff/nrfbee/registers"
)

// RadioConfig is the radio setup applied before joining.
type RadioConfig struct {
	Channel uint8
	TxPower registers.TxPower
}

// ConfigureRadio powers the peripheral and applies the 802.15.4 packet
// layout, channel and transmit power.
func ConfigureRadio(d *nrf.Driver, cfg RadioConfig) error {
	d.PowerOn()
	if err := d.ConfigureIEEE802154(cfg.Channel); err != nil {
		return fmt.Errorf("failed to configure channel %d: %w", cfg.Channel, err)
	}
	d.SetTransmitPower(cfg.TxPower)
	return nil
}
