package nrf

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/nrfbee/registers"
)

// Configure sets mode, packet layout, CRC and carrier frequency. An out of
// range frequency is rejected before any register is written.
func (d *Driver) Configure(mode registers.RadioMode, pcnf0 registers.PacketConfig0, crc registers.CRCConfig, frequencyMHz int) error {
	freq, err := registers.EncodeFrequency(frequencyMHz)
	if err != nil {
		return err
	}

	d.regs.Write(registers.MODE, uint32(mode))
	d.regs.Write(registers.PCNF0, pcnf0.Encode())
	d.regs.Write(registers.CRCCNF, crc.Encode())
	d.regs.Write(registers.CRCPOLY, crc.Polynomial)
	d.regs.Write(registers.CRCINIT, crc.Init)
	d.regs.Write(registers.FREQUENCY, freq)

	d.log.Debug("radio configured",
		zap.Uint32("mode", uint32(mode)),
		zap.Int("frequency_mhz", frequencyMHz))
	return nil
}

// ConfigureIEEE802154 applies the 802.15.4 layout on the given channel.
func (d *Driver) ConfigureIEEE802154(channel uint8) error {
	return d.Configure(registers.ModeIEEE802154, registers.IEEE802154PacketConfig,
		registers.IEEE802154CRC, registers.ChannelFrequency(channel))
}

// SetTransmitPower writes TXPOWER.
func (d *Driver) SetTransmitPower(p registers.TxPower) {
	d.regs.Write(registers.TXPOWER, uint32(p))
}

// PowerOn sets the peripheral power register.
func (d *Driver) PowerOn() { d.regs.Write(registers.POWER, 1) }
