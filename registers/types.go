package registers

// RadioState is the value of the STATE register.
type RadioState uint8

const (
	StateDisabled  RadioState = 0
	StateRxRampUp  RadioState = 1
	StateRxIdle    RadioState = 2
	StateRx        RadioState = 3
	StateRxDisable RadioState = 4
	StateTxRampUp  RadioState = 9
	StateTxIdle    RadioState = 10
	StateTx        RadioState = 11
	StateTxDisable RadioState = 12
)

// String returns a human-readable name for the radio state
func (s RadioState) String() string {
	switch s {
	case StateDisabled:
		return "Disabled"
	case StateRxRampUp:
		return "RxRampUp"
	case StateRxIdle:
		return "RxIdle"
	case StateRx:
		return "Rx"
	case StateRxDisable:
		return "RxDisable"
	case StateTxRampUp:
		return "TxRampUp"
	case StateTxIdle:
		return "TxIdle"
	case StateTx:
		return "Tx"
	case StateTxDisable:
		return "TxDisable"
	}
	return "Unknown"
}

// IsRx reports whether the receiver is enabled in any phase.
func (s RadioState) IsRx() bool { return s >= StateRxRampUp && s <= StateRxDisable }

// IsTx reports whether the transmitter is enabled in any phase.
func (s RadioState) IsTx() bool { return s >= StateTxRampUp && s <= StateTxDisable }

// RadioMode selects data rate and modulation (MODE register).
type RadioMode uint32

const (
	ModeNrf1Mbit     RadioMode = 0
	ModeNrf2Mbit     RadioMode = 1
	ModeBle1Mbit     RadioMode = 3
	ModeBle2Mbit     RadioMode = 4
	ModeBleLR125Kbit RadioMode = 5
	ModeBleLR500Kbit RadioMode = 6
	ModeIEEE802154   RadioMode = 15
)

// TxPower is the TXPOWER register encoding of the output power in dBm.
type TxPower uint32

const (
	TxPowerPos8dBm  TxPower = 0x08
	TxPowerPos7dBm  TxPower = 0x07
	TxPowerPos6dBm  TxPower = 0x06
	TxPowerPos5dBm  TxPower = 0x05
	TxPowerPos4dBm  TxPower = 0x04
	TxPowerPos3dBm  TxPower = 0x03
	TxPowerPos2dBm  TxPower = 0x02
	TxPower0dBm     TxPower = 0x00
	TxPowerNeg4dBm  TxPower = 0xFC
	TxPowerNeg8dBm  TxPower = 0xF8
	TxPowerNeg12dBm TxPower = 0xF4
	TxPowerNeg16dBm TxPower = 0xF0
	TxPowerNeg20dBm TxPower = 0xEC
	TxPowerNeg30dBm TxPower = 0xE2
	TxPowerNeg40dBm TxPower = 0xD8
)

// TxPowerFromDBm maps a dBm figure onto a supported TXPOWER setting.
func TxPowerFromDBm(dbm int) (TxPower, error) {
	switch dbm {
	case 8, 7, 6, 5, 4, 3, 2, 0:
		return TxPower(uint32(dbm)), nil
	case -4, -8, -12, -16, -20, -30, -40:
		return TxPower(uint32(int32(dbm)) & 0xFF), nil
	}
	return 0, ErrInvalidTxPower
}
