package registers

import "errors"

var (
	ErrFrequencyOutOfRange = errors.New("frequency out of range (valid range: 2360-2500 MHz)")
	ErrInvalidTxPower      = errors.New("unsupported transmit power")
	ErrUnmappedRegister    = errors.New("register outside mapped window")
	ErrDMARegion           = errors.New("invalid DMA region")
)
