package api

import "github.com/Manu343726/nesview/pkg/utils"

// Bit positions of the flags in the processor status register (NV-BDIZC)
const (
	StatusCarry            = 0
	StatusZero             = 1
	StatusInterruptDisable = 2
	StatusDecimalMode      = 3
	StatusB                = 4
	StatusUnused           = 5
	StatusOverflow         = 6
	StatusNegative         = 7
)

// Status packs the flags into the processor status register. The unused bit
// always reads as 1.
func (f FlagSet) Status() uint8 {
	var status uint8
	bits := utils.CreateBitView(&status)

	bits.SetBitTo(StatusCarry, f.Carry)
	bits.SetBitTo(StatusZero, f.Zero)
	bits.SetBitTo(StatusInterruptDisable, f.InterruptDisable)
	bits.SetBitTo(StatusDecimalMode, f.DecimalMode)
	bits.SetBitTo(StatusB, f.B)
	bits.SetBitTo(StatusUnused, true)
	bits.SetBitTo(StatusOverflow, f.Overflow)
	bits.SetBitTo(StatusNegative, f.Negative)

	return status
}
