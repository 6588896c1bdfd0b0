// This file is part of GopherBMC.
//
// GopherBMC is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherBMC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherBMC.  If not, see <https://www.gnu.org/licenses/>.

package smc

// number of 32bit words in the register file. the register file is the same
// size for every variant; the variant's numRegs field limits how much of it
// is decoded.
const numRegisters = 64

// register word indices for the FMC/SMC register layout. the SPI flavoured
// controllers of the first hardware generation use the layout further below.
// per-variant indices (conf, ce-ctrl, ctrl0, timings) are carried in the
// Variant; the indices here are common to all variants that decode them.
const (
	regConf      = 0x00 / 4
	regCECtrl    = 0x04 / 4
	regIntrCtrl  = 0x08 / 4
	regCtrl0     = 0x10 / 4
	regSegAddr0  = 0x30 / 4
	regDummyData = 0x54 / 4

	regDMACtrl      = 0x80 / 4
	regDMAFlashAddr = 0x84 / 4
	regDMADRAMAddr  = 0x88 / 4
	regDMALen       = 0x8c / 4
	regDMAChecksum  = 0x90 / 4
	regTimings      = 0x94 / 4
)

// register word indices for the SPI flavoured controllers (first hardware
// generation only).
const (
	regSPIConf    = 0x00 / 4
	regSPICtrl0   = 0x04 / 4
	regSPITimings = 0x14 / 4
)

// sentinel for a register the variant does not have.
const noRegister = -1

// CE type setting register.
const (
	confLegacyDisable = 1 << 31

	// write-enable bits start at the variant's confEnableW0 bit, one bit per
	// chip-select. flash-type fields are two bits per chip-select starting
	// at bit 0.
	confFlashTypeNOR  = 0x0
	confFlashTypeNAND = 0x1
	confFlashTypeSPI  = 0x2
)

// per chip-select control register.
const (
	ctrlIODualAddrData = 1 << 28

	ctrlCmdShift = 16
	ctrlCmdMask  = 0xff

	ctrlDummyHighShift = 14

	// 4byte addressing bit used by the SPI flavoured controllers in place
	// of a CE control register
	ctrlSPI4Byte = 1 << 13

	ctrlClockFreqShift = 8
	ctrlClockFreqMask  = 0xf

	ctrlDummyLowShift = 6
	ctrlDummyLowMask  = 0x3

	ctrlCEStopActive = 1 << 2

	ctrlModeMask = 0x3
)

// values of the mode field of the control register.
const (
	modeRead     = 0x0
	modeFastRead = 0x1
	modeWrite    = 0x2
	modeUser     = 0x3
)

// interrupt control and status register.
const (
	intrDMAStatus          = 1 << 11
	intrCmdAbortStatus     = 1 << 10
	intrWriteProtectStatus = 1 << 9
	intrDMAEnable          = 1 << 3
	intrCmdAbortEnable     = 1 << 2
	intrWriteProtectEnable = 1 << 1
)

// DMA control/status register.
const (
	dmaCtrlDelayShift = 8
	dmaCtrlDelayMask  = 0xf
	dmaCtrlFreqShift  = 4
	dmaCtrlFreqMask   = 0xf
	dmaCtrlCalib      = 1 << 3
	dmaCtrlChecksum   = 1 << 2
	dmaCtrlWrite      = 1 << 1
	dmaCtrlEnable     = 1 << 0
)

// the DMA length register is truncated to a multiple of four with a ceiling
// of 32MiB.
const dmaLengthMask = 0x01fffffc

// the checksum register is set to this sentinel when a synthetic read
// failure is injected during calibration.
const checksumFailure = 0x0badc0de

// the default read opcode used in read mode, whatever the command field of
// the control register says.
const opcodeRead = 0x03
