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

import (
	"github.com/RashmicaG/gopherbmc/logger"
)

// The DMA engine moves words between the flash window and the DRAM address
// space, or accumulates a checksum of flash words without writing anywhere.
// A transfer runs to completion within the register write that starts it;
// the cursor registers are updated as the transfer proceeds so that, on an
// early stop, they reflect exactly the work that was done.

// dmaInProgress is true when the engine is enabled and the completion status
// has not been raised. While true, a new DMA cannot be started. Once the
// status bit is set a new DMA can start even if the result of the previous
// one was never collected.
func (s *SMC) dmaInProgress() bool {
	return s.regs[regDMACtrl]&dmaCtrlEnable != 0 &&
		s.regs[regIntrCtrl]&intrDMAStatus == 0
}

// dmaStop returns the engine to idle: status cleared, checksum cleared and
// the completion interrupt lowered whatever the interrupt enable says.
func (s *SMC) dmaStop() {
	s.regs[regIntrCtrl] &^= intrDMAStatus
	s.regs[regDMAChecksum] = 0

	if s.irq != nil {
		s.irq(false)
	}
}

// dmaDone raises the completion status and, if enabled, the completion
// interrupt. it is called on early stop too, so that software polling for
// completion is not left waiting after a fault.
func (s *SMC) dmaDone() {
	s.regs[regIntrCtrl] |= intrDMAStatus
	if s.regs[regIntrCtrl]&intrDMAEnable != 0 {
		if s.irq != nil {
			s.irq(true)
		}
	}
}

// writeDMAControl decodes a write to the DMA control register. Clearing the
// enable bit stops the engine. Setting it starts a checksum or transfer run,
// unless a previous DMA is still in progress, in which case the request is
// discarded.
func (s *SMC) writeDMAControl(value uint32) {
	if value&dmaCtrlEnable == 0 {
		s.regs[regDMACtrl] = value
		s.dmaStop()
		return
	}

	if s.dmaInProgress() {
		logger.Logf("smc", "%s: DMA in progress", s.variant.Name)
		return
	}

	s.regs[regDMACtrl] = value

	if s.regs[regDMACtrl]&dmaCtrlChecksum != 0 {
		s.dmaChecksum()
	} else {
		s.dmaTransfer()
	}

	s.dmaDone()
}

// hclkDivisors maps the frequency field of the DMA control register to a
// clock ratio. the field value at index i selects the ratio HCLK/(i+1).
var hclkDivisors = [16]uint8{15, 7, 14, 6, 13, 5, 12, 4, 11, 3, 10, 2, 9, 1, 8, 0}

// hclkDivisor converts the frequency field into a clock ratio index between
// 1 (HCLK/1) and 16 (HCLK/16). zero means the field was invalid.
func hclkDivisor(mask uint8) uint8 {
	for i, m := range hclkDivisors {
		if mask == m {
			return uint8(i + 1)
		}
	}

	logger.Logf("smc", "invalid HCLK mask %#x", mask)
	return 0
}

// dmaCalibration applies the delay and frequency fields of the DMA control
// register to the shared read timing register and to chip-select 0's clock
// frequency field. Only the fastest clock ratios, HCLK/1 to HCLK/5, have
// tunable delays in the timing register.
func (s *SMC) dmaCalibration() {
	delay := uint8((s.regs[regDMACtrl] >> dmaCtrlDelayShift) & dmaCtrlDelayMask)
	mask := uint8((s.regs[regDMACtrl] >> dmaCtrlFreqShift) & dmaCtrlFreqMask)
	div := hclkDivisor(mask)
	shift := (uint32(div) - 1) << 2

	// the read timing register applies to every chip-select on the bus
	if div != 0 && div < 6 {
		s.regs[s.variant.regTimings] &^= 0xf << shift
		s.regs[s.variant.regTimings] |= uint32(delay) << shift
	}

	// software calibrates against chip-select 0
	const cs = 0
	s.regs[s.variant.regCtrl0+cs] &^= ctrlClockFreqMask << ctrlClockFreqShift
	s.regs[s.variant.regCtrl0+cs] |= (uint32(div) & ctrlClockFreqMask) << ctrlClockFreqShift
}

// injectReadFailure decides whether the current combination of clock ratio
// and read delay is one that is unreliable on real hardware. The thresholds
// model a typical board: the faster the clock, the more delay compensation
// is needed; above the controller's maximum frequency nothing works.
func (s *SMC) injectReadFailure() bool {
	delay := uint8((s.regs[regDMACtrl] >> dmaCtrlDelayShift) & dmaCtrlDelayMask)
	mask := uint8((s.regs[regDMACtrl] >> dmaCtrlFreqShift) & dmaCtrlFreqMask)

	switch hclkDivisor(mask) {
	case 1: // above the max frequency of the controller
		return true
	case 2: // at least two HCLK cycles of delay
		return delay&0x7 < 2
	case 3: // at least one HCLK cycle of delay
		return delay&0x7 < 1
	}

	return false
}

// dmaChecksum accumulates flash words into the checksum register without
// writing anywhere. used by calibration software to validate read timing
// settings.
func (s *SMC) dmaChecksum() {
	if s.regs[regDMACtrl]&dmaCtrlWrite != 0 {
		logger.Logf("smc", "%s: invalid direction for DMA checksum", s.variant.Name)
		return
	}

	if s.regs[regDMACtrl]&dmaCtrlCalib != 0 {
		s.dmaCalibration()
	}

	for s.regs[regDMALen] > 0 {
		data, err := s.flash.Load32(s.regs[regDMAFlashAddr])
		if err != nil {
			logger.Logf("smc", "%s: flash read failed @%08x", s.variant.Name, s.regs[regDMAFlashAddr])
			return
		}

		// while the DMA is on-going the registers hold the current working
		// addresses and length
		s.regs[regDMAChecksum] += data
		s.regs[regDMAFlashAddr] += 4
		s.regs[regDMALen] -= 4
	}

	if s.InjectFailure && s.injectReadFailure() {
		s.regs[regDMAChecksum] = checksumFailure
	}
}

// dmaTransfer moves words between the flash window and DRAM, direction
// chosen by the control register, accumulating a checksum of every word
// moved. A failed access on either side stops the transfer at the current
// cursor positions.
func (s *SMC) dmaTransfer() {
	for s.regs[regDMALen] > 0 {
		var data uint32
		var err error

		if s.regs[regDMACtrl]&dmaCtrlWrite != 0 {
			data, err = s.dram.Load32(s.regs[regDMADRAMAddr])
			if err != nil {
				logger.Logf("smc", "%s: DRAM read failed @%08x", s.variant.Name, s.regs[regDMADRAMAddr])
				return
			}

			err = s.flash.Store32(s.regs[regDMAFlashAddr], data)
			if err != nil {
				logger.Logf("smc", "%s: flash write failed @%08x", s.variant.Name, s.regs[regDMAFlashAddr])
				return
			}
		} else {
			data, err = s.flash.Load32(s.regs[regDMAFlashAddr])
			if err != nil {
				logger.Logf("smc", "%s: flash read failed @%08x", s.variant.Name, s.regs[regDMAFlashAddr])
				return
			}

			err = s.dram.Store32(s.regs[regDMADRAMAddr], data)
			if err != nil {
				logger.Logf("smc", "%s: DRAM write failed @%08x", s.variant.Name, s.regs[regDMADRAMAddr])
				return
			}
		}

		// while the DMA is on-going the registers hold the current working
		// addresses and length
		s.regs[regDMAFlashAddr] += 4
		s.regs[regDMADRAMAddr] += 4
		s.regs[regDMALen] -= 4
		s.regs[regDMAChecksum] += data
	}
}
