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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/RashmicaG/gopherbmc/hardware/memory"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/smc"
	"github.com/RashmicaG/gopherbmc/hardware/ssi/spiflash"
	"github.com/RashmicaG/gopherbmc/logger"
	"github.com/RashmicaG/gopherbmc/modalflag"
	"github.com/RashmicaG/gopherbmc/monitor"
	"github.com/RashmicaG/gopherbmc/statsview"
	"github.com/RashmicaG/gopherbmc/version"
)

const mib = 1024 * 1024

// the guest address DRAM is mapped at and the amount of it. enough for
// exercising the DMA engine from the monitor.
const dramBase = 0x80000000
const dramSize = 16 * mib

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("MONITOR", "VARIANTS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "MONITOR":
		err = runMonitor(md)
	case "VARIANTS":
		for _, n := range smc.VariantNames() {
			fmt.Println(n)
		}
	case "VERSION":
		vrsn, rev, _ := version.Version()
		fmt.Printf("%s (%s)\n", vrsn, rev)
	}

	if err != nil {
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}
}

func runMonitor(md *modalflag.Modes) error {
	md.NewMode()

	variant := md.AddString("variant", "fmc-gen2", "controller variant (see VARIANTS mode)")
	numCS := md.AddInt("cs", 1, "number of populated chip-selects")
	flashSize := md.AddInt("flashsize", 32, "size of each flash device in MiB")
	useLog := md.AddBool("log", false, "echo log entries as they happen")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	md.AdditionalHelp("Any non-flag arguments are flash image files, attached to chip-selects in order.")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if *useLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("no statsview in this build (build with the statsview constraint)")
		}
		statsview.Launch(os.Stdout)
	}

	dram := memory.NewRAM(dramBase, dramSize)

	s, err := smc.NewSMC(*variant, *numCS, nil, dram, dramBase, nil)
	if err != nil {
		return err
	}

	// attach a flash device to every populated chip-select. devices take
	// their content from the image files named on the command line, in
	// chip-select order
	images := md.RemainingArgs()
	for cs := 0; cs < s.NumCS; cs++ {
		data, err := flashData(images, cs, *flashSize*mib)
		if err != nil {
			return err
		}
		s.Bus().Attach(cs, spiflash.New(data))
	}

	m, err := monitor.NewMonitor(s)
	if err != nil {
		return err
	}

	return m.Run()
}

// flashData builds the backing data for one flash device. an erased NOR
// flash reads all-ones so unfilled space is 0xff.
func flashData(images []string, cs int, size int) ([]byte, error) {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xff
	}

	if cs >= len(images) {
		return data, nil
	}

	img, err := os.ReadFile(images[cs])
	if err != nil {
		return nil, fmt.Errorf("flash image: %v", err)
	}
	if len(img) > len(data) {
		return nil, fmt.Errorf("flash image: %s does not fit in %dMiB",
			images[cs], size/mib)
	}
	copy(data, img)

	if !strings.HasSuffix(images[cs], ".img") && !strings.HasSuffix(images[cs], ".bin") {
		logger.Logf("main", "unusual extension for flash image: %s", images[cs])
	}

	return data, nil
}
