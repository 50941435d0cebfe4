// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ezrec/mos6502/emulator"
	"github.com/ezrec/mos6502/rom"
	"github.com/ezrec/mos6502/translate"
)

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "r", "", "Raw ROM image to run")
	flag.StringVar(&output, "o", "", "Write the program image to a file")
	flag.BoolVar(&save, "s", false, "Save program image only, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -r are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if verbose {
		log.Printf("%v: %d opcodes", os.Args[0], emu.Cpu.Opcodes.Len())
	}

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or use a raw image.
	if len(image) != 0 {
		img, err := rom.Open(os.DirFS(filepath.Dir(image)), filepath.Base(image))
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		emu.Program = img.Program()
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		img := &rom.Rom{Data: emu.Program.Binary()}
		_, err = img.WriteTo(ouf)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		_, err = translate.Fprintf(os.Stdout, "%v", emu.Cpu.String())
		if err == nil {
			_, err = translate.Fprintf(os.Stdout, "%6s: %d\n%6s: %d\n", "ticks", emu.Cpu.Ticks, "cycles", emu.Cpu.Cycles)
		}
	} else {
		_, err = translate.Fprintf(os.Stdout, "%v\n", emu.Cpu.Trace())
	}
	if err != nil {
		log.Fatal(err)
	}
}
