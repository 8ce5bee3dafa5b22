package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hhhapz/enexorg/debug"
	"github.com/pkg/errors"
)

func main() {
	configFlag := flag.String("config", "", "config file (default "+configPath()+")")
	debugFlag := flag.Bool("debug", false, "enable debug logging (stderr)")
	dumpFlag := flag.Bool("dump", false, "pretty-print the fragments of every note (stderr)")
	outFlag := flag.String("out", "", "directory notebooks are written to (default next to the input)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		log.Fatal(errors.Wrap(err, "could not load config"))
	}
	if *outFlag != "" {
		cfg.OutputDir = *outFlag
	}
	debug.Enabled = *debugFlag || cfg.Debug
	debug.Dumps = *dumpFlag

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := converter{cfg: cfg}
	var failed bool
	for _, path := range flag.Args() {
		s, err := c.convertFile(ctx, path)
		if err != nil {
			log.Printf("could not convert %s: %v", path, err)
			failed = true
			continue
		}

		fmt.Printf("%d entries in %s created.\n", s.notes, s.orgPath)
		log.Println(s)
	}

	if failed {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Converts Evernote export files (.enex) to org-mode (.org)")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  enexorg [flags] file.enex...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
