// Command mqttdump decodes a captured MQTT 3.1.1 byte stream and prints one
// record per packet.
//
//	mqttdump [-c mqttdump.toml] [-hex] [-stats] [-format text|msgpack] [file]
//
// Without a file argument the stream is read from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/vitalvas/mqttwire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("mqttdump", flag.ContinueOnError)
	cnfFlag := fs.String("c", "", "Path of TOML config file.")
	hexFlag := fs.Bool("hex", false, "Input is a hex dump.")
	statsFlag := fs.Bool("stats", false, "Log per packet type totals when done.")
	formatFlag := fs.String("format", "", "Output format: text or msgpack.")
	strictFlag := fs.Bool("strict", false, "Reject reserved fixed header flags.")
	maxFlag := fs.Uint64("max-size", 0, "Maximum packet size in bytes.")
	levelFlag := fs.String("log-level", "", "Log level: debug, info, warn, error, none.")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadDumpConfig(*cnfFlag)
	if err != nil {
		log.Error(err)
		return 2
	}

	// Flags set on the command line override the config file.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hex":
			cfg.Hex = *hexFlag
		case "stats":
			cfg.Stats = *statsFlag
		case "strict":
			cfg.StrictFlags = *strictFlag
		case "max-size":
			size, err := parseMaxSize(*maxFlag)
			if err != nil {
				flagErr = fmt.Errorf("max-size %w", err)
				return
			}
			cfg.MaxPacketSize = size
		case "format":
			format, err := parseFormat(*formatFlag)
			if err != nil {
				flagErr = err
				return
			}
			cfg.Format = format
		case "log-level":
			level, ok := mqttwire.ParseLogLevel(*levelFlag)
			if !ok {
				flagErr = fmt.Errorf("unknown log level %q", *levelFlag)
				return
			}
			cfg.LogLevel = level
		}
	})
	if flagErr != nil {
		log.Error(flagErr)
		return 2
	}

	logger := mqttwire.WrapLogrus(log.StandardLogger(), cfg.LogLevel)

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			log.Error(err)
			return 1
		}
		defer f.Close()
		in = f
	}

	n, err := newDumper(cfg, logger, stdout).run(in)
	if err != nil {
		log.WithFields(log.Fields{"packets": n}).Error(err)
		return 1
	}

	log.WithFields(log.Fields{"packets": n}).Debug("dump complete")
	return 0
}
