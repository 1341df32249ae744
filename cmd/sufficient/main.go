// Command sufficient is a basic HTTP file server.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/RadicalZephyr/sufficient/internal/config"
	"github.com/RadicalZephyr/sufficient/internal/logging"
	"github.com/RadicalZephyr/sufficient/internal/serve"
)

const version = "0.1.0"

func main() {
	log := logging.New(os.Stderr)
	if err := run(log); err != nil {
		logging.ErrorChain(log, err)
		os.Exit(1)
	}
}

func run(log logging.Logger) error {
	cfg := config.Default()

	configPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("a", cfg.Addr, "the IP:PORT combination to listen on")
	mimeTypes := flag.String("mime-types", "", "path to a YAML file of extension→type overrides")
	devExt := flag.Bool("x", false, "enable developer extensions")
	flag.Parse()

	if *configPath != "" {
		if err := config.LoadFile(*configPath, cfg); err != nil {
			return err
		}
	}

	// Flags win over the config file; the root directory is the single
	// optional positional argument.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Addr = *addr
		case "mime-types":
			cfg.MimeTypes = *mimeTypes
		case "x":
			cfg.DevExtensions = *devExt
		}
	})
	if flag.NArg() > 0 {
		cfg.RootDir = flag.Arg(0)
	}

	if err := cfg.Finalize(); err != nil {
		return err
	}

	mime := serve.NewMimeTable()
	if cfg.MimeTypes != "" {
		if err := mime.LoadOverrides(cfg.MimeTypes); err != nil {
			return err
		}
	}

	log.Infof("sufficient %s", version)
	log.Infof("addr: http://%s", cfg.Addr)
	log.Infof("root dir: %s", cfg.RootDir)

	builder := serve.NewBuilder(cfg.RootDir, mime, log, cfg.DevExtensions)
	return http.ListenAndServe(cfg.Addr, builder)
}
