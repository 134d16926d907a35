package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := buildRootCmd()
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("genaictl failed")
		os.Exit(1)
	}
}

// setLogLevel applies a textual level, defaulting to info on junk input.
func setLogLevel(s string) {
	lvl := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(s); err == nil && s != "" {
		lvl = l
	}
	zerolog.SetGlobalLevel(lvl)
}
