package cmd

import (
	"github.com/achilleasa/hybridrt/log"
	"github.com/urfave/cli"
)

var logger = log.New("hybridrt")

// Map the global -v/-vv flags to a log level; -vv wins over -v.
func verbosity(ctx *cli.Context) log.Level {
	switch {
	case ctx.GlobalBool("vv"):
		return log.Debug
	case ctx.GlobalBool("v"):
		return log.Info
	}
	return log.Notice
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(verbosity(ctx))
}
