package main

import (
	"github.com/stewi1014/fragcanvas/log"
	"github.com/urfave/cli"
)

var logger = log.New("fragcanvas")

// setupLogging applies -v/-vv to every module, then any per-module levels
// from --log so that "--vv --log gl=warning" quiets only the driver.
func setupLogging(ctx *cli.Context) error {
	switch {
	case ctx.GlobalBool("vv"):
		log.SetLevel(log.Debug)
	case ctx.GlobalBool("v"):
		log.SetLevel(log.Info)
	}

	if err := log.Configure(ctx.GlobalString("log")); err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	return nil
}
