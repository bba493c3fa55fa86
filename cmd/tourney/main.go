package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Run      RunCmd           `cmd:"" default:"withargs" help:"Play a match"`
	Equity   EquityCmd        `cmd:"" help:"Estimate the equity of a hand"`
	Describe DescribeCmd      `cmd:"" help:"Name the best hand in 5 to 7 cards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tourney"),
		kong.Description("Three-round poker tournament simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
