package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Plan PlanCmd `cmd:"" help:"Compute water, tank loads and product quantities for a spray mix."`
}

type context struct {
	out io.Writer
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("calda"),
		kong.Description("Spray-mix planner."),
		kong.ShortUsageOnError(),
	)

	err := ctx.Run(&context{out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
