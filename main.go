package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixlgen/convert"
	"pixlgen/parallel"
	"pixlgen/pixel"
	"pixlgen/swatch"
)

var cli struct {
	Workers int            `help:"Number of images converted concurrently, 0 for one per CPU" default:"0"`
	Verbose bool           `help:"Log every pipeline stage" short:"v"`
	Convert convert.CLICmd `cmd:"" help:"Convert every image of a folder to pixel art and extract its palette"`
	Swatch  swatch.CLICmd  `cmd:"" help:"Render a palette file as a grid of swatches"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pixlgen"),
		kong.Description("Pixel art and palette generator"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	pixel.SetLogger(logger)

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
