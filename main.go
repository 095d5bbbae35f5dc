package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kwade/glint/engine"
	"github.com/kwade/glint/formatter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("glint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	infile := fs.String("f", "", "Read from file instead of stdin")
	outfile := fs.String("outfile", "", "Save all input to the specified file")
	jsonfile := fs.String("jsonfile", "", "Save JSON events to the specified file")
	linear := fs.Bool("linear", false, "Render a single progress bar instead of per-group lines")
	width := fs.Int("width", 0, "Override the detected terminal width")
	tick := fs.Duration("tick", 0, "Animation repaint interval")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	// Setup input source (file or stdin)
	input := stdin
	if *infile != "" {
		f, err := os.Open(*infile)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening input file: %v\n", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	// Setup engine options
	var opts []engine.Option
	if *outfile != "" {
		f, err := os.Create(*outfile)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts = append(opts, engine.WithRawOutput(f))
	}
	if *jsonfile != "" {
		f, err := os.Create(*jsonfile)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating JSON file: %v\n", err)
			return 1
		}
		defer f.Close()
		opts = append(opts, engine.WithJSONOutput(f))
	}

	eng := engine.NewEngine(opts...)
	events := eng.Stream(input)

	var fmtr formatter.Formatter
	if *linear {
		var lopts []formatter.LinearOption
		if *width > 0 {
			lopts = append(lopts, formatter.WithLinearWidth(*width))
		}
		if *noColor {
			lopts = append(lopts, formatter.WithLinearColor(false))
		}
		fmtr = formatter.NewLinear(stdout, lopts...)
	} else {
		var gopts []formatter.GroupedOption
		if *width > 0 {
			gopts = append(gopts, formatter.WithWidth(*width))
		}
		if *tick > 0 {
			gopts = append(gopts, formatter.WithTick(*tick))
		}
		if *noColor {
			gopts = append(gopts, formatter.WithColor(false))
		}
		fmtr = formatter.NewGrouped(stdout, gopts...)
	}

	// Lines that are not lifecycle events (build noise, runner chatter) are
	// replayed after the display has settled rather than mixed into it.
	var raw [][]byte
	for evt := range events {
		switch evt.Type {
		case engine.EventLifecycle:
			formatter.Dispatch(fmtr, evt.Lifecycle)
		case engine.EventRawLine:
			raw = append(raw, evt.RawLine)
		case engine.EventError:
			fmt.Fprintf(stderr, "Error processing events: %v\n", evt.Error)
		case engine.EventComplete:
			// Ensure the run is closed out even if the stream ended without
			// a run-finished event (e.g. the runner was interrupted).
			fmtr.Finish()
		}
	}

	if len(raw) > 0 {
		fmt.Fprintln(stdout)
		for _, line := range raw {
			stdout.Write(line)
			stdout.Write([]byte("\n"))
		}
	}

	if fmtr.HasFailures() {
		return 1
	}
	return 0
}
