// Package cli implements the typeshift command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/typeshift/typeshift/internal/config"
	"github.com/typeshift/typeshift/internal/convert"
	"github.com/typeshift/typeshift/internal/manifest"
)

const usageText = `typeshift - annotate JavaScript sources with inferred TypeScript types

Usage:
  typeshift convert [options] [dir]    convert every %s file in dir (default .)
  typeshift help                       show this help

Options:
  -r, --recursive        descend into subdirectories
      --overwrite MODE   policy for existing targets: replace (default) or skip
      --manifest PATH    track conversions in a sqlite manifest and skip
                         unchanged inputs

A %s file in the source directory provides the same settings; command
line options take precedence.
`

// Entry runs the command line and returns the process exit code.
func Entry(out, errOut io.Writer) int {
	if len(os.Args) < 2 {
		usage(errOut)
		return 2
	}
	switch os.Args[1] {
	case "help", "-help", "--help":
		usage(out)
		return 0
	case "convert":
		return runConvert(out, errOut, os.Args[2:])
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", os.Args[1])
		usage(errOut)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, usageText, config.SourceFileExt, config.ProjectFileName)
}

func runConvert(out, errOut io.Writer, args []string) int {
	dir := "."
	recursive := false
	overwrite := ""
	manifestPath := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-r", "--recursive":
			recursive = true
		case "--overwrite":
			if i+1 >= len(args) {
				fmt.Fprintln(errOut, "--overwrite requires a value")
				return 2
			}
			i++
			overwrite = args[i]
		case "--manifest":
			if i+1 >= len(args) {
				fmt.Fprintln(errOut, "--manifest requires a path")
				return 2
			}
			i++
			manifestPath = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(errOut, "unknown option: %s\n", args[i])
				return 2
			}
			dir = args[i]
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if recursive {
		cfg.Recursive = true
	}
	if overwrite != "" {
		cfg.Overwrite = overwrite
	}
	if manifestPath != "" {
		cfg.Manifest = manifestPath
	}
	switch cfg.Overwrite {
	case config.OverwriteReplace, config.OverwriteSkip:
	default:
		fmt.Fprintf(errOut, "overwrite must be %q or %q, got %q\n",
			config.OverwriteReplace, config.OverwriteSkip, cfg.Overwrite)
		return 2
	}

	var man *manifest.Manifest
	if path := cfg.ManifestPath(); path != "" {
		man, err = manifest.Open(path)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		defer man.Close()
	}

	results, err := convert.New(cfg, man).Run()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	colors := colorEnabled()
	failed := 0
	converted := 0
	for _, res := range results {
		switch res.Status {
		case convert.Converted:
			converted++
			fmt.Fprintf(out, "%s %s -> %s\n",
				paint(colors, green, "converted"), res.Source, res.Target)
		case convert.Failed:
			failed++
			fmt.Fprintf(out, "%s %s: %v\n",
				paint(colors, red, "failed"), res.Source, res.Err)
		default:
			fmt.Fprintf(out, "%s %s\n",
				paint(colors, yellow, res.Status.String()), res.Source)
		}
	}
	fmt.Fprintf(out, "%d converted, %d skipped, %d failed\n",
		converted, len(results)-converted-failed, failed)

	if failed > 0 {
		return 1
	}
	return 0
}

const (
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	reset  = "\033[0m"
)

func paint(enabled bool, color, text string) string {
	if !enabled {
		return text
	}
	return color + text + reset
}

func colorEnabled() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
