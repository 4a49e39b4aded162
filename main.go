package main

import (
	"flag"
	"fmt"
	"os"

	"grimm.is/ifstate/cmd"
	"grimm.is/ifstate/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "format":
		formatFlags := flag.NewFlagSet("format", flag.ExitOnError)
		verbose := formatFlags.Bool("verbose", false, "Enable debug logging")
		formatFlags.BoolVar(verbose, "v", false, "Enable debug logging (short)")
		formatFlags.Parse(os.Args[2:])
		setupLogging(*verbose)

		path := "-"
		if formatFlags.NArg() > 0 {
			path = formatFlags.Arg(0)
		}
		fail(cmd.RunFormat(path))

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		diffFlags.Parse(os.Args[2:])
		if diffFlags.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "usage: ifstate diff <desired-file> <current-file>")
			os.Exit(1)
		}
		fail(cmd.RunDiff(diffFlags.Arg(0), diffFlags.Arg(1)))

	case "validate":
		validateFlags := flag.NewFlagSet("validate", flag.ExitOnError)
		validateFlags.Parse(os.Args[2:])
		if validateFlags.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "usage: ifstate validate <state-file>")
			os.Exit(1)
		}
		fail(cmd.RunValidate(validateFlags.Arg(0)))

	case "show":
		showFlags := flag.NewFlagSet("show", flag.ExitOnError)
		verbose := showFlags.Bool("verbose", false, "Enable debug logging")
		showFlags.BoolVar(verbose, "v", false, "Enable debug logging (short)")
		showFlags.Parse(os.Args[2:])
		setupLogging(*verbose)
		fail(cmd.RunShow())

	case "version", "--version", "-V":
		fail(cmd.RunVersion())

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	cfg := logging.DefaultConfig()
	if verbose {
		cfg.Level = logging.LevelDebug
	}
	logging.SetDefault(logging.New(cfg))
}

func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`ifstate - declarative network interface configuration

Usage: ifstate <command> [options]

Commands:
  format [file|-]              Normalize a state document and print it
  diff <desired> <current>     Diff two state documents after normalization
  validate <file>              Check a state document for errors
  show                         Print the current state read from the kernel
  version                      Print the version

Options:
  -v, -verbose                 Enable debug logging (format, show)
`)
}
