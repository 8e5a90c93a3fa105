package main

import (
	"flag"
	"fmt"
	"os"
	rtdebug "runtime/debug"

	"github.com/nucleoia/ccv/cmd/ccv/commands"
	debugpkg "github.com/nucleoia/ccv/internal/debug"
)

var (
	// Version can be set by ldflags during build
	Version = ""
	// BuildTime can be set by ldflags during build
	BuildTime = ""
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			commands.DefaultRegistry.PrintHelp(os.Stdout)
			os.Exit(0)
		case "--version", "-v", "version":
			printVersion()
			os.Exit(0)
		}
	}

	if len(os.Args) < 2 {
		commands.DefaultRegistry.PrintHelp(os.Stdout)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cmdName := os.Args[1]

	cmd, ok := commands.DefaultRegistry.Get(cmdName)
	if !ok {
		return fmt.Errorf("unknown command: %s\nRun 'ccv --help' for usage", cmdName)
	}

	fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)

	var flags commands.Flags
	fs.StringVar(&flags.ConfigPath, "config", "", "Path to config.yaml")
	fs.BoolVar(&flags.JSONOutput, "json", false, "Output in JSON format")
	fs.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	cmd.Setup(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "ccv %s - %s\n\n", cmd.Name(), cmd.Description())
		fmt.Fprintf(os.Stderr, "Usage: ccv %s [flags] [arguments]\n\n", cmd.Name())
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if flags.Debug {
		debugpkg.Enabled = true
	}

	ctx := commands.NewContext(&flags)
	return cmd.Run(ctx, fs.Args())
}

// printVersion prints version information.
func printVersion() {
	version := Version
	if version == "" {
		if info, ok := rtdebug.ReadBuildInfo(); ok {
			version = info.Main.Version
		}
		if version == "" || version == "(devel)" {
			version = "dev"
		}
	}

	fmt.Printf("ccv version %s", version)
	if BuildTime != "" {
		fmt.Printf(" (built %s)", BuildTime)
	}
	fmt.Println()
}
