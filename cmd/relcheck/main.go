package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
	"github.com/relcheck/relcheck/internal/pipeline"
	"github.com/relcheck/relcheck/internal/platform"
	"github.com/relcheck/relcheck/internal/ui"
)

// Version will be set at build time via -ldflags
var Version = "v0.4.2"

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	flags       config.Partial
	configPath  string
	verbose     bool
	showHelp    bool
	showVersion bool
}

// parseArgs parses the command line by hand. Unknown options and options
// missing their value are errors.
func parseArgs(args []string) (*cliOptions, error) {
	parsed := &cliOptions{}

	takeValue := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("option %s requires a value", name)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--help", "-h":
			parsed.showHelp = true
		case "--version", "-V":
			parsed.showVersion = true
		case "--verbose", "-v":
			parsed.verbose = true
		case "--owner", "-o":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Owner = value
			i++
		case "--repo", "-r":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Repo = value
			i++
		case "--tag", "-t":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Tag = value
			i++
		case "--artifact", "-a":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Artifact = value
			i++
		case "--binary", "-b":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Binary = value
			i++
		case "--keyring":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.flags.Keyring = value
			i++
		case "--config", "-c":
			value, err := takeValue(i, arg)
			if err != nil {
				return nil, err
			}
			parsed.configPath = value
			i++
		default:
			return nil, fmt.Errorf("unknown option: %s\nRun 'relcheck --help' for usage", arg)
		}
	}

	return parsed, nil
}

// loadFileLayer reads the Lua defaults file. An explicitly named file must
// exist; the default location is optional.
func loadFileLayer(path string, explicit bool, log config.Logger) (config.Partial, error) {
	if !explicit {
		if _, err := os.Stat(path); err != nil {
			log.Debug("no defaults file", "path", path)
			return config.Partial{}, nil
		}
	}

	layer, err := config.ParseFile(path)
	if err != nil {
		return config.Partial{}, fmt.Errorf("load %s: %w", path, err)
	}

	log.Debug("loaded defaults file", "path", path)
	return layer, nil
}

func run(args []string) int {
	parsed, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "relcheck: %v\n", err)
		return exitUsage
	}

	if parsed.showHelp {
		printHelp()
		return exitOK
	}
	if parsed.showVersion {
		fmt.Printf("relcheck %s\n", Version)
		return exitOK
	}

	log := ui.NewLogger(os.Stderr, parsed.verbose)
	printer := ui.NewPrinter(os.Stdout)

	configPath := parsed.configPath
	explicit := configPath != ""
	if !explicit {
		configPath = config.DefaultConfigPath()
	}

	fileLayer, err := loadFileLayer(configPath, explicit, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "relcheck: %v\n", err)
		return exitUsage
	}

	opts := config.Resolve(config.Builtin(), fileLayer, parsed.flags)
	opts.Verbose = parsed.verbose

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Platform detection names the default artifact and feeds diagnostics.
	// When the artifact was given explicitly, detection failure only costs
	// the diagnostics line.
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		if opts.Artifact == "" {
			fmt.Fprintf(os.Stderr, "relcheck: cannot derive a default artifact name: %v\n", err)
			return exitFatal
		}
		log.Warn("platform detection failed", "err", err)
		info = nil
	}
	if opts.Artifact == "" {
		opts.Artifact = platform.DefaultArtifact(opts.Repo, opts.Tag, info)
		log.Debug("derived default artifact", "artifact", opts.Artifact)
	}

	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "relcheck: %v\n", err)
		return exitUsage
	}

	p := pipeline.New(opts, command.NewExecRunner(), printer, log)
	p.Platform = info

	if err := p.Run(ctx); err != nil {
		printer.Error("%v", err)
		return exitFatal
	}

	return exitOK
}

func printHelp() {
	fmt.Println("relcheck - verify GitHub release artifacts with build attestations")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  relcheck [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --owner <name>     Repository owner (default: relcheck)")
	fmt.Println("  -r, --repo <name>      Repository name (default: relcheck)")
	fmt.Println("  -t, --tag <tag>        Release tag (default: " + config.DefaultTag + ")")
	fmt.Println("  -a, --artifact <file>  Artifact filename (default: derived from the platform)")
	fmt.Println("  -b, --binary <name>    Extract this binary from the artifact and verify it too")
	fmt.Println("  -c, --config <path>    Lua defaults file (default: " + config.DefaultConfigPath() + ")")
	fmt.Println("      --keyring <path>   Also check the release's detached GPG signature")
	fmt.Println("  -v, --verbose          Enable debug logging")
	fmt.Println("  -V, --version          Show version information")
	fmt.Println("  -h, --help             Show this help")
	fmt.Println()
	fmt.Println("relcheck downloads the release artifact, prints its SHA-256 digest, and")
	fmt.Println("verifies its build attestation with the gh CLI. With --binary it also")
	fmt.Println("extracts the named binary, re-verifies it, and runs it with --version.")
	fmt.Println()
	fmt.Println("Exit codes:")
	fmt.Println("  0  artifact attestation verified (supplementary checks may warn)")
	fmt.Println("  1  missing prerequisites or attestation verification failed")
	fmt.Println("  2  invalid command line or configuration")
}
