package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wallsy/pkg/config"
	"wallsy/pkg/gallery"
	"wallsy/pkg/pipeline"
	"wallsy/pkg/wallpaper"
)

const usageExamples = `Examples:
  wallsy random desktop
  wallsy add -f photo.jpg blur -r 20 desktop
  wallsy random -q mountain noir save -d ~/documents -n myphoto
  wallsy desktop posterize show
  wallsy random -q ocean desktop every 30m`

// Pipeline args keep their own per-stage flag sets, so the root command
// leaves flag parsing to the pipeline parser. Plain subcommands (config,
// version) are still dispatched by cobra.
var rootCmd = &cobra.Command{
	Use:                "wallsy [command [flags]]...",
	Short:              "Chain commands to fetch, filter and publish wallpapers",
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func init() {
	rootCmd.RunE = runPipeline
}

func runPipeline(cmd *cobra.Command, args []string) error {
	verbose := false
	if len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}

	logger := newLogger(verbose)
	defer func() {
		_ = logger.Sync()
	}()

	env, err := newEnv(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	reg := pipeline.DefaultRegistry(env)

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		return printHelp(reg, args)
	}

	stages, err := reg.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	seed, err := stdinSeed(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(logger, stages...)
	if err := p.RunLoop(ctx, seed, printFiles); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	return nil
}

func newLogger(verbose bool) *zap.Logger {
	logger, _ := zap.NewDevelopment()
	if !verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.InfoLevel))
	}
	return logger
}

func newEnv(logger *zap.Logger) (*pipeline.Env, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	g, err := gallery.New(afero.NewOsFs(), cfg.MediaDir, cfg.EffectsDir, logger)
	if err != nil {
		return nil, err
	}

	var setterOpts []wallpaper.Option
	if cfg.SetCommand != "" {
		setterOpts = append(setterOpts, wallpaper.WithCommand(cfg.SetCommand))
	}

	return &pipeline.Env{
		Config:  cfg,
		Gallery: g,
		DL:      gallery.NewDownloader(logger, gallery.WithProgress()),
		Setter:  wallpaper.New(logger, setterOpts...),
		Log:     logger,
	}, nil
}

// stdinSeed reads one file path per line when wallsy is on the receiving end
// of a shell pipe. Final stage paths go to stdout so invocations compose.
func stdinSeed(env *pipeline.Env) ([]string, error) {
	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeNamedPipe == 0 {
		return nil, nil
	}

	var seed []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		path, err := env.Gallery.Import(line)
		if err != nil {
			return nil, fmt.Errorf("stdin %s: %w", line, err)
		}
		seed = append(seed, path)
	}

	return seed, scanner.Err()
}

func printFiles(files []string) {
	for _, f := range files {
		fmt.Println(f)
	}
}

func printHelp(reg *pipeline.Registry, args []string) error {
	if len(args) > 1 && args[0] == "help" {
		usage, err := reg.CommandUsage(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return err
		}
		fmt.Print(usage)
		return nil
	}

	fmt.Printf(`wallsy - %s

Usage:
  wallsy [-v] command [flags] [command [flags]]...

Chainable commands:
%s
Other commands:
  config      manage the wallsy config file
  version     print the wallsy version
  help NAME   show flags for a chainable command

%s
`, rootCmd.Short, reg.Usage(), usageExamples)

	return nil
}
