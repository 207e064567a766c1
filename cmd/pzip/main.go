package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/pzip"
	"github.com/dargueta/pzip/errors"
	"github.com/dargueta/pzip/pipeline"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const usageMessage = "pzip: file1 [file2 ...]"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	// Exit codes are handled by the app; anything left over is unexpected.
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pzip: %s\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "pzip",
		Usage:           "Compress files with run-length encoding, in parallel",
		ArgsUsage:       "file1 [file2 ...]",
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Write diagnostics at this level or above to stderr",
				Value:   "warn",
				EnvVars: []string{"PZIP_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:      "stats",
				Usage:     "Write per-file statistics as CSV to `PATH`",
				EnvVars:   []string{"PZIP_STATS"},
				TakesFile: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			return compressFiles(ctx, stdout, stderr)
		},
	}
}

func newLogger(stderr io.Writer, levelName string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		level,
	)
	return zap.New(core), nil
}

func compressFiles(ctx *cli.Context, stdout, stderr io.Writer) error {
	if ctx.NArg() == 0 {
		return cli.Exit(usageMessage, 1)
	}

	logger, err := newLogger(stderr, ctx.String("log-level"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("pzip: %s", err), 1)
	}
	defer logger.Sync()

	summary, err := pzip.CompressFiles(stdout, ctx.Args().Slice(), pzip.WithLogger(logger))
	if err != nil {
		return cli.Exit(fmt.Sprintf("pzip: %s", err), 1)
	}

	statsPath := ctx.String("stats")
	if statsPath == "" {
		return nil
	}
	if err := writeStats(statsPath, summary.Files); err != nil {
		return cli.Exit(fmt.Sprintf("pzip: %s", err), 1)
	}
	return nil
}

func writeStats(path string, stats []pipeline.FileStats) error {
	handle, err := os.Create(path)
	if err != nil {
		return errors.NewFromError("open", path, err)
	}

	err = pipeline.WriteStatsCSV(handle, stats)
	closeErr := handle.Close()
	if err != nil {
		return errors.NewFromError("write", path, err)
	}
	if closeErr != nil {
		return errors.NewFromError("close", path, closeErr)
	}
	return nil
}
