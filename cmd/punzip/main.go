package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/dargueta/pzip/errors"
	"github.com/dargueta/pzip/utilities/compression"
	"github.com/urfave/cli/v2"
)

const usageMessage = "punzip: file1 [file2 ...]"

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "punzip: %s\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "punzip",
		Usage:           "Expand the output of pzip back to the original bytes",
		ArgsUsage:       "file1 [file2 ...]",
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Action: func(ctx *cli.Context) error {
			return expandFiles(ctx, stdout)
		},
	}
}

// expandFiles decodes each file in turn and writes the result to `stdout`. A
// malformed file exits with status 2, anything else with status 1.
func expandFiles(ctx *cli.Context, stdout io.Writer) error {
	if ctx.NArg() == 0 {
		return cli.Exit(usageMessage, 1)
	}

	output := bufio.NewWriter(stdout)
	for _, path := range ctx.Args().Slice() {
		err := expandFile(path, output)
		if err != nil {
			output.Flush()
			if isMalformed(err) {
				return cli.Exit(fmt.Sprintf("punzip: %s: %s", path, err), 2)
			}
			return cli.Exit(fmt.Sprintf("punzip: %s", err), 1)
		}
	}

	if err := output.Flush(); err != nil {
		return cli.Exit(
			fmt.Sprintf("punzip: %s", errors.NewFromError("write", "output", err)), 1)
	}
	return nil
}

func isMalformed(err error) bool {
	return stderrors.Is(err, io.ErrUnexpectedEOF) ||
		stderrors.Is(err, compression.ErrCorruptRecord)
}

func expandFile(path string, output io.Writer) error {
	sourceFile, err := os.Open(path)
	if err != nil {
		return errors.NewFromError("open", path, err)
	}
	defer sourceFile.Close()

	_, err = compression.Expand(sourceFile, output)
	return err
}
