package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/buildgrid/internal/app"
	"github.com/vk/buildgrid/internal/cli"
)

// main is the entrypoint for the buildgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// An interrupt cancels the run; in-flight jobs report Cancelled and
	// the report is still written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := app.LoaderFor(appConfig.MatrixPath)
	buildgridApp := app.NewApp(outW, appConfig, loader)

	result, err := buildgridApp.Run(ctx)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}
	if !result.OK() {
		return &cli.ExitError{Code: 1, Message: "matrix finished with failed jobs"}
	}
	return nil
}
