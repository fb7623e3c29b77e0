package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/fifastats/internal/core"
	"github.com/JonMunkholm/fifastats/internal/roster"
)

// Exit codes for different failure modes
const (
	ExitSuccess          = 0 // Report printed
	ExitConversionFailed = 1 // A player row had a non-integer age or overall
	ExitError            = 2 // Configuration or runtime error
)

func main() {
	// Overload lets a local .env win over inherited variables.
	if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var conv *roster.FieldConversionFailure
	if errors.As(err, &conv) {
		return ExitConversionFailed
	}
	return ExitError
}
