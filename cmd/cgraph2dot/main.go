package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/cgraph2dot/internal/cli"
	"github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line args and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := cli.New(stderr, cli.LogInfo)
	observability.SetPipelineHooks(c.StageHooks())

	root := c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	// diff already printed its report
	if err != nil && !stderrors.Is(err, context.Canceled) && !errors.Is(err, errors.ErrCodeGraphsDiffer) {
		fmt.Fprintln(stderr, "Error:", errors.UserMessage(err))
	}
	return exitCode(err)
}

// exitCode maps a command error to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	default:
		return 1
	}
}
