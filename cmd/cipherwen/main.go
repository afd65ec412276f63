package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/internal/cli"
	cerrors "github.com/matzehuels/cipherwen/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	case cerrors.GetCode(err) != "":
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", cerrors.Stage(cerrors.GetCode(err)), err)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")

	// --verbose is only parsed by the time the pre-run hooks fire.
	pre := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if pre == nil {
			return nil
		}
		return pre(cmd, args)
	}
	return root.ExecuteContext(ctx)
}
