package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/article"
	"github.com/matzehuels/cipherwen/pkg/errors"
	"github.com/matzehuels/cipherwen/pkg/pipeline"
)

// fingerprintOpts holds the flags for the fingerprint command.
type fingerprintOpts struct {
	minLength int
	noCache   bool
	refresh   bool
}

// fingerprintCommand creates the fingerprint command, which runs the segment
// search over ad-hoc candidates.
func (c *CLI) fingerprintCommand() *cobra.Command {
	opts := fingerprintOpts{minLength: pipeline.DefaultAnswerMinLength}

	cmd := &cobra.Command{
		Use:   "fingerprint <text> <text>...",
		Short: "Find the segments that tell a few texts apart",
		Long: `Fingerprint keeps only the letters of each argument and finds the first
position and shortest length at which every candidate's segment differs from
all the others. Candidates too short for a segment are padded with '0'.`,
		Example: `  cipherwen fingerprint apple apron    # position 2, length 1: p r`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFingerprint(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.minLength, "min", opts.minLength, "minimum segment length")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached result")

	return cmd
}

// runFingerprint extracts letters from args and prints the fingerprint table.
func (c *CLI) runFingerprint(ctx context.Context, w io.Writer, args []string, opts fingerprintOpts) error {
	if err := errors.ValidateMinLength("segment", opts.minLength); err != nil {
		return err
	}

	candidates := make([]string, len(args))
	for i, a := range args {
		candidates[i] = article.ExtractLetters(a)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	fp, hit, err := runner.FingerprintWithCacheInfo(ctx, "adhoc", candidates, opts.minLength, opts.refresh)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, fingerprintTable("Candidate", candidates, fp))
	if hit {
		printDetail("%s", iconCached)
	}
	return nil
}
