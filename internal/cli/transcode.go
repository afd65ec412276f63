package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cipherwen/pkg/ternary"
)

// encodeCommand creates the encode command, which transcodes cipher text
// into ternary.
func (c *CLI) encodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <text>",
		Short: "Transcode cipher text to ternary",
		Long: `Encode writes every character as a 5-trit block: '0' is 00000 and the letters
A-Z (any case) are 1-26 in base 3.`,
		Example: `  cipherwen encode PP0BC    # 0012100121000000000200010`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := ternary.Encode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// decodeCommand creates the decode command, the inverse of encode.
func (c *CLI) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <ternary>",
		Short:   "Transcode ternary back to cipher text",
		Example: `  cipherwen decode 0012100121000000000200010    # PP0BC`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ternary.Validate(args[0]); err != nil {
				c.Logger.Warn("input is not well-formed ternary", "err", err)
			}
			out, err := ternary.Decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
