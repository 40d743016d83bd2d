package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voiceflow/transcript-web/internal/crypto"
)

func NewGenkeyCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Print a random printable key for AES-128, -192 or -256",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.GenerateTextKey(size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 32, "key length in bytes (16, 24 or 32)")
	return cmd
}
