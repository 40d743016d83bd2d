package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func NewDecodeCmd(opts *options) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "decode [ENVELOPE|-]",
		Short: "Decrypt an envelope and print the meeting as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keyFlag(key)
			if err != nil {
				return err
			}
			envelope, err := readArg(cmd, args, nil)
			if err != nil {
				return err
			}
			c, err := opts.newCodec(cmd)
			if err != nil {
				return err
			}
			m, err := c.Decode(envelope, k)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("write meeting: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "transcript key (default $"+KeyEnv+")")
	return cmd
}
