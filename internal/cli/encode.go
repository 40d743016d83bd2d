package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/models"
)

func NewEncodeCmd(opts *options) *cobra.Command {
	var (
		key     string
		wireVer string
	)
	cmd := &cobra.Command{
		Use:   "encode [FILE|-]",
		Short: "Encrypt meeting JSON into an envelope",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keyFlag(key)
			if err != nil {
				return err
			}
			v, err := codec.ParseVersion(wireVer)
			if err != nil {
				return err
			}
			body, err := readArg(cmd, args, os.ReadFile)
			if err != nil {
				return err
			}
			var m models.Meeting
			if err := json.Unmarshal([]byte(body), &m); err != nil {
				return fmt.Errorf("parse meeting JSON: %w", err)
			}
			c, err := opts.newCodec(cmd, codec.WithVersion(v))
			if err != nil {
				return err
			}
			envelope, err := c.Encode(m, k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), envelope)
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "transcript key (default $"+KeyEnv+")")
	cmd.Flags().StringVar(&wireVer, "version", "v1", "envelope version to produce (v1 or v2)")
	return cmd
}
