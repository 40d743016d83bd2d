// Package cli implements transcriptctl, a tool for inspecting and producing
// transcript envelopes outside the browser.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/logging"
	"github.com/voiceflow/transcript-web/internal/version"
)

// KeyEnv is read when --key is not given.
const KeyEnv = "TRANSCRIPT_KEY"

type options struct {
	logLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "transcriptctl",
		Short:         "Decode, encode and key transcript envelopes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full("transcriptctl") + "\n")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for codec diagnostics (debug, info, warn, error)")

	rootCmd.AddCommand(NewDecodeCmd(opts))
	rootCmd.AddCommand(NewEncodeCmd(opts))
	rootCmd.AddCommand(NewGenkeyCmd())
	return rootCmd
}

// newCodec builds a codec that logs to stderr at the chosen level.
func (o *options) newCodec(cmd *cobra.Command, extra ...codec.Option) (*codec.Codec, error) {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, "text")
	return codec.New(append([]codec.Option{codec.WithLogger(logger)}, extra...)...), nil
}

// keyFlag returns --key, falling back to $TRANSCRIPT_KEY.
func keyFlag(key string) (string, error) {
	if key == "" {
		key = os.Getenv(KeyEnv)
	}
	if key == "" {
		return "", fmt.Errorf("no key: pass --key or set %s", KeyEnv)
	}
	return key, nil
}

// readArg returns args[0], or stdin when there is no argument or it is "-".
func readArg(cmd *cobra.Command, args []string, open func(string) ([]byte, error)) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	if open == nil {
		return args[0], nil
	}
	b, err := open(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
