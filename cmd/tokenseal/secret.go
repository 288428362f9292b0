package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tscrypto "github.com/vaultsandbox/tokenseal/internal/crypto"
)

func newSecretCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret [flags]",
		Short: "Generate a random base64-encoded HMAC secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := tscrypto.RandomBytes(a.opts.Bytes)
			if err != nil {
				return fmt.Errorf("generating secret: %w", err)
			}

			a.log.WithField("bytes", len(raw)).Debug("generated secret")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tscrypto.ToBase64(raw))

			return err
		},
	}

	cmd.Flags().IntP("bytes", "n", 256, "Number of random bytes")

	return cmd
}
