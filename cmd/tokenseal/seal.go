package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vaultsandbox/tokenseal"
)

func newSealCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal [flags] [claims-json]",
		Short: "Sign claims and encrypt the token into an envelope",
		Long: `Sign a JSON object of claims and encrypt the resulting token under a password.
The token header is bound to the envelope as associated data and --enc selects
the cipher. Without an argument the claims are read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readArg(cmd, args)
			if err != nil {
				return err
			}

			claims, err := parseClaims(input)
			if err != nil {
				return err
			}

			secret, err := a.signingSecret()
			if err != nil {
				return err
			}

			password, err := a.password()
			if err != nil {
				return err
			}

			h := tokenseal.Header{Typ: "JWT", Alg: a.opts.Alg, Enc: a.opts.Enc}

			envelope, err := tokenseal.SealToken(cmd.Context(), h, claims, secret, password)
			if err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{"alg": h.Alg, "enc": h.Enc}).Debug("sealed token")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), envelope)

			return err
		},
	}

	cmd.Flags().StringP("alg", "a", tokenseal.HS256, "Signature algorithm")
	cmd.Flags().String("enc", tokenseal.DefaultCipher, "Envelope cipher, recorded in the token header")
	addSecretFlags(cmd.Flags())
	addPasswordFlags(cmd.Flags())

	return cmd
}

func newOpenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [flags] [envelope]",
		Short: "Decrypt a sealed token, verify it and print its claims",
		Long:  "Open an envelope created by seal. Without an argument the envelope is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := readArg(cmd, args)
			if err != nil {
				return err
			}

			secret, err := a.verificationSecret()
			if err != nil {
				return err
			}

			password, err := a.password()
			if err != nil {
				return err
			}

			tok, err := tokenseal.OpenToken(cmd.Context(), envelope, password, secret)
			if err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{"alg": tok.Header.Alg, "enc": tok.Header.Enc}).Debug("opened token")

			return writeJSON(cmd.OutOrStdout(), tok.Claims)
		},
	}

	addSecretFlags(cmd.Flags())
	addPasswordFlags(cmd.Flags())

	return cmd
}
