package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vaultsandbox/tokenseal"
)

var errInvalidToken = errors.New("token signature is not valid")

func newSignCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [flags] [claims-json]",
		Short: "Sign claims into a compact token",
		Long:  "Sign a JSON object of claims. Without an argument the claims are read from stdin.",
		Args:  cobra.MaximumNArgs(1),
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

			h := tokenseal.Header{Typ: "JWT", Alg: a.opts.Alg, Enc: a.opts.Enc}

			token, err := tokenseal.Sign(h, claims, secret)
			if err != nil {
				return err
			}

			a.log.WithFields(logrus.Fields{"alg": h.Alg, "claims": len(claims)}).Debug("signed token")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err
		},
	}

	cmd.Flags().StringP("alg", "a", tokenseal.HS256, "Signature algorithm")
	cmd.Flags().String("enc", "", "Cipher recorded in the header's enc field")
	addSecretFlags(cmd.Flags())

	return cmd
}

func newVerifyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [flags] [token]",
		Short: "Verify a compact token and print its claims",
		Long:  "Verify a token's signature. Without an argument the token is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readArg(cmd, args)
			if err != nil {
				return err
			}

			secret, err := a.verificationSecret()
			if err != nil {
				return err
			}

			ok, err := tokenseal.Verify(token, secret)
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidToken
			}

			tok, err := tokenseal.Parse(token)
			if err != nil {
				return err
			}

			a.log.WithField("alg", tok.Header.Alg).Debug("verified token")

			return writeJSON(cmd.OutOrStdout(), tok.Claims)
		},
	}

	addSecretFlags(cmd.Flags())

	return cmd
}
