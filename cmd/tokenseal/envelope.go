package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultsandbox/tokenseal"
)

const defaultSuffix = ".tse"

func newEncryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [files...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt data into password-protected envelopes",
		Long: `Encrypt each file into <file><suffix>. Without files, stdin is encrypted and
the envelope is written to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.password()
			if err != nil {
				return err
			}

			opts, err := a.envelopeOptions()
			if err != nil {
				return err
			}

			encrypt := func(ctx context.Context, data []byte) ([]byte, error) {
				envelope, err := tokenseal.Encrypt(ctx, password, data, opts...)
				if err != nil {
					return nil, err
				}

				return []byte(envelope + "\n"), nil
			}

			if len(args) == 0 {
				return a.filter(cmd, encrypt)
			}

			return a.processFiles(cmd.Context(), cmd.OutOrStdout(), args, func(in string) (string, error) {
				return in + a.opts.Suffix, nil
			}, encrypt)
		},
	}

	addEnvelopeFlags(cmd)
	cmd.Flags().String("ad", "", "JSON value bound to the envelope as associated data")

	return cmd
}

func newDecryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [files...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt password-protected envelopes",
		Long: `Decrypt each <file><suffix> into <file>. Without files, an envelope is read
from stdin and the plaintext is written to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.password()
			if err != nil {
				return err
			}

			opts, err := a.envelopeOptions()
			if err != nil {
				return err
			}

			decrypt := func(ctx context.Context, data []byte) ([]byte, error) {
				return tokenseal.Decrypt(ctx, password, string(bytes.TrimSpace(data)), opts...)
			}

			if len(args) == 0 {
				return a.filter(cmd, decrypt)
			}

			return a.processFiles(cmd.Context(), cmd.OutOrStdout(), args, func(in string) (string, error) {
				out, ok := strings.CutSuffix(in, a.opts.Suffix)
				if !ok || out == "" {
					return "", fmt.Errorf("%q does not end in %q", in, a.opts.Suffix)
				}

				return out, nil
			}, decrypt)
		},
	}

	addEnvelopeFlags(cmd)

	return cmd
}

func addEnvelopeFlags(cmd *cobra.Command) {
	addPasswordFlags(cmd.Flags())
	cmd.Flags().StringP("cipher", "c", tokenseal.DefaultCipher, "Envelope cipher")
	cmd.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of files processed concurrently")
	cmd.Flags().String("suffix", defaultSuffix, "Suffix of encrypted files")
}

func (a *app) envelopeOptions() ([]tokenseal.EnvelopeOption, error) {
	opts := []tokenseal.EnvelopeOption{tokenseal.WithCipher(a.opts.Cipher)}

	ad, err := parseAssociatedData(a.opts.AD)
	if err != nil {
		return nil, err
	}
	if ad != nil {
		opts = append(opts, tokenseal.WithAssociatedData(ad))
	}

	return opts, nil
}

// filter runs fn over stdin and writes the result to stdout.
func (a *app) filter(cmd *cobra.Command, fn transform) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	out, err := fn(cmd.Context(), data)
	if err != nil {
		return err
	}

	a.log.WithField("bytes", len(out)).Debug("processed stdin")

	_, err = cmd.OutOrStdout().Write(out)

	return err
}
