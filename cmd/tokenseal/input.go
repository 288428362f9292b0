package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vaultsandbox/tokenseal"
)

// readArg returns the first positional argument, or all of stdin when none
// was given. Surrounding whitespace is removed.
func readArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// parseClaims decodes a JSON object. Empty input yields empty claims.
func parseClaims(s string) (tokenseal.Claims, error) {
	claims := tokenseal.Claims{}
	if s == "" {
		return claims, nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	if err := dec.Decode(&claims); err != nil {
		return nil, fmt.Errorf("claims must be a JSON object: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("claims must be a single JSON object")
	}

	return claims, nil
}

// parseAssociatedData decodes the --ad flag. An empty flag means no
// associated data.
func parseAssociatedData(s string) (any, error) {
	if s == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding associated data: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("associated data must be a single JSON value")
	}

	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

func addSecretFlags(flags *pflag.FlagSet) {
	flags.String("secret", "", "Base64-encoded symmetric key for HMAC algorithms")
	flags.String("key-file", "", "PEM file with an RSA private or public key")
}

func addPasswordFlags(flags *pflag.FlagSet) {
	flags.StringP("password", "p", "", "Envelope password")
	flags.String("password-file", "", "File whose contents are the envelope password")
}
