package main

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vaultsandbox/tokenseal"
)

var (
	errNoSecret   = errors.New("a --secret or --key-file is required")
	errNoPassword = errors.New("a --password or --password-file is required")
)

// signingSecret returns the secret used to create signatures. A key file must
// hold a private key.
func (a *app) signingSecret() (tokenseal.Secret, error) {
	if a.opts.KeyFile == "" {
		return a.symmetricSecret()
	}

	key, err := loadPEMKey(a.opts.KeyFile)
	if err != nil {
		return nil, err
	}

	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%s does not contain a private key", a.opts.KeyFile)
	}

	return tokenseal.PrivateKey(signer), nil
}

// verificationSecret returns the secret used to check signatures. A private
// key file is reduced to its public half.
func (a *app) verificationSecret() (tokenseal.Secret, error) {
	if a.opts.KeyFile == "" {
		return a.symmetricSecret()
	}

	key, err := loadPEMKey(a.opts.KeyFile)
	if err != nil {
		return nil, err
	}

	if signer, ok := key.(crypto.Signer); ok {
		return tokenseal.PublicKey(signer.Public()), nil
	}

	return tokenseal.PublicKey(key), nil
}

func (a *app) symmetricSecret() (tokenseal.Secret, error) {
	if a.opts.Secret == "" {
		return nil, errNoSecret
	}

	secret, err := tokenseal.SymmetricFromBase64(a.opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("decoding secret: %w", err)
	}

	return secret, nil
}

// password returns the envelope password from the flag, environment or file.
func (a *app) password() ([]byte, error) {
	if a.opts.PasswordFile != "" {
		data, err := os.ReadFile(a.opts.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("reading password file: %w", err)
		}

		return []byte(strings.TrimRight(string(data), "\r\n")), nil
	}

	if a.opts.Password == "" {
		return nil, errNoPassword
	}

	return []byte(a.opts.Password), nil
}

// loadPEMKey reads the first PEM block of path and parses it as a private or
// public key.
func loadPEMKey(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s: PEM data could not be found", path)
	}

	var key any

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	case "RSA PUBLIC KEY":
		key, err = x509.ParsePKCS1PublicKey(block.Bytes)
	case "PUBLIC KEY":
		key, err = x509.ParsePKIXPublicKey(block.Bytes)
	case "CERTIFICATE":
		var cert *x509.Certificate
		if cert, err = x509.ParseCertificate(block.Bytes); err == nil {
			key = cert.PublicKey
		}
	default:
		return nil, fmt.Errorf("%s: unsupported key type: %s", path, block.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return key, nil
}
