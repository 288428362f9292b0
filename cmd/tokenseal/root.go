package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "TOKENSEAL"

// app carries the state shared by every subcommand of a single invocation.
type app struct {
	cfg  Config
	v    *viper.Viper
	log  *logrus.Logger
	opts settings
}

func newRootCommand(cfg Config) *cobra.Command {
	a := &app{
		cfg: cfg,
		v:   viper.New(),
		log: logrus.New(),
	}

	root := &cobra.Command{
		Use:   "tokenseal [flags] command [flags]",
		Short: "Sign, verify and password-seal compact tokens",
		Long: `tokenseal signs and verifies JOSE-style compact tokens with HMAC or RSA keys,
and encrypts data into password-protected three-segment envelopes.

Every flag can also be set through a TOKENSEAL_* environment variable
(for example TOKENSEAL_PASSWORD) or a .env file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	root.PersistentFlags().String("env-file", ".env", "Dotenv file to load before reading the environment")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newSecretCommand(a),
		newSignCommand(a),
		newVerifyCommand(a),
		newEncryptCommand(a),
		newDecryptCommand(a),
		newSealCommand(a),
		newOpenCommand(a),
	)

	return root
}

// setup loads the dotenv file, binds flags and environment into viper and
// validates the merged settings.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := a.v.Unmarshal(&a.opts); err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.opts.Verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	return a.opts.Validate()
}
