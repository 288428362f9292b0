package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vaultsandbox/tokenseal"
)

type settings struct {
	// Global flags
	EnvFile string `mapstructure:"env-file"`
	Verbose bool   `mapstructure:"verbose"`

	// Token flags
	Alg     string `mapstructure:"alg"      validate:"omitempty,algorithm"`
	Enc     string `mapstructure:"enc"      validate:"omitempty,cipher"`
	Secret  string `mapstructure:"secret"   validate:"excluded_with=KeyFile"`
	KeyFile string `mapstructure:"key-file" validate:"omitempty,file"`

	// Envelope flags
	Password     string `mapstructure:"password"      validate:"excluded_with=PasswordFile"`
	PasswordFile string `mapstructure:"password-file" validate:"omitempty,file"`
	Cipher       string `mapstructure:"cipher"        validate:"omitempty,cipher"`
	AD           string `mapstructure:"ad"            validate:"omitempty,json"`

	// File processing flags
	Parallel int    `mapstructure:"parallel" validate:"omitempty,gte=1"`
	Suffix   string `mapstructure:"suffix"`

	// Secret generation
	Bytes int `mapstructure:"bytes" validate:"omitempty,gte=16,lte=4096"`
}

// Validate validates the settings against the struct tags.
func (s settings) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("cipher", func(fl validator.FieldLevel) bool {
		_, ok := tokenseal.LookupCipher(fl.Field().String())
		return ok
	}); err != nil {
		return fmt.Errorf("registering cipher validation: %w", err)
	}

	if err := validate.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, ok := tokenseal.LookupAlgorithm(fl.Field().String())
		return ok
	}); err != nil {
		return fmt.Errorf("registering algorithm validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}
