package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that the settings needed to dispatch mail are present for
// the selected provider. Only the provider in use is checked.
func (e EmailConfig) Validate() error {
	if err := validate.Struct(e); err != nil {
		return describe("email", err)
	}

	var err error
	switch e.Provider {
	case ProviderMailgun:
		err = validate.Struct(e.Mailgun)
	case ProviderResend:
		err = validate.Struct(e.Resend)
	case ProviderSMTP:
		err = validate.Struct(e.SMTP)
	}
	if err != nil {
		return describe("email."+e.Provider, err)
	}
	return nil
}

// describe flattens validator errors into one message naming the offending
// fields without echoing their values.
func describe(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s.%s failed %q", prefix, strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(parts, ", "))
}
