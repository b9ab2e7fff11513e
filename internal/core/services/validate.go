package services

import (
	"strings"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// localIndexScheme marks a site URL served from a local corpus file.
const localIndexScheme = "file://"

// requiredOptions lists the options that must be non-empty, in report order.
var requiredOptions = []struct {
	key     string
	message string
	value   func(domain.ConnectionOptions) domain.OptionValue
}{
	{
		key:     domain.OptionURL,
		message: "You must provide a Sharepoint Site URL option.",
		value:   func(o domain.ConnectionOptions) domain.OptionValue { return o.URL },
	},
	{
		key:     domain.OptionUsername,
		message: "You must provide a Sharepoint Username.",
		value:   func(o domain.ConnectionOptions) domain.OptionValue { return o.Username },
	},
	{
		key:     domain.OptionPassword,
		message: "You must provide a password for the given username.",
		value:   func(o domain.ConnectionOptions) domain.OptionValue { return o.Password },
	},
	{
		key:     domain.OptionDomain,
		message: "You must provide a domain for the given username.",
		value:   func(o domain.ConnectionOptions) domain.OptionValue { return o.Domain },
	},
}

// ValidateOptions reports every required option that is missing or empty.
// The result is never nil.
func ValidateOptions(opts domain.ConnectionOptions) []domain.ValidationError {
	errs := []domain.ValidationError{}
	for _, opt := range requiredOptions {
		if opt.value(opts).IsEmpty() {
			errs = append(errs, domain.ValidationError{Key: opt.key, Message: opt.message})
		}
	}
	return errs
}

// requiresCredentials reports whether a lookup with opts needs the on-prem
// username, password and domain. Bearer-token and local-index connections
// do not.
func requiresCredentials(opts domain.ConnectionOptions) bool {
	if !opts.AccessToken.IsEmpty() {
		return false
	}
	url := strings.ToLower(strings.TrimSpace(opts.URL.Value))
	return !strings.HasPrefix(url, localIndexScheme)
}

// lookupErrors returns the validation errors that block a lookup with opts.
func lookupErrors(opts domain.ConnectionOptions) []domain.ValidationError {
	errs := ValidateOptions(opts)
	if requiresCredentials(opts) {
		return errs
	}
	blocking := errs[:0]
	for _, e := range errs {
		if e.Key == domain.OptionURL {
			blocking = append(blocking, e)
		}
	}
	return blocking
}
