package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

func TestValidateOptions_Valid(t *testing.T) {
	errs := ValidateOptions(testOptions())

	require.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestValidateOptions_SubsiteOptional(t *testing.T) {
	opts := testOptions()
	opts.Subsite = domain.OptionValue{}

	assert.Empty(t, ValidateOptions(opts))
}

func TestValidateOptions_EachMissingField(t *testing.T) {
	tests := []struct {
		key     string
		clear   func(*domain.ConnectionOptions)
		message string
	}{
		{"url", func(o *domain.ConnectionOptions) { o.URL.Value = "" },
			"You must provide a Sharepoint Site URL option."},
		{"onpremUsername", func(o *domain.ConnectionOptions) { o.Username.Value = "" },
			"You must provide a Sharepoint Username."},
		{"onpremPassword", func(o *domain.ConnectionOptions) { o.Password.Value = "" },
			"You must provide a password for the given username."},
		{"onpremDomain", func(o *domain.ConnectionOptions) { o.Domain.Value = "" },
			"You must provide a domain for the given username."},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			opts := testOptions()
			tt.clear(&opts)

			errs := ValidateOptions(opts)

			require.Len(t, errs, 1)
			assert.Equal(t, tt.key, errs[0].Key)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestValidateOptions_AllMissing(t *testing.T) {
	errs := ValidateOptions(domain.ConnectionOptions{})

	require.Len(t, errs, 4)
	keys := []string{errs[0].Key, errs[1].Key, errs[2].Key, errs[3].Key}
	assert.Equal(t, []string{"url", "onpremUsername", "onpremPassword", "onpremDomain"}, keys)
}

func TestValidateOptions_AccessTokenStillReportsCredentials(t *testing.T) {
	opts := domain.ConnectionOptions{
		URL:         domain.OptionValue{Value: "https://contoso.sharepoint.com"},
		AccessToken: domain.OptionValue{Value: "tok"},
	}

	errs := ValidateOptions(opts)

	require.Len(t, errs, 3)
	assert.Equal(t, []string{"onpremUsername", "onpremPassword", "onpremDomain"},
		[]string{errs[0].Key, errs[1].Key, errs[2].Key})
}

func TestValidateOptions_LocalIndexStillReportsCredentials(t *testing.T) {
	for _, url := range []string{"file:///tmp/x.json", "FILE:///tmp/x.json"} {
		t.Run(url, func(t *testing.T) {
			errs := ValidateOptions(domain.ConnectionOptions{URL: domain.OptionValue{Value: url}})

			require.Len(t, errs, 3)
			assert.Equal(t, "onpremUsername", errs[0].Key)
		})
	}
}

func TestRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		opts domain.ConnectionOptions
		want bool
	}{
		{"on-prem", testOptions(), true},
		{"empty", domain.ConnectionOptions{}, true},
		{"access token", domain.ConnectionOptions{AccessToken: domain.OptionValue{Value: "tok"}}, false},
		{"local index", domain.ConnectionOptions{URL: domain.OptionValue{Value: "file:///tmp/x.json"}}, false},
		{"local index upper case", domain.ConnectionOptions{URL: domain.OptionValue{Value: " FILE:///tmp/x.json"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requiresCredentials(tt.opts))
		})
	}
}

func TestLookupErrors_TokenStillNeedsURL(t *testing.T) {
	errs := lookupErrors(domain.ConnectionOptions{AccessToken: domain.OptionValue{Value: "tok"}})

	require.Len(t, errs, 1)
	assert.Equal(t, "url", errs[0].Key)
}

func TestLookupErrors_OnPremKeepsAllErrors(t *testing.T) {
	assert.Len(t, lookupErrors(domain.ConnectionOptions{}), 4)
}
