package domain

// Option keys as they appear in ConnectionOptions JSON and validation errors.
const (
	OptionURL         = "url"
	OptionUsername    = "onpremUsername"
	OptionPassword    = "onpremPassword"
	OptionDomain      = "onpremDomain"
	OptionSubsite     = "subsite"
	OptionAccessToken = "accessToken"
	OptionExactMatch  = "exactMatch"
)

// redactedValue replaces secrets in loggable copies of options.
const redactedValue = "********"

// OptionValue wraps a single string option as supplied by the host.
type OptionValue struct {
	Value string `json:"value"`
}

// IsEmpty reports whether the option carries no value.
func (v OptionValue) IsEmpty() bool {
	return v.Value == ""
}

// ConnectionOptions configures how lookups reach SharePoint.
// They may change between lookups; the services detect that and
// rebuild the search client.
type ConnectionOptions struct {
	// URL is the SharePoint site URL.
	URL OptionValue `json:"url"`

	// Username is the on-premises account name.
	Username OptionValue `json:"onpremUsername"`

	// Password is the on-premises account password.
	Password OptionValue `json:"onpremPassword"`

	// Domain is the on-premises Windows domain.
	Domain OptionValue `json:"onpremDomain"`

	// Subsite narrows the site. It only takes part in change detection.
	Subsite OptionValue `json:"subsite"`

	// AccessToken, when set, is sent as a bearer token instead of NTLM.
	AccessToken OptionValue `json:"accessToken"`

	// ExactMatch quotes search terms for phrase matching.
	ExactMatch bool `json:"exactMatch"`
}

// Settings extracts the fields needed to build a search client.
func (o ConnectionOptions) Settings() ConnectionSettings {
	return ConnectionSettings{
		SiteURL:     o.URL.Value,
		Username:    o.Username.Value,
		Password:    o.Password.Value,
		Domain:      o.Domain.Value,
		AccessToken: o.AccessToken.Value,
	}
}

// Redacted returns a copy safe to write to logs.
func (o ConnectionOptions) Redacted() ConnectionOptions {
	if !o.Password.IsEmpty() {
		o.Password = OptionValue{Value: redactedValue}
	}
	if !o.AccessToken.IsEmpty() {
		o.AccessToken = OptionValue{Value: redactedValue}
	}
	return o
}

// ConnectionSettings is the subset of options a search client is built from.
type ConnectionSettings struct {
	SiteURL     string
	Username    string
	Password    string
	Domain      string
	AccessToken string
}

// ValidationError describes a single invalid option.
type ValidationError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}
