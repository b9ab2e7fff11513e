package domain

// Entity is a single search request supplied by the caller.
// It is passed through to the LookupResult unchanged.
type Entity struct {
	// Type is the caller's classification of the value (e.g. "domain").
	Type string `json:"type"`

	// Value is the search term.
	Value string `json:"value"`
}

// LookupData holds the results found for one entity.
type LookupData struct {
	// Summary is a short list of labels describing the results.
	Summary []string `json:"summary"`

	// Details holds the formatted results split into pages and documents.
	Details ResultBuckets `json:"details"`
}

// LookupResult is the outcome of searching for a single entity.
// Data is nil when the search returned no results.
type LookupResult struct {
	Entity Entity      `json:"entity"`
	Data   *LookupData `json:"data"`
}

// HasResults reports whether the lookup found anything.
func (r LookupResult) HasResults() bool {
	return r.Data != nil
}
