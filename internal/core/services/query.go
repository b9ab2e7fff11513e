package services

import "github.com/custodia-labs/sharepoint-lookup/internal/core/domain"

// BuildQuery builds the search request for a single entity value.
// Exact matching wraps the term in quotes to request a phrase match.
func BuildQuery(term string, exactMatch bool) domain.SearchQuery {
	text := term
	if exactMatch {
		text = `"` + term + `"`
	}
	return domain.SearchQuery{
		Text:               text,
		RowLimit:           domain.DefaultRowLimit,
		EnableInterleaving: true,
	}
}
