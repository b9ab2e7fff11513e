package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name       string
		term       string
		exactMatch bool
		want       string
	}{
		{"verbatim", "quarterly report", false, "quarterly report"},
		{"exact match quotes term", "quarterly report", true, `"quarterly report"`},
		{"single word exact", "example.com", true, `"example.com"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(tt.term, tt.exactMatch)
			assert.Equal(t, tt.want, q.Text)
			assert.Equal(t, domain.DefaultRowLimit, q.RowLimit)
			assert.Equal(t, 10, q.RowLimit)
			assert.True(t, q.EnableInterleaving)
		})
	}
}
