package services

import (
	"fmt"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// MaxSummaryTags caps the summary, including the overflow counter.
const MaxSummaryTags = 5

// BuildSummaryTags derives short labels for a result set.
// Labels are deduplicated in first-seen order. When there are more than
// MaxSummaryTags distinct labels, the first MaxSummaryTags-1 are kept and
// the last entry reports how many were left out.
func BuildSummaryTags(raw []domain.RawResult) []string {
	seen := make(map[string]struct{}, len(raw))
	labels := make([]string, 0, len(raw))
	for i := range raw {
		label := summaryLabel(raw[i])
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	if len(labels) <= MaxSummaryTags {
		return labels
	}

	kept := labels[:MaxSummaryTags-1]
	return append(kept, fmt.Sprintf("+%d results", len(labels)-len(kept)))
}

func summaryLabel(r domain.RawResult) string {
	if r.IsPage() {
		return "Page: " + r.Title
	}
	return fmt.Sprintf("File: %s.%s", r.Title, r.FileExtension)
}
