package services

import (
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// Markup used by SharePoint hit highlighting and its display replacements.
const (
	highlightOpen  = "<c0>"
	highlightClose = "</c0>"
	truncation     = "<ddd/>"

	strongOpen  = "<strong>"
	strongClose = "</strong>"
	ellipsis    = "&#8230;"
)

var highlightReplacer = strings.NewReplacer(
	highlightOpen, strongOpen,
	highlightClose, strongClose,
	truncation, ellipsis,
)

// FormatResults copies raw results into display-ready records and splits
// them into pages and documents, keeping input order within each bucket.
func FormatResults(raw []domain.RawResult) domain.ResultBuckets {
	buckets := domain.ResultBuckets{
		Pages:     []domain.FormattedResult{},
		Documents: []domain.FormattedResult{},
	}
	for i := range raw {
		formatted := FormatResult(raw[i])
		if raw[i].IsPage() {
			buckets.Pages = append(buckets.Pages, formatted)
		} else {
			buckets.Documents = append(buckets.Documents, formatted)
		}
	}
	return buckets
}

// FormatResult derives the display fields for a single record.
// Each derived field is only set when its source field is present.
func FormatResult(r domain.RawResult) domain.FormattedResult {
	f := domain.FormattedResult{RawResult: r}
	if r.Properties != nil {
		f.Properties = make(map[string]string, len(r.Properties))
		for k, v := range r.Properties {
			f.Properties[k] = v
		}
	}

	if r.HitHighlightedSummary != "" {
		f.HitHighlightedSummary = RewriteHighlights(r.HitHighlightedSummary)
	}
	if r.FileType != "" {
		f.Icon = domain.FileIcon(r.FileType)
	}
	if r.Size > 0 {
		f.SizeHumanReadable = humanize.IBytes(uint64(r.Size))
	}
	if r.ParentLink != "" {
		f.ContainingFolder = containingFolder(r.ParentLink)
	}
	return f
}

// RewriteHighlights converts hit-highlight markup into display markup.
func RewriteHighlights(s string) string {
	return highlightReplacer.Replace(s)
}

// containingFolder returns the path portion of a parent link.
// Links that do not parse as URLs are returned unchanged.
func containingFolder(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.EscapedPath()
}
