package domain

// Search parameters fixed for every lookup.
const (
	// DefaultRowLimit caps the number of results per entity.
	DefaultRowLimit = 10
)

// SearchQuery is a single request to the search service.
type SearchQuery struct {
	// Text is the query text, quoted for phrase matching when requested.
	Text string

	// RowLimit is the maximum number of results.
	RowLimit int

	// EnableInterleaving mixes result types by relevance.
	EnableInterleaving bool
}

// RawResult is a record as returned by the search service.
// Formatting never modifies a RawResult; it works on a copy.
type RawResult struct {
	Title                 string `json:"Title,omitempty"`
	FileExtension         string `json:"FileExtension,omitempty"`
	FileType              string `json:"FileType,omitempty"`
	HitHighlightedSummary string `json:"HitHighlightedSummary,omitempty"`

	// Size is the size in bytes. Zero means the service did not report one.
	Size int64 `json:"Size,omitempty"`

	ParentLink       string `json:"ParentLink,omitempty"`
	Path             string `json:"Path,omitempty"`
	Author           string `json:"Author,omitempty"`
	LastModifiedTime string `json:"LastModifiedTime,omitempty"`
	SiteName         string `json:"SiteName,omitempty"`

	// Properties holds every other cell the service returned.
	Properties map[string]string `json:"Properties,omitempty"`
}

// IsPage reports whether the record is a web page rather than a document.
func (r RawResult) IsPage() bool {
	return r.FileExtension == PageExtension
}

// FormattedResult is a display-ready copy of a RawResult.
// Derived fields are left empty when their source field is absent.
type FormattedResult struct {
	RawResult

	Icon              string `json:"_icon,omitempty"`
	SizeHumanReadable string `json:"_sizeHumanReadable,omitempty"`
	ContainingFolder  string `json:"_containingFolder,omitempty"`
}

// ResultBuckets splits formatted results into pages and documents.
// Every result lands in exactly one bucket, in input order.
type ResultBuckets struct {
	Pages     []FormattedResult `json:"pages"`
	Documents []FormattedResult `json:"documents"`
}

// Len returns the total number of results in both buckets.
func (b ResultBuckets) Len() int {
	return len(b.Pages) + len(b.Documents)
}
