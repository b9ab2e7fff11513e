// Package localindex implements driven.SearchClient over an in-memory
// Bleve index built from a JSON file of result records.
//
// It serves offline use and demos: a site URL of the form
// file:///path/to/corpus.json selects it. Hit highlights are emitted in
// SharePoint's <c0>/<ddd/> markup so results go through the same
// formatting as live SharePoint results.
package localindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.SearchClient = (*Index)(nil)

// ErrEmptyCorpus indicates the corpus file contained no records.
var ErrEmptyCorpus = errors.New("localindex: corpus is empty")

// Searchable and stored fields of an indexed record.
const (
	fieldTitle   = "Title"
	fieldSummary = "Summary"
)

// document is the indexed form of a record.
type document struct {
	Title   string `json:"Title"`
	Summary string `json:"Summary"`
}

// Index searches a fixed set of records.
type Index struct {
	idx     bleve.Index
	records map[string]domain.RawResult
}

// Open loads the records in the JSON file at path into a new index.
// The file holds an array of objects with RawResult field names.
func Open(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var records []domain.RawResult
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return New(records)
}

// New indexes records in memory.
func New(records []domain.RawResult) (*Index, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	byID := make(map[string]domain.RawResult, len(records))
	for i, r := range records {
		id := strconv.Itoa(i)
		byID[id] = r
		if err := batch.Index(id, document{Title: r.Title, Summary: r.HitHighlightedSummary}); err != nil {
			return nil, fmt.Errorf("index record %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("index batch: %w", err)
	}

	logger.Debug("Local index: %d records", len(records))
	return &Index{idx: idx, records: byID}, nil
}

// Search matches the query against titles and summaries. A query wrapped
// in double quotes is run as a phrase query.
func (x *Index) Search(ctx context.Context, q domain.SearchQuery) ([]domain.RawResult, error) {
	limit := q.RowLimit
	if limit <= 0 {
		limit = domain.DefaultRowLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(q.Text), limit, 0, false)
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Highlight.AddField(fieldTitle)
	req.Highlight.AddField(fieldSummary)

	res, err := x.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("local search: %w", err)
	}

	results := make([]domain.RawResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r, ok := x.records[hit.ID]
		if !ok {
			continue
		}
		if fragments := hit.Fragments[fieldSummary]; len(fragments) > 0 {
			r.HitHighlightedSummary = toSharePointMarkup(fragments)
		} else if fragments := hit.Fragments[fieldTitle]; len(fragments) > 0 {
			r.HitHighlightedSummary = toSharePointMarkup(fragments)
		}
		results = append(results, r)
	}
	return results, nil
}

// Close releases the index.
func (x *Index) Close() error {
	return x.idx.Close()
}

func buildQuery(text string) query.Query {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		phrase := strings.Trim(text, `"`)
		title := bleve.NewMatchPhraseQuery(phrase)
		title.SetField(fieldTitle)
		summary := bleve.NewMatchPhraseQuery(phrase)
		summary.SetField(fieldSummary)
		return bleve.NewDisjunctionQuery(title, summary)
	}

	title := bleve.NewMatchQuery(text)
	title.SetField(fieldTitle)
	summary := bleve.NewMatchQuery(text)
	summary.SetField(fieldSummary)
	return bleve.NewDisjunctionQuery(title, summary)
}

// markupReplacer maps Bleve's HTML highlight markup to SharePoint's.
var markupReplacer = strings.NewReplacer("<mark>", "<c0>", "</mark>", "</c0>", "…", "<ddd/>")

func toSharePointMarkup(fragments []string) string {
	return markupReplacer.Replace(strings.Join(fragments, "<ddd/>"))
}
