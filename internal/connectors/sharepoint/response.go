package sharepoint

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

// SelectProperties are the managed properties requested for every result.
var SelectProperties = []string{
	"Title",
	"FileExtension",
	"FileType",
	"HitHighlightedSummary",
	"Size",
	"ParentLink",
	"Path",
	"Author",
	"LastModifiedTime",
	"SiteName",
}

// searchResponse is the odata=nometadata shape of /_api/search/query.
type searchResponse struct {
	PrimaryQueryResult *struct {
		RelevantResults struct {
			RowCount  int `json:"RowCount"`
			TotalRows int `json:"TotalRows"`
			Table     struct {
				Rows []struct {
					Cells []cell `json:"Cells"`
				} `json:"Rows"`
			} `json:"Table"`
		} `json:"RelevantResults"`
	} `json:"PrimaryQueryResult"`
}

type cell struct {
	Key       string  `json:"Key"`
	Value     *string `json:"Value"`
	ValueType string  `json:"ValueType"`
}

// errorResponse is the odata=nometadata error body.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"odata.error"`
}

// decodeResults reads the primary result set from a search response body.
func decodeResults(r io.Reader) ([]domain.RawResult, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.PrimaryQueryResult == nil {
		return []domain.RawResult{}, nil
	}

	rows := resp.PrimaryQueryResult.RelevantResults.Table.Rows
	results := make([]domain.RawResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, resultFromCells(row.Cells))
	}
	return results, nil
}

// resultFromCells flattens a row's key/value cells into a RawResult.
// Cells without a dedicated field are kept in Properties.
func resultFromCells(cells []cell) domain.RawResult {
	var r domain.RawResult
	for _, c := range cells {
		if c.Value == nil {
			continue
		}
		v := *c.Value
		switch c.Key {
		case "Title":
			r.Title = v
		case "FileExtension":
			r.FileExtension = v
		case "FileType":
			r.FileType = v
		case "HitHighlightedSummary":
			r.HitHighlightedSummary = v
		case "Size":
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				r.Size = n
			}
		case "ParentLink":
			r.ParentLink = v
		case "Path":
			r.Path = v
		case "Author":
			r.Author = v
		case "LastModifiedTime":
			r.LastModifiedTime = v
		case "SiteName":
			r.SiteName = v
		default:
			if r.Properties == nil {
				r.Properties = make(map[string]string)
			}
			r.Properties[c.Key] = v
		}
	}
	return r
}

// decodeError builds an APIError from a failed response body.
func decodeError(statusCode int, url string, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, URL: url}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Message.Value != "" {
		apiErr.Code = resp.Error.Code
		apiErr.Message = resp.Error.Message.Value
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("status %d", statusCode)
	}
	return apiErr
}
