package sharepoint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
)

const searchBody = `{
  "ElapsedTime": 12,
  "PrimaryQueryResult": {
    "RelevantResults": {
      "RowCount": 2,
      "TotalRows": 2,
      "Table": {
        "Rows": [
          {"Cells": [
            {"Key": "Title", "Value": "Report", "ValueType": "Edm.String"},
            {"Key": "FileExtension", "Value": "pdf", "ValueType": "Edm.String"},
            {"Key": "FileType", "Value": "pdf", "ValueType": "Edm.String"},
            {"Key": "Size", "Value": "1048576", "ValueType": "Edm.Int64"},
            {"Key": "HitHighlightedSummary", "Value": "<c0>Report</c0><ddd/>", "ValueType": "Edm.String"},
            {"Key": "ParentLink", "Value": "https://sp.example.com/sites/fin/Docs", "ValueType": "Edm.String"},
            {"Key": "Rank", "Value": "16.5", "ValueType": "Edm.Double"},
            {"Key": "Author", "Value": null, "ValueType": "Null"}
          ]},
          {"Cells": [
            {"Key": "Title", "Value": "Home", "ValueType": "Edm.String"},
            {"Key": "FileExtension", "Value": "aspx", "ValueType": "Edm.String"}
          ]}
        ]
      }
    }
  }
}`

func newBearerClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), domain.ConnectionSettings{
		SiteURL:     srv.URL + "/sites/fin",
		AccessToken: "tok",
	})
	require.NoError(t, err)
	return c
}

func TestClient_Search(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("querytext")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "10", r.URL.Query().Get("rowlimit"))
		assert.Equal(t, "true", r.URL.Query().Get("enableinterleaving"))
		assert.Contains(t, r.URL.Query().Get("selectproperties"), "HitHighlightedSummary")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newBearerClient(t, srv)
	results, err := c.Search(context.Background(), domain.SearchQuery{
		Text: `"it's here"`, RowLimit: 10, EnableInterleaving: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "/sites/fin/_api/search/query", gotPath)
	assert.Equal(t, `'"it''s here"'`, gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json;odata=nometadata", gotAccept)

	require.Len(t, results, 2)
	assert.Equal(t, "Report", results[0].Title)
	assert.Equal(t, "pdf", results[0].FileType)
	assert.Equal(t, int64(1048576), results[0].Size)
	assert.Equal(t, "<c0>Report</c0><ddd/>", results[0].HitHighlightedSummary)
	assert.Equal(t, "https://sp.example.com/sites/fin/Docs", results[0].ParentLink)
	assert.Equal(t, "16.5", results[0].Properties["Rank"])
	assert.Empty(t, results[0].Author)
	assert.True(t, results[1].IsPage())
}

func TestClient_Search_NoPrimaryResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ElapsedTime": 3}`))
	}))
	defer srv.Close()

	results, err := newBearerClient(t, srv).Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_Search_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"odata.error":{"code":"-2147024891, System.UnauthorizedAccessException",` +
			`"message":{"lang":"en-US","value":"Access denied."}}}`))
	}))
	defer srv.Close()

	_, err := newBearerClient(t, srv).Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsForbidden(err))
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Access denied.", apiErr.Message)
	assert.Contains(t, apiErr.Code, "UnauthorizedAccessException")
}

func TestClient_Search_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "kaboom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newBearerClient(t, srv).Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestClient_Search_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newBearerClient(t, srv).Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>login</html>`))
	}))
	defer srv.Close()

	_, err := newBearerClient(t, srv).Search(context.Background(), domain.SearchQuery{Text: "x"})

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_Search_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newBearerClient(t, srv)
	srv.Close()

	_, err := c.Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.Error(t, err)
	assert.False(t, IsRateLimited(err))
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_Search_NTLMWithoutChallenge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), domain.ConnectionSettings{
		SiteURL:  srv.URL,
		Username: "alice",
		Password: "secret",
		Domain:   "CORP",
	})
	require.NoError(t, err)

	results, err := c.Search(context.Background(), domain.SearchQuery{Text: "x"})

	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, `CORP\alice`, c.account)
}

func TestNewClient_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, domain.ConnectionSettings{SiteURL: "not a url", AccessToken: "t"})
	assert.ErrorIs(t, err, ErrInvalidSiteURL)

	_, err = NewClient(ctx, domain.ConnectionSettings{SiteURL: "ftp://sp.example.com", AccessToken: "t"})
	assert.ErrorIs(t, err, ErrInvalidSiteURL)

	_, err = NewClient(ctx, domain.ConnectionSettings{SiteURL: "https://sp.example.com"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestClient_SearchURL(t *testing.T) {
	c, err := NewClientWithHTTPClient("https://sp.example.com/sites/hr/?x=1", http.DefaultClient)
	require.NoError(t, err)

	u := c.searchURL(domain.SearchQuery{Text: "policy"})

	assert.Contains(t, u, "https://sp.example.com/sites/hr/_api/search/query?")
	assert.Contains(t, u, "rowlimit=10")
	assert.Contains(t, u, "querytext=%27policy%27")
	assert.NotContains(t, u, "x=1")
	assert.Equal(t, "https://sp.example.com/sites/hr/", c.SiteURL())
}
