// Package sharepoint implements driven.SearchClient against the SharePoint
// search REST API (/_api/search/query).
//
// On-premises sites authenticate with NTLM using the configured domain,
// username and password. When an access token is configured it is sent as
// a bearer token instead. Requests are throttled client-side and SharePoint
// throttling responses (429/503 with Retry-After) are surfaced as
// *RateLimitError.
package sharepoint
