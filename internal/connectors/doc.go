// Package connectors provides implementations of the SearchClient interface
// for the repositories lookups can run against.
//
// The Factory picks a connector from the site URL: SharePoint for http(s)
// URLs and an in-memory local index for file URLs.
package connectors
