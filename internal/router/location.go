package router

import (
	"net/url"
	"strings"
)

// Location is a route pathname plus its raw query string.
type Location struct {
	Path  string
	Query string // without the leading '?'
}

// Parse splits "/path?query" into a Location.
func Parse(s string) Location {
	path, query, _ := strings.Cut(s, "?")
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: query}
}

// String returns the location in "/path?query" form.
func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Search returns the query string with its leading '?', or "" when empty.
func (l Location) Search() string {
	if l.Query == "" {
		return ""
	}
	return "?" + l.Query
}

// Key identifies the logical page behind l. Equal locations produce equal
// keys; parameter order is normalized.
func (l Location) Key() string {
	values, err := url.ParseQuery(l.Query)
	if err != nil {
		return l.Search()
	}
	if enc := values.Encode(); enc != "" {
		return "?" + enc
	}
	return ""
}

// Param returns the first value of a query parameter.
func (l Location) Param(name string) string {
	values, err := url.ParseQuery(l.Query)
	if err != nil {
		return ""
	}
	return values.Get(name)
}
