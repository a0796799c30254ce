package view

import "github.com/aoideee/locallibrary/internal/catalog"

// Home renders the catalog summary.
func Home(s catalog.Summary, err error) Response {
	if err != nil {
		return ServerError(err)
	}
	return Page("index", Context{
		"title": "Local Library Home",
		"data":  s,
	})
}
