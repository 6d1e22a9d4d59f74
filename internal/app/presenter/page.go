package presenter

import (
	"net/url"
	"strconv"
)

// Page is a paginated list body
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds next/previous links by rewriting the "page" query parameter of requestURL
func NewPage[T any](results []T, total int64, number, size int, requestURL *url.URL) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: total, Results: results}
	if requestURL == nil || size <= 0 {
		return page
	}

	if int64(number*size) < total {
		page.Next = pageLink(requestURL, number+1)
	}
	if number > 1 {
		page.Previous = pageLink(requestURL, number-1)
	}
	return page
}

func pageLink(requestURL *url.URL, number int) *string {
	u := *requestURL
	q := u.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
