// Package entity defines the core domain entities and validation logic for the application.
// It contains the payload returned by the news search endpoint (NewsRoot, Article, Source)
// along with the strict decoding rules and domain-specific errors.
package entity

import (
	"bytes"
	"net/url"
	"strconv"
)

// NewsRoot is the top-level payload of a successful news search response.
// TotalResults is reported by the server and may differ from len(Articles).
type NewsRoot struct {
	Status       string
	TotalResults int
	Articles     []Article
}

// Article is a single search hit. Author is the only optional field.
type Article struct {
	Source      Source
	Author      *string
	Title       string
	Description string
	URL         url.URL
	ImageURL    url.URL
	Content     string
}

// Source identifies the publisher of an article.
type Source struct {
	ID   *string
	Name string
}

// Equal reports whether two sources are structurally equal.
func (s Source) Equal(o Source) bool {
	return s.Name == o.Name && equalOptional(s.ID, o.ID)
}

// Equal reports whether two articles are structurally equal.
func (a Article) Equal(o Article) bool {
	return a.Source.Equal(o.Source) &&
		equalOptional(a.Author, o.Author) &&
		a.Title == o.Title &&
		a.Description == o.Description &&
		a.URL.String() == o.URL.String() &&
		a.ImageURL.String() == o.ImageURL.String() &&
		a.Content == o.Content
}

// Equal reports whether two payloads are structurally equal, including article order.
func (r NewsRoot) Equal(o NewsRoot) bool {
	if r.Status != o.Status || r.TotalResults != o.TotalResults || len(r.Articles) != len(o.Articles) {
		return false
	}
	for i := range r.Articles {
		if !r.Articles[i].Equal(o.Articles[i]) {
			return false
		}
	}
	return true
}

// UnmarshalJSON decodes a search response body. Keys match exactly, so a
// differently cased key counts as missing. Every key except the optional
// article author and source id must be present and non-null.
func (r *NewsRoot) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return fieldError("root", "payload is null")
	}

	obj, err := decodeObject(data)
	if err != nil {
		return err
	}

	var decoded NewsRoot
	if err := obj.required("status", &decoded.Status); err != nil {
		return err
	}
	if err := obj.required("totalResults", &decoded.TotalResults); err != nil {
		return err
	}
	if err := obj.required("articles", &decoded.Articles); err != nil {
		return err
	}

	*r = decoded
	return nil
}

// UnmarshalJSON decodes one article, mapping "description" and "urlToImage"
// onto Description and ImageURL.
func (a *Article) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return fieldError("article", "article is null")
	}

	obj, err := decodeObject(data)
	if err != nil {
		return err
	}

	var decoded Article
	var rawURL, rawImage string
	for _, f := range []struct {
		name string
		dst  any
	}{
		{"source", &decoded.Source},
		{"title", &decoded.Title},
		{"description", &decoded.Description},
		{"url", &rawURL},
		{"urlToImage", &rawImage},
		{"content", &decoded.Content},
	} {
		if err := obj.required(f.name, f.dst); err != nil {
			return err
		}
	}
	if err := obj.optional("author", &decoded.Author); err != nil {
		return err
	}

	if decoded.URL, err = parseAbsoluteURL("url", rawURL); err != nil {
		return err
	}
	if decoded.ImageURL, err = parseAbsoluteURL("urlToImage", rawImage); err != nil {
		return err
	}

	*a = decoded
	return nil
}

// UnmarshalJSON decodes an article source. The id may be absent or null.
func (s *Source) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return fieldError("source", "source is null")
	}

	obj, err := decodeObject(data)
	if err != nil {
		return prefixField("source", err)
	}

	var decoded Source
	if err := obj.required("name", &decoded.Name); err != nil {
		return prefixField("source", err)
	}
	if err := obj.optional("id", &decoded.ID); err != nil {
		return prefixField("source", err)
	}

	*s = decoded
	return nil
}

// String renders the payload summary used in log lines.
func (r NewsRoot) String() string {
	return "NewsRoot{status=" + r.Status +
		" totalResults=" + strconv.Itoa(r.TotalResults) +
		" articles=" + strconv.Itoa(len(r.Articles)) + "}"
}
