// Package route maps media entities and search terms to client paths.
package route

import (
	"net/url"
	"strings"

	"musicroom-web/internal/media"
)

// Navigator accepts opaque route requests.
type Navigator interface {
	GoTo(path string)
}

func Home() string    { return "/" }
func Library() string { return "/library" }

func Artist(id string) string {
	return "/artist/" + url.PathEscape(id)
}

func Collection(kind media.Kind, id string) string {
	return "/collection/" + url.PathEscape(string(kind)) + "/" + url.PathEscape(id)
}

// Search returns "" when the trimmed term is empty; such a search is not navigated.
func Search(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "/search?q=" + url.QueryEscape(term)
}

// ForEntity routes artists to the artist view and everything else to the
// generic collection view keyed by (kind, id).
func ForEntity(id string, kind media.Kind) string {
	if kind == media.KindArtist {
		return Artist(id)
	}
	return Collection(kind, id)
}
