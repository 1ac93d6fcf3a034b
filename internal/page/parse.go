package page

import (
	"net/url"
	"strings"
)

// Parse maps a client path back to its page. Only relative paths on the
// known routes are accepted.
func Parse(raw string) (Page, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return nil, false
	}

	var parts []string
	for _, seg := range strings.Split(strings.Trim(u.EscapedPath(), "/"), "/") {
		s, err := url.PathUnescape(seg)
		if err != nil {
			return nil, false
		}
		parts = append(parts, s)
	}

	switch {
	case len(parts) == 1 && parts[0] == "":
		return Home{}, true
	case len(parts) == 1 && parts[0] == "library":
		return Library{}, true
	case len(parts) == 1 && parts[0] == "search":
		return Search{Query: u.Query().Get("q")}, true
	case len(parts) == 2 && parts[0] == "artist" && parts[1] != "":
		return Artist{ID: parts[1]}, true
	case len(parts) == 3 && parts[0] == "collection" && parts[2] != "":
		return Collection{Kind: parts[1], ID: parts[2]}, true
	}
	return nil, false
}
