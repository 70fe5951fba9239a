package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mithrel/pressgen/pkg/api"
)

// parse reads a JSON object (or an array whose first element is used) when the
// content type says JSON, and otherwise treats the first line of text as the
// title and the rest as the news body.
func parse(contentType string, raw []byte) (api.Generated, error) {
	var g api.Generated
	if strings.Contains(contentType, "application/json") {
		var err error
		if g, err = parseJSON(raw); err != nil {
			return api.Generated{}, err
		}
	} else {
		g = parseText(string(raw))
	}
	if g.Title == "" || g.News == "" {
		return api.Generated{}, ErrIncomplete
	}
	return g, nil
}

func parseJSON(raw []byte) (api.Generated, error) {
	trimmed := bytes.TrimSpace(raw)
	var g api.Generated
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var list []api.Generated
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return g, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		if len(list) == 0 {
			return g, fmt.Errorf("%w: empty array", ErrBadResponse)
		}
		g = list[0]
	} else if err := json.Unmarshal(trimmed, &g); err != nil {
		return g, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return api.Generated{
		Title:    strings.TrimSpace(g.Title),
		News:     strings.TrimSpace(g.News),
		Check:    strings.TrimSpace(g.Check),
		Insta:    strings.TrimSpace(g.Insta),
		Facebook: strings.TrimSpace(g.Facebook),
		Blog:     strings.TrimSpace(g.Blog),
	}, nil
}

func parseText(s string) api.Generated {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	g := api.Generated{Title: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		g.News = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return g
}
