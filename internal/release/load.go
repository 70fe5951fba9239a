package release

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load decodes a YAML form file: a "kind" key plus field names, e.g.
//
//	kind: product
//	title: ...
//	sales_points: |
//	  - ...
func Load(r io.Reader) (Release, error) {
	return LoadAs(r, "")
}

// LoadAs is Load with a default kind for files that omit "kind". A file kind
// that disagrees with a non-empty k is an error.
func LoadAs(r io.Reader, k Kind) (Release, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty form file")
		}
		return nil, fmt.Errorf("decode form: %w", err)
	}
	kind := k
	if s := strings.TrimSpace(raw["kind"]); s != "" {
		fk, err := ParseKind(s)
		if err != nil {
			return nil, err
		}
		if k != "" && fk != k {
			return nil, fmt.Errorf("form kind %q does not match requested kind %q", fk, k)
		}
		kind = fk
	}
	if kind == "" {
		return nil, fmt.Errorf("%w: form has no kind", ErrUnknownKind)
	}
	return FromValues(kind, raw)
}

// Skeleton renders a YAML form for kind k with values prefilled from cur
// (may be nil) and placeholders as comments. Load parses the result.
func Skeleton(k Kind, cur map[string]string) (string, error) {
	blank, err := Empty(k)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# " + k.Label() + "\n")
	b.WriteString("# Fields marked (required) must not be empty.\n")
	b.WriteString("kind: " + string(k) + "\n")
	for _, f := range blank.Fields() {
		b.WriteString("\n# " + f.Display)
		if f.Required {
			b.WriteString(" (required)")
		}
		b.WriteString("\n")
		for _, l := range strings.Split(f.Placeholder, "\n") {
			b.WriteString("#   " + l + "\n")
		}
		v := cur[f.Name]
		if v == "" {
			b.WriteString(f.Name + ": \"\"\n")
			continue
		}
		b.WriteString(f.Name + ": |2-\n")
		for _, l := range strings.Split(v, "\n") {
			b.WriteString("  " + l + "\n")
		}
	}
	return b.String(), nil
}
