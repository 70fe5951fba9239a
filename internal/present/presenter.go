package present

import (
	"fmt"
	"io"

	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/present/format"
	"github.com/mithrel/pressgen/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
)

func (m Mode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	case ModeNDJSON:
		return "ndjson"
	default:
		return "plain"
	}
}

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Width      int
	Formatter  htmlfmt.Formatter
}

// ParseMode parses "plain", "pretty", "json" or "ndjson".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "plain":
		return ModePlain, nil
	case "pretty":
		return ModePretty, nil
	case "json":
		return ModeJSON, nil
	case "ndjson":
		return ModeNDJSON, nil
	default:
		return ModePlain, fmt.Errorf("unknown output mode %q (want plain, pretty, json or ndjson)", s)
	}
}

// RenderRecords renders a history listing according to options.
func RenderRecords(w io.Writer, recs []api.Record, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONRecords(w, recs, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONRecords(w, recs)
	default:
		// Pretty lists use the plain table; glamour is reserved for single records.
		return format.WritePlainRecords(w, recs, opts.Headers)
	}
}

// RenderRecord renders a single record according to options.
func RenderRecord(w io.Writer, r api.Record, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONRecord(w, r, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONRecords(w, []api.Record{r})
	case ModePretty:
		return format.WritePrettyRecord(w, r, opts.Formatter, opts.Width)
	default:
		return format.WritePlainRecord(w, r)
	}
}
