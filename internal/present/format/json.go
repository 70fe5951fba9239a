package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/pressgen/pkg/api"
)

func WriteJSONRecords(w io.Writer, recs []api.Record, indent bool) error {
	if recs == nil {
		recs = []api.Record{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(recs)
}

func WriteJSONRecord(w io.Writer, r api.Record, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}
