package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/pressgen/pkg/api"
)

// WriteNDJSONRecords writes records as newline-delimited JSON objects.
func WriteNDJSONRecords(w io.Writer, recs []api.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
