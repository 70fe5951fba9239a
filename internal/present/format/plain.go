package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mithrel/pressgen/pkg/api"
)

// Columns: id, kind, source, created, title
const headerLine = "ID\tKIND\tSOURCE\tCREATED\tTITLE\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func created(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func WritePlainRecords(w io.Writer, recs []api.Record, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, r := range recs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			esc(r.ID), esc(r.Kind), esc(string(r.Source)), created(r.CreatedAt), esc(r.Generated.Title))
	}
	return tw.Flush()
}

// WritePlainRecord prints the downloadable text of one record.
func WritePlainRecord(w io.Writer, r api.Record) error {
	_, err := io.WriteString(w, r.Generated.PlainText()+"\n")
	return err
}
