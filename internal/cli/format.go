package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/render"
)

func newFormatCmd() *cobra.Command {
	var (
		title  string
		page   bool
		escape bool
		text   bool
	)
	cmd := &cobra.Command{
		Use:         "format [file]",
		Short:       "Convert plain text to the styled press-release HTML",
		Args:        cobra.MaximumNArgs(1),
		Annotations: noApp(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if page && text {
				return fmt.Errorf("--page and --text cannot be combined")
			}
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			body, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			f := htmlfmt.Formatter{Escape: escape || getConfig(cmd).GetBool("format.escape_html")}
			var out string
			switch {
			case page:
				out, err = f.RenderPage(title, string(body))
				if err != nil {
					return err
				}
			case text:
				out = render.HTMLText(f.Format(string(body), title)) + "\n"
			default:
				out = f.Format(string(body), title) + "\n"
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "title shown above the body")
	cmd.Flags().BoolVar(&page, "page", false, "wrap the fragment in the full HTML page")
	cmd.Flags().BoolVar(&escape, "escape", false, "HTML-escape the text (overrides format.escape_html=false)")
	cmd.Flags().BoolVar(&text, "text", false, "print the fragment converted back to plain text")
	return cmd
}
