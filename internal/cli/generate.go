package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/pressgen/internal/editor"
	"github.com/mithrel/pressgen/internal/htmlfmt"
	"github.com/mithrel/pressgen/internal/present"
	"github.com/mithrel/pressgen/internal/release"
	"github.com/mithrel/pressgen/internal/tui"
	"github.com/mithrel/pressgen/pkg/api"
)

func newGenerateCmd() *cobra.Command {
	var (
		kindFlag    string
		file        string
		interactive bool
		edit        bool
		outDir      string
		outputMode  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a press release from a form",
		Long: `Generate a press release from a form.

The form comes from a YAML file (--file, "-" for stdin), an interactive
terminal form (--interactive) or $EDITOR (--edit). The release is sent to the
configured webhook once; on any failure the fixed template is used instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)

			sources := 0
			for _, set := range []bool{file != "", interactive, edit} {
				if set {
					sources++
				}
			}
			if sources != 1 {
				return errors.New("choose exactly one of --file, --interactive or --edit")
			}

			var kind release.Kind
			if kindFlag != "" {
				k, err := release.ParseKind(kindFlag)
				if err != nil {
					return err
				}
				kind = k
			} else if interactive || edit {
				return errors.New("--kind is required with --interactive and --edit")
			}

			mode, err := resolveMode(cmd.OutOrStdout(), outputMode)
			if err != nil {
				return err
			}

			var rel release.Release
			switch {
			case file != "":
				rel, err = loadForm(cmd.InOrStdin(), file, kind)
			case interactive:
				rel, err = tui.Run(kind, nil)
			case edit:
				rel, err = editor.EditRelease(kind, nil)
			}
			if err != nil {
				return err
			}

			rec, err := app.Generator.Generate(cmd.Context(), rel)
			if err != nil {
				return err
			}
			if rec.Notice != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), rec.Notice)
			}
			if outDir != "" {
				if err := writeDownloads(outDir, rec, app.Formatter); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s and %s\n",
					filepath.Join(outDir, "press_release.txt"), filepath.Join(outDir, "press_release.html"))
			}
			return present.RenderRecord(cmd.OutOrStdout(), rec, present.Options{
				Mode:      mode,
				Width:     termWidth(cmd.OutOrStdout()),
				Formatter: app.Formatter,
			})
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "", "release kind: product|event")
	cmd.Flags().StringVarP(&file, "file", "f", "", `YAML form file ("-" for stdin)`)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the form in the terminal")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "fill the form in $EDITOR")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for press_release.txt and press_release.html")
	cmd.Flags().StringVar(&outputMode, "output", "", "output mode: plain|pretty|json|ndjson (default pretty on a terminal)")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(release.KindProduct), string(release.KindEvent)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputModes)
	return cmd
}

func completeOutputModes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"plain", "pretty", "json", "ndjson"}, cobra.ShellCompDirectiveNoFileComp
}

// resolveMode parses an --output value; empty picks pretty for terminals and
// plain otherwise.
func resolveMode(out io.Writer, s string) (present.Mode, error) {
	if s == "" {
		if isTerminal(out) {
			return present.ModePretty, nil
		}
		return present.ModePlain, nil
	}
	return present.ParseMode(strings.ToLower(s))
}

func loadForm(stdin io.Reader, path string, k release.Kind) (release.Release, error) {
	if path == "-" {
		return release.LoadAs(stdin, k)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rel, err := release.LoadAs(f, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rel, nil
}

func writeDownloads(dir string, rec api.Record, f htmlfmt.Formatter) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	doc, err := f.RenderPage(rec.Generated.Title, rec.Generated.News)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "press_release.txt"), []byte(rec.Generated.PlainText()), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "press_release.html"), []byte(doc), 0o644)
}
