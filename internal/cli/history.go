package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/pressgen/internal/config"
	"github.com/mithrel/pressgen/internal/db"
	"github.com/mithrel/pressgen/internal/present"
	"github.com/mithrel/pressgen/internal/tui"
	"github.com/mithrel/pressgen/internal/util"
	"github.com/mithrel/pressgen/pkg/api"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Browse generated releases",
	}
	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistorySearchCmd())
	cmd.AddCommand(newHistoryBrowseCmd())
	cmd.AddCommand(newHistoryDeleteCmd())
	return cmd
}

type listFlags struct {
	kind       string
	limit      int
	outputMode string
	noHeaders  bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "only releases of this kind (product|event)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "maximum number of releases (default history.limit)")
	cmd.Flags().StringVar(&f.outputMode, "output", "plain", "output mode: plain|json|ndjson")
	cmd.Flags().BoolVar(&f.noHeaders, "no-headers", false, "omit the header row in plain output")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputModes)
}

func (f *listFlags) query(cmd *cobra.Command) api.ListQuery {
	limit := f.limit
	if limit <= 0 {
		limit = getApp(cmd).Cfg.GetInt("history.limit")
	}
	return api.ListQuery{Kind: f.kind, Limit: limit}
}

func (f *listFlags) render(cmd *cobra.Command, recs []api.Record) error {
	mode, err := present.ParseMode(strings.ToLower(f.outputMode))
	if err != nil {
		return err
	}
	opts := present.Options{Mode: mode, Headers: !f.noHeaders}
	return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return present.RenderRecords(w, recs, opts)
	})
}

func newHistoryListCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := getApp(cmd).Store.List(cmd.Context(), flags.query(cmd))
			if err != nil {
				return err
			}
			return flags.render(cmd, recs)
		},
	}
	flags.register(cmd)
	return cmd
}

func newHistorySearchCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search release titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := flags.query(cmd)
			limit := q.Limit
			// Search across the whole history, then cap the ranked result.
			q.Limit = -1
			recs, err := getApp(cmd).Store.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return flags.render(cmd, util.MatchRecords(strings.Join(args, " "), recs, limit))
		},
	}
	flags.register(cmd)
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show one release",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRecordIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRecord(cmd, args[0], outputMode)
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "", "output mode: plain|pretty|json|ndjson (default pretty on a terminal)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputModes)
	return cmd
}

func showRecord(cmd *cobra.Command, id, outputMode string) error {
	app := getApp(cmd)
	rec, err := app.Store.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("release %s: %w", id, err)
	}
	mode, err := resolveMode(cmd.OutOrStdout(), outputMode)
	if err != nil {
		return err
	}
	opts := present.Options{
		Mode:       mode,
		JSONIndent: true,
		Width:      termWidth(cmd.OutOrStdout()),
		Formatter:  app.Formatter,
	}
	return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return present.RenderRecord(w, rec, opts)
	})
}

func newHistoryBrowseCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a release from an interactive table and show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := getApp(cmd).Store.List(cmd.Context(), flags.query(cmd))
			if err != nil {
				return err
			}
			id, err := tui.Browse(recs)
			if err != nil || id == "" {
				return err
			}
			return showRecord(cmd, id, "pretty")
		},
	}
	cmd.Flags().StringVar(&flags.kind, "kind", "", "only releases of this kind (product|event)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "maximum number of releases (default history.limit)")
	return cmd
}

func newHistoryDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:               "delete <id>...",
		Short:             "Delete releases",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeRecordIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			desc := strings.Join(args, "\n")
			if err := confirmDelete(fmt.Sprintf("Delete %d release(s)?", len(args)), desc, yes); err != nil {
				return err
			}
			var errs []error
			for _, id := range args {
				if err := app.Store.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirmDelete(title, desc string, yes bool) error {
	if yes {
		return nil
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}
	return nil
}

// completeRecordIDs offers recent IDs; a non-ID prefix is fuzzy-matched
// against titles instead. Completion runs without the persistent pre-run
// hook, so the store is opened here.
func completeRecordIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	v := viper.New()
	if p, _ := cmd.Root().PersistentFlags().GetString("config"); p != "" {
		v.SetConfigFile(p)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := db.Open(cmd.Context(), config.ResolveDBURL(v))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer store.Close()
	recs, err := store.List(cmd.Context(), api.ListQuery{Limit: 200})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	byTitle := toComplete != "" && !looksLikeID(toComplete)
	if byTitle {
		recs = util.MatchRecords(toComplete, recs, 20)
	}
	var ids []string
	for _, r := range recs {
		if byTitle || strings.HasPrefix(r.ID, toComplete) {
			ids = append(ids, r.ID+"\t"+r.Generated.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func looksLikeID(s string) bool {
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r == '-') {
			return false
		}
	}
	return true
}
