package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/calsearch/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	QueryOptions
	DBPath string
}

// EventResult is one matching event in search output.
type EventResult struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	SeriesID  int64     `json:"series_id,omitempty"`
	Summary   string    `json:"summary"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	AllDay    bool      `json:"all_day,omitempty"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search --db <file> [query-document]",
		Short: "Search events in a calendar database",
		Long: `Run a search query against a SQLite calendar database.

The query is compiled with the SQLite dialect. Dialect, charset and prefix
settings of the document are ignored.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args, cmd)
		},
	}

	opts.QueryOptions.addFlags(cmd)
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to the calendar database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSearch(opts *SearchOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)

	if _, err := os.Stat(opts.DBPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("database not found: %s", opts.DBPath))
		}
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}

	q, err := opts.load(formatter, args)
	if err != nil {
		return err
	}
	if q.doc != nil && (q.doc.Dialect != "" || q.doc.Charset != "" || len(q.doc.Prefixes) > 0) {
		formatter.VerboseLog("Ignoring dialect, charset and prefixes of %s", q.source)
	}

	st, err := store.Open(opts.DBPath,
		store.WithContextID(opts.ContextID),
		store.WithLogger(opts.newLogger(cmd.ErrOrStderr())),
	)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	events, err := st.SearchEvents(cmd.Context(), q.term, opts.foldOptions()...)
	if err != nil {
		code := errorCode(err)
		if code == ErrCodeGeneric {
			code = ErrCodeStore
		}
		return formatter.Fail(ExitFailure, code, err)
	}

	results := make([]EventResult, 0, len(events))
	for _, ev := range events {
		results = append(results, EventResult{
			ID:        ev.ID,
			UID:       ev.UID,
			SeriesID:  ev.SeriesID,
			Summary:   ev.Summary,
			Location:  ev.Location,
			Status:    ev.Status,
			StartDate: ev.StartDate,
			EndDate:   ev.EndDate,
			AllDay:    ev.AllDay,
		})
	}

	return outputSearchResults(formatter, results)
}

// outputSearchResults outputs matching events.
func outputSearchResults(formatter *OutputFormatter, results []EventResult) error {
	if formatter.Format == "json" {
		return formatter.Success(results)
	}

	fmt.Fprintf(formatter.Writer, "%d event(s)\n", len(results))
	if len(results) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n",
			r.ID, r.StartDate.UTC().Format(time.RFC3339), r.Summary, r.Location)
	}
	return tw.Flush()
}
