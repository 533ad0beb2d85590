package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/mapping"
	"github.com/roach88/calsearch/internal/querysql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	QueryOptions
	Dialect string
	Charset string
	Target  string
}

// CompileResult is the rendered fragment of one query.
type CompileResult struct {
	Clause     string   `json:"clause"`
	Parameters []any    `json:"parameters"`
	Dialect    string   `json:"dialect"`
	Joins      []string `json:"joins"`
}

// targets maps --target values to the resolver searched against.
var targets = map[string]func(*calendar.Schema) *mapping.Resolver{
	"event":    (*calendar.Schema).EventResolver,
	"attendee": (*calendar.Schema).AttendeeResolver,
	"alarm":    (*calendar.Schema).AlarmResolver,
	"account":  (*calendar.Schema).AccountResolver,
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [query-document]",
		Short: "Compile a search query to a SQL fragment",
		Long: `Compile a search query to a SQL WHERE fragment.

The query is read from a YAML or CUE document, or given inline with --cel.
Flags override the dialect and charset a document configures.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	opts.QueryOptions.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "", "SQL dialect (mysql|sqlite|postgres)")
	cmd.Flags().StringVar(&opts.Charset, "charset", "", "charset text columns are converted to (mysql only)")
	cmd.Flags().StringVar(&opts.Target, "target", "event", "entity searched (event|attendee|alarm|account)")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)

	resolverFor, ok := targets[opts.Target]
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
			fmt.Errorf("unknown target %q: must be one of event, attendee, alarm, account", opts.Target))
	}

	if cmd.Flags().Changed("dialect") {
		if _, err := querysql.ParseDialect(opts.Dialect); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
		}
	}

	q, err := opts.load(formatter, args)
	if err != nil {
		return err
	}

	adapterOpts, err := opts.adapterOptions(cmd, q)
	if err != nil {
		return formatter.Fail(ExitCommandError, errorCode(err), err)
	}
	adapterOpts = append(adapterOpts, querysql.WithLogger(opts.newLogger(cmd.ErrOrStderr())))

	schema := calendar.NewSchema(opts.ContextID)
	adapter := querysql.NewAdapter(resolverFor(schema), adapterOpts...)
	if q.term != nil {
		if err := adapter.Append(q.term); err != nil {
			return formatter.Fail(ExitFailure, errorCode(err), err)
		}
	}

	result := &CompileResult{
		Clause:     adapter.Clause(),
		Parameters: adapter.Parameters(),
		Dialect:    string(adapter.Dialect()),
		Joins:      []string{},
	}
	for _, group := range adapter.JoinGroups() {
		result.Joins = append(result.Joins, string(group))
	}

	return outputCompileSuccess(formatter, result)
}

// adapterOptions combines the document's configuration with flag overrides.
func (opts *CompileOptions) adapterOptions(cmd *cobra.Command, q *query) ([]querysql.Option, error) {
	var adapterOpts []querysql.Option
	if q.doc != nil {
		docOpts, err := q.doc.Options()
		if err != nil {
			return nil, err
		}
		adapterOpts = append(adapterOpts, docOpts...)
	}

	if cmd.Flags().Changed("dialect") {
		dialect, err := querysql.ParseDialect(opts.Dialect)
		if err != nil {
			return nil, err
		}
		adapterOpts = append(adapterOpts, querysql.WithDialect(dialect))
	}
	if cmd.Flags().Changed("charset") {
		adapterOpts = append(adapterOpts, querysql.WithCharset(opts.Charset))
	}

	return append(adapterOpts, opts.foldOptions()...), nil
}

// outputCompileSuccess outputs the compiled fragment.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	joins := "none"
	if len(result.Joins) > 0 {
		joins = strings.Join(result.Joins, ", ")
	}

	fmt.Fprintf(formatter.Writer, "clause:  %s\n", result.Clause)
	fmt.Fprintf(formatter.Writer, "params:  %s\n", formatParameters(result.Parameters))
	fmt.Fprintf(formatter.Writer, "dialect: %s\n", result.Dialect)
	fmt.Fprintf(formatter.Writer, "joins:   %s\n", joins)
	return nil
}

// formatParameters renders parameters as Go literals so strings stay
// distinguishable from numbers.
func formatParameters(params []any) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%#v", p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
