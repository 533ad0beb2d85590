package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/calsearch/internal/celquery"
	"github.com/roach88/calsearch/internal/querydoc"
	"github.com/roach88/calsearch/internal/queryir"
	"github.com/roach88/calsearch/internal/querysql"
)

// QueryOptions holds the flags shared by commands that take a query.
type QueryOptions struct {
	CEL       string
	ContextID int64
	NoFold    bool
}

func (q *QueryOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.CEL, "cel", "", "CEL filter expression used instead of a query document")
	cmd.Flags().Int64Var(&q.ContextID, "context", 1, "context id of internal calendar user URIs")
	cmd.Flags().BoolVar(&q.NoFold, "no-fold", false, "disable IN folding of OR-ed equalities")
}

// query is a parsed search term with the document it came from.
// doc is nil for CEL queries.
type query struct {
	term   queryir.Term
	doc    *querydoc.Document
	source string
}

// load reads the query from the document argument or the --cel flag.
// Errors are reported through f and returned as ExitError.
func (q *QueryOptions) load(f *OutputFormatter, args []string) (*query, error) {
	switch {
	case len(args) > 0 && q.CEL != "":
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidFlag,
			errors.New("pass either a query document or --cel, not both"))
	case len(args) == 0 && q.CEL == "":
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidFlag,
			errors.New("a query document or --cel expression is required"))
	}

	if q.CEL != "" {
		term, err := celquery.Parse(q.CEL)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeInvalidDocument, err)
		}
		f.VerboseLog("Parsed CEL expression: %s", q.CEL)
		logFields(f, term)
		return &query{term: term, source: "cel"}, nil
	}

	path := args[0]
	doc, err := querydoc.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("query document not found: %s", path))
		}
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidDocument, err)
	}
	term, err := doc.Term()
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidDocument, err)
	}
	f.VerboseLog("Loaded query document: %s", path)
	logFields(f, term)
	return &query{term: term, doc: doc, source: path}, nil
}

// logFields reports the fields a query references.
func logFields(f *OutputFormatter, term queryir.Term) {
	if term == nil {
		return
	}
	fields := queryir.Fields(term)
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = string(field)
	}
	f.VerboseLog("Fields: %s", strings.Join(names, ", "))
}

// foldOptions returns the folding option selected by --no-fold.
func (q *QueryOptions) foldOptions() []querysql.Option {
	if q.NoFold {
		return []querysql.Option{querysql.WithoutINFolding()}
	}
	return nil
}
