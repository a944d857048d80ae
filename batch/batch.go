// Package batch drives a list of queries against one relation store and
// collects a result per query.
package batch

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/BasharSaadi/RA-Query-Processor/engine"
	"github.com/BasharSaadi/RA-Query-Processor/loader"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
	"github.com/BasharSaadi/RA-Query-Processor/render"
)

// Keywords are the operation names that start a bare query line.
var Keywords = []string{"select", "project", "join", "union", "intersection", "difference"}

const queryPrefix = "Query:"

// ExtractQueries returns the queries found in doc, in order. A line starting
// with "Query:" contributes the trimmed remainder; a line starting with an
// operation keyword is taken as-is. Everything else is ignored.
func ExtractQueries(doc string) []string {
	var queries []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, queryPrefix):
			if q := strings.TrimSpace(line[len(queryPrefix):]); q != "" {
				queries = append(queries, q)
			}
		case startsWithKeyword(line):
			queries = append(queries, line)
		}
	}
	return queries
}

func startsWithKeyword(line string) bool {
	for _, kw := range Keywords {
		if !strings.HasPrefix(line, kw) {
			continue
		}
		rest := line[len(kw):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(' {
			return true
		}
	}
	return false
}

// Result is the outcome of one query. Exactly one of Relation and Err is set.
type Result struct {
	Index    int
	Query    string
	Relation *relation.Relation
	Err      error
}

// OK reports whether the query succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Session evaluates queries against a store and logs under a run id.
type Session struct {
	ID     string
	Store  *relation.Store
	logger *slog.Logger
}

// NewSession creates a session over store. A nil store starts empty and a
// nil logger discards output.
func NewSession(store *relation.Store, logger *slog.Logger) *Session {
	if store == nil {
		store = relation.NewStore()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.NewString()
	return &Session{
		ID:     id,
		Store:  store,
		logger: logger.With("run", id),
	}
}

// LoadDocument registers every well-formed definition block in doc. Broken
// blocks are logged and skipped; their errors are returned.
func (s *Session) LoadDocument(doc string) []error {
	loaded, failed := loader.ParseDocument(doc, s.Store)
	for _, err := range failed {
		s.logger.Warn("skipping definition", "error", err)
	}
	s.logger.Debug("document loaded", "relations", loaded, "failed", len(failed))
	return failed
}

// LoadFile registers the contents of a data file under name. An empty name
// uses the file's base name.
func (s *Session) LoadFile(name, path string) error {
	var (
		r   *relation.Relation
		err error
	)
	if name == "" {
		r, err = loader.Load(path)
	} else {
		r, err = loader.LoadAs(name, path, filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	s.Store.Put(r)
	s.logger.Debug("source loaded", "relation", r.Name, "path", path, "tuples", r.Len())
	return nil
}

// Run evaluates queries in order. A failing query does not stop the run.
func (s *Session) Run(queries []string) []Result {
	results := make([]Result, len(queries))
	failed := 0
	for i, q := range queries {
		r, err := engine.Run(q, s.Store)
		results[i] = Result{Index: i + 1, Query: q, Relation: r, Err: err}
		if err != nil {
			failed++
			s.logger.Debug("query failed", "index", i+1, "query", q, "error", err)
			continue
		}
		s.logger.Debug("query done", "index", i+1, "query", q, "tuples", r.Len())
	}
	s.logger.Info("run complete", "queries", len(queries), "failed", failed)
	return results
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// WriteReport writes every result in the numbered report format.
func WriteReport(w io.Writer, results []Result) error {
	for _, r := range results {
		if err := render.Report(w, r.Index, r.Query, r.Relation, r.Err); err != nil {
			return err
		}
	}
	return nil
}
