package querydoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

// DocumentError reports an invalid document, with the source position
// when the decoder provides one.
type DocumentError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *DocumentError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads a document, choosing the format by file extension:
// .cue for CUE, .yaml/.yml/.json for YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query document: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return ParseCUE(data, path)
	case ".yaml", ".yml", ".json":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported query document extension %q", ext)
	}
}

// ParseYAML decodes a YAML (or JSON) document. Unknown keys are errors.
func ParseYAML(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml query document: %w", err)
	}
	return &doc, nil
}

// ParseCUE compiles and decodes a CUE document. filename is used in error
// positions only.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	if err := checkKeys(v, documentKeys, ""); err != nil {
		return nil, err
	}
	if query := v.LookupPath(cue.ParsePath("query")); query.Exists() {
		if err := checkNodeKeys(query, "query"); err != nil {
			return nil, err
		}
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, formatCUEError(err)
	}
	return &doc, nil
}

// checkNodeKeys rejects unknown keys in a query node and its children.
func checkNodeKeys(v cue.Value, path string) error {
	if err := checkKeys(v, nodeKeys, path); err != nil {
		return err
	}

	terms := v.LookupPath(cue.ParsePath("terms"))
	if !terms.Exists() {
		return nil
	}
	iter, err := terms.List()
	if err != nil {
		return formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		if err := checkNodeKeys(iter.Value(), fmt.Sprintf("%s.terms[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkKeys(v cue.Value, allowed []string, path string) error {
	iter, err := v.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if slices.Contains(allowed, iter.Selector().String()) {
			continue
		}
		field := iter.Selector().String()
		if path != "" {
			field = path + "." + field
		}
		return &DocumentError{
			Path:    field,
			Message: "unknown key",
			Pos:     iter.Value().Pos(),
		}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &DocumentError{
			Path:    "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
