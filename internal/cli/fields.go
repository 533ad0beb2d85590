package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/calsearch/internal/calendar"
	"github.com/roach88/calsearch/internal/mapping"
)

// FieldsOptions holds flags for the fields command.
type FieldsOptions struct {
	*RootOptions
	ContextID int64
}

// RegistryInfo describes one registry and its fields.
type RegistryInfo struct {
	Name   string      `json:"name"`
	Table  string      `json:"table"`
	Alias  string      `json:"alias"`
	Group  string      `json:"group,omitempty"`
	Fields []FieldInfo `json:"fields"`
}

// FieldInfo describes the column a field maps to.
type FieldInfo struct {
	Field  string `json:"field"`
	Column string `json:"column"`
	Type   string `json:"type"`
	Codec  string `json:"codec"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FieldsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fields [registry...]",
		Short: "List the searchable fields of each registry",
		Long: `List the fields each registry maps, with their columns, SQL types and codecs.

Without arguments every registry is listed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(opts, args, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.ContextID, "context", 1, "context id of internal calendar user URIs")

	return cmd
}

func runFields(opts *FieldsOptions, names []string, cmd *cobra.Command) error {
	formatter := opts.newFormatter(cmd)
	schema := calendar.NewSchema(opts.ContextID)

	registries := schema.Registries()
	if len(names) > 0 {
		selected, err := selectRegistries(registries, names)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err)
		}
		registries = selected
	}

	infos := make([]RegistryInfo, 0, len(registries))
	for _, reg := range registries {
		infos = append(infos, describeRegistry(reg))
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	for i, info := range infos {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		if info.Group != "" {
			fmt.Fprintf(tw, "%s (%s %s, join %s)\n", info.Name, info.Table, info.Alias, info.Group)
		} else {
			fmt.Fprintf(tw, "%s (%s %s)\n", info.Name, info.Table, info.Alias)
		}
		for _, f := range info.Fields {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Field, f.Column, f.Type, f.Codec)
		}
	}
	return tw.Flush()
}

// selectRegistries picks registries by name, in argument order.
func selectRegistries(registries []*mapping.Registry, names []string) ([]*mapping.Registry, error) {
	byName := make(map[string]*mapping.Registry, len(registries))
	known := make([]string, 0, len(registries))
	for _, reg := range registries {
		byName[reg.Name()] = reg
		known = append(known, reg.Name())
	}

	selected := make([]*mapping.Registry, 0, len(names))
	for _, name := range names {
		reg, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown registry %q: must be one of %v", name, known)
		}
		selected = append(selected, reg)
	}
	return selected, nil
}

func describeRegistry(reg *mapping.Registry) RegistryInfo {
	info := RegistryInfo{
		Name:   reg.Name(),
		Table:  reg.Table(),
		Alias:  reg.Alias(),
		Group:  string(reg.Group()),
		Fields: []FieldInfo{},
	}
	for _, field := range reg.Fields() {
		m, _ := reg.Lookup(field)
		codec := m.Codec
		if codec == nil {
			codec = mapping.DefaultCodec(m.Type)
		}
		info.Fields = append(info.Fields, FieldInfo{
			Field:  string(field),
			Column: m.Column,
			Type:   string(m.Type),
			Codec:  codec.Name,
		})
	}
	return info
}
