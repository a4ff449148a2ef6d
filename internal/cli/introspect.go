package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/schema"
	"github.com/mhartmann/schemap/pkg/source/postgres"
)

// introspectCommand creates the introspect command for extracting schemas
// from PostgreSQL databases.
func (c *CLI) introspectCommand() *cobra.Command {
	var (
		output      string
		schemas     []string
		exclude     []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "introspect [connection-url]",
		Short: "Extract a schema from a PostgreSQL database",
		Long: `Extract a schema from a PostgreSQL database.

Reads tables, columns, and foreign key relations from the information schema
and writes them as a JSON schema file for the 'layout' command. The
connection URL can also come from [database].url in the config file.

With --interactive, a terminal picker lets you choose which tables to keep.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dsn := cfg.Database.URL
			if len(args) > 0 {
				dsn = args[0]
			}
			if dsn == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no database: give a connection URL or set [database].url")
			}
			return c.runIntrospect(cmd, dsn, output, schemas, exclude, interactive)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "schema.json", "output file")
	cmd.Flags().StringSliceVar(&schemas, "schema", nil, "PostgreSQL schemas to include (default: public)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "table names to exclude")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick tables interactively")

	return cmd
}

// runIntrospect reads the schema from the database and writes it to output.
func (c *CLI) runIntrospect(cmd *cobra.Command, dsn, output string, schemas, exclude []string, interactive bool) error {
	ctx := cmd.Context()

	var opts []postgres.Option
	if len(schemas) > 0 {
		opts = append(opts, postgres.WithSchemas(schemas...))
	}
	if len(exclude) > 0 {
		opts = append(opts, postgres.WithExcludeTables(exclude...))
	}

	spinner := newSpinner(ctx, "Introspecting database...")
	spinner.Start()
	s, err := postgres.Introspect(ctx, dsn, opts...)
	if err != nil {
		spinner.StopWithError("Introspection failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if interactive {
		s, err = pickTables(s)
		if err != nil {
			return err
		}
		if s == nil {
			printInfo("Cancelled")
			return nil
		}
	}

	if err := schema.WriteFile(s, output); err != nil {
		return err
	}

	printSuccess("Schema extracted")
	printFile(output)
	printStats(len(s.Tables), len(s.Relations), false)
	printNewline()
	printNextStep("Compute a layout", "schemap layout "+output)

	return nil
}

// pickTables runs the interactive table picker and returns the filtered
// schema, or nil when the user cancelled.
func pickTables(s *schema.Schema) (*schema.Schema, error) {
	model := NewTableListModel(s.Tables)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(TableListModel)
	if !ok || m.Aborted {
		return nil, nil
	}
	return filterSchema(s, m.SelectedNames()), nil
}

// filterSchema keeps only the named tables and the relations whose endpoints
// both survive.
func filterSchema(s *schema.Schema, keep map[string]bool) *schema.Schema {
	out := &schema.Schema{}
	kept := make(map[string]bool)
	for _, t := range s.Tables {
		if keep[t.Name] {
			out.Tables = append(out.Tables, t)
			kept[t.ID] = true
		}
	}
	for _, r := range s.Relations {
		if kept[r.SourceTableID] && kept[r.TargetTableID] {
			out.Relations = append(out.Relations, r)
		}
	}
	return out
}
