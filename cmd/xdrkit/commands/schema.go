package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/xdrkit/pkg/xdr/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Work with schema documents",
	}
	cmd.AddCommand(newSchemaJSONSchemaCmd())
	cmd.AddCommand(newSchemaCheckCmd())
	return cmd
}

func newSchemaJSONSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Generate JSON schema for schema documents",
		Long: `Generate a JSON schema describing xdrkit schema documents.

The schema can be used for IDE autocompletion and validation of
hand-written type declarations.

Examples:
  # Print schema to stdout
  xdrkit schema jsonschema

  # Save schema to file
  xdrkit schema jsonschema --file types.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.JSONSchema()
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file != "" {
				if err := os.WriteFile(file, data, 0644); err != nil {
					return fmt.Errorf("failed to write schema file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "JSON schema written to %s\n", file)
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().String("file", "", "Output file (default: stdout)")
	return cmd
}

func newSchemaCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check a schema document",
		Long: `Parse, validate and compile a schema document without encoding anything.

With --watch the document is checked again every time the file changes,
until interrupted.

Examples:
  xdrkit schema check types.yaml
  xdrkit schema check types.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: runSchemaCheck,
	}
	cmd.Flags().Bool("watch", false, "Re-check the document whenever the file changes")
	return cmd
}

func runSchemaCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		doc, err := schema.Load(path)
		return reportSchema(out, path, doc, err)
	}

	// Start watching before the first check so no edit is missed.
	w, err := schema.NewWatcher(path)
	if err != nil {
		return err
	}

	doc, err := schema.Load(path)
	if err := reportSchema(out, path, doc, err); err != nil {
		_, _ = fmt.Fprintf(out, "Validation: FAILED: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)...\n", path)
	return w.Run(ctx, func(doc *schema.Document, err error) {
		_, _ = fmt.Fprintln(out)
		if err := reportSchema(out, path, doc, err); err != nil {
			_, _ = fmt.Fprintf(out, "Validation: FAILED: %v\n", err)
		}
	})
}

// reportSchema compiles a loaded document and prints a summary. loadErr is
// the error returned by schema.Load, if any.
func reportSchema(out io.Writer, path string, doc *schema.Document, loadErr error) error {
	if loadErr != nil {
		return loadErr
	}
	if _, err := doc.Registry(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	_, _ = fmt.Fprintf(out, "Schema file: %s\n", path)
	_, _ = fmt.Fprintln(out, "Validation: OK")
	_, _ = fmt.Fprintf(out, "  Enums:   %d\n", len(doc.Enums))
	_, _ = fmt.Fprintf(out, "  Structs: %d\n", len(doc.Structs))
	return nil
}
