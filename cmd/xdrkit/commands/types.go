package commands

import (
	"strconv"
	"strings"

	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/spf13/cobra"
)

// TypeList is a list of registered types for table rendering.
type TypeList []xdr.TypeInfo

// Headers implements TableRenderer.
func (tl TypeList) Headers() []string {
	return []string{"NAME", "KIND", "WIDTH", "MEMBERS"}
}

// Rows implements TableRenderer.
func (tl TypeList) Rows() [][]string {
	rows := make([][]string, 0, len(tl))
	for _, t := range tl {
		width := "variable"
		if t.Width >= 0 {
			width = strconv.Itoa(t.Width)
		}
		members := cmdutil.EmptyOr(strings.Join(t.Members, ", "), "-")
		rows = append(rows, []string{t.Name, t.Kind, width, members})
	}
	return rows
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [NAME...]",
		Short: "List registered types",
		Long: `List the builtin types and the types declared by the schema.

Examples:
  # List every type
  xdrkit types --schema types.yaml

  # Describe a single type as YAML
  xdrkit types point -o yaml --schema types.yaml`,
		RunE: runTypes,
	}
}

func runTypes(cmd *cobra.Command, args []string) error {
	env, err := cmdutil.Setup(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = env.Registry.Names()
	}

	list := make(TypeList, 0, len(names))
	for _, name := range names {
		info, err := env.Registry.Describe(name)
		if err != nil {
			return err
		}
		list = append(list, info)
	}
	return env.Printer.Print(list)
}
