package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/internal/cli/output"
	"github.com/marmos91/xdrkit/internal/logger"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/marmos91/xdrkit/pkg/xdr/valuefmt"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode TYPE [HEX]",
		Short: "Decode XDR bytes into a value",
		Long: `Decode one value of the given type from hex input and print it.

HEX may contain spaces and colons. Use "-" to read hex from stdin, or --in
to read raw bytes from a file. Bytes left over after the value are reported
as a warning on stderr.

Examples:
  # Decode a struct
  xdrkit decode point "00000001 00000001 41000000" --schema types.yaml

  # Decode as JSON
  xdrkit decode point 000000010000000141000000 -o json --schema types.yaml

  # Decode fixed-length opaque data from a file
  xdrkit decode opaque --size 16 --in digest.xdr`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDecode,
	}

	cmd.Flags().Int("size", 0, "Fixed size for opaque data")
	cmd.Flags().String("in", "", "Read raw bytes from this file")
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	env, err := cmdutil.Setup(cmd)
	if err != nil {
		return err
	}
	typeName := args[0]

	data, err := decodeInput(cmd, args)
	if err != nil {
		return err
	}

	r := env.Registry.NewReader(data)
	var value any
	if cmd.Flags().Changed("size") {
		size, _ := cmd.Flags().GetInt("size")
		value, err = r.DecodeSized(typeName, size)
	} else {
		value, err = r.Decode(typeName)
	}
	if err != nil {
		return err
	}
	logger.Debug("value decoded", logger.Type(typeName), logger.Bytes(r.Offset()))

	if !r.Done() {
		env.Printer.Warnf("%d trailing bytes after %s at offset %d", r.Remaining(), typeName, r.Offset())
	}

	shown, err := valuefmt.Display(env.Registry, typeName, value)
	if err != nil {
		return err
	}

	if rec, ok := shown.(*xdr.Record); ok && env.Printer.Format() == output.FormatTable {
		return output.KeyValueTable(env.Printer.Writer(), valuefmt.Flatten(rec))
	}
	return env.Printer.Print(shown)
}

func decodeInput(cmd *cobra.Command, args []string) ([]byte, error) {
	in, _ := cmd.Flags().GetString("in")
	switch {
	case in != "" && len(args) > 1:
		return nil, fmt.Errorf("--in cannot be combined with a HEX argument")
	case in != "":
		data, err := os.ReadFile(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	case len(args) < 2:
		return nil, fmt.Errorf("missing HEX argument (or use --in FILE)")
	case args[1] == "-":
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return cmdutil.DecodeHex(string(text))
	default:
		return cmdutil.DecodeHex(args[1])
	}
}
