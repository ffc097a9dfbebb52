package commands

import (
	"encoding/hex"
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

// EncodeResult is the structured form of an encoded value.
type EncodeResult struct {
	Type   string `json:"type" yaml:"type"`
	Length int    `json:"length" yaml:"length"`
	Hex    string `json:"hex" yaml:"hex"`
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode TYPE VALUE",
		Short: "Encode a JSON value as XDR",
		Long: `Encode a value of the given type and print the XDR bytes as hex.

VALUE is JSON: numbers for integer and float types, true/false for bool,
text for string, hex for opaque, a member name or code for enums and an
object for structs. Hypers outside the 53-bit safe range may be given as
decimal strings. Use "-" to read VALUE from stdin.

Examples:
  # Encode a builtin
  xdrkit encode int 42

  # Encode a struct declared in a schema
  xdrkit encode point '{"x": 1, "label": "A"}' --schema types.yaml

  # Encode fixed-length opaque data
  xdrkit encode opaque '"cafe"' --size 4

  # Write raw bytes to a file
  xdrkit encode string '"hello"' --out hello.xdr`,
		Args: cobra.ExactArgs(2),
		RunE: runEncode,
	}

	cmd.Flags().Int("size", 0, "Fixed size for opaque data (zero-filled up to size)")
	cmd.Flags().String("out", "", "Write raw bytes to this file instead of printing hex (- for stdout)")
	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	env, err := cmdutil.Setup(cmd)
	if err != nil {
		return err
	}
	typeName := args[0]

	input := []byte(args[1])
	if args[1] == "-" {
		if input, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	value, err := valuefmt.ParseJSON(env.Registry, typeName, input)
	if err != nil {
		return err
	}

	w := env.Registry.NewWriter()
	if cmd.Flags().Changed("size") {
		size, _ := cmd.Flags().GetInt("size")
		w.EncodeSized(typeName, value, size)
	} else {
		w.Encode(typeName, value)
	}
	if err := w.Err(); err != nil {
		return err
	}
	logger.Debug("value encoded", logger.Type(typeName), logger.Bytes(w.Len()))

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return writeRaw(cmd, w, typeName, out)
	}

	data, err := w.Bytes()
	if err != nil {
		return err
	}
	hexData := hex.EncodeToString(data)
	if env.Printer.Format() == output.FormatTable {
		return env.Printer.Print(hexData)
	}
	return env.Printer.Print(EncodeResult{Type: typeName, Length: len(data), Hex: hexData})
}

func writeRaw(cmd *cobra.Command, w *xdr.Writer, typeName, path string) error {
	if path == "-" {
		_, err := w.WriteTo(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	n, err := w.WriteTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	if err != nil {
		return err
	}

	logger.Debug("encoded value written", logger.Type(typeName), logger.Bytes(int(n)), "path", path)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, path)
	return nil
}
