package commands

import (
	"fmt"
	"strconv"

	"github.com/marmos91/xdrkit/cmd/xdrkit/cmdutil"
	"github.com/marmos91/xdrkit/pkg/xdr"
	"github.com/spf13/cobra"
)

func newPadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pad N",
		Short: "Print the padding needed after N bytes",
		Long: `Print how many zero bytes follow a payload of N bytes so that the next
item starts on a 4-byte boundary.

Examples:
  xdrkit pad 5    # 3`,
		Args: cobra.ExactArgs(1),
		RunE: runPad,
	}
}

func runPad(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid length %q: must be a non-negative integer", args[0])
	}

	p, err := cmdutil.NewPrinter(cmd)
	if err != nil {
		return err
	}
	return p.Print(xdr.PaddingLength(n))
}
