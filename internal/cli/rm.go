package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <kind> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		exitErr("rm", err)
	}
	id := args[1]

	s := openStore(loadConfig())
	defer s.Close()

	if err := s.Delete(cmd.Context(), kind, id); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"id":%q}`+"\n", kind, id)
}
