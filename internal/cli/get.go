package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		exitErr("get", err)
	}
	id := args[1]

	s := openStore(loadConfig())
	defer s.Close()

	ctx := cmd.Context()
	var out any
	switch kind {
	case model.KindDiaper:
		out, err = s.GetDiaper(ctx, id)
	case model.KindFeeding:
		out, err = s.GetFeeding(ctx, id)
	case model.KindMedication:
		out, err = s.GetMedication(ctx, id)
	case model.KindTemperature:
		out, err = s.GetTemperature(ctx, id)
	}
	if err != nil {
		exitErr("get", err)
	}
	printJSON(out)
}
