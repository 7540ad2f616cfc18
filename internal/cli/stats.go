package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats [kind]",
		Short: "Show today/week/month counts",
		Long:  "Show today, last-7-days and last-30-days counts for one kind, or for every kind when none is given.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	kinds := model.Kinds
	if len(args) == 1 {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			exitErr("stats", err)
		}
		kinds = []model.Kind{kind}
	}

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()
	dash := newComposer(cfg, s)

	out := make(map[model.Kind]model.PeriodStats, len(kinds))
	for _, kind := range kinds {
		st, err := dash.Stats(cmd.Context(), kind)
		if err != nil {
			exitErr("stats", err)
		}
		out[kind] = st
	}

	if len(kinds) == 1 {
		printJSON(out[kinds[0]])
		return
	}
	printJSON(out)
}
