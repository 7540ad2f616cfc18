package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
	"github.com/rcliao/puffin/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List records of one kind, newest first",
		Long:  "List records of one kind (diaper, feeding, medication, temperature), newest first.",
		Args:  cobra.ExactArgs(1),
		Run:   runList,
	}

	cmd.Flags().String("since", "", "Only records at or after this time (ISO-8601 or offset like 1d)")
	cmd.Flags().String("until", "", "Only records at or before this time (ISO-8601 or offset like 1d)")
	cmd.Flags().IntP("limit", "l", store.DefaultLimit, "Max results")
	cmd.Flags().Int("offset", 0, "Skip this many results")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		exitErr("list", err)
	}
	since, _ := cmd.Flags().GetString("since")
	until, _ := cmd.Flags().GetString("until")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	cfg := loadConfig()
	loc, _ := cfg.Location()
	now := time.Now().In(loc)

	p := store.ListParams{Limit: limit, Offset: offset}
	if p.Start, err = parseWhen("since", since, now, loc); err != nil {
		exitErr("since", err)
	}
	if p.End, err = parseWhen("until", until, now, loc); err != nil {
		exitErr("until", err)
	}

	s := openStore(cfg)
	defer s.Close()

	ctx := cmd.Context()
	var out any
	switch kind {
	case model.KindDiaper:
		out, err = s.ListDiapers(ctx, p)
	case model.KindFeeding:
		out, err = s.ListFeedings(ctx, p)
	case model.KindMedication:
		out, err = s.ListMedications(ctx, p)
	case model.KindTemperature:
		out, err = s.ListTemperatures(ctx, p)
	}
	if err != nil {
		exitErr("list", err)
	}
	printJSON(out)
}
