package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Show the merged activity feed for one day",
		Long:  "Show every event of every kind for one calendar day (default today), newest first.",
		Run:   runActivities,
	}

	cmd.Flags().String("day", "", "Day as YYYY-MM-DD (default: today)")

	RootCmd.AddCommand(cmd)
}

// dayBounds returns the first and last instant of the calendar day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func runActivities(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	loc, _ := cfg.Location()

	day := time.Now().In(loc)
	if v, _ := cmd.Flags().GetString("day"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			exitErr("day", err)
		}
		day = t
	}
	start, end := dayBounds(day)

	s := openStore(cfg)
	defer s.Close()

	acts, err := newComposer(cfg, s).Activities(cmd.Context(), start, end)
	if err != nil {
		exitErr("activities", err)
	}

	if formatFlag == "text" {
		writeActivitiesText(cmd.OutOrStdout(), acts, loc)
		return
	}
	if acts == nil {
		acts = []model.Activity{}
	}
	printJSON(acts)
}
