package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show counts, latest events and the last 3 days of activity",
		Run:   runDashboard,
	}

	RootCmd.AddCommand(cmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	sum, err := newComposer(cfg, s).Compose(cmd.Context())
	if err != nil {
		exitErr("dashboard", err)
	}

	if formatFlag == "text" {
		loc, _ := cfg.Location()
		writeDashboardText(cmd.OutOrStdout(), sum, loc)
		return
	}
	printJSON(sum)
}

func writeDashboardText(w io.Writer, sum *model.DashboardSummary, loc *time.Location) {
	fmt.Fprintf(w, "Diapers    today %d · week %d · month %d\n",
		sum.DiaperStats.Today, sum.DiaperStats.Week, sum.DiaperStats.Month)
	fmt.Fprintf(w, "Feedings   today %d · week %d · month %d\n",
		sum.FeedingStats.Today, sum.FeedingStats.Week, sum.FeedingStats.Month)
	fmt.Fprintf(w, "Meds today %d\n", sum.MedicationCountToday)

	if sum.LastDiaper != nil {
		fmt.Fprintf(w, "Last diaper       %s (%s)\n", sum.LastDiaper.Timestamp.In(loc).Format("Jan 2 15:04"), sum.LastDiaper.Type)
	}
	if sum.LastFeeding != nil {
		fmt.Fprintf(w, "Last feeding      %s (%s)\n", sum.LastFeeding.Timestamp.In(loc).Format("Jan 2 15:04"), sum.LastFeeding.FeedingType)
	}
	if sum.LastTemperature != nil {
		fmt.Fprintf(w, "Last temperature  %s (%.1f°C)\n", sum.LastTemperature.Timestamp.In(loc).Format("Jan 2 15:04"), sum.LastTemperature.TemperatureCelsius)
	}

	fmt.Fprintln(w)
	writeActivitiesText(w, sum.RecentActivities, loc)
}

func writeActivitiesText(w io.Writer, acts []model.Activity, loc *time.Location) {
	if len(acts) == 0 {
		fmt.Fprintln(w, "No activity.")
		return
	}
	for _, a := range acts {
		line := fmt.Sprintf("%s  %s %s", a.Timestamp.In(loc).Format("Mon Jan 2 15:04"), a.Emoji, a.Label)
		if a.Detail != "" {
			line += " · " + a.Detail
		}
		if a.Notes != nil && *a.Notes != "" {
			line += " - " + *a.Notes
		}
		fmt.Fprintln(w, line)
	}
}
