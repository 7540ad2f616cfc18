package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Record a care event",
	}

	diaper := &cobra.Command{
		Use:   "diaper",
		Short: "Record a diaper change",
		Run:   runLogDiaper,
	}
	diaper.Flags().StringP("type", "t", "", "Type: pee, poop, both (required)")
	diaper.MarkFlagRequired("type")

	feeding := &cobra.Command{
		Use:     "feeding",
		Aliases: []string{"feed"},
		Short:   "Record a feeding",
		Run:     runLogFeeding,
	}
	feeding.Flags().StringP("type", "t", "", "Type: breast_left, breast_right, breast_both, bottle (required)")
	feeding.Flags().Int("minutes", 0, "Duration in minutes")
	feeding.Flags().Float64("oz", 0, "Amount in ounces")
	feeding.MarkFlagRequired("type")

	med := &cobra.Command{
		Use:     "medication",
		Aliases: []string{"med"},
		Short:   "Record a medication dose",
		Run:     runLogMedication,
	}
	med.Flags().String("name", "", "Medication name (required)")
	med.Flags().String("dose", "", "Dosage, free text (required)")
	med.MarkFlagRequired("name")
	med.MarkFlagRequired("dose")

	temp := &cobra.Command{
		Use:     "temperature",
		Aliases: []string{"temp"},
		Short:   "Record a temperature reading",
		Run:     runLogTemperature,
	}
	temp.Flags().Float64("celsius", 0, "Temperature in °C")
	temp.Flags().Float64("fahrenheit", 0, "Temperature in °F (converted to °C)")
	temp.Flags().String("location", "", "Location: rectal, oral, axillary, temporal")
	temp.MarkFlagsOneRequired("celsius", "fahrenheit")
	temp.MarkFlagsMutuallyExclusive("celsius", "fahrenheit")

	for _, c := range []*cobra.Command{diaper, feeding, med, temp} {
		c.Flags().String("at", "", "Event time: ISO-8601, or an offset into the past like 20m (default: now)")
		c.Flags().StringP("notes", "n", "", "Notes")
		logCmd.AddCommand(c)
	}

	RootCmd.AddCommand(logCmd)
}

// eventFlags reads the --at and --notes flags shared by every log command.
func eventFlags(cmd *cobra.Command, loc *time.Location) (*time.Time, *string) {
	at, _ := cmd.Flags().GetString("at")
	ts, err := parseWhen("at", at, time.Now().In(loc), loc)
	if err != nil {
		exitErr("at", err)
	}
	var notes *string
	if cmd.Flags().Changed("notes") {
		n, _ := cmd.Flags().GetString("notes")
		notes = &n
	}
	return ts, notes
}

func runLogDiaper(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	loc, _ := cfg.Location()
	ts, notes := eventFlags(cmd, loc)
	typ, _ := cmd.Flags().GetString("type")

	s := openStore(cfg)
	defer s.Close()

	d, err := s.CreateDiaper(cmd.Context(), model.DiaperCreate{Timestamp: ts, Type: typ, Notes: notes})
	if err != nil {
		exitErr("log diaper", err)
	}
	printJSON(d)
}

func runLogFeeding(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	loc, _ := cfg.Location()
	ts, notes := eventFlags(cmd, loc)
	typ, _ := cmd.Flags().GetString("type")

	in := model.FeedingCreate{Timestamp: ts, FeedingType: typ, Notes: notes}
	if cmd.Flags().Changed("minutes") {
		v, _ := cmd.Flags().GetInt("minutes")
		in.DurationMinutes = &v
	}
	if cmd.Flags().Changed("oz") {
		v, _ := cmd.Flags().GetFloat64("oz")
		in.AmountOz = &v
	}

	s := openStore(cfg)
	defer s.Close()

	f, err := s.CreateFeeding(cmd.Context(), in)
	if err != nil {
		exitErr("log feeding", err)
	}
	printJSON(f)
}

func runLogMedication(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	loc, _ := cfg.Location()
	ts, notes := eventFlags(cmd, loc)
	name, _ := cmd.Flags().GetString("name")
	dose, _ := cmd.Flags().GetString("dose")

	s := openStore(cfg)
	defer s.Close()

	m, err := s.CreateMedication(cmd.Context(), model.MedicationCreate{
		Timestamp:      ts,
		MedicationName: name,
		Dosage:         dose,
		Notes:          notes,
	})
	if err != nil {
		exitErr("log medication", err)
	}
	printJSON(m)
}

func runLogTemperature(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	loc, _ := cfg.Location()
	ts, notes := eventFlags(cmd, loc)

	celsius, _ := cmd.Flags().GetFloat64("celsius")
	if cmd.Flags().Changed("fahrenheit") {
		f, _ := cmd.Flags().GetFloat64("fahrenheit")
		celsius = fahrenheitToCelsius(f)
	}
	in := model.TemperatureCreate{Timestamp: ts, TemperatureCelsius: celsius, Notes: notes}
	if cmd.Flags().Changed("location") {
		l, _ := cmd.Flags().GetString("location")
		in.Location = &l
	}

	s := openStore(cfg)
	defer s.Close()

	t, err := s.CreateTemperature(cmd.Context(), in)
	if err != nil {
		exitErr("log temperature", err)
	}
	printJSON(t)
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
