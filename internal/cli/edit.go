package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcliao/puffin/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <kind> <id>",
		Short: "Change fields of a record",
		Long: `Change fields of a record. Only the flags you pass are changed.
Use --clear to remove optional fields (notes, duration_minutes, amount_oz, location).`,
		Args: cobra.ExactArgs(2),
		Run:  runEdit,
	}

	cmd.Flags().String("at", "", "Event time: ISO-8601, or an offset into the past like 20m")
	cmd.Flags().StringP("type", "t", "", "Diaper type or feeding type")
	cmd.Flags().StringP("notes", "n", "", "Notes")
	cmd.Flags().Int("minutes", 0, "Feeding duration in minutes")
	cmd.Flags().Float64("oz", 0, "Feeding amount in ounces")
	cmd.Flags().String("name", "", "Medication name")
	cmd.Flags().String("dose", "", "Medication dosage")
	cmd.Flags().Float64("celsius", 0, "Temperature in °C")
	cmd.Flags().String("location", "", "Temperature location")
	cmd.Flags().StringSlice("clear", nil, "Optional fields to clear")

	RootCmd.AddCommand(cmd)
}

// patch holds the edit flags as optional values, keyed off Changed.
type patch struct {
	flags *pflag.FlagSet
	clear map[string]bool
}

func (p patch) str(flag, field string) model.Optional[string] {
	if p.clear[field] {
		return model.Null[string]()
	}
	if !p.flags.Changed(flag) {
		return model.Optional[string]{}
	}
	v, _ := p.flags.GetString(flag)
	return model.Some(v)
}

func (p patch) integer(flag, field string) model.Optional[int] {
	if p.clear[field] {
		return model.Null[int]()
	}
	if !p.flags.Changed(flag) {
		return model.Optional[int]{}
	}
	v, _ := p.flags.GetInt(flag)
	return model.Some(v)
}

func (p patch) float(flag, field string) model.Optional[float64] {
	if p.clear[field] {
		return model.Null[float64]()
	}
	if !p.flags.Changed(flag) {
		return model.Optional[float64]{}
	}
	v, _ := p.flags.GetFloat64(flag)
	return model.Some(v)
}

func runEdit(cmd *cobra.Command, args []string) {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		exitErr("edit", err)
	}
	id := args[1]

	cfg := loadConfig()
	loc, _ := cfg.Location()

	cleared, _ := cmd.Flags().GetStringSlice("clear")
	p := patch{flags: cmd.Flags(), clear: map[string]bool{}}
	for _, c := range cleared {
		p.clear[c] = true
	}

	var ts model.Optional[time.Time]
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		t, err := parseWhen("at", at, time.Now().In(loc), loc)
		if err != nil {
			exitErr("at", err)
		}
		ts = model.Some(*t)
	}

	s := openStore(cfg)
	defer s.Close()

	ctx := cmd.Context()
	var out any
	switch kind {
	case model.KindDiaper:
		out, err = s.UpdateDiaper(ctx, id, model.DiaperUpdate{
			Timestamp: ts,
			Type:      p.str("type", "type"),
			Notes:     p.str("notes", "notes"),
		})
	case model.KindFeeding:
		out, err = s.UpdateFeeding(ctx, id, model.FeedingUpdate{
			Timestamp:       ts,
			FeedingType:     p.str("type", "feeding_type"),
			DurationMinutes: p.integer("minutes", "duration_minutes"),
			AmountOz:        p.float("oz", "amount_oz"),
			Notes:           p.str("notes", "notes"),
		})
	case model.KindMedication:
		out, err = s.UpdateMedication(ctx, id, model.MedicationUpdate{
			Timestamp:      ts,
			MedicationName: p.str("name", "medication_name"),
			Dosage:         p.str("dose", "dosage"),
			Notes:          p.str("notes", "notes"),
		})
	case model.KindTemperature:
		out, err = s.UpdateTemperature(ctx, id, model.TemperatureUpdate{
			Timestamp:          ts,
			TemperatureCelsius: p.float("celsius", "temperature_celsius"),
			Location:           p.str("location", "location"),
			Notes:              p.str("notes", "notes"),
		})
	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}
	if err != nil {
		exitErr("edit", err)
	}
	printJSON(out)
}
