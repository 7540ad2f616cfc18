package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/puffin/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every record as CSV or JSON",
		Long:  "Export every record of every kind. CSV has one section per kind; JSON can be read back with import.",
		Run:   runExport,
	}

	cmd.Flags().String("as", "csv", "Export format: csv or json")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	output, _ := cmd.Flags().GetString("output")

	format, err := export.ParseFormat(as)
	if err != nil {
		exitErr("export", err)
	}

	s := openStore(loadConfig())
	defer s.Close()

	data, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			exitErr("create output", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, format, data); err != nil {
		exitErr("export", err)
	}
}
