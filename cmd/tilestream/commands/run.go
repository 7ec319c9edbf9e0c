package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tilestream/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [config]",
		Short: "Play the configured camera path against a tileset",
		Long: "Play the configured camera path against a tileset.\n\n" +
			"The argument is a tilestream.yaml file or a directory to search upwards from. " +
			"It defaults to the current directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := "."
			if len(args) == 1 {
				configPath = args[0]
			}
			verbose, _ := cmd.Flags().GetBool("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json")
			detail, _ := cmd.Flags().GetBool("detail")
			frames, _ := cmd.Flags().GetInt("frames")
			metricsOut, _ := cmd.Flags().GetString("metrics-out")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:  configPath,
				MaxFrames:   frames,
				Detail:      detail,
				Verbose:     verbose,
				JSON:        jsonLogs,
				Report:      cmd.OutOrStdout(),
				MetricsFile: metricsOut,
			})
		},
	}
	cmd.Flags().BoolP("detail", "d", false, "List the tile ids of every result set")
	cmd.Flags().IntP("frames", "n", 0, "Play at most this many frames (0 plays all)")
	cmd.Flags().String("metrics-out", "", "Write Prometheus metrics to this file after the run")
	return cmd
}
