package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/chart"
	"github.com/pubtimeline/pubtl/internal/layout"
)

var (
	chartOutput string
	chartTitle  string
)

func init() {
	addPipelineFlags(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "timeline.html", "Output HTML file")
	chartCmd.Flags().StringVar(&chartTitle, "title", "", "Page title")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart [file.bib]",
	Short: "Render the publication timeline as an HTML chart",
	Long: `Render the publication timeline as a self-contained HTML page.

Each publication is a colored square in its year column showing its ranking,
author position, acronym, awards and collaboration icons. Clicking a square
shows the full record.

Examples:
  pubtl chart refs.bib -o timeline.html
  pubtl chart --dblp --researcher "Jose Miguel Horcas" --title "Publications"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

func runChart(cmd *cobra.Command, args []string) error {
	batch, researcher := mustRunPipeline(cmd, args)
	tl := layout.Arrange(batch.Publications)

	opts := chart.DefaultOptions()
	if chartTitle != "" {
		opts.Title = chartTitle
	}
	opts.Researcher = researcher

	html, err := chart.GenerateHTML(tl, opts)
	if err != nil {
		exitWithError(ExitError, "generating chart: %v", err)
	}

	if err := os.WriteFile(chartOutput, []byte(html), 0644); err != nil {
		exitWithError(ExitError, "writing chart: %v", err)
	}

	if humanOutput {
		outputHuman("Wrote %s (%d publications, %d years)\n", chartOutput, tl.Total, len(tl.Columns))
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: chartOutput, Count: tl.Total})
}
