package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/builder"
	"github.com/pubtimeline/pubtl/internal/layout"
	"github.com/pubtimeline/pubtl/internal/publication"
)

func init() {
	addPipelineFlags(timelineCmd)
	rootCmd.AddCommand(timelineCmd)
}

var timelineCmd = &cobra.Command{
	Use:   "timeline [file.bib]",
	Short: "Group publications into ordered year columns",
	Long: `Group publications into ordered year columns.

Every year between the first and last publication gets a column, empty or
not. Within a column entries are ordered by type prestige, then quartile or
CORE rank (ties broken by awards), then most recent first. Each entry carries
its stack position, 0 being the top of the column.

Examples:
  pubtl timeline refs.bib
  pubtl timeline refs.bib --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTimeline,
}

// TimelineResponse is the response for the timeline command.
type TimelineResponse struct {
	Researcher string `json:"researcher"`
	layout.Timeline
	Rejected []builder.Rejected `json:"rejected"`
}

func runTimeline(cmd *cobra.Command, args []string) error {
	batch, researcher := mustRunPipeline(cmd, args)
	tl := layout.Arrange(batch.Publications)

	if humanOutput {
		fmt.Print(formatTimelineHuman(tl))
		fmt.Print(formatRejected(batch.Rejected))
		return nil
	}

	return outputJSON(TimelineResponse{
		Researcher: researcher,
		Timeline:   tl,
		Rejected:   batch.Rejected,
	})
}

// formatTimelineHuman lists each column with its stacked entries.
func formatTimelineHuman(tl layout.Timeline) string {
	if len(tl.Columns) == 0 {
		return "No publications\n"
	}
	var sb strings.Builder
	for _, col := range tl.Columns {
		fmt.Fprintf(&sb, "%d (%d)\n", col.Year, len(col.Entries))
		for _, e := range col.Entries {
			p := e.Publication
			fmt.Fprintf(&sb, "  %d. %-13s %-4s %s\n", e.Stack+1, p.Type, p.Ranking(), truncateString(p.Acronym+" "+p.Title, CellTitleMaxLen))
		}
	}

	counts := tl.CountByType()
	fmt.Fprintf(&sb, "\n%d publications", tl.Total)
	for _, t := range publication.Types() {
		if n := counts[t]; n > 0 {
			fmt.Fprintf(&sb, ", %s %d", t, n)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
