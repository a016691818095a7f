package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/builder"
	"github.com/pubtimeline/pubtl/internal/publication"
)

func init() {
	addPipelineFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [file.bib]",
	Short: "Build canonical publications from a BibTeX file",
	Long: `Build canonical publications from a BibTeX file.

Every entry is normalized, classified, ranked and has the researcher's author
position located. Entries whose year is missing or not a number are listed
as rejected instead of being placed on the timeline.

Examples:
  pubtl build refs.bib --researcher "Jose Miguel Horcas"
  pubtl build --dblp --researcher "Jose Miguel Horcas"
  cat refs.bib | pubtl build -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

// BuildResponse is the response for the build command.
type BuildResponse struct {
	Researcher   string                    `json:"researcher"`
	Count        int                       `json:"count"`
	Publications []publication.Publication `json:"publications"`
	Rejected     []builder.Rejected        `json:"rejected"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	batch, researcher := mustRunPipeline(cmd, args)

	if humanOutput {
		for _, p := range batch.Publications {
			fmt.Println(formatPublicationLine(p))
		}
		outputHuman("\n%d publication(s)\n", len(batch.Publications))
		fmt.Print(formatRejected(batch.Rejected))
		return nil
	}

	return outputJSON(BuildResponse{
		Researcher:   researcher,
		Count:        len(batch.Publications),
		Publications: batch.Publications,
		Rejected:     batch.Rejected,
	})
}
