package classify

import (
	"testing"

	"github.com/pubtimeline/pubtl/internal/publication"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want publication.Type
	}{
		{
			name: "book",
			in:   Input{EntryType: "book", Publisher: "Springer"},
			want: publication.TypeBook,
		},
		{
			name: "phd thesis",
			in:   Input{EntryType: "PhdThesis"},
			want: publication.TypeBook,
		},
		{
			name: "journal article",
			in:   Input{EntryType: "article", Journal: "J. Syst. Softw."},
			want: publication.TypeJournal,
		},
		{
			name: "article wins over workshop and national flags",
			in:   Input{EntryType: "article", Journal: "Workshop Notes", Workshop: true, National: true},
			want: publication.TypeJournal,
		},
		{
			name: "workshop paper",
			in:   Input{EntryType: "inproceedings", Venue: "Proceedings of the 3rd Workshop on X", Workshop: true},
			want: publication.TypeWorkshop,
		},
		{
			name: "workshop wins over national",
			in:   Input{EntryType: "inproceedings", Workshop: true, National: true},
			want: publication.TypeWorkshop,
		},
		{
			name: "national conference",
			in:   Input{EntryType: "inproceedings", Venue: "Jornadas de Ingenieria del Software", National: true},
			want: publication.TypeNational,
		},
		{
			name: "conference paper",
			in:   Input{EntryType: "InProceedings", Venue: "28th ACM SPLC"},
			want: publication.TypeConference,
		},
		{
			name: "conference entry type",
			in:   Input{EntryType: "conference"},
			want: publication.TypeConference,
		},
		{
			name: "artifact with publisher",
			in:   Input{EntryType: "misc", Publisher: "Zenodo"},
			want: publication.TypeDataArtifacts,
		},
		{
			name: "software with publisher",
			in:   Input{EntryType: "software", Publisher: "GitHub"},
			want: publication.TypeDataArtifacts,
		},
		{
			name: "misc without publisher",
			in:   Input{EntryType: "misc"},
			want: publication.TypeOther,
		},
		{
			name: "edited proceedings",
			in:   Input{EntryType: "proceedings", Publisher: "ACM"},
			want: publication.TypeEditorship,
		},
		{
			name: "unknown entry type",
			in:   Input{EntryType: "techreport"},
			want: publication.TypeOther,
		},
		{
			name: "empty input",
			in:   Input{},
			want: publication.TypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify_WorkshopTitleNeverConference(t *testing.T) {
	titles := []string{
		"Proceedings of the 3rd Workshop on X",
		"Workshop on Variability Modelling",
		"Joint Proceedings of the MODELS Workshops",
		"VaMoS WS 2024",
	}
	for _, title := range titles {
		in := Input{EntryType: "inproceedings", Venue: title, Workshop: IsWorkshopTitle(title)}
		if got := Classify(in); got != publication.TypeWorkshop {
			t.Errorf("Classify(%q) = %q, want workshop", title, got)
		}
	}
}

func TestIsWorkshopTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Proceedings of the 3rd Workshop on X", true},
		{"2nd International WORKSHOP on Software Ecosystems", true},
		{"Satellite Events: Workshops and Tutorials", true},
		{"SPLC (WS)", true},
		{"International Conference on Web Services", false},
		{"Conference on News Analytics", false},
		{"Workshopping Ideas Symposium", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsWorkshopTitle(tt.title); got != tt.want {
			t.Errorf("IsWorkshopTitle(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestIsNationalScope(t *testing.T) {
	tests := []struct {
		scope string
		want  bool
	}{
		{"national", true},
		{" National ", true},
		{"international", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsNationalScope(tt.scope); got != tt.want {
			t.Errorf("IsNationalScope(%q) = %v, want %v", tt.scope, got, tt.want)
		}
	}
}
