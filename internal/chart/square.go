package chart

import (
	"strconv"
	"strings"

	"github.com/pubtimeline/pubtl/internal/layout"
	"github.com/pubtimeline/pubtl/internal/publication"
)

// Chart geometry in SVG user units.
const (
	SquareSize = 120
	RowGap     = 130
	ColumnGap  = 150
	Padding    = 10
	XStart     = 60

	// Labels longer than this are split over two lines.
	labelBreak = 12
)

const fallbackColor = "#ccc"

var typeColors = map[publication.Type]string{
	publication.TypeJournal:       "#c32b72",
	publication.TypeConference:    "#196ca3",
	publication.TypeWorkshop:      "#2ecc71",
	publication.TypeNational:      "#e67e22",
	publication.TypeDataArtifacts: "#885522",
	publication.TypeBook:          "#ffd500",
	publication.TypeEditorship:    "#33c3ba",
	publication.TypeOther:         "#606b70",
}

// Color returns the fill color of a publication type.
func Color(t publication.Type) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return fallbackColor
}

// NoteIcon is a recognized note annotation.
type NoteIcon struct {
	Note    string // lower-case note text
	Icon    string
	Meaning string
}

// NoteIcons lists the annotations shown as icons, in legend order.
var NoteIcons = []NoteIcon{
	{Note: "best paper award", Icon: "🏆", Meaning: "Best paper award"},
	{Note: "external collaboration", Icon: "👥", Meaning: "External collaboration"},
	{Note: "industry collaboration", Icon: "🏢", Meaning: "Industry collaboration"},
	{Note: "international stay result", Icon: "🗺️", Meaning: "International stay result"},
}

const awardIcon = "🏆"

func lookupNote(note string) (NoteIcon, bool) {
	note = strings.ToLower(strings.TrimSpace(note))
	for _, n := range NoteIcons {
		if n.Note == note {
			return n, true
		}
	}
	return NoteIcon{}, false
}

// Square is a positioned publication ready to draw.
type Square struct {
	Key      string
	X, Y     int
	Color    string
	Center   string   // ranking label
	Position string   // author position
	Awards   string   // one trophy per award
	Icons    string   // note icons
	Label    []string // acronym and track, one or two lines
	Details  []Detail
}

// Detail is one row of the publication detail panel.
type Detail struct {
	Label string
	Value string
	Link  bool
}

// Layout holds the positioned squares and axis geometry of a timeline.
type Layout struct {
	Squares []Square
	Years   []YearLabel
	Counts  []CountLabel
	AxisX   int
	Base    int // y of the baseline under the tallest column
	Width   int
	Height  int
	LegendX int
	LegendY int
}

// YearLabel is a column caption.
type YearLabel struct {
	Year int
	X, Y int
}

// CountLabel is a y-axis tick.
type CountLabel struct {
	Count int
	Y     int
}

// Place computes the drawing positions for a timeline. Columns are laid out
// left to right by year and entries stacked upward from the baseline, the
// first entry of a column on top.
func Place(tl layout.Timeline) Layout {
	base := tl.MaxStack * RowGap
	l := Layout{
		AxisX:   XStart - 10,
		Base:    base,
		Height:  base + 80,
		LegendX: XStart + len(tl.Columns)*ColumnGap + 50,
		LegendY: 50,
	}
	l.Width = l.LegendX + 320

	for i := 0; i < tl.MaxStack; i++ {
		l.Counts = append(l.Counts, CountLabel{Count: tl.MaxStack - i, Y: i*RowGap + Padding})
	}

	for _, col := range tl.Columns {
		x := XStart + col.Index*ColumnGap
		l.Years = append(l.Years, YearLabel{Year: col.Year, X: x + SquareSize/2, Y: base + 30})

		total := len(col.Entries)
		for _, e := range col.Entries {
			l.Squares = append(l.Squares, newSquare(e.Publication, x, base-(total-e.Stack)*RowGap))
		}
	}
	return l
}

func newSquare(p publication.Publication, x, y int) Square {
	return Square{
		Key:      p.Key,
		X:        x,
		Y:        y,
		Color:    Color(p.Type),
		Center:   p.Ranking(),
		Position: p.AuthorPosition.String(),
		Awards:   strings.Repeat(awardIcon, len(p.Awards)),
		Icons:    noteIcons(p.Notes),
		Label:    labelLines(p.Acronym, p.Track),
		Details:  details(p),
	}
}

func noteIcons(notes string) string {
	var b strings.Builder
	for _, n := range strings.Split(notes, ",") {
		if icon, ok := lookupNote(n); ok {
			b.WriteString(icon.Icon)
		}
	}
	return b.String()
}

// labelLines lays out the bottom-right caption. Long captions put the track
// on its own line, or split a multi-word acronym in two.
func labelLines(acronym, track string) []string {
	prefix := ""
	if track != "" {
		prefix = track + " @"
	}
	if len(prefix)+len(acronym) <= labelBreak {
		if line := prefix + acronym; line != "" {
			return []string{line}
		}
		return nil
	}
	if track != "" {
		return []string{prefix, acronym}
	}
	words := strings.Fields(acronym)
	if len(words) < 2 {
		return []string{acronym}
	}
	half := (len(words) + 1) / 2
	return []string{strings.Join(words[:half], " "), strings.Join(words[half:], " ")}
}

func details(p publication.Publication) []Detail {
	var rows []Detail
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, Detail{Label: label, Value: value})
		}
	}

	add("Type", p.Type.Label())
	authors := "Authors"
	if pos := p.AuthorPosition.String(); pos != "" {
		authors += " (" + pos + ")"
	}
	add(authors, p.Authors)
	add("Title", p.Title)
	add("Journal", p.Journal)
	add("Conference", p.BookTitle)
	add("Volume", p.Volume)
	add("Year", strings.TrimSpace(p.Month+" "+strconv.Itoa(p.Year)))
	add("Address", p.Address)
	add("JCR", p.JCR)
	switch p.Icore {
	case publication.CoreNone:
	case publication.CoreUnranked:
		add("ICORE", "No indexed")
	default:
		add("ICORE", string(p.Icore))
	}
	add("Calification", p.Calification)
	add("Publisher", p.Publisher)
	if len(p.Awards) > 0 {
		awards := make([]string, len(p.Awards))
		for i, a := range p.Awards {
			awards[i] = awardIcon + " " + a
		}
		add("Awards", strings.Join(awards, ", "))
	}
	add("Notes", describeNotes(p.Notes))
	if p.DOI != "" {
		rows = append(rows, Detail{Label: "DOI/Handle/URL", Value: p.DOI, Link: true})
	} else {
		add("DOI/Handle/URL", "-")
	}
	add("Abstract", p.Abstract)
	add("Keywords", p.Keywords)
	return rows
}

func describeNotes(notes string) string {
	var parts []string
	for _, n := range strings.Split(notes, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if icon, ok := lookupNote(n); ok {
			parts = append(parts, icon.Meaning+" "+icon.Icon)
		} else {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ", ")
}
