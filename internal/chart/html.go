// Package chart renders a publication timeline as a self-contained HTML
// page with an inline SVG chart.
package chart

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pubtimeline/pubtl/internal/layout"
	"github.com/pubtimeline/pubtl/internal/publication"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("chart").Parse(htmlTemplate))
}

// Options configures HTML generation.
type Options struct {
	Title      string // Page title
	Researcher string // Shown in the heading when set
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() Options {
	return Options{Title: "Publication timeline"}
}

type legendEntry struct {
	Label string
	Color string
	Y     int
}

type legendText struct {
	Text string
	Y    int
}

type templateData struct {
	Title      string
	Researcher string
	Layout
	Types      []legendEntry
	TypesTitle int
	JCRTitle   int
	JCR        []legendText
	CoreTitle  int
	Core       []legendText
	IconsTitle int
	Icons      []legendText
}

const legendSpacing = 25

// GenerateHTML renders the timeline. A timeline without columns yields a
// page stating that there is nothing to show.
func GenerateHTML(tl layout.Timeline, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}
	if len(tl.Columns) == 0 {
		return generateEmptyHTML(opts), nil
	}

	data := templateData{
		Title:      opts.Title,
		Researcher: opts.Researcher,
		Layout:     Place(tl),
		TypesTitle: -5,
	}

	y := 0
	for _, t := range publication.Types() {
		data.Types = append(data.Types, legendEntry{Label: t.Label(), Color: Color(t), Y: y})
		y += legendSpacing
	}

	data.JCRTitle = y + 30
	y = data.JCRTitle + 5
	for _, text := range []string{"Q1, Q2, Q3, Q4", "?: Unknown", "-: No indexed in the JCR"} {
		data.JCR = append(data.JCR, legendText{Text: text, Y: y + 15})
		y += legendSpacing
	}

	data.CoreTitle = y + 30
	y = data.CoreTitle + 5
	for _, text := range []string{"A*, A, B, C", "-: No indexed"} {
		data.Core = append(data.Core, legendText{Text: text, Y: y + 15})
		y += legendSpacing
	}

	data.IconsTitle = y + 30
	y = data.IconsTitle + 5
	for _, n := range NoteIcons {
		data.Icons = append(data.Icons, legendText{Text: n.Icon + ": " + n.Meaning, Y: y + 15})
		y += legendSpacing
	}

	if need := data.LegendY + y + 20; need > data.Height {
		data.Height = need
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}
	return buf.String(), nil
}

func generateEmptyHTML(opts Options) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(opts.Title) + `</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No publications</h2>
    <p>The bibliography has no entries with a valid year.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 16px;
      background: #f5f5f5;
    }
    #chart {
      background: white;
    }
    .pub-square-group {
      cursor: pointer;
    }
    .pub-detail {
      display: none;
      position: fixed;
      top: 10%;
      left: 50%;
      transform: translateX(-50%);
      max-width: 640px;
      background: white;
      border: 1px solid #ccc;
      border-radius: 6px;
      padding: 12px 20px;
      box-shadow: 0 2px 12px rgba(0,0,0,0.2);
    }
    .pub-detail.open {
      display: block;
    }
    .legend-title {
      font-weight: bold;
      text-decoration: underline;
    }
  </style>
</head>
<body>
  <h1>{{.Title}}{{if .Researcher}}: {{.Researcher}}{{end}}</h1>
  <svg id="chart" xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}">
    {{- range .Counts}}
    <text class="y-axis-label" x="{{$.AxisX}}" dx="-10" y="{{.Y}}" dy="0.35em" text-anchor="end">{{.Count}}</text>
    {{- end}}
    <line class="y-axis" x1="{{.AxisX}}" y1="0" x2="{{.AxisX}}" y2="{{.Base}}" stroke="black" stroke-width="1"></line>
    {{- range .Squares}}
    <g class="pub-square-group" data-key="{{.Key}}">
      <g class="pub-square" transform="translate({{.X}}, {{.Y}})">
        <rect width="120" height="120" rx="10" fill="{{.Color}}" stroke="#333" stroke-width="1.5"></rect>
        <text class="ranking" x="60" y="65" text-anchor="middle" font-weight="bold" font-size="1.1em">{{.Center}}</text>
        <g class="label" transform="translate(115, 115)" text-anchor="end" font-style="italic">
          {{- if eq (len .Label) 2}}
          <text x="0" y="-14">{{index .Label 0}}</text>
          <text x="0" y="0">{{index .Label 1}}</text>
          {{- else if .Label}}
          <text x="0" y="0">{{index .Label 0}}</text>
          {{- end}}
        </g>
        <text class="awards" x="120" y="25" text-anchor="end" font-size="1.5em">{{.Awards}}</text>
        <text class="icons" x="0" y="25" text-anchor="start" font-size="1.5em">{{.Icons}}</text>
        <text class="author-position" x="5" y="115" text-anchor="start">{{.Position}}</text>
      </g>
    </g>
    {{- end}}
    {{- range .Years}}
    <text class="year-label" x="{{.X}}" y="{{.Y}}" text-anchor="middle" font-weight="bold" font-size="14px">{{.Year}}</text>
    {{- end}}
    <g class="legend" transform="translate({{.LegendX}}, {{.LegendY}})" font-size="14px">
      <text class="legend-title" x="0" y="{{.TypesTitle}}">Publication types:</text>
      {{- range .Types}}
      <rect class="legend-swatch" x="0" y="{{.Y}}" width="18" height="18" fill="{{.Color}}"></rect>
      <text class="legend-type" x="25" y="{{.Y}}" dy="14">{{.Label}}</text>
      {{- end}}
      <text class="legend-title" x="0" y="{{.JCRTitle}}">JCR ranking:</text>
      {{- range .JCR}}
      <text class="quartile" x="0" y="{{.Y}}">{{.Text}}</text>
      {{- end}}
      <text class="legend-title" x="0" y="{{.CoreTitle}}">ICORE ranking:</text>
      {{- range .Core}}
      <text class="icore" x="0" y="{{.Y}}">{{.Text}}</text>
      {{- end}}
      <text class="legend-title" x="0" y="{{.IconsTitle}}">Other info:</text>
      {{- range .Icons}}
      <text class="icon" x="0" y="{{.Y}}">{{.Text}}</text>
      {{- end}}
    </g>
  </svg>
  {{- range .Squares}}
  <div class="pub-detail" id="detail-{{.Key}}">
    {{- range .Details}}
    <p><strong>{{.Label}}:</strong> {{if .Link}}<a href="{{.Value}}" target="_blank" rel="noopener noreferrer">{{.Value}}</a>{{else}}{{.Value}}{{end}}</p>
    {{- end}}
  </div>
  {{- end}}
  <script>
    (function() {
      document.querySelectorAll('.pub-square-group').forEach(function(g) {
        g.addEventListener('click', function(event) {
          event.stopPropagation();
          document.querySelectorAll('.pub-detail.open').forEach(function(d) { d.classList.remove('open'); });
          var detail = document.getElementById('detail-' + g.getAttribute('data-key'));
          if (detail) {
            detail.classList.add('open');
          }
        });
      });
      document.addEventListener('click', function() {
        document.querySelectorAll('.pub-detail.open').forEach(function(d) { d.classList.remove('open'); });
      });
    })();
  </script>
</body>
</html>`
