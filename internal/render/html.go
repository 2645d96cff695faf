package render

import (
	"encoding/json"
	"html/template"
	"os"
	"time"

	"github.com/Pruthvi695/Unseen-Spots/internal/model"
)

// ReportData is everything the HTML report shows for one run.
type ReportData struct {
	RunID     string
	Date      string
	City      string
	Vibe      string
	Message   string
	Itinerary *model.Itinerary
	Top       []model.Candidate
}

const reportTpl = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Unseen Spots</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #333; }
        .spot { border-bottom: 1px solid #eee; padding-bottom: 20px; margin-bottom: 20px; }
        .name { font-size: 1.2em; font-weight: bold; color: #2c3e50; }
        .pitch { background-color: #f9f9f9; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db; font-style: italic; }
        .meta { font-size: 0.9em; color: #7f8c8d; margin-bottom: 10px; }
        .message { background-color: #fdf3e7; padding: 15px; border-radius: 5px; border-left: 4px solid #e67e22; }
        .maps-link { display: inline-block; margin-top: 8px; }
        pre { background-color: #f4f4f4; padding: 15px; border-radius: 5px; overflow-x: auto; font-size: 0.85em; }
        h1, h2 { text-align: center; color: #2c3e50; }
    </style>
</head>
<body>
    <h1>🗺️ Unseen Spots</h1>
    <p style="text-align:center; color:#666;">{{ .Date }} • {{ .City }} • vibe: “{{ .Vibe }}”</p>

    {{if .Message}}
    <div class="message">{{ .Message }}</div>
    {{end}}

    {{if .Itinerary}}
    <h2>{{ .Itinerary.Title }}</h2>
    {{range .Itinerary.Spots}}
    <div class="spot">
        <div class="name">{{ .PlaceName }}</div>
        <div class="pitch">{{ .PitchNarrative }}</div>
        <a class="maps-link" href="{{ .GoogleMapsLink }}" target="_blank">View on Google Maps</a>
    </div>
    {{end}}
    {{end}}

    {{if .RawTop}}
    <details>
        <summary>Raw data (top scored spots)</summary>
        <pre>{{ .RawTop }}</pre>
    </details>
    {{end}}

    <p style="text-align:center; color:#aaa; font-size:0.8em;">run {{ .RunID }}</p>
</body>
</html>`

// templateData adds the pre-marshaled raw view to ReportData.
type templateData struct {
	ReportData
	RawTop string
}

// WriteReport renders the report to path.
func WriteReport(path string, data ReportData) error {
	t, err := template.New("report").Parse(reportTpl)
	if err != nil {
		return err
	}

	if data.Date == "" {
		data.Date = time.Now().Format("2006-01-02")
	}

	td := templateData{ReportData: data}
	if len(data.Top) > 0 {
		raw, err := json.MarshalIndent(data.Top, "", "  ")
		if err == nil {
			td.RawTop = string(raw)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, td)
}
