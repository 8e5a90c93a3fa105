package renderer

import (
	"bytes"
	"embed"
	"html/template"
	"os"
	"time"

	"github.com/nucleoia/ccv/internal/constants"
	"github.com/nucleoia/ccv/internal/models"
	"github.com/nucleoia/ccv/internal/processor"
)

//go:embed templates/chat.html.tmpl
var templateFS embed.FS

var chatTemplate = template.Must(template.ParseFS(templateFS, "templates/chat.html.tmpl"))

// Options configures document assembly.
type Options struct {
	// DashboardHref is the relative link back to the dashboard; empty
	// disables the back link.
	DashboardHref string
	// Now is the generation stamp; the zero value means time.Now().
	Now time.Time
}

// documentData is the template context for one chat document.
type documentData struct {
	Stats         models.ChatStats
	Fragments     []template.HTML
	Processed     int
	Generated     string
	ChatTime      string
	DashboardHref string
}

// GenerateHTML assembles all rendered fragments plus summary statistics into
// one self-contained document and writes it to outputPath, fully replacing
// any previous file.
func GenerateHTML(records []models.LogRecord, outputPath string, opts Options) error {
	buf, err := renderDocument(records, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, buf, 0644)
}

// RenderDocument produces the document bytes without writing them, for
// callers that stage output themselves.
func RenderDocument(records []models.LogRecord, opts Options) ([]byte, error) {
	return renderDocument(records, opts)
}

func renderDocument(records []models.LogRecord, opts Options) ([]byte, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := documentData{
		Stats:         processor.CountStats(records),
		Generated:     now.Format(constants.GeneratedStampFormat),
		DashboardHref: opts.DashboardHref,
	}
	if ts, ok := ChatTimestamp(records); ok {
		data.ChatTime = ts.Local().Format(constants.DisplayTimeFormat)
	}

	for _, rec := range records {
		if frag := RenderRecord(rec); frag != "" {
			data.Fragments = append(data.Fragments, template.HTML(frag))
		}
	}
	data.Processed = len(data.Fragments)

	var buf bytes.Buffer
	if err := chatTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
