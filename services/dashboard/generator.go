package dashboard

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"habilitados-backend/services/habilitados"

	_ "embed"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/dashboard")

//go:embed template.html
var templateSource string

var pageTemplate = template.Must(template.New("dashboard").Parse(templateSource))

type pageData struct {
	UpdatedAt time.Time
	Records   []ConsolidatedRecord
	Stats     Stats
	Report    *habilitados.RunReport
}

// Generate renders the static dashboard into outputDir. the directory
// contents are fully regenerated every run, the web server just points
// at it.
func Generate(ctx context.Context, outputDir string, snapshot habilitados.Snapshot, report *habilitados.RunReport) error {
	_, span := tracer.Start(ctx, "Generate")
	defer span.End()

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		span.SetStatus(codes.Error, "mkdir failed")
		return err
	}

	data := pageData{
		UpdatedAt: snapshot.UpdatedAt,
		Records:   Consolidate(snapshot.Records),
		Stats:     ComputeStats(snapshot.Records),
		Report:    report,
	}

	out, err := os.Create(filepath.Join(outputDir, "index.html"))
	if err != nil {
		span.SetStatus(codes.Error, "create failed")
		return err
	}
	defer out.Close()

	err = pageTemplate.Execute(out, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return err
	}
	return nil
}
