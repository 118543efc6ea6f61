package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/models"
)

// MixSearcher finds mixes by song term. Implemented by services.Catalog.
type MixSearcher interface {
	SearchMixesBySongTerm(ctx context.Context, term string) ([]models.MixDetail, error)
}

// ExportResult holds a rendered export.
type ExportResult struct {
	Format formatter.Format
	Title  string
	Mixes  int
	Data   []byte
}

// MixExporter renders mixes matching a song term.
type MixExporter struct {
	mixes MixSearcher
}

// NewMixExporter creates a MixExporter that reads through mixes.
func NewMixExporter(mixes MixSearcher) *MixExporter {
	return &MixExporter{mixes: mixes}
}

// Export fetches mixes matching term and renders them in format. An empty term exports every mix.
func (e *MixExporter) Export(ctx context.Context, term string, format formatter.Format, progress chan<- ProgressUpdate) (*ExportResult, error) {
	mixes, err := e.mixes.SearchMixesBySongTerm(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mixes: %w", err)
	}
	sendProgress(progress, fetchMixesUpdate(len(mixes)))

	title := exportTitle(term)
	data, err := formatter.ExportMixes(format, title, mixes)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, writeExportUpdate(string(format), len(data)))

	return &ExportResult{Format: format, Title: title, Mixes: len(mixes), Data: data}, nil
}

func exportTitle(term string) string {
	if term == "" {
		return "All mixes"
	}
	return fmt.Sprintf("Mixes matching %q", term)
}
