// package formatter exports songs and mixes to various formats (CSV, Markdown, plain text, YAML, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
	YAML     Format = "yaml"
	JSON     Format = "json"
)

// Formats lists every supported export format.
var Formats = []Format{CSV, Markdown, Text, YAML, JSON}

// ParseFormat resolves a user-supplied format name. "md", "text" and "yml" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, name)
	}
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	if f == Markdown {
		return "md"
	}
	return string(f)
}

// ExportMixes renders mixes in the given format. The title heads the Markdown and text outputs.
func ExportMixes(format Format, title string, mixes []models.MixDetail) ([]byte, error) {
	switch format {
	case CSV:
		return ExportMixesToCSV(mixes)
	case Markdown:
		return ExportMixesToMarkdown(title, mixes)
	case Text:
		return ExportMixesToText(title, mixes)
	case YAML:
		return ExportMixesToYAML(mixes)
	case JSON:
		return ExportMixesToJSON(mixes)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportMixesToCSV converts mixes to CSV with columns: ID, First Title, First Artist, Second Title, Second Artist, Notes
func ExportMixesToCSV(mixes []models.MixDetail) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "First Song ID", "First Title", "First Artist", "Second Song ID", "Second Title", "Second Artist", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, mix := range mixes {
		record := []string{
			strconv.FormatInt(mix.ID, 10),
			strconv.FormatInt(mix.FirstSongID, 10),
			mix.FirstSongTitle,
			mix.FirstSongArtist,
			strconv.FormatInt(mix.SecondSongID, 10),
			mix.SecondSongTitle,
			mix.SecondSongArtist,
			mix.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportMixesToMarkdown converts mixes to a Markdown document with one section per mix
func ExportMixesToMarkdown(title string, mixes []models.MixDetail) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Mixes**: %d\n\n", len(mixes))

	for _, mix := range mixes {
		fmt.Fprintf(&buf, "## Mix %d\n\n", mix.ID)
		fmt.Fprintf(&buf, "1. %s - %s\n", mix.FirstSongArtist, mix.FirstSongTitle)
		fmt.Fprintf(&buf, "2. %s - %s\n", mix.SecondSongArtist, mix.SecondSongTitle)
		if mix.Notes != "" {
			buf.WriteString("\n")
			for _, line := range strings.Split(mix.Notes, "\n") {
				fmt.Fprintf(&buf, "> %s\n", line)
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportMixesToText converts mixes to plain text
func ExportMixesToText(title string, mixes []models.MixDetail) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", title)
	fmt.Fprintf(&buf, "Mixes: %d\n\n", len(mixes))

	for i, mix := range mixes {
		fmt.Fprintf(&buf, "%d. %s - %s -> %s - %s\n", i+1,
			mix.FirstSongArtist, mix.FirstSongTitle, mix.SecondSongArtist, mix.SecondSongTitle)
		if mix.Notes != "" {
			fmt.Fprintf(&buf, "   %s\n", strings.ReplaceAll(mix.Notes, "\n", "\n   "))
		}
	}

	return buf.Bytes(), nil
}

// ExportMixesToYAML converts mixes to a YAML sequence
func ExportMixesToYAML(mixes []models.MixDetail) ([]byte, error) {
	if mixes == nil {
		mixes = []models.MixDetail{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mixes); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportMixesToJSON converts mixes to an indented JSON array
func ExportMixesToJSON(mixes []models.MixDetail) ([]byte, error) {
	if mixes == nil {
		mixes = []models.MixDetail{}
	}

	data, err := json.MarshalIndent(mixes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportSongsToCSV converts songs to CSV with columns: ID, Title, Artist, Album, Duration, BPM
func ExportSongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "BPM"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			song.Album,
			shared.FormatDuration(song.TotalTime),
			shared.FormatBPM(song.BPM),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExport writes data to path, or to "{base}.{ext}" when path is empty.
func WriteExport(data []byte, format Format, path, base string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.%s", base, format.Extension())
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
