package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	th "github.com/desertthunder/mixdeck/internal/testing"
	"gopkg.in/yaml.v3"
)

func sampleMixes() []models.MixDetail {
	return []models.MixDetail{
		{
			Mix:              models.Mix{ID: 2, FirstSongID: 1, SecondSongID: 2, Notes: "fade at 1:30\nkeep the kick"},
			FirstSongTitle:   "Blue Monday",
			FirstSongArtist:  "New Order",
			SecondSongTitle:  "Blue",
			SecondSongArtist: "Eiffel 65",
		},
		{
			Mix:              models.Mix{ID: 1, FirstSongID: 2, SecondSongID: 2},
			FirstSongTitle:   "Blue",
			FirstSongArtist:  "Eiffel 65",
			SecondSongTitle:  "Blue",
			SecondSongArtist: "Eiffel 65",
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportMixesToCSV", func(t *testing.T) {
		data, err := ExportMixesToCSV(sampleMixes())
		if err != nil {
			t.Fatalf("ExportMixesToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,First Song ID,First Title,First Artist,Second Song ID,Second Title,Second Artist,Notes\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "2,1,Blue Monday,New Order,2,Blue,Eiffel 65,\"fade at 1:30\nkeep the kick\"") {
			t.Errorf("CSV missing first mix row, got: %s", output)
		}
		if !strings.Contains(output, "1,2,Blue,Eiffel 65,2,Blue,Eiffel 65,\n") {
			t.Errorf("CSV missing self-paired mix row, got: %s", output)
		}
	})

	t.Run("ExportMixesToMarkdown", func(t *testing.T) {
		data, err := ExportMixesToMarkdown("Mixes matching blue", sampleMixes())
		if err != nil {
			t.Fatalf("ExportMixesToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Mixes matching blue\n",
			"**Mixes**: 2\n",
			"## Mix 2\n",
			"1. New Order - Blue Monday\n",
			"2. Eiffel 65 - Blue\n",
			"> fade at 1:30\n> keep the kick\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
		if strings.Count(output, "> ") != 2 {
			t.Errorf("expected notes quote only for the mix with notes, got: %s", output)
		}
	})

	t.Run("ExportMixesToText", func(t *testing.T) {
		data, err := ExportMixesToText("All mixes", sampleMixes())
		if err != nil {
			t.Fatalf("ExportMixesToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "All mixes\nMixes: 2\n\n") {
			t.Errorf("text header wrong, got: %s", output)
		}
		if !strings.Contains(output, "1. New Order - Blue Monday -> Eiffel 65 - Blue\n   fade at 1:30\n   keep the kick\n") {
			t.Errorf("text missing first mix, got: %s", output)
		}
		if !strings.Contains(output, "2. Eiffel 65 - Blue -> Eiffel 65 - Blue\n") {
			t.Errorf("text missing second mix, got: %s", output)
		}
	})

	t.Run("ExportMixesToYAML", func(t *testing.T) {
		data, err := ExportMixesToYAML(sampleMixes())
		if err != nil {
			t.Fatalf("ExportMixesToYAML failed: %v", err)
		}

		var decoded []models.MixDetail
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("YAML output does not parse: %v\n%s", err, data)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 mixes, got %d", len(decoded))
		}
		if decoded[0].ID != 2 || decoded[0].FirstSongTitle != "Blue Monday" || decoded[0].Notes != "fade at 1:30\nkeep the kick" {
			t.Errorf("unexpected first mix: %+v", decoded[0])
		}
		if !strings.Contains(string(data), "first_song_id: 1") {
			t.Errorf("expected mix fields inlined, got: %s", data)
		}
	})

	t.Run("empty inputs", func(t *testing.T) {
		data, err := ExportMixesToYAML(nil)
		if err != nil {
			t.Fatalf("ExportMixesToYAML failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty YAML sequence, got %q", data)
		}

		data, err = ExportMixesToJSON(nil)
		if err != nil {
			t.Fatalf("ExportMixesToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty JSON array, got %q", data)
		}
	})

	t.Run("ExportMixesToJSON", func(t *testing.T) {
		data, err := ExportMixesToJSON(sampleMixes())
		if err != nil {
			t.Fatalf("ExportMixesToJSON failed: %v", err)
		}
		if !strings.Contains(string(data), `"first_song_title": "Blue Monday"`) {
			t.Errorf("JSON missing song title, got: %s", data)
		}
	})

	t.Run("ExportSongsToCSV", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Title: "Blue Monday", Artist: "New Order", Album: "Power, Corruption & Lies", TotalTime: 448, BPM: 130},
			{ID: 2, Title: "Untitled", TotalTime: 3725, BPM: 0},
		}

		data, err := ExportSongsToCSV(songs)
		if err != nil {
			t.Fatalf("ExportSongsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Title,Artist,Album,Duration,BPM\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, `1,Blue Monday,New Order,"Power, Corruption & Lies",7:28,130`) {
			t.Errorf("CSV missing first song, got: %s", output)
		}
		if !strings.Contains(output, "2,Untitled,,,1:02:05,-") {
			t.Errorf("CSV missing second song, got: %s", output)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"csv", CSV},
		{"md", Markdown},
		{"Markdown", Markdown},
		{"text", Text},
		{"txt", Text},
		{"yml", YAML},
		{" YAML ", YAML},
		{"json", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseFormat("xlsx")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("extension", func(t *testing.T) {
		if Markdown.Extension() != "md" || YAML.Extension() != "yaml" {
			t.Errorf("unexpected extensions: %s %s", Markdown.Extension(), YAML.Extension())
		}
	})
}

func TestExportMixes(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data, err := ExportMixes(format, "Mixes", sampleMixes())
			if err != nil {
				t.Fatalf("ExportMixes(%s) failed: %v", format, err)
			}
			if !strings.Contains(string(data), "Blue Monday") {
				t.Errorf("%s export missing song title: %s", format, data)
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		if _, err := ExportMixes(Format("pdf"), "Mixes", nil); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		written, err := WriteExport([]byte("a,b\n"), CSV, path, "ignored")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		if got := th.MustReadFile(t, path); got != "a,b\n" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("default path from base", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "mixes")

		written, err := WriteExport([]byte("# Mixes\n"), Markdown, "", base)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if written != base+".md" {
			t.Errorf("expected %s.md, got %s", base, written)
		}
		th.AssertFileExists(t, written)
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "out.txt")
		if _, err := WriteExport([]byte("x"), Text, path, ""); err == nil {
			t.Error("expected error writing into a missing directory")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected no file, stat err = %v", err)
		}
	})
}
