package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/repositories"
	"github.com/desertthunder/mixdeck/internal/shared"
	th "github.com/desertthunder/mixdeck/internal/testing"
)

const libraryXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Tracks</key>
	<dict>
		<key>1024</key>
		<dict>
			<key>Track ID</key><integer>1024</integer>
			<key>Name</key><string>Blue</string>
			<key>Artist</key><string>Eiffel 65</string>
			<key>Album</key><string>Europop</string>
			<key>Total Time</key><integer>220400</integer>
			<key>BPM</key><integer>128</integer>
		</dict>
		<key>98</key>
		<dict>
			<key>Track ID</key><integer>98</integer>
			<key>Name</key><string>Blue Monday</string>
			<key>Artist</key><string>New Order</string>
			<key>Album</key><string>Power, Corruption &amp; Lies</string>
			<key>Total Time</key><integer>448999</integer>
			<key>BPM</key><integer>130</integer>
		</dict>
		<key>512</key>
		<dict>
			<key>Track ID</key><integer>512</integer>
			<key>Name</key><string>Voice Memo</string>
		</dict>
	</dict>
</dict>
</plist>`

// songWriterFunc adapts a function to [SongWriter].
type songWriterFunc func(ctx context.Context, songs []models.Song) (int, error)

func (f songWriterFunc) CreateBatch(ctx context.Context, songs []models.Song) (int, error) {
	return f(ctx, songs)
}

func libraryWithTracks(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><plist version="1.0"><dict><key>Tracks</key><dict>`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<key>%d</key><dict><key>Track ID</key><integer>%d</integer><key>Name</key><string>Track %03d</string></dict>`, i, i, i)
	}
	b.WriteString(`</dict></dict></plist>`)
	return b.String()
}

func TestParseLibrary(t *testing.T) {
	t.Run("maps track fields in track id order", func(t *testing.T) {
		songs, err := ParseLibrary(strings.NewReader(libraryXML))
		if err != nil {
			t.Fatalf("ParseLibrary failed: %v", err)
		}

		if len(songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(songs))
		}

		want := []models.Song{
			{Title: "Blue Monday", Artist: "New Order", Album: "Power, Corruption & Lies", TotalTime: 448, BPM: 130},
			{Title: "Voice Memo"},
			{Title: "Blue", Artist: "Eiffel 65", Album: "Europop", TotalTime: 220, BPM: 128},
		}
		for i, w := range want {
			if songs[i] != w {
				t.Errorf("song %d: expected %+v, got %+v", i, w, songs[i])
			}
		}
	})

	t.Run("library without tracks", func(t *testing.T) {
		songs, err := ParseLibrary(strings.NewReader(`<?xml version="1.0"?><plist version="1.0"><dict></dict></plist>`))
		if err != nil {
			t.Fatalf("ParseLibrary failed: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected no songs, got %d", len(songs))
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParseLibrary(strings.NewReader("this is not a property list"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestLibraryImporter(t *testing.T) {
	ctx := context.Background()

	t.Run("stores songs", func(t *testing.T) {
		db := th.NewTestDB(t)
		songs := repositories.NewSongRepository(db)

		result, err := NewLibraryImporter(songs, 0).Import(ctx, strings.NewReader(libraryXML), nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		if result.Parsed != 3 || result.Imported != 3 {
			t.Errorf("expected 3 parsed and imported, got %+v", result)
		}

		found, err := songs.Search(ctx, "blue")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(found) != 2 || found[0].Title != "Blue" || found[1].Title != "Blue Monday" {
			t.Errorf("unexpected search results: %+v", found)
		}
	})

	t.Run("importing twice duplicates songs", func(t *testing.T) {
		db := th.NewTestDB(t)
		songs := repositories.NewSongRepository(db)
		importer := NewLibraryImporter(songs, 0)

		for range 2 {
			if _, err := importer.Import(ctx, strings.NewReader(libraryXML), nil); err != nil {
				t.Fatalf("Import failed: %v", err)
			}
		}

		count, err := songs.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 6 {
			t.Errorf("expected 6 songs, got %d", count)
		}
	})

	t.Run("inserts in batches", func(t *testing.T) {
		var sizes []int
		var titles []string
		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			sizes = append(sizes, len(songs))
			for _, s := range songs {
				titles = append(titles, s.Title)
			}
			return len(songs), nil
		})

		result, err := NewLibraryImporter(writer, 4).Import(ctx, strings.NewReader(libraryWithTracks(10)), nil)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}

		if result.Imported != 10 {
			t.Errorf("expected 10 imported, got %d", result.Imported)
		}
		if fmt.Sprint(sizes) != "[4 4 2]" {
			t.Errorf("expected batches [4 4 2], got %v", sizes)
		}
		if titles[0] != "Track 001" || titles[9] != "Track 010" {
			t.Errorf("expected ascending track order, got %v", titles)
		}
	})

	t.Run("failed batch reports earlier progress", func(t *testing.T) {
		calls := 0
		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			calls++
			if calls == 2 {
				return 0, errors.New("disk full")
			}
			return len(songs), nil
		})

		result, err := NewLibraryImporter(writer, 3).Import(ctx, strings.NewReader(libraryWithTracks(7)), nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "songs 4-6") {
			t.Errorf("expected failing range in error, got %v", err)
		}
		if result == nil || result.Imported != 3 || result.Parsed != 7 {
			t.Errorf("expected 3 of 7 imported, got %+v", result)
		}
	})

	t.Run("cancelled context stops before storing", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			t.Error("CreateBatch should not be called")
			return 0, nil
		})

		_, err := NewLibraryImporter(writer, 0).Import(cctx, strings.NewReader(libraryXML), nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			return len(songs), nil
		})

		result, err := NewLibraryImporter(writer, 0).Import(ctx, strings.NewReader("<plist"), nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if result != nil {
			t.Errorf("expected nil result, got %+v", result)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			return len(songs), nil
		})

		progress := make(chan ProgressUpdate, 16)
		if _, err := NewLibraryImporter(writer, 2).Import(ctx, strings.NewReader(libraryWithTracks(3)), progress); err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		close(progress)

		var updates []ProgressUpdate
		for u := range progress {
			updates = append(updates, u)
		}

		if len(updates) != 5 {
			t.Fatalf("expected 5 updates, got %d: %+v", len(updates), updates)
		}
		if updates[0].Phase != ParsingLibrary || updates[1].Message != "Found 3 tracks" {
			t.Errorf("unexpected parse updates: %+v", updates[:2])
		}
		last := updates[len(updates)-1]
		if last.Phase != InsertingSongs || last.Step != 3 || last.Total != 3 {
			t.Errorf("unexpected final update: %+v", last)
		}
	})

	t.Run("full progress channel does not block", func(t *testing.T) {
		writer := songWriterFunc(func(ctx context.Context, songs []models.Song) (int, error) {
			return len(songs), nil
		})

		progress := make(chan ProgressUpdate)
		result, err := NewLibraryImporter(writer, 1).Import(ctx, strings.NewReader(libraryWithTracks(5)), progress)
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if result.Imported != 5 {
			t.Errorf("expected 5 imported, got %d", result.Imported)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		ParsingLibrary: "parse_library",
		InsertingSongs: "insert_songs",
		FetchingMixes:  "fetch_mixes",
		WritingExport:  "write_export",
		Phase(99):      "",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
