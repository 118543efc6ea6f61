// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// NewTestDB creates a SQLite database in the test's temp directory with migrations applied.
//
// A file database is used so that every pooled connection sees the same data.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(filepath.Join(t.TempDir(), "mixdeck_test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// SeedSongs inserts songs directly and returns them with their assigned IDs.
func SeedSongs(t *testing.T, db *sql.DB, songs ...models.Song) []models.Song {
	t.Helper()

	seeded := make([]models.Song, len(songs))
	for i, s := range songs {
		result, err := db.Exec(
			"INSERT INTO songs (title, artist, album, total_time, bpm) VALUES (?, ?, ?, ?, ?)",
			s.Title, s.Artist, s.Album, s.TotalTime, s.BPM,
		)
		if err != nil {
			t.Fatalf("failed to seed song %q: %v", s.Title, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			t.Fatalf("failed to read seeded id: %v", err)
		}
		s.ID = id
		seeded[i] = s
	}
	return seeded
}

// BlueMonday and Blue are the reference fixtures used across the catalog tests.
var (
	BlueMonday = models.Song{Title: "Blue Monday", Artist: "New Order", Album: "Power, Corruption & Lies", TotalTime: 448, BPM: 130}
	Blue       = models.Song{Title: "Blue", Artist: "Eiffel 65", Album: "Europop", TotalTime: 220, BPM: 120}
)

// MockCatalog is an in-memory test double for [services.Catalog].
//
// Searches use the same case-insensitive substring semantics as the SQLite implementation.
type MockCatalog struct {
	mu     sync.Mutex
	Songs  []models.Song
	Mixes  []models.Mix
	nextID int64
	Err    error // returned by every call when set
}

// NewMockCatalog creates a MockCatalog holding songs, assigning IDs to any that lack one.
func NewMockCatalog(songs ...models.Song) *MockCatalog {
	m := &MockCatalog{}
	for i, s := range songs {
		if s.ID == 0 {
			s.ID = int64(i + 1)
		}
		m.Songs = append(m.Songs, s)
	}
	return m
}

func contains(field, term string) bool {
	return strings.Contains(shared.Fold(field), shared.Fold(term))
}

func songMatches(s models.Song, term string) bool {
	return contains(s.Title, term) || contains(s.Artist, term) || contains(s.Album, term)
}

func (m *MockCatalog) song(id int64) (models.Song, bool) {
	for _, s := range m.Songs {
		if s.ID == id {
			return s, true
		}
	}
	return models.Song{}, false
}

func (m *MockCatalog) detail(mix models.Mix) models.MixDetail {
	first, _ := m.song(mix.FirstSongID)
	second, _ := m.song(mix.SecondSongID)
	return models.MixDetail{
		Mix:              mix,
		FirstSongTitle:   first.Title,
		FirstSongArtist:  first.Artist,
		SecondSongTitle:  second.Title,
		SecondSongArtist: second.Artist,
	}
}

func (m *MockCatalog) SearchSongs(ctx context.Context, term string) ([]models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	songs := []models.Song{}
	for _, s := range m.Songs {
		if songMatches(s, term) {
			songs = append(songs, s)
		}
	}
	slices.SortStableFunc(songs, func(a, b models.Song) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return songs, nil
}

func (m *MockCatalog) ListSongs(ctx context.Context) ([]models.Song, error) {
	return m.SearchSongs(ctx, "")
}

func (m *MockCatalog) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.song(id)
	if !ok {
		return nil, shared.ErrSongNotFound
	}
	return &s, nil
}

func (m *MockCatalog) SearchMixesBySongTerm(ctx context.Context, term string) ([]models.MixDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	mixes := []models.MixDetail{}
	for i := len(m.Mixes) - 1; i >= 0; i-- {
		mix := m.Mixes[i]
		first, _ := m.song(mix.FirstSongID)
		second, _ := m.song(mix.SecondSongID)
		if songMatches(first, term) || songMatches(second, term) {
			mixes = append(mixes, m.detail(mix))
		}
	}
	return mixes, nil
}

func (m *MockCatalog) GetMix(ctx context.Context, id int64) (*models.MixDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, mix := range m.Mixes {
		if mix.ID == id {
			d := m.detail(mix)
			return &d, nil
		}
	}
	return nil, shared.ErrMixNotFound
}

func (m *MockCatalog) CreateMix(ctx context.Context, firstSongID, secondSongID int64, notes string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if _, ok := m.song(firstSongID); !ok {
		return 0, shared.ErrSongNotFound
	}
	if _, ok := m.song(secondSongID); !ok {
		return 0, shared.ErrSongNotFound
	}
	m.nextID++
	m.Mixes = append(m.Mixes, models.Mix{ID: m.nextID, FirstSongID: firstSongID, SecondSongID: secondSongID, Notes: notes})
	return m.nextID, nil
}

func (m *MockCatalog) UpdateMixNotes(ctx context.Context, mixID int64, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Mixes {
		if m.Mixes[i].ID == mixID {
			m.Mixes[i].Notes = notes
		}
	}
	return nil
}

func (m *MockCatalog) DeleteMix(ctx context.Context, mixID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Mixes = slices.DeleteFunc(m.Mixes, func(mix models.Mix) bool { return mix.ID == mixID })
	return nil
}

func (m *MockCatalog) CountSongs(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Songs), m.Err
}

func (m *MockCatalog) CountMixes(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Mixes), m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
