package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	tu "github.com/desertthunder/mixdeck/internal/testing"
)

func newTestCatalog(t *testing.T) (*CatalogService, []models.Song) {
	t.Helper()
	db := tu.NewTestDB(t)
	songs := tu.SeedSongs(t, db, tu.BlueMonday, tu.Blue)
	return NewCatalogService(db, shared.NewLogger(&bytes.Buffer{})), songs
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()

	t.Run("Reference Example", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		found, err := svc.SearchSongs(ctx, "blue")
		if err != nil {
			t.Fatalf("SearchSongs failed: %v", err)
		}
		if len(found) != 2 || found[0].Title != "Blue" || found[1].Title != "Blue Monday" {
			t.Fatalf("expected [Blue, Blue Monday], got %+v", found)
		}

		id, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "great transition")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}

		mixes, err := svc.SearchMixesBySongTerm(ctx, "Eiffel")
		if err != nil {
			t.Fatalf("SearchMixesBySongTerm failed: %v", err)
		}
		if len(mixes) != 1 {
			t.Fatalf("expected 1 mix, got %d", len(mixes))
		}

		mix := mixes[0]
		if mix.ID != id {
			t.Errorf("expected mix %d, got %d", id, mix.ID)
		}
		if mix.FirstSongTitle != "Blue Monday" || mix.FirstSongArtist != "New Order" {
			t.Errorf("unexpected first song: %s / %s", mix.FirstSongTitle, mix.FirstSongArtist)
		}
		if mix.SecondSongTitle != "Blue" || mix.SecondSongArtist != "Eiffel 65" {
			t.Errorf("unexpected second song: %s / %s", mix.SecondSongTitle, mix.SecondSongArtist)
		}
		if mix.Notes != "great transition" {
			t.Errorf("expected notes 'great transition', got %q", mix.Notes)
		}
		if mix.FirstSongID != songs[0].ID || mix.SecondSongID != songs[1].ID {
			t.Errorf("unexpected song references: %d, %d", mix.FirstSongID, mix.SecondSongID)
		}
	})

	t.Run("CreateMix Default Notes", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		id, err := svc.CreateMix(ctx, songs[1].ID, songs[0].ID, "")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}

		mix, err := svc.GetMix(ctx, id)
		if err != nil {
			t.Fatalf("GetMix failed: %v", err)
		}
		if mix.Notes != "" {
			t.Errorf("expected empty notes, got %q", mix.Notes)
		}
	})

	t.Run("CreateMix Referential Integrity", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		_, err := svc.CreateMix(ctx, songs[0].ID, 4242, "nope")
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Fatalf("expected ErrSongNotFound, got %v", err)
		}
		if errors.Is(err, shared.ErrQueryFailed) {
			t.Error("referential failure must be distinct from query failure")
		}

		count, err := svc.CountMixes(ctx)
		if err != nil {
			t.Fatalf("CountMixes failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no mix rows, got %d", count)
		}
	})

	t.Run("CreateMix Is Not Idempotent", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		a, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "same")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}
		b, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "same")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}
		if a == b {
			t.Error("expected distinct ids")
		}
	})

	t.Run("UpdateMixNotes", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		id, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "first draft")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}

		for range 2 {
			if err := svc.UpdateMixNotes(ctx, id, "x"); err != nil {
				t.Fatalf("UpdateMixNotes failed: %v", err)
			}
			mix, err := svc.GetMix(ctx, id)
			if err != nil {
				t.Fatalf("GetMix failed: %v", err)
			}
			if mix.Notes != "x" {
				t.Errorf("expected notes x, got %q", mix.Notes)
			}
		}

		if err := svc.UpdateMixNotes(ctx, id, ""); err != nil {
			t.Fatalf("UpdateMixNotes failed: %v", err)
		}
		mix, err := svc.GetMix(ctx, id)
		if err != nil {
			t.Fatalf("GetMix failed: %v", err)
		}
		if mix.Notes != "" {
			t.Errorf("expected cleared notes, got %q", mix.Notes)
		}
	})

	t.Run("UpdateMixNotes Missing Mix", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		id, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "keep")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}

		if err := svc.UpdateMixNotes(ctx, id+1, "ghost"); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}

		mixes, err := svc.SearchMixesBySongTerm(ctx, "")
		if err != nil {
			t.Fatalf("SearchMixesBySongTerm failed: %v", err)
		}
		if len(mixes) != 1 || mixes[0].Notes != "keep" {
			t.Errorf("store should be unchanged, got %+v", mixes)
		}
	})

	t.Run("DeleteMix", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		id, err := svc.CreateMix(ctx, songs[0].ID, songs[1].ID, "")
		if err != nil {
			t.Fatalf("CreateMix failed: %v", err)
		}

		if err := svc.DeleteMix(ctx, id); err != nil {
			t.Fatalf("DeleteMix failed: %v", err)
		}
		if err := svc.DeleteMix(ctx, id); err != nil {
			t.Fatalf("second DeleteMix should be a no-op, got %v", err)
		}

		mixes, err := svc.SearchMixesBySongTerm(ctx, "blue")
		if err != nil {
			t.Fatalf("SearchMixesBySongTerm failed: %v", err)
		}
		if len(mixes) != 0 {
			t.Errorf("deleted mix should not be returned, got %+v", mixes)
		}

		if _, err := svc.GetMix(ctx, id); !errors.Is(err, shared.ErrMixNotFound) {
			t.Errorf("expected ErrMixNotFound, got %v", err)
		}
	})

	t.Run("GetSong", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		song, err := svc.GetSong(ctx, songs[1].ID)
		if err != nil {
			t.Fatalf("GetSong failed: %v", err)
		}
		if song.Title != "Blue" {
			t.Errorf("expected Blue, got %s", song.Title)
		}

		if _, err := svc.GetSong(ctx, 0); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("ListSongs And Counts", func(t *testing.T) {
		svc, _ := newTestCatalog(t)

		songs, err := svc.ListSongs(ctx)
		if err != nil {
			t.Fatalf("ListSongs failed: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected 2 songs, got %d", len(songs))
		}

		count, err := svc.CountSongs(ctx)
		if err != nil {
			t.Fatalf("CountSongs failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2, got %d", count)
		}
	})

	t.Run("Concurrent Callers", func(t *testing.T) {
		svc, songs := newTestCatalog(t)

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := range 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := svc.CreateMix(ctx, songs[i%2].ID, songs[(i+1)%2].ID, "concurrent"); err != nil {
					errs <- err
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := svc.SearchMixesBySongTerm(ctx, "blue"); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("concurrent call failed: %v", err)
		}

		count, err := svc.CountMixes(ctx)
		if err != nil {
			t.Fatalf("CountMixes failed: %v", err)
		}
		if count != 10 {
			t.Errorf("expected 10 mixes, got %d", count)
		}
	})
}

func TestCatalogServiceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Query Failure", func(t *testing.T) {
		db := tu.NewTestDB(t)
		var logs bytes.Buffer
		svc := NewCatalogService(db, shared.NewLogger(&logs))
		db.Close()

		const secret = "my secret search"
		if _, err := svc.SearchSongs(ctx, secret); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("SearchSongs: expected ErrQueryFailed, got %v", err)
		}
		if _, err := svc.SearchMixesBySongTerm(ctx, secret); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("SearchMixesBySongTerm: expected ErrQueryFailed, got %v", err)
		}
		if _, err := svc.CreateMix(ctx, 1, 2, secret); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("CreateMix: expected ErrQueryFailed, got %v", err)
		}
		if err := svc.UpdateMixNotes(ctx, 1, secret); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("UpdateMixNotes: expected ErrQueryFailed, got %v", err)
		}
		if err := svc.DeleteMix(ctx, 1); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("DeleteMix: expected ErrQueryFailed, got %v", err)
		}

		out := logs.String()
		if !strings.Contains(out, "search_songs") || !strings.Contains(out, "delete_mix") {
			t.Errorf("expected operation names in logs, got %s", out)
		}
		if strings.Contains(out, secret) {
			t.Error("raw user input must not be logged")
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		svc, _ := newTestCatalog(t)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := svc.SearchSongs(cctx, "blue"); !errors.Is(err, shared.ErrQueryFailed) {
			t.Errorf("expected ErrQueryFailed for cancelled context, got %v", err)
		}
	})
}

func TestOpenCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("file database", func(t *testing.T) {
		cfg := shared.DatabaseConfig{Path: filepath.Join(t.TempDir(), "catalog.db"), MaxOpenConns: 4, MaxIdleConns: 2}

		svc, err := OpenCatalog(ctx, cfg, shared.NewLogger(&bytes.Buffer{}))
		if err != nil {
			t.Fatalf("OpenCatalog failed: %v", err)
		}

		count, err := svc.CountSongs(ctx)
		if err != nil {
			t.Fatalf("CountSongs failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty catalog, got %d songs", count)
		}

		if err := svc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if _, err := svc.CountSongs(ctx); err == nil {
			t.Error("expected error after Close")
		}
	})

	t.Run("memory database", func(t *testing.T) {
		svc, err := OpenCatalog(ctx, shared.DatabaseConfig{Path: shared.MemoryPath, MaxOpenConns: 10}, nil)
		if err != nil {
			t.Fatalf("OpenCatalog failed: %v", err)
		}
		defer svc.Close()

		if _, err := svc.SearchSongs(ctx, ""); err != nil {
			t.Errorf("memory catalog should be migrated: %v", err)
		}
	})

	t.Run("borrowed database is not closed", func(t *testing.T) {
		db := tu.NewTestDB(t)
		svc := NewCatalogService(db, nil)
		if err := svc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := db.Ping(); err != nil {
			t.Errorf("borrowed db should remain open: %v", err)
		}
	})
}
