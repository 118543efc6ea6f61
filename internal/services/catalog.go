package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/repositories"
	"github.com/desertthunder/mixdeck/internal/shared"
)

var _ Catalog = (*CatalogService)(nil)

// CatalogService implements [Catalog] with a SQLite connection pool.
type CatalogService struct {
	db     *sql.DB
	songs  *repositories.SongRepository
	mixes  *repositories.MixRepository
	logger *log.Logger
	owned  bool
}

// NewCatalogService creates a CatalogService over an open database. The caller keeps ownership of db.
func NewCatalogService(db *sql.DB, logger *log.Logger) *CatalogService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CatalogService{
		db:     db,
		songs:  repositories.NewSongRepository(db),
		mixes:  repositories.NewMixRepository(db),
		logger: shared.WithLogger(logger, "component", "catalog"),
	}
}

// OpenCatalog opens the database described by cfg, migrates it, and returns a CatalogService that owns the pool.
func OpenCatalog(ctx context.Context, cfg shared.DatabaseConfig, logger *log.Logger) (*CatalogService, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if !shared.IsMemoryPath(cfg.Path) {
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	if _, err := shared.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	svc := NewCatalogService(db, logger)
	svc.owned = true
	return svc, nil
}

// DB exposes the underlying pool for collaborators that need a transaction, such as the library importer.
func (s *CatalogService) DB() *sql.DB {
	return s.db
}

// Songs exposes the song repository for bulk operations outside the [Catalog] contract.
func (s *CatalogService) Songs() *repositories.SongRepository {
	return s.songs
}

// Close releases the connection pool when it was opened by [OpenCatalog].
func (s *CatalogService) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// fail wraps a store error as [shared.ErrQueryFailed] and logs it under op.
func (s *CatalogService) fail(op string, err error) error {
	s.logger.Error("query failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, shared.ErrQueryFailed, err)
}

// SearchSongs implements [Catalog].
func (s *CatalogService) SearchSongs(ctx context.Context, term string) ([]models.Song, error) {
	songs, err := s.songs.Search(ctx, term)
	if err != nil {
		return nil, s.fail("search_songs", err)
	}
	s.logger.Debug("songs searched", "results", len(songs))
	return songs, nil
}

// ListSongs implements [Catalog].
func (s *CatalogService) ListSongs(ctx context.Context) ([]models.Song, error) {
	songs, err := s.songs.List(ctx)
	if err != nil {
		return nil, s.fail("list_songs", err)
	}
	return songs, nil
}

// GetSong implements [Catalog].
func (s *CatalogService) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	song, err := s.songs.Get(ctx, id)
	if errors.Is(err, shared.ErrSongNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.fail("get_song", err)
	}
	return song, nil
}

// SearchMixesBySongTerm implements [Catalog].
func (s *CatalogService) SearchMixesBySongTerm(ctx context.Context, term string) ([]models.MixDetail, error) {
	mixes, err := s.mixes.SearchBySongTerm(ctx, term)
	if err != nil {
		return nil, s.fail("search_mixes", err)
	}
	s.logger.Debug("mixes searched", "results", len(mixes))
	return mixes, nil
}

// GetMix implements [Catalog].
func (s *CatalogService) GetMix(ctx context.Context, id int64) (*models.MixDetail, error) {
	mix, err := s.mixes.Get(ctx, id)
	if errors.Is(err, shared.ErrMixNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.fail("get_mix", err)
	}
	return mix, nil
}

// CreateMix implements [Catalog]. Repeated calls with the same arguments create distinct mixes.
func (s *CatalogService) CreateMix(ctx context.Context, firstSongID, secondSongID int64, notes string) (int64, error) {
	mix := models.Mix{FirstSongID: firstSongID, SecondSongID: secondSongID, Notes: notes}

	err := s.mixes.Create(ctx, &mix)
	if errors.Is(err, shared.ErrSongNotFound) {
		s.logger.Warn("mix references unknown song", "op", "create_mix")
		return 0, fmt.Errorf("create_mix: %w", err)
	}
	if err != nil {
		return 0, s.fail("create_mix", err)
	}

	s.logger.Info("mix created", "id", mix.ID)
	return mix.ID, nil
}

// UpdateMixNotes implements [Catalog]. A missing mix is not an error.
func (s *CatalogService) UpdateMixNotes(ctx context.Context, mixID int64, notes string) error {
	n, err := s.mixes.UpdateNotes(ctx, mixID, notes)
	if err != nil {
		return s.fail("update_mix_notes", err)
	}
	s.logger.Debug("mix notes updated", "id", mixID, "rows", n)
	return nil
}

// DeleteMix implements [Catalog]. Deleting a missing mix is not an error.
func (s *CatalogService) DeleteMix(ctx context.Context, mixID int64) error {
	n, err := s.mixes.Delete(ctx, mixID)
	if err != nil {
		return s.fail("delete_mix", err)
	}
	if n > 0 {
		s.logger.Info("mix deleted", "id", mixID)
	}
	return nil
}

// CountSongs implements [Catalog].
func (s *CatalogService) CountSongs(ctx context.Context) (int, error) {
	n, err := s.songs.Count(ctx)
	if err != nil {
		return 0, s.fail("count_songs", err)
	}
	return n, nil
}

// CountMixes implements [Catalog].
func (s *CatalogService) CountMixes(ctx context.Context) (int, error) {
	n, err := s.mixes.Count(ctx)
	if err != nil {
		return 0, s.fail("count_mixes", err)
	}
	return n, nil
}
