package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// mixDetailSelect joins the songs table once per slot (s1 for the first song, s2 for the second).
const mixDetailSelect = `
	SELECT
		m.id, m.first_song_id, m.second_song_id, m.notes,
		s1.title, s1.artist,
		s2.title, s2.artist
	FROM mixes m
	JOIN songs s1 ON m.first_song_id = s1.id
	JOIN songs s2 ON m.second_song_id = s2.id
`

// MixRepository handles mix CRUD operations and song-term searches.
//
// Update and delete report affected rows instead of failing on a missing ID.
type MixRepository struct {
	db *sql.DB
}

// NewMixRepository creates a new MixRepository with the given database connection
func NewMixRepository(db *sql.DB) *MixRepository {
	return &MixRepository{db: db}
}

// SearchBySongTerm returns mixes where term matches the title, artist, or album of either song,
// newest first.
func (r *MixRepository) SearchBySongTerm(ctx context.Context, term string) ([]models.MixDetail, error) {
	where, args := matchClause(term,
		"s1.title", "s1.artist", "s1.album",
		"s2.title", "s2.artist", "s2.album",
	)
	query := mixDetailSelect + `
		WHERE ` + where + `
		ORDER BY m.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mixes: %w", err)
	}
	defer rows.Close()

	mixes := []models.MixDetail{}
	for rows.Next() {
		mix, err := scanMixDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mix: %w", err)
		}
		mixes = append(mixes, mix)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return mixes, nil
}

// Get retrieves a mix with both songs' display fields.
func (r *MixRepository) Get(ctx context.Context, id int64) (*models.MixDetail, error) {
	mix, err := scanMixDetail(r.db.QueryRowContext(ctx, mixDetailSelect+" WHERE m.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrMixNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan mix: %w", err)
	}
	return &mix, nil
}

// Create inserts a mix and sets its store-assigned ID.
//
// A song reference that does not resolve yields [shared.ErrSongNotFound].
func (r *MixRepository) Create(ctx context.Context, mix *models.Mix) error {
	if err := mix.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSongNotFound, err)
	}

	query := `
		INSERT INTO mixes (first_song_id, second_song_id, notes)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, mix.FirstSongID, mix.SecondSongID, mix.Notes)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %d or %d", shared.ErrSongNotFound, mix.FirstSongID, mix.SecondSongID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert mix: %w", err)
	}

	id, err := lastInsertID(result)
	if err != nil {
		return err
	}
	mix.ID = id
	return nil
}

// UpdateNotes replaces a mix's notes and returns the number of rows affected (0 or 1).
func (r *MixRepository) UpdateNotes(ctx context.Context, id int64, notes string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE mixes SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update mix notes: %w", err)
	}
	return rowsAffected(result)
}

// Delete removes a mix and returns the number of rows affected (0 or 1).
func (r *MixRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM mixes WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mix: %w", err)
	}
	return rowsAffected(result)
}

// Count returns the number of stored mixes.
func (r *MixRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mixes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mixes: %w", err)
	}
	return count, nil
}

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

// scanMixDetail scans a row selected with [mixDetailSelect] into a [models.MixDetail]
func scanMixDetail(row scanner) (models.MixDetail, error) {
	var mix models.MixDetail
	err := row.Scan(
		&mix.ID, &mix.FirstSongID, &mix.SecondSongID, &mix.Notes,
		&mix.FirstSongTitle, &mix.FirstSongArtist,
		&mix.SecondSongTitle, &mix.SecondSongArtist,
	)
	return mix, err
}
