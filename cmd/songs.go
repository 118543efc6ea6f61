package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// SongsSearch prints songs matching the term argument. An empty term lists every song.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	songs, err := catalog.SearchSongs(ctx, term)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Songs matching %q", term))
	r.writeSongs(songs)
	return nil
}

// SongsList prints every song.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	songs, err := catalog.ListSongs(ctx)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(songs, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.ExportSongsToCSV(songs)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	r.writePlainHeader("Songs")
	r.writeSongs(songs)
	return nil
}

func (r *Runner) writeSongs(songs []models.Song) {
	for _, s := range songs {
		album := ""
		if s.Album != "" {
			album = fmt.Sprintf(" (%s)", s.Album)
		}
		r.writePlain("%5d  %s - %s%s [%s, %s bpm]\n",
			s.ID, s.Artist, s.Title, album, shared.FormatDuration(s.TotalTime), shared.FormatBPM(s.BPM))
	}
	r.writePlainln("%s songs", humanize.Comma(int64(len(songs))))
}

// SongsImport loads songs from a Library.xml export, showing a progress bar on the error stream.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: library file path is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer f.Close()

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	r.logger.Info("importing library", "file", path)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.errOutput),
		progressbar.OptionSetDescription("Reading library..."),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowCount(),
		progressbar.OptionFullWidth(),
		progressbar.OptionThrottle(50*time.Millisecond),
	)

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.ParsingLibrary:
				bar.Describe(update.Message)
			case tasks.InsertingSongs:
				if bar.GetMax() != update.Total {
					bar.ChangeMax(update.Total)
					bar.Describe("Storing songs...")
				}
				_ = bar.Set(update.Step)
			}
		}
	}()

	importer := tasks.NewLibraryImporter(catalog.Songs(), int(cmd.Int("batch-size")))
	result, err := importer.Import(ctx, f, progress)
	close(progress)
	<-done
	_ = bar.Finish()
	r.writePlain("\n")

	if err != nil {
		if result != nil && result.Imported > 0 {
			r.writePlain("⚠ Stored %s of %s songs before the import failed\n",
				humanize.Comma(int64(result.Imported)), humanize.Comma(int64(result.Parsed)))
		}
		return fmt.Errorf("import failed: %w", err)
	}

	r.logger.Info("library imported", "songs", result.Imported, "elapsed", result.Elapsed)
	r.writePlain("✓ Imported %s songs in %s\n", humanize.Comma(int64(result.Imported)), result.Elapsed.Round(time.Millisecond))
	return nil
}
