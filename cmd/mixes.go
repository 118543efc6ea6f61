package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// MixesSearch prints mixes where either song matches the term argument, newest first.
func (r *Runner) MixesSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	mixes, err := catalog.SearchMixesBySongTerm(ctx, term)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(mixes, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Mixes matching %q", term))
	for _, mix := range mixes {
		r.writePlain("%5d  %s - %s → %s - %s\n", mix.ID,
			mix.FirstSongArtist, mix.FirstSongTitle, mix.SecondSongArtist, mix.SecondSongTitle)
		if mix.Notes != "" {
			r.writePlain("       %s\n", strings.ReplaceAll(mix.Notes, "\n", "\n       "))
		}
	}
	r.writePlainln("%s mixes", humanize.Comma(int64(len(mixes))))
	return nil
}

// MixesCreate pairs two songs into a mix and prints its ID.
func (r *Runner) MixesCreate(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	id, err := catalog.CreateMix(ctx, cmd.Int64("first"), cmd.Int64("second"), cmd.String("notes"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Created mix %d\n", id)
	return nil
}

// MixesNotes replaces the notes of a mix. Updating a missing mix is a no-op.
func (r *Runner) MixesNotes(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Int64("id")

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if err := catalog.UpdateMixNotes(ctx, id, cmd.String("notes")); err != nil {
		return err
	}

	r.writePlain("✓ Notes saved for mix %d\n", id)
	return nil
}

// MixesDelete removes a mix after a y/N confirmation unless --force is set.
func (r *Runner) MixesDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Int64("id")

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if !cmd.Bool("force") {
		mix, err := catalog.GetMix(ctx, id)
		if err != nil {
			return err
		}

		r.writePlain("Delete mix %d (%s → %s)? [y/N] ", mix.ID, mix.FirstSongTitle, mix.SecondSongTitle)
		if !r.confirm() {
			r.writePlain("Cancelled\n")
			return nil
		}
	}

	if err := catalog.DeleteMix(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Deleted mix %d\n", id)
	return nil
}

// MixesExport writes mixes matching --term to a file in --format.
func (r *Runner) MixesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	catalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer catalog.Close()

	result, err := tasks.NewMixExporter(catalog).Export(ctx, cmd.String("term"), format, nil)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(result.Data, format, cmd.String("output"), "mixes")
	if err != nil {
		return err
	}

	r.logger.Info("mixes exported", "format", format, "mixes", result.Mixes, "path", path)
	r.writePlain("✓ Exported %s mixes to %s (%s)\n",
		humanize.Comma(int64(result.Mixes)), path, humanize.Bytes(uint64(len(result.Data))))
	return nil
}

func (r *Runner) confirm() bool {
	answer, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
