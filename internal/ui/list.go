package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

var (
	_ list.Item = songItem{}
	_ list.Item = mixItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return fmt.Sprintf("%s • %s • %s bpm", desc, shared.FormatDuration(i.song.TotalTime), shared.FormatBPM(i.song.BPM))
}

// mixItem wraps [models.MixDetail] to implement [list.Item].
type mixItem struct {
	mix models.MixDetail
}

func (i mixItem) FilterValue() string { return i.mix.FirstSongTitle }
func (i mixItem) Title() string {
	return fmt.Sprintf("%s → %s", i.mix.FirstSongTitle, i.mix.SecondSongTitle)
}
func (i mixItem) Description() string {
	desc := fmt.Sprintf("#%d • %s → %s", i.mix.ID, i.mix.FirstSongArtist, i.mix.SecondSongArtist)
	if i.mix.Notes != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.mix.Notes)
	}
	return desc
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

func mixItems(mixes []models.MixDetail) []list.Item {
	items := make([]list.Item, len(mixes))
	for i, mix := range mixes {
		items[i] = mixItem{mix: mix}
	}
	return items
}

func newList(title string) list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}
