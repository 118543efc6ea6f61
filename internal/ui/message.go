package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mixdeck/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
	err  error
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsFetched MsgKind = iota
	MsgMixesFetched
	MsgMixCreated
	MsgMixUpdated
	MsgMixDeleted
)

// songsFetchedMsg is the constructor for [MsgSongsFetched]
func songsFetchedMsg(songs []models.Song, err error) Msg {
	return Msg{kind: MsgSongsFetched, data: songs, err: err}
}

// mixesFetchedMsg is the constructor for [MsgMixesFetched]
func mixesFetchedMsg(mixes []models.MixDetail, err error) Msg {
	return Msg{kind: MsgMixesFetched, data: mixes, err: err}
}

// mixCreatedMsg is the constructor for [MsgMixCreated]
func mixCreatedMsg(id int64, err error) Msg {
	return Msg{kind: MsgMixCreated, data: id, err: err}
}

// mixUpdatedMsg is the constructor for [MsgMixUpdated]
func mixUpdatedMsg(id int64, err error) Msg {
	return Msg{kind: MsgMixUpdated, data: id, err: err}
}

// mixDeletedMsg is the constructor for [MsgMixDeleted]
func mixDeletedMsg(id int64, err error) Msg {
	return Msg{kind: MsgMixDeleted, data: id, err: err}
}
