package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/services"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongSearchView ViewState = iota
	NotesView
	MixListView
	EditNotesView
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	catalog     services.Catalog
	logger      *log.Logger
	view        ViewState
	typing      bool // keystrokes go to the active search input
	width       int
	height      int
	songInput   textinput.Model
	mixInput    textinput.Model
	notesInput  textinput.Model
	songList    list.Model
	mixList     list.Model
	first       *models.Song
	second      *models.Song
	selectedMix *models.MixDetail
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model over catalog.
func NewModel(ctx context.Context, catalog services.Catalog, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	songInput := textinput.New()
	songInput.Placeholder = "title, artist or album"
	songInput.Prompt = "Songs › "
	songInput.Focus()

	mixInput := textinput.New()
	mixInput.Placeholder = "song title, artist or album"
	mixInput.Prompt = "Mixes › "

	notesInput := textinput.New()
	notesInput.Placeholder = "transition notes (optional)"
	notesInput.Prompt = "Notes › "

	return &Model{
		ctx:        ctx,
		catalog:    catalog,
		logger:     shared.WithLogger(logger, "component", "tui"),
		view:       SongSearchView,
		typing:     true,
		songInput:  songInput,
		mixInput:   mixInput,
		notesInput: notesInput,
		songList:   newList("Songs"),
		mixList:    newList("Mixes"),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init initializes the TUI by listing every song.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchSongs(""))
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-10)
		m.mixList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case SongSearchView:
			return m.handleSongKeys(msg)
		case NotesView:
			return m.handleNotesKeys(msg)
		case MixListView:
			return m.handleMixKeys(msg)
		case EditNotesView:
			return m.handleEditKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.logger.Error("catalog call failed", "kind", msg.kind, "error", msg.err)
		if msg.kind == MsgMixCreated {
			m.view = NotesView
		}
		return m, nil
	}
	m.err = nil

	switch msg.kind {
	case MsgSongsFetched:
		songs, _ := msg.data.([]models.Song)
		return m, m.songList.SetItems(songItems(songs))

	case MsgMixesFetched:
		mixes, _ := msg.data.([]models.MixDetail)
		return m, m.mixList.SetItems(mixItems(mixes))

	case MsgMixCreated:
		m.status = fmt.Sprintf("Created mix #%d: %s → %s", msg.data, m.first.Title, m.second.Title)
		m.resetPicks()
		m.notesInput.Reset()
		m.notesInput.Blur()
		m.view = SongSearchView
		return m, nil

	case MsgMixUpdated:
		m.status = fmt.Sprintf("Updated notes on mix #%d", msg.data)
		m.leaveMixEdit()
		return m, m.searchMixes(m.mixInput.Value())

	case MsgMixDeleted:
		m.status = fmt.Sprintf("Deleted mix #%d", msg.data)
		m.leaveMixEdit()
		return m, m.searchMixes(m.mixInput.Value())
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SongSearchView:
		body = m.renderSongSearch()
	case NotesView:
		body = m.renderNotes()
	case MixListView:
		body = m.renderMixList()
	case EditNotesView:
		body = m.renderEditNotes()
	case ConfirmDeleteView:
		body = m.renderConfirmDelete()
	}

	var footer []string
	if m.err != nil {
		footer = append(footer, styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" {
		footer = append(footer, styles.ok.Render(m.status))
	}
	footer = append(footer, m.help.ShortHelpView(m.helpKeys()))

	return fmt.Sprintf("%s\n\n%s", body, strings.Join(footer, "\n"))
}

// typeInto forwards a key to input while searching. Enter submits the term, esc leaves the input.
func (m *Model) typeInto(input *textinput.Model, msg tea.KeyMsg, submit func(string) tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.enter):
		m.typing = false
		input.Blur()
		return submit(input.Value())
	case key.Matches(msg, m.keys.back):
		m.typing = false
		input.Blur()
		return nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (m *Model) handleSongKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m, m.typeInto(&m.songInput, msg, m.searchSongs)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.typing = true
		return m, m.songInput.Focus()
	case key.Matches(msg, m.keys.toggle):
		m.view = MixListView
		m.status = ""
		return m, m.searchMixes(m.mixInput.Value())
	case key.Matches(msg, m.keys.back):
		m.resetPicks()
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.enter):
		item, ok := m.songList.SelectedItem().(songItem)
		if !ok {
			return m, nil
		}
		song := item.song
		if m.first == nil {
			m.first = &song
			m.status = ""
			return m, nil
		}
		m.second = &song
		m.view = NotesView
		m.notesInput.Reset()
		return m, m.notesInput.Focus()
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleNotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		return m, m.createMix(m.first.ID, m.second.ID, m.notesInput.Value())
	case key.Matches(msg, m.keys.back):
		m.second = nil
		m.err = nil
		m.notesInput.Blur()
		m.view = SongSearchView
		return m, nil
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func (m *Model) handleMixKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m, m.typeInto(&m.mixInput, msg, m.searchMixes)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.typing = true
		return m, m.mixInput.Focus()
	case key.Matches(msg, m.keys.toggle):
		m.view = SongSearchView
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.edit):
		if !m.selectMix() {
			return m, nil
		}
		m.view = EditNotesView
		m.notesInput.SetValue(m.selectedMix.Notes)
		m.notesInput.CursorEnd()
		return m, m.notesInput.Focus()
	case key.Matches(msg, m.keys.remove):
		if !m.selectMix() {
			return m, nil
		}
		m.view = ConfirmDeleteView
		return m, nil
	}

	var cmd tea.Cmd
	m.mixList, cmd = m.mixList.Update(msg)
	return m, cmd
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		return m, m.updateNotes(m.selectedMix.ID, m.notesInput.Value())
	case key.Matches(msg, m.keys.back):
		m.leaveMixEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.notesInput, cmd = m.notesInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteMix(m.selectedMix.ID)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.leaveMixEdit()
		return m, nil
	}
	return m, nil
}

func (m *Model) selectMix() bool {
	item, ok := m.mixList.SelectedItem().(mixItem)
	if !ok {
		return false
	}
	mix := item.mix
	m.selectedMix = &mix
	m.status = ""
	return true
}

func (m *Model) leaveMixEdit() {
	m.selectedMix = nil
	m.notesInput.Reset()
	m.notesInput.Blur()
	m.view = MixListView
}

func (m *Model) resetPicks() {
	m.first = nil
	m.second = nil
}

func (m *Model) searchSongs(term string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		songs, err := catalog.SearchSongs(ctx, term)
		return songsFetchedMsg(songs, err)
	}
}

func (m *Model) searchMixes(term string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		mixes, err := catalog.SearchMixesBySongTerm(ctx, term)
		return mixesFetchedMsg(mixes, err)
	}
}

func (m *Model) createMix(first, second int64, notes string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		id, err := catalog.CreateMix(ctx, first, second, notes)
		return mixCreatedMsg(id, err)
	}
}

func (m *Model) updateNotes(id int64, notes string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return mixUpdatedMsg(id, catalog.UpdateMixNotes(ctx, id, notes))
	}
}

func (m *Model) deleteMix(id int64) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		return mixDeletedMsg(id, catalog.DeleteMix(ctx, id))
	}
}

func (m *Model) helpKeys() []key.Binding {
	switch m.view {
	case SongSearchView:
		if m.typing {
			return []key.Binding{m.keys.enter, m.keys.back}
		}
		pick := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick"))
		return []key.Binding{pick, m.keys.search, m.keys.toggle, m.keys.back, m.keys.quit}
	case NotesView:
		create := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create mix"))
		return []key.Binding{create, m.keys.back}
	case MixListView:
		if m.typing {
			return []key.Binding{m.keys.enter, m.keys.back}
		}
		return []key.Binding{m.keys.edit, m.keys.remove, m.keys.search, m.keys.toggle, m.keys.quit}
	case EditNotesView:
		save := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
		return []key.Binding{save, m.keys.back}
	case ConfirmDeleteView:
		return []key.Binding{m.keys.yes, m.keys.no}
	default:
		return m.keys.ShortHelp()
	}
}

func songLabel(s *models.Song) string {
	if s == nil {
		return styles.label.Render("-")
	}
	return styles.picked.Render(fmt.Sprintf("%s - %s", s.Artist, s.Title))
}

func (m *Model) renderPicks() string {
	return fmt.Sprintf("%s %s   %s %s",
		styles.label.Render("First:"), songLabel(m.first),
		styles.label.Render("Second:"), songLabel(m.second))
}

func (m *Model) renderSongSearch() string {
	title := styles.title.Render("Build a Mix")
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, m.songInput.View(), m.renderPicks(), m.songList.View())
}

func (m *Model) renderNotes() string {
	title := styles.title.Render("New Mix")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.renderPicks(), m.notesInput.View())
}

func (m *Model) renderMixList() string {
	title := styles.title.Render("Mixes")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.mixInput.View(), m.mixList.View())
}

func (m *Model) renderEditNotes() string {
	title := styles.title.Render(fmt.Sprintf("Edit Mix #%d", m.selectedMix.ID))
	info := fmt.Sprintf("%s → %s", m.selectedMix.FirstSongTitle, m.selectedMix.SecondSongTitle)
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, m.notesInput.View())
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Delete mix #%d?", m.selectedMix.ID))
	info := styles.warn.Render(fmt.Sprintf("%s - %s → %s - %s",
		m.selectedMix.FirstSongArtist, m.selectedMix.FirstSongTitle,
		m.selectedMix.SecondSongArtist, m.selectedMix.SecondSongTitle))
	return fmt.Sprintf("%s\n%s", title, info)
}
