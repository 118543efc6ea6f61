// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for building mixes:
//  1. [SongSearchView] : Search songs and pick the first and second song of a mix
//  2. [NotesView] : Enter optional transition notes and create the mix
//  3. [MixListView] : Browse mixes whose songs match a term
//  4. [EditNotesView] : Replace the notes of the selected mix
//  5. [ConfirmDeleteView] : Confirm deleting the selected mix
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every catalog call runs as a [tea.Cmd] so the UI never blocks on the database.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
// Press "/" to type a search term and tab to switch between songs and mixes.
package ui
