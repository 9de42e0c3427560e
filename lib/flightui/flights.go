// Copyright 2026 The Flightdeck Authors
// SPDX-License-Identifier: Apache-2.0

package flightui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flightdeck-labs/flightdeck/lib/api"
	"github.com/flightdeck-labs/flightdeck/lib/tui"
)

// searchNoticeDelay is how long a fetch error stays in the status bar.
const searchNoticeDelay = 3 * time.Second

// flightsLoadedMsg delivers a flight fetch result. The generation tag
// identifies which request this answers; responses from superseded
// requests are dropped so a slow early fetch can't overwrite a newer
// one.
type flightsLoadedMsg struct {
	generation int
	flights    []api.Flight
	err        error
}

// searchNoticeFadeMsg clears the status bar notice. Tagged with the
// notice generation so a fade scheduled for an old notice doesn't
// clear a newer one.
type searchNoticeFadeMsg struct {
	generation int
}

// flightRow is one visible row after filtering: the flight, its match
// score, and the matched rune positions in its label for highlighting.
type flightRow struct {
	flight    api.Flight
	score     int
	positions []int
}

// FlightsModel is the flight search view: the server-side query form,
// the quick fuzzy filter, and the result list.
type FlightsModel struct {
	env *Env

	width  int
	height int

	flights []api.Flight
	rows    []flightRow

	cursor       int
	scrollOffset int

	filter     filterInput
	form       *searchForm
	query      api.FlightQuery
	sortIndex  int // 0 = backend default order, 1.. indexes api.SortKeys.
	generation int
	loading    bool
	spinner    spinner.Model

	notice           string
	noticeGeneration int
}

// NewFlightsModel creates an empty flight view; call Reload to fetch.
func NewFlightsModel(env *Env) FlightsModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(env.Theme.AccentForeground)
	return FlightsModel{env: env, spinner: sp}
}

// Resize records the terminal dimensions.
func (m FlightsModel) Resize(width, height int) FlightsModel {
	m.width = width
	m.height = height
	return m
}

// Typing reports whether the view is capturing raw text input, which
// suspends the app-level single-letter bindings.
func (m FlightsModel) Typing() bool {
	return m.filter.active || m.form != nil
}

// Reload starts a fetch with the current query. The previous result
// list stays on screen until the response lands.
func (m FlightsModel) Reload() (FlightsModel, tea.Cmd) {
	m.generation++
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, fetchFlights(m.env, m.query, m.generation))
}

func fetchFlights(env *Env, query api.FlightQuery, generation int) tea.Cmd {
	return func() tea.Msg {
		flights, err := env.Client.SearchFlights(context.Background(), env.Session.Token(), query)
		return flightsLoadedMsg{generation: generation, flights: flights, err: err}
	}
}

func (m FlightsModel) Update(msg tea.Msg) (FlightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case flightsLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.noticeGeneration++
			m.notice = api.Message(msg.err, "Failed to load flights")
			generation := m.noticeGeneration
			return m, tea.Tick(searchNoticeDelay, func(time.Time) tea.Msg {
				return searchNoticeFadeMsg{generation: generation}
			})
		}
		m.flights = msg.flights
		m.applyFilter()
		return m, nil

	case searchNoticeFadeMsg:
		if msg.generation == m.noticeGeneration {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m FlightsModel) handleKey(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	keys := m.env.Keys

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.filter.active {
		switch {
		case key.Matches(msg, keys.Dismiss):
			m.filter.clear()
			m.applyFilter()
			return m, nil
		case key.Matches(msg, keys.Select):
			// Keep the filter text, return focus to the list.
			m.filter.active = false
			return m, nil
		case msg.Type == tea.KeyBackspace:
			m.filter.backspace()
			m.applyFilter()
			return m, nil
		case msg.Type == tea.KeyRunes:
			m.filter.insert(msg.Runes)
			m.applyFilter()
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.PageUp):
		m.moveCursor(-m.visibleRows())
	case key.Matches(msg, keys.PageDown):
		m.moveCursor(m.visibleRows())
	case key.Matches(msg, keys.Home):
		m.cursor = 0
		m.clampScroll()
	case key.Matches(msg, keys.End):
		m.cursor = len(m.rows) - 1
		m.clampScroll()
	case key.Matches(msg, keys.FilterActivate):
		m.filter.active = true
	case key.Matches(msg, keys.Dismiss):
		if m.filter.text != "" {
			m.filter.clear()
			m.applyFilter()
		}
	case key.Matches(msg, keys.SearchForm):
		form := newSearchForm(m.env, m.query)
		m.form = &form
		return m, form.focusCmd()
	case key.Matches(msg, keys.SortCycle):
		m.sortIndex = (m.sortIndex + 1) % (len(api.SortKeys) + 1)
		if m.sortIndex == 0 {
			m.query.SortBy = ""
		} else {
			m.query.SortBy = api.SortKeys[m.sortIndex-1]
		}
		return m.Reload()
	case key.Matches(msg, keys.Refresh):
		return m.Reload()
	case key.Matches(msg, keys.Select):
		if m.cursor >= 0 && m.cursor < len(m.rows) {
			flight := m.rows[m.cursor].flight
			if flight.AvailableSeats > 0 {
				return m, func() tea.Msg { return openDialogMsg{flight: flight} }
			}
			m.noticeGeneration++
			m.notice = "This flight is sold out"
			generation := m.noticeGeneration
			return m, tea.Tick(searchNoticeDelay, func(time.Time) tea.Msg {
				return searchNoticeFadeMsg{generation: generation}
			})
		}
	}
	return m, nil
}

func (m FlightsModel) handleFormKey(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	keys := m.env.Keys
	switch {
	case key.Matches(msg, keys.Dismiss):
		m.form = nil
		return m, nil
	case key.Matches(msg, keys.Select):
		query, err := m.form.query()
		if err != nil {
			m.form.notice = err.Error()
			return m, nil
		}
		m.form = nil
		m.query = query
		m.cursor = 0
		m.scrollOffset = 0
		return m.Reload()
	case key.Matches(msg, keys.FocusNext), key.Matches(msg, keys.Down):
		return m, m.form.cycleFocus(1)
	case key.Matches(msg, keys.FocusPrevious), key.Matches(msg, keys.Up):
		return m, m.form.cycleFocus(-1)
	}
	cmd := m.form.handleInput(msg)
	return m, cmd
}

func (m *FlightsModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
}

// visibleRows is the row budget for the list: total height minus
// header, column titles, and status bar.
func (m FlightsModel) visibleRows() int {
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *FlightsModel) clampScroll() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// filterLabel is the text the quick filter matches against. Its first
// runes are exactly the list's flight column, so match positions map
// straight onto the rendered label for highlighting.
func filterLabel(flight api.Flight) string {
	return fmt.Sprintf("%s%s %s %s %s",
		flight.AirlineCode, flight.FlightNumber, flight.Airline,
		flight.Origin, flight.Destination)
}

// applyFilter rebuilds the visible rows from the loaded flights and
// the quick filter. With a filter active, rows are ordered by match
// score; otherwise they keep the backend's order.
func (m *FlightsModel) applyFilter() {
	pattern := []rune(m.filter.text)
	if len(pattern) == 0 {
		m.rows = make([]flightRow, len(m.flights))
		for i, flight := range m.flights {
			m.rows[i] = flightRow{flight: flight}
		}
	} else {
		slab := tui.NewSlab()
		m.rows = m.rows[:0]
		for _, flight := range m.flights {
			result := tui.FuzzyMatch(filterLabel(flight), pattern, slab)
			if result.Score <= 0 {
				continue
			}
			m.rows = append(m.rows, flightRow{
				flight:    flight,
				score:     result.Score,
				positions: result.Positions,
			})
		}
		sort.SliceStable(m.rows, func(i, j int) bool {
			return m.rows[i].score > m.rows[j].score
		})
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

// Cursor returns the highlighted flight, if any. Used by tests.
func (m FlightsModel) Cursor() (api.Flight, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return api.Flight{}, false
	}
	return m.rows[m.cursor].flight, true
}

func (m FlightsModel) View() string {
	theme := m.env.Theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	header := m.renderHeader()
	columns := faint.Render(fmt.Sprintf(" %-16s %-11s %-14s %-14s %-8s %10s %7s",
		"FLIGHT", "ROUTE", "DEPART", "ARRIVE", "TIME", "PRICE", "SEATS"))

	visible := m.visibleRows()
	var body []string
	for i := m.scrollOffset; i < len(m.rows) && i < m.scrollOffset+visible; i++ {
		body = append(body, m.renderRow(m.rows[i], i == m.cursor))
	}
	if len(m.rows) == 0 {
		empty := "No flights found"
		if m.loading {
			empty = m.spinner.View() + " Loading flights..."
		}
		body = append(body, faint.Render("  "+empty))
	}
	for len(body) < visible {
		body = append(body, "")
	}

	list := strings.Join(body, "\n")
	if len(m.rows) > visible {
		scrollbar := tui.RenderScrollbar(theme, visible, len(m.rows), visible, m.scrollOffset, !m.Typing())
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", scrollbar)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, header, columns, list, m.renderStatusBar())
	if m.form != nil {
		view = tui.CenterOverlay(view, m.form.overlayLines(), m.width, m.height)
	}
	return view
}

func (m FlightsModel) renderHeader() string {
	theme := m.env.Theme
	active := lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1)
	tabs := active.Render("1 Flights") + inactive.Render("2 Bookings")

	var account string
	if user := m.env.Session.User(); user != nil {
		account = lipgloss.NewStyle().Foreground(theme.FaintText).Render(user.Email + " ")
	}

	gap := m.width - lipgloss.Width(tabs) - lipgloss.Width(account)
	if gap < 1 {
		gap = 1
	}
	return tabs + strings.Repeat(" ", gap) + account
}

func (m FlightsModel) renderRow(row flightRow, selected bool) string {
	theme := m.env.Theme
	flight := row.flight

	label := fmt.Sprintf("%s%s %s", flight.AirlineCode, flight.FlightNumber, flight.Airline)
	route := flight.Origin + "→" + flight.Destination
	depart := formatDate(flight.Departure) + " " + formatTime(flight.Departure)
	arrive := formatDate(flight.Arrival) + " " + formatTime(flight.Arrival)

	seats := fmt.Sprintf("%d", flight.AvailableSeats)
	if flight.AvailableSeats == 0 {
		seats = "full"
	}

	rowStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		rowStyle = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground)
	}

	labelCell := rowStyle.Render(truncate(pad(label, 16), 16))
	if len(row.positions) > 0 && !selected {
		labelCell = highlightRunes(truncate(pad(label, 16), 16), row.positions, rowStyle,
			rowStyle.Background(theme.SearchHighlightBackground))
	}

	rest := fmt.Sprintf(" %-11s %-14s %-14s %-8s %10s %7s",
		truncate(route, 11),
		truncate(depart, 14), truncate(arrive, 14),
		formatDuration(flight.Duration()),
		formatPrice(flight.Price), seats)

	return rowStyle.Render(" ") + labelCell + rowStyle.Render(rest)
}

func pad(text string, width int) string {
	gap := width - len([]rune(text))
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// highlightRunes renders text with the runes at the given positions in
// the highlight style and everything else in the base style.
func highlightRunes(text string, positions []int, base, highlight lipgloss.Style) string {
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	var out strings.Builder
	for i, r := range []rune(text) {
		if matched[i] {
			out.WriteString(highlight.Render(string(r)))
		} else {
			out.WriteString(base.Render(string(r)))
		}
	}
	return out.String()
}

func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	return string(runes[:width-1]) + "…"
}

func (m FlightsModel) renderStatusBar() string {
	theme := m.env.Theme
	if m.notice != "" {
		return lipgloss.NewStyle().Foreground(theme.ErrorForeground).Render(" " + m.notice)
	}
	if m.filter.active {
		return lipgloss.NewStyle().Foreground(theme.NormalText).Render(" /" + m.filter.text + "▏")
	}

	parts := []string{"Enter book", "/ filter", "f search", "s sort", "r refresh", "C-l log out", "q quit"}
	if m.query.SortBy != "" {
		parts = append([]string{"sort: " + string(m.query.SortBy)}, parts...)
	}
	if m.filter.text != "" {
		parts = append([]string{"filter: " + m.filter.text}, parts...)
	}
	return lipgloss.NewStyle().Foreground(theme.HelpText).Render(" " + strings.Join(parts, " · "))
}

// filterInput is the quick fuzzy filter over the loaded list. It is a
// raw rune buffer rather than a textinput because it shares the
// status bar line and never needs cursor movement.
type filterInput struct {
	active bool
	text   string
}

func (f *filterInput) insert(runes []rune) {
	f.text += string(runes)
}

func (f *filterInput) backspace() {
	runes := []rune(f.text)
	if len(runes) > 0 {
		f.text = string(runes[:len(runes)-1])
	}
}

func (f *filterInput) clear() {
	f.active = false
	f.text = ""
}

// searchFormFieldCount is the number of inputs on the search form:
// origin, destination, date, min price, max price, airline.
const searchFormFieldCount = 6

// searchForm is the server-side query form, shown as an overlay above
// the list.
type searchForm struct {
	env        *Env
	fields     [searchFormFieldCount]textinput.Model
	focusIndex int
	notice     string
}

func newSearchForm(env *Env, query api.FlightQuery) searchForm {
	placeholders := [searchFormFieldCount]string{
		"origin", "destination", "date (YYYY-MM-DD)", "min price", "max price", "airline",
	}
	values := [searchFormFieldCount]string{
		query.Origin, query.Destination, query.Date, "", "", query.Airline,
	}
	if query.MinPrice > 0 {
		values[3] = strconv.Itoa(query.MinPrice)
	}
	if query.MaxPrice > 0 {
		values[4] = strconv.Itoa(query.MaxPrice)
	}

	var fields [searchFormFieldCount]textinput.Model
	for i := range fields {
		field := textinput.New()
		field.Placeholder = placeholders[i]
		field.CharLimit = 40
		field.Width = 24
		field.SetValue(values[i])
		fields[i] = field
	}
	return searchForm{env: env, fields: fields}
}

func (f *searchForm) focusCmd() tea.Cmd {
	return f.fields[f.focusIndex].Focus()
}

func (f *searchForm) cycleFocus(direction int) tea.Cmd {
	f.fields[f.focusIndex].Blur()
	f.focusIndex = (f.focusIndex + direction + searchFormFieldCount) % searchFormFieldCount
	return f.fields[f.focusIndex].Focus()
}

func (f *searchForm) handleInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focusIndex], cmd = f.fields[f.focusIndex].Update(msg)
	return cmd
}

// query builds the FlightQuery from the form fields, validating the
// numeric and date inputs.
func (f *searchForm) query() (api.FlightQuery, error) {
	query := api.FlightQuery{
		Origin:      strings.TrimSpace(f.fields[0].Value()),
		Destination: strings.TrimSpace(f.fields[1].Value()),
		Date:        strings.TrimSpace(f.fields[2].Value()),
		Airline:     strings.TrimSpace(f.fields[5].Value()),
	}

	if query.Date != "" {
		if _, err := time.Parse("2006-01-02", query.Date); err != nil {
			return api.FlightQuery{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
	}
	for i, target := range []*int{&query.MinPrice, &query.MaxPrice} {
		value := strings.TrimSpace(f.fields[3+i].Value())
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return api.FlightQuery{}, fmt.Errorf("prices must be non-negative numbers")
		}
		*target = parsed
	}
	if query.MinPrice > 0 && query.MaxPrice > 0 && query.MinPrice > query.MaxPrice {
		return api.FlightQuery{}, fmt.Errorf("min price must not exceed max price")
	}
	return query, nil
}

func (f *searchForm) overlayLines() []string {
	theme := f.env.Theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorForeground)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	lines := []string{titleStyle.Render("Search flights"), ""}
	for i := range f.fields {
		lines = append(lines, f.fields[i].View())
	}
	if f.notice != "" {
		lines = append(lines, "", errorStyle.Render(f.notice))
	}
	lines = append(lines, "", helpStyle.Render("Enter search · Esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return strings.Split(box, "\n")
}
