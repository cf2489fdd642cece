package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"autosphere-api/internal/model"
	"autosphere-api/internal/view"
)

const (
	defaultWidth  = 100
	defaultHeight = 40
	skeletonCount = 4
)

// Fetcher is the lookup surface the UI drives
type Fetcher interface {
	FetchCarDetails(ctx context.Context, query string) (*model.Car, error)
	FetchFeaturedCars(ctx context.Context) ([]model.Car, error)
}

type focusArea int

const (
	focusInput focusArea = iota
	focusGrid
)

type featuredMsg struct {
	ticket view.Ticket
	cars   []model.Car
	err    error
}

type searchMsg struct {
	ticket view.Ticket
	car    *model.Car
	err    error
}

// Model is the bubbletea program state. Lookups run as commands and their
// results are applied to the session on the update loop.
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	session *view.Session
	logger  *zap.Logger

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   Styles

	markdownStyle string
	renderer      *glamour.TermRenderer

	focus  focusArea
	cursor int
	width  int
	height int
}

type Option func(*Model)

// WithMarkdownStyle sets the glamour style ("auto", "dark", "light", "notty")
func WithMarkdownStyle(style string) Option {
	return func(m *Model) { m.markdownStyle = style }
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

func New(ctx context.Context, fetcher Fetcher, session *view.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Search any car (e.g. 2024 Tesla Model 3, 1998 Toyota Supra)..."
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = defaultWidth - 10
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		fetcher:       fetcher,
		session:       session,
		logger:        zap.NewNop(),
		input:         ti,
		spinner:       sp,
		viewport:      viewport.New(defaultWidth, defaultHeight-4),
		styles:        DefaultStyles(),
		markdownStyle: "auto",
		width:         defaultWidth,
		height:        defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.renderer = m.newRenderer()
	return m
}

func (m Model) newRenderer() *glamour.TermRenderer {
	r, err := NewMarkdownRenderer(m.markdownStyle, m.width-8)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	return r
}

// Session exposes the state the model drives
func (m Model) Session() *view.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadFeatured())
}

func (m Model) loadFeatured() tea.Cmd {
	ticket := m.session.BeginFeatured()
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		cars, err := fetcher.FetchFeaturedCars(ctx)
		return featuredMsg{ticket: ticket, cars: cars, err: err}
	}
}

func (m Model) search(ticket view.Ticket, query string) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		car, err := fetcher.FetchCarDetails(ctx, query)
		return searchMsg{ticket: ticket, car: car, err: err}
	}
}

// cards lists search results first, then the featured set, in grid order
func (m Model) cards() []model.Car {
	out := make([]model.Car, 0, len(m.session.Results)+len(m.session.Featured))
	out = append(out, m.session.Results...)
	return append(out, m.session.Featured...)
}

func (m Model) columns() int {
	cols := m.width / (cardWidth + 4)
	if cols < 1 {
		return 1
	}
	return cols
}

func (m *Model) clampCursor() {
	n := len(m.cards())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n == 0 && m.focus == focusGrid {
		m.focusInput()
	}
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) openDetail(car model.Car) {
	m.session.Select(car)
	m.viewport.SetContent(m.styles.Overlay.Width(m.width - 4).Render(RenderDetail(car, m.styles, m.renderer)))
	m.viewport.GotoTop()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 10
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		m.renderer = m.newRenderer()
		if sel := m.session.Selected; sel != nil {
			m.openDetail(*sel)
		}
		return m, nil

	case featuredMsg:
		m.session.FinishFeatured(msg.ticket, msg.cars, msg.err)
		m.clampCursor()
		return m, nil

	case searchMsg:
		if m.session.FinishSearch(msg.ticket, msg.car, msg.err) && msg.err == nil {
			m.cursor = 0
		}
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.session.Selected != nil {
		switch msg.String() {
		case "esc", "q":
			m.session.Deselect()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyCtrlL:
		m.session.ClearResults()
		m.clampCursor()
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == focusInput && len(m.cards()) > 0 {
			m.focus = focusGrid
			m.input.Blur()
			m.clampCursor()
		} else {
			m.focusInput()
		}
		return m, nil
	}

	if m.focus == focusGrid {
		return m.handleGridKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetQuery(m.input.Value())
	return m, cmd
}

// submit starts a search unless one is already running or the query is blank
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetQuery(m.input.Value())
	if m.session.Searching() {
		return m, nil
	}
	ticket, ok := m.session.BeginSearch()
	if !ok {
		return m, nil
	}
	query := strings.TrimSpace(m.session.Query)
	m.logger.Debug("search submitted", zap.String("query", query))
	return m, tea.Batch(m.search(ticket, query), m.spinner.Tick)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.cards()
	cols := m.columns()

	switch msg.String() {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < len(cards) {
			m.cursor += cols
		}
	case "enter", " ":
		if m.cursor < len(cards) {
			m.openDetail(cards[m.cursor])
		}
		return m, nil
	case "esc":
		m.focusInput()
		return m, nil
	}
	m.clampCursor()
	return m, nil
}

func (m Model) View() string {
	if sel := m.session.Selected; sel != nil {
		return m.viewport.View() + "\n" + m.styles.Hint.Render("↑/↓ scroll • esc close")
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("AutoSphere"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Tagline.Render("Real-time market values, license requirements and DIY repair knowledge."))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.session.Searching() {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Searching...\n")
	}
	if m.session.Err != "" {
		sb.WriteString(m.styles.Error.Render(m.session.Err))
		sb.WriteString("\n")
	}

	cols := m.columns()
	index := 0
	tile := func(car model.Car) string {
		focused := m.focus == focusGrid && index == m.cursor
		index++
		return RenderCard(car, m.styles, focused)
	}

	if len(m.session.Results) > 0 {
		sb.WriteString(m.styles.Section.Render("Search Results"))
		sb.WriteString("  ")
		sb.WriteString(m.styles.Hint.Render("ctrl+l clear results"))
		sb.WriteString("\n")
		tiles := make([]string, 0, len(m.session.Results))
		for _, car := range m.session.Results {
			tiles = append(tiles, tile(car))
		}
		sb.WriteString(RenderGrid(tiles, cols))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Section.Render("Featured Vehicles"))
	sb.WriteString("\n")
	tiles := make([]string, 0, len(m.session.Featured)+skeletonCount)
	for _, car := range m.session.Featured {
		tiles = append(tiles, tile(car))
	}
	if m.session.Loading() && len(m.session.Featured) == 0 {
		for i := 0; i < skeletonCount; i++ {
			tiles = append(tiles, RenderSkeleton(m.styles))
		}
	}
	if len(tiles) > 0 {
		sb.WriteString(RenderGrid(tiles, cols))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Hint.Render("enter search • tab browse cards • ctrl+l clear • ctrl+c quit"))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
}
