// Package ui provides the Bubble Tea TUI for Larder.
package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"larder/internal/catalog"
	"larder/internal/favorites"
	"larder/internal/filter"
	"larder/internal/off"
	"larder/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewResults View = iota
	ViewCategories
	ViewDetail
	ViewFavorites
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    off.Source
	Store     *catalog.Store
	Favorites *favorites.Store
	Debounce  time.Duration
	ThemeName string
	PrefsPath string

	// LastCategories is the previous session's category selection; when
	// non-empty it is fetched immediately on startup.
	LastCategories []string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	src       off.Source
	store     *catalog.Store
	favorites *favorites.Store
	prefsPath string
	debounce  time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    catalog.Snapshot
	lastUpdated time.Time
	spinner     spinner.Model

	// Search state
	searchInput   textinput.Model
	searchFocused bool
	searchSeq     int

	// Results state
	selectedRow int
	filters     *filter.Config
	filterView  *filter.View

	// Categories state
	catCursor   int
	catSelected []string // selection order preserved

	// Detail state
	detailViewport viewport.Model
	detailProduct  *off.Product
	detailErr      error
	detailLoading  bool
	detailReturn   View

	// Favorites state
	favCursor int

	// Barcode overlay
	showBarcode  bool
	barcodeInput textinput.Model
	barcodeErr   string

	// Filter panel overlay
	showFilters       bool
	filterFocusIdx    int
	filterNutrientIdx int
	filterSortIdx     int
	filterDescending  bool
	rangeInputs       [2]textinput.Model // min, max

	// Help overlay
	showHelp bool

	// Fetch issued before the program started, completed via Init.
	initialTicket *catalog.Ticket
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	debounce := opts.Debounce
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		src:         opts.Source,
		store:       opts.Store,
		favorites:   opts.Favorites,
		prefsPath:   prefsPath,
		debounce:    debounce,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewResults,
		filters:     &filter.Config{},
		filterView:  &filter.View{},
		catSelected: append([]string(nil), opts.LastCategories...),
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}

	// Resume the previous session's category browse, if any.
	if m.store != nil && len(m.catSelected) > 0 {
		ticket := m.store.Begin(categoriesQueryFor(m.catSelected), 1)
		m.initialTicket = &ticket
		m.snapshot = m.store.Snapshot()
	}

	return m
}

// categoriesQueryFor picks the single- or multi-category descriptor
// depending on how many categories are selected.
func categoriesQueryFor(selected []string) catalog.Query {
	if len(selected) == 1 {
		return catalog.CategoryQuery(selected[0])
	}
	return catalog.CategoriesQuery(selected)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
		m.spinner.Tick,
	}
	if m.initialTicket != nil {
		cmds = append(cmds, fetchCmd(m.ctx, m.src, m.store, *m.initialTicket))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initInputs()
			m.initDetailViewport()
		}
		m.ready = true
		m.resizeDetailViewport()
		return m, nil

	case spinner.TickMsg:
		// The spinner loop runs only while something is in flight; it is
		// re-armed in startQuery, loadMore and openDetail.
		if !m.snapshot.Loading && !m.detailLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		return m.handleDebounce(msg)

	case fetchDoneMsg:
		m.refreshSnapshot()
		return m, nil

	case productMsg:
		return m.handleProduct(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showFilters {
		return m.renderFilterPanel()
	}
	if m.showBarcode {
		return m.renderBarcodePrompt()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewResults:
		return m.renderResults()
	case ViewCategories:
		return m.renderCategories()
	case ViewDetail:
		return m.renderDetail()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays take priority over everything else.
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showFilters {
		return m.handleFilterPanelKey(msg)
	}
	if m.showBarcode {
		return m.handleBarcodeKey(msg)
	}

	// While the search bar is focused every key belongs to it.
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.FocusSearch):
		m.searchFocused = true
		m.currentView = ViewResults
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ViewCategories):
		m.currentView = ViewCategories
		return m, nil

	case key.Matches(msg, m.keys.ViewFavorites):
		m.currentView = ViewFavorites
		m.clampFavCursor()
		return m, nil

	case key.Matches(msg, m.keys.BarcodeLookup):
		m.openBarcodePrompt()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.OpenFilters):
		m.openFilterPanel()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewDetail {
			m.currentView = m.detailReturn
		} else {
			m.currentView = ViewResults
		}
		return m, nil
	}

	// View-specific keys
	switch m.currentView {
	case ViewResults:
		return m.handleResultsKey(msg)
	case ViewCategories:
		return m.handleCategoriesKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	}

	return m, nil
}

// initInputs builds the text inputs once the terminal size is known.
func (m *Model) initInputs() {
	search := textinput.New()
	search.Placeholder = "Search products..."
	search.CharLimit = 120
	search.Width = 40
	m.searchInput = search

	barcode := textinput.New()
	barcode.Placeholder = "e.g. 3017620422003"
	barcode.CharLimit = 14
	barcode.Width = 20
	m.barcodeInput = barcode

	minInput := textinput.New()
	minInput.Placeholder = "min"
	minInput.CharLimit = 10
	minInput.Width = 10

	maxInput := textinput.New()
	maxInput.Placeholder = "max"
	maxInput.CharLimit = 10
	maxInput.Width = 10

	m.rangeInputs[0] = minInput
	m.rangeInputs[1] = maxInput
}

// refreshSnapshot pulls the latest collection state and keeps the row
// selection inside the visible list.
func (m *Model) refreshSnapshot() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	m.lastUpdated = time.Now()
	if m.snapshot.Err != nil {
		log.Printf("fetch failed: %v", m.snapshot.Err)
	}
	m.clampSelection()
}

// visibleProducts returns the fetched collection after client-side
// filtering and sorting.
func (m *Model) visibleProducts() []off.Product {
	return m.filterView.Apply(m.snapshot.Products, m.filters)
}

// clampSelection keeps selectedRow inside the visible list bounds.
func (m *Model) clampSelection() {
	count := len(m.visibleProducts())
	if count == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// clampFavCursor keeps favCursor inside the favorites list bounds.
func (m *Model) clampFavCursor() {
	if m.favorites == nil {
		m.favCursor = 0
		return
	}
	count := m.favorites.Len()
	if count == 0 {
		m.favCursor = 0
		return
	}
	if m.favCursor >= count {
		m.favCursor = count - 1
	}
	if m.favCursor < 0 {
		m.favCursor = 0
	}
}

// savePrefs persists theme and category selection. Failures are logged
// and otherwise ignored; preferences are never load-bearing.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:          m.theme.Name,
		LastCategories: append([]string(nil), m.catSelected...),
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// startQuery begins a page-1 fetch for q and returns the command that
// performs it.
func (m *Model) startQuery(q catalog.Query) tea.Cmd {
	if m.store == nil {
		return nil
	}
	ticket := m.store.Begin(q, 1)
	m.snapshot = m.store.Snapshot()
	m.selectedRow = 0
	return tea.Batch(fetchCmd(m.ctx, m.src, m.store, ticket), m.spinner.Tick)
}

// loadMore requests the next page for the active query, if any.
func (m *Model) loadMore() tea.Cmd {
	if m.store == nil {
		return nil
	}
	ticket, ok := m.store.LoadMore()
	if !ok {
		return nil
	}
	m.snapshot = m.store.Snapshot()
	return tea.Batch(fetchCmd(m.ctx, m.src, m.store, ticket), m.spinner.Tick)
}

// openDetail issues a product fetch and switches to the detail view.
func (m *Model) openDetail(code string, byBarcode bool, returnTo View) tea.Cmd {
	m.detailProduct = nil
	m.detailErr = nil
	m.detailLoading = true
	m.detailReturn = returnTo
	m.currentView = ViewDetail
	return tea.Batch(productCmd(m.ctx, m.src, code, byBarcode), m.spinner.Tick)
}

// handleProduct folds a completed product fetch into the detail view.
func (m Model) handleProduct(msg productMsg) (tea.Model, tea.Cmd) {
	m.detailLoading = false
	m.detailProduct = msg.product
	m.detailErr = msg.err
	if msg.err != nil {
		log.Printf("product lookup %s: %v", msg.code, msg.err)
	}
	m.updateDetailViewport()
	return m, nil
}

// handleDebounce fires the search when the settle timer that issued it
// is still the latest one.
func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq {
		// A newer keystroke re-armed the timer; this tick is stale.
		return m, nil
	}
	text := strings.TrimSpace(m.searchInput.Value())
	if text == "" {
		if m.store != nil {
			m.store.Clear()
			m.refreshSnapshot()
		}
		return m, nil
	}
	return m, m.startQuery(catalog.SearchQuery(text))
}

// Messages

type debounceMsg struct{ seq int }

type fetchDoneMsg struct{ ticket catalog.Ticket }

type productMsg struct {
	product *off.Product
	err     error
	code    string
}

// Commands

func debounceCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func fetchCmd(ctx context.Context, src off.Source, store *catalog.Store, ticket catalog.Ticket) tea.Cmd {
	return func() tea.Msg {
		res, err := executeQuery(ctx, src, ticket.Query, ticket.Page)
		store.Complete(ticket, res, err)
		return fetchDoneMsg{ticket: ticket}
	}
}

func executeQuery(ctx context.Context, src off.Source, q catalog.Query, page int) (off.SearchResult, error) {
	switch q.Kind {
	case catalog.QuerySearch:
		return src.Search(ctx, q.Text, page)
	case catalog.QueryCategory:
		return src.FetchCategory(ctx, q.Category, page)
	case catalog.QueryCategories:
		return catalog.FetchCategories(ctx, src, q.Categories, page)
	default:
		return off.SearchResult{}, nil
	}
}

func productCmd(ctx context.Context, src off.Source, code string, byBarcode bool) tea.Cmd {
	return func() tea.Msg {
		var p *off.Product
		var err error
		if byBarcode {
			p, err = src.FetchBarcode(ctx, code)
		} else {
			p, err = src.FetchProduct(ctx, code)
		}
		return productMsg{product: p, err: err, code: code}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
