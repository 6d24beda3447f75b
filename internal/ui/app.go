// Package ui provides the Bubble Tea TUI for Ladle.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ladle/internal/config"
	"ladle/internal/prefs"
	"ladle/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewRecipes View = iota
	ViewDetail
	ViewCart
	ViewFavourites
	ViewRandom
)

// cartInputMode says what the cart text input is editing.
type cartInputMode int

const (
	cartInputNone cartInputMode = iota
	cartInputAdd
	cartInputEdit
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Cart       *store.CartStore
	Favourites *store.FavouritesStore
	Recipes    *store.RecipesStore
	Detail     *store.DetailStore
	Random     *store.RandomStore
	Config     *config.Config
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	cart      *store.CartStore
	favs      *store.FavouritesStore
	recipes   *store.RecipesStore
	detail    *store.DetailStore
	random    *store.RandomStore
	config    *config.Config
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Recipes state
	recipeCursor int
	searchInput  textinput.Model
	searching    bool
	catCursor    int // 0 = all categories, 1..n = index into Categories()

	// Cart state
	cartCursor   int
	ingCursor    int // -1 = the entry row itself
	cartInput    textinput.Model
	cartMode     cartInputMode
	editingIngID string

	// Favourites state
	favCursor int

	// Detail state
	detailViewport viewport.Model
	detailReturn   View
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "light"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "search recipes"
	search.CharLimit = 80
	search.SetValue(opts.Recipes.DraftSearch())

	cartInput := textinput.New()
	cartInput.Placeholder = "name: amount"
	cartInput.CharLimit = 120

	return Model{
		ctx:          ctx,
		cart:         opts.Cart,
		favs:         opts.Favourites,
		recipes:      opts.Recipes,
		detail:       opts.Detail,
		random:       opts.Random,
		config:       opts.Config,
		prefsPath:    prefsPath,
		theme:        GetTheme(themeName),
		currentView:  ViewRecipes,
		searchInput:  search,
		cartInput:    cartInput,
		ingCursor:    -1,
		detailReturn: ViewRecipes,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		waitForChange(m.cart.Subscribe()),
		waitForChange(m.favs.Subscribe()),
		waitForChange(m.recipes.Subscribe()),
		waitForChange(m.detail.Subscribe()),
		waitForChange(m.random.Subscribe()),
		m.fetchRecipesCmd(),
		m.fetchCategoriesCmd(),
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
			m.detailViewport = viewport.New(msg.Width, max(1, msg.Height-4))
		} else {
			m.detailViewport.Width = msg.Width
			m.detailViewport.Height = max(1, msg.Height-4)
		}
		m.ready = true
		m.clampCursors()
		m.updateDetailViewport()
		return m, nil

	case storeChangedMsg:
		// A store mutated; re-render and keep listening.
		m.clampCursors()
		if m.currentView == ViewDetail {
			m.updateDetailViewport()
		}
		return m, waitForChange(msg.ch)

	case recipesLoadedMsg, categoriesLoadedMsg, favouritesRefreshedMsg,
		detailLoadedMsg, randomLoadedMsg:
		// Stores already hold the outcome; cursors may need re-clamping.
		m.clampCursors()
		if m.currentView == ViewDetail {
			m.updateDetailViewport()
		}
		return m, nil
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

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Text inputs capture everything except their own commit/cancel keys.
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.cartMode != cartInputNone {
		return m.handleCartInputKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "r":
		m.currentView = ViewRecipes
		return m, nil

	case "c":
		m.currentView = ViewCart
		return m, nil

	case "f":
		m.currentView = ViewFavourites
		return m, m.refreshFavouritesCmd()

	case "s":
		m.currentView = ViewRandom
		return m, m.fetchRandomCmd()

	case "esc":
		return m.handleEscape()
	}

	switch m.currentView {
	case ViewRecipes:
		return m.handleRecipesKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewFavourites:
		return m.handleFavouritesKey(msg)
	case ViewRandom:
		return m.handleRandomKey(msg)
	}

	return m, nil
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDetail:
		m.detail.Reset()
		m.currentView = m.detailReturn
	case ViewRandom:
		m.random.Reset()
		m.currentView = ViewRecipes
	case ViewRecipes:
		// Nothing to back out of.
	default:
		m.currentView = ViewRecipes
	}
	return m, nil
}

// clampCursors keeps every list cursor inside its list after data
// changes underneath it.
func (m *Model) clampCursors() {
	m.recipeCursor = clamp(m.recipeCursor, len(m.recipes.PaginatedRecipes()))
	m.favCursor = clamp(m.favCursor, m.favs.Len())

	items := m.cart.Items()
	m.cartCursor = clamp(m.cartCursor, len(items))
	if m.cartCursor < len(items) {
		if n := len(items[m.cartCursor].Ingredients); m.ingCursor >= n {
			m.ingCursor = n - 1
		}
	} else {
		m.ingCursor = -1
	}
}

func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewRecipes:
		return m.renderRecipes()
	case ViewDetail:
		return m.renderDetail()
	case ViewCart:
		return m.renderCart()
	case ViewFavourites:
		return m.renderFavourites()
	case ViewRandom:
		return m.renderRandom()
	default:
		return ""
	}
}

// Messages

// storeChangedMsg reports that a subscribed store mutated. The channel
// rides along so the listener can be re-armed.
type storeChangedMsg struct{ ch <-chan struct{} }

type recipesLoadedMsg struct{ err error }

type categoriesLoadedMsg struct{ err error }

type favouritesRefreshedMsg struct{ err error }

type detailLoadedMsg struct{ err error }

type randomLoadedMsg struct{ err error }

// Commands

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{ch: ch}
	}
}

func (m Model) fetchRecipesCmd() tea.Cmd {
	return func() tea.Msg {
		return recipesLoadedMsg{err: m.recipes.FetchRecipes(m.ctx)}
	}
}

func (m Model) fetchCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		return categoriesLoadedMsg{err: m.recipes.FetchCategories(m.ctx)}
	}
}

func (m Model) applyFiltersCmd() tea.Cmd {
	return func() tea.Msg {
		return recipesLoadedMsg{err: m.recipes.ApplyFilters(m.ctx)}
	}
}

func (m Model) setPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		return recipesLoadedMsg{err: m.recipes.SetPage(m.ctx, page)}
	}
}

func (m Model) refreshFavouritesCmd() tea.Cmd {
	return func() tea.Msg {
		return favouritesRefreshedMsg{err: m.favs.Refresh(m.ctx)}
	}
}

func (m Model) fetchDetailCmd(documentID string) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{err: m.detail.Fetch(m.ctx, documentID)}
	}
}

func (m Model) fetchRandomCmd() tea.Cmd {
	return func() tea.Msg {
		return randomLoadedMsg{err: m.random.Fetch(m.ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
