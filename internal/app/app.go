package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
	"github.com/llehouerou/saverino/internal/playlist"
	"github.com/llehouerou/saverino/internal/state"
	"github.com/llehouerou/saverino/internal/ui/tracklist"
)

// Focus is the component receiving key input.
type Focus int

const (
	FocusList Focus = iota
	FocusQueue
	FocusSearch
	FocusCommand
)

// Deps are the collaborators the UI drives.
type Deps struct {
	Service playback.Service
	Browser *browse.Browser
	Store   state.Interface
	Log     *zap.Logger
}

// Model is the root application model.
type Model struct {
	svc     playback.Service
	browser *browse.Browser
	store   state.Interface
	log     *zap.Logger
	sub     *playback.Subscription

	keys    KeyMap
	help    help.Model
	search  textinput.Model
	command textinput.Model

	list  tracklist.Model
	queue tracklist.Model

	focus        Focus
	queueVisible bool
	landing      bool
	loading      bool
	ticking      bool

	// Cached session state. The UI goroutine never calls into the service
	// directly, since a play holds the service lock while the media loads.
	session  playback.Session
	current  *catalog.Track
	hasNext  bool
	hasPrev  bool
	quality  catalog.QualityTier
	context  playlist.BrowsingContext
	revision uint64

	// What the list shows: the last committed artist/album, if any.
	viewTitle string
	artist    *browse.ArtistResult
	hasMore   bool

	user     string
	theme    state.Theme
	status   string
	statusID int
	isError  bool

	width  int
	height int
}

// New builds the model, restoring the theme, quality tier, landing flag and
// logged-in user from the store.
func New(d Deps) Model {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	search := textinput.New()
	search.Placeholder = "Search songs..."
	search.Prompt = "/ "
	search.CharLimit = 128

	command := textinput.New()
	command.Prompt = ": "
	command.CharLimit = 256

	m := Model{
		svc:       d.Service,
		browser:   d.Browser,
		store:     d.Store,
		log:       log,
		sub:       d.Service.Subscribe(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		command:   command,
		list:      tracklist.New("Results", "No tracks yet. Press / to search."),
		queue:     tracklist.New("Up next", "Queue is empty."),
		quality:   d.Service.Quality(),
		viewTitle: "Results",
	}
	m.list.SetFocused(true)

	if theme, err := d.Store.Theme(); err == nil {
		m.theme = theme
	} else {
		log.Warn("load theme", zap.Error(err))
		m.theme = state.ThemeLight
	}
	m.applyTheme()

	if tier, err := d.Store.Quality(m.quality); err == nil && tier != m.quality {
		if err := d.Service.SetQuality(tier); err == nil {
			m.quality = tier
		}
	}

	if skip, err := d.Store.SkipLanding(); err == nil {
		m.landing = !skip
	}

	if user, err := d.Store.CurrentUser(); err == nil {
		m.user = user
	}

	return m
}

// Init implements tea.Model: it starts watching the session and loads the
// default search.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watchService(),
		m.searchCmd(""),
		m.snapshotCmd(),
	)
}
