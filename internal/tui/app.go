package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"deckview/internal/config"
	"deckview/internal/database/repository"
	"deckview/internal/deck"
	"deckview/internal/service"
)

// settleDelay lets the terminal finish a resize burst before bindings are
// reconciled a second time. Fire-and-forget: reconciliation is idempotent,
// so overlapping ticks are harmless.
const settleDelay = 50 * time.Millisecond

// viewportState is shared between the App (a value copied by bubbletea)
// and the controller's live probe, so both always see the same viewport.
type viewportState struct {
	widthPx float64
	coarse  bool
}

type modalState string

const (
	modalNone   modalState = ""
	modalJump   modalState = "jump"
	modalImport modalState = "import"
)

// App is the single bubbletea model.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	library *service.LibraryService
	ingest  *service.IngestService

	deckName string
	deckLab  string // display name of the open deck
	cards    []repository.Card
	ctrl     *deck.Controller
	bindings deck.Bindings
	vp       *viewportState

	width  int
	height int
	ready  bool
	scroll int // wide-strip scroll, in cards

	expanded  bool
	modal     modalState
	jumpQuery string
	matches   []service.Match

	basePath  string
	fileList  list.Model
	listReady bool

	cardRenderer *glamour.TermRenderer // fixed card-width wrap
	wideRenderer *glamour.TermRenderer // rebuilt on resize for the expanded view

	status string
	keys   keyMap
}

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Expand key.Binding
	Jump   key.Binding
	Import key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "prev/next")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("", "")),
		Expand: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		Jump:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Expand, k.Jump, k.Import, k.Quit}
}

func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Expand, k.Close, k.Quit}
}

// New builds the App. The controller starts empty and is rebuilt when the
// deck loads; the viewport probe is shared state so the controller always
// classifies against the live terminal size.
func New(cfg config.Config, logger *zap.Logger, library *service.LibraryService, ingest *service.IngestService) App {
	vp := &viewportState{coarse: cfg.UI.CoarsePointer}

	fileList := list.New([]list.Item{}, fileItemDelegate{}, 0, 0)
	fileList.Title = "Import markdown"
	fileList.Styles.Title = titleStyle
	fileList.Styles.NoItems = lipgloss.NewStyle()
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(false)
	fileList.SetShowHelp(false)
	fileList.DisableQuitKeybindings()

	cardRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cardCols-4),
	)

	cwd, _ := os.Getwd()
	return App{
		cfg:          cfg,
		log:          logger,
		library:      library,
		ingest:       ingest,
		deckName:     cfg.UI.Deck,
		vp:           vp,
		ctrl:         deck.New(0, float64(cardCols*cfg.UI.CellWidthPx), probe(vp)),
		basePath:     cwd,
		fileList:     fileList,
		cardRenderer: cardRenderer,
		keys:         newKeyMap(),
	}
}

func probe(vp *viewportState) func() deck.Viewport {
	return func() deck.Viewport {
		return deck.Viewport{Width: vp.widthPx, Coarse: vp.coarse}
	}
}

// ---------------------------------------------------------------------------
// Messages and commands
// ---------------------------------------------------------------------------

type deckLoadedMsg struct {
	deck  *repository.Deck
	cards []repository.Card
	err   error
}

type filesLoadedMsg struct {
	items []list.Item
	err   error
}

type importDoneMsg struct {
	res  service.IngestResult
	file string
	err  error
}

type viewportSettledMsg struct{}

func (a App) loadDeckCmd() tea.Cmd {
	library, name := a.library, a.deckName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d, cards, err := library.OpenDeck(ctx, name)
		return deckLoadedMsg{deck: d, cards: cards, err: err}
	}
}

func (a App) importCmd(path string) tea.Cmd {
	ingest, deckName := a.ingest, a.deckLab
	if deckName == "" {
		deckName = "Imported"
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err, file: filepath.Base(path)}
		}
		defer f.Close()
		res, err := ingest.ImportMarkdown(ctx, f, deckName)
		return importDoneMsg{res: res, err: err, file: filepath.Base(path)}
	}
}

func loadFilesCmd(basePath string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			return filesLoadedMsg{err: err}
		}
		var items []list.Item
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasSuffix(strings.ToLower(name), ".md") {
				items = append(items, fileItem{name: name})
			}
		}
		return filesLoadedMsg{items: items}
	}
}

func settleCmd() tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg { return viewportSettledMsg{} })
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

func (a App) Init() tea.Cmd {
	return a.loadDeckCmd()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		return a.handleDeckLoaded(msg)

	case filesLoadedMsg:
		if msg.err != nil {
			a.status = "File scan failed: " + msg.err.Error()
			a.modal = modalNone
			return a, nil
		}
		a.fileList.SetItems(msg.items)
		a.listReady = true
		return a, nil

	case importDoneMsg:
		if msg.err != nil {
			a.log.Warn("import failed", zap.String("file", msg.file), zap.Error(msg.err))
			a.status = "Import failed: " + msg.err.Error()
			return a, nil
		}
		a.log.Info("import complete", zap.String("file", msg.file), zap.Int("imported", msg.res.Imported))
		a.status = importSummary(msg.res, msg.file)
		return a, a.loadDeckCmd()

	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case viewportSettledMsg:
		// Second reconcile after the viewport settles; idempotent.
		a.bindings = a.ctrl.Reconcile()
		a.ctrl.Render()
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleDeckLoaded(msg deckLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.log.Error("deck load failed", zap.Error(msg.err))
		a.status = "Deck load failed: " + msg.err.Error()
		return a, nil
	}
	prevActive := a.ctrl.Active()
	a.cards = msg.cards
	if msg.deck != nil {
		a.deckLab = msg.deck.Name
	}
	a.ctrl = deck.New(len(a.cards), float64(cardCols*a.cfg.UI.CellWidthPx), probe(a.vp))
	a.ctrl.GoTo(prevActive) // clamped; keeps the reader's place across reloads
	a.bindings = a.ctrl.Reconcile()
	a.ready = true
	if a.status == "" {
		a.status = positionLine(a.ctrl.Active(), len(a.cards))
	}
	return a, nil
}

func (a App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height
	a.vp.widthPx = float64(msg.Width * a.cfg.UI.CellWidthPx)

	a.wideRenderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(msg.Width-8, 96)),
	)

	listWidth := min(60, msg.Width-6)
	if listWidth < 30 {
		listWidth = 30
	}
	a.fileList.SetWidth(listWidth)
	a.fileList.SetHeight(min(12, msg.Height-6))

	a.bindings = a.ctrl.Reconcile()
	a.ctrl.Render()
	a.clampScroll()
	return a, settleCmd()
}

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone || a.expanded {
		return a, nil
	}

	// Wheel drives the wide strip; the deck mode ignores it.
	if msg.Action == tea.MouseActionPress && a.ctrl.Mode() == deck.ModeFlow {
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			a.scroll--
			a.clampScroll()
			return a, nil
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			a.scroll++
			a.clampScroll()
			return a, nil
		}
	}

	if !a.bindings.Gestures {
		return a, nil
	}
	x := float64(msg.X * a.cfg.UI.CellWidthPx)
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		a.ctrl.PointerDown(x)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		a.ctrl.PointerMove(x)
	case msg.Action == tea.MouseActionRelease:
		a.ctrl.PointerUp()
	}
	a.status = positionLine(a.ctrl.Active(), len(a.cards))
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	// Modals own the keyboard; the jump modal in particular is a text
	// input, so plain "q" must reach the query.
	switch a.modal {
	case modalJump:
		return a.handleJumpKey(msg)
	case modalImport:
		return a.handleImportKey(msg)
	}
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	switch {
	case key.Matches(msg, a.keys.Prev):
		a.navigate(-1)
		return a, nil
	case key.Matches(msg, a.keys.Next):
		a.navigate(1)
		return a, nil
	case key.Matches(msg, a.keys.Expand):
		if len(a.cards) > 0 {
			a.expanded = !a.expanded
		}
		return a, nil
	case key.Matches(msg, a.keys.Close):
		a.expanded = false
		return a, nil
	case key.Matches(msg, a.keys.Jump):
		if len(a.cards) > 0 {
			a.modal = modalJump
			a.jumpQuery = ""
			a.matches = nil
		}
		return a, nil
	case key.Matches(msg, a.keys.Import):
		a.modal = modalImport
		a.listReady = false
		a.fileList.Select(0)
		return a, loadFilesCmd(a.basePath)
	}
	return a, nil
}

// navigate moves one card in either direction. On narrow viewports the
// controller owns navigation (and gates it); on wide ones arrows drive the
// native strip scroll instead, so the controller state is untouched.
func (a *App) navigate(delta int) {
	if a.ctrl.Mode() == deck.ModeDeck {
		if delta < 0 {
			a.ctrl.ArrowLeft()
		} else {
			a.ctrl.ArrowRight()
		}
		a.status = positionLine(a.ctrl.Active(), len(a.cards))
		return
	}
	a.scroll += delta
	a.clampScroll()
}

func (a App) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		return a, nil
	case tea.KeyEnter:
		if len(a.matches) > 0 {
			a.ctrl.GoTo(a.matches[0].Index)
			a.status = positionLine(a.ctrl.Active(), len(a.cards))
		}
		a.modal = modalNone
		return a, nil
	case tea.KeyBackspace:
		if len(a.jumpQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(a.jumpQuery)
			a.jumpQuery = a.jumpQuery[:len(a.jumpQuery)-size]
		}
	case tea.KeyRunes:
		a.jumpQuery += string(msg.Runes)
	case tea.KeySpace:
		a.jumpQuery += " "
	}
	a.matches = service.MatchCards(a.jumpQuery, a.cards)
	return a, nil
}

func (a App) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return a, tea.Quit
	}
	switch msg.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		return a, nil
	case tea.KeyEnter:
		item, ok := a.fileList.SelectedItem().(fileItem)
		if !ok || item.name == "" {
			a.status = "No file selected."
			return a, nil
		}
		a.modal = modalNone
		a.status = "Importing " + item.name + "..."
		return a, a.importCmd(filepath.Join(a.basePath, item.name))
	}
	var cmd tea.Cmd
	a.fileList, cmd = a.fileList.Update(msg)
	return a, cmd
}

func (a *App) clampScroll() {
	m := stripMaxScroll(len(a.cards), a.contentWidth())
	if a.scroll > m {
		a.scroll = m
	}
	if a.scroll < 0 {
		a.scroll = 0
	}
}

func (a App) contentWidth() int {
	if a.width == 0 {
		return 80
	}
	return a.width
}

func importSummary(res service.IngestResult, file string) string {
	out := "Imported " + plural(res.Imported, "card") + " from " + file
	if res.Skipped > 0 {
		out += " (" + plural(res.Skipped, "stray line") + " skipped)"
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
