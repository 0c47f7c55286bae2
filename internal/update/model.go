package update

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/vkarthik/canvault/internal/alerts"
	"github.com/vkarthik/canvault/internal/config"
	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/model"
	"github.com/vkarthik/canvault/internal/syncer"
	"github.com/vkarthik/canvault/internal/vault"
)

type View string

const (
	ViewList     View = "List"
	ViewCalendar View = "Calendar"
)

type CalendarMode string

const (
	ModeMonth CalendarMode = "month"
	ModeWeek  CalendarMode = "week"
	ModeDay   CalendarMode = "day"
)

func (m CalendarMode) IsValid() bool {
	switch m {
	case ModeMonth, ModeWeek, ModeDay:
		return true
	default:
		return false
	}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	List     string
	Calendar string
	Sync     string
	Help     string
	Quit     string
}

// CalendarState is the navigation state of the calendar view: the anchor
// date the view is centered on and the active mode. It lives only as long
// as the program; nothing here is persisted.
type CalendarState struct {
	Mode   CalendarMode
	Anchor time.Time
	Cursor int
}

type ListState struct {
	Grouping grid.Grouping
	Cursor   int
}

// Deps are the collaborators the event loop drives. Syncer may be nil when
// no remote credentials are configured; the views keep working offline.
type Deps struct {
	Store       syncer.NoteWriter
	Meta        vault.MetaSource
	Syncer      *syncer.Syncer
	Notifier    syncer.Notifier
	Alerts      *alerts.Engine
	Cfg         config.Config
	Now         func() time.Time
	SyncOnStart bool
}

type Model struct {
	deps        Deps
	CurrentView View
	Items       []model.DueItem
	Calendar    CalendarState
	List        ListState
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	syncSpinner   spinner.Model
	spinnerActive bool
	preview       viewport.Model
	previewActive bool
	previewTitle  string
}

type ItemsLoadedMsg struct {
	Items []model.DueItem
	Err   error
}

type SyncDoneMsg struct {
	Results []syncer.CourseResult
	Err     error
}

type syncTickMsg struct{}

type ItemCompletedMsg struct {
	Path   string
	Result vault.CompleteResult
	Err    error
}

type PreviewLoadedMsg struct {
	Title string
	Body  string
	Err   error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type DueAlertMsg struct {
	Alert alerts.DueAlert
}

func NewModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Notifier == nil {
		deps.Notifier = syncer.NoopNotifier{}
	}
	m := Model{
		deps:        deps,
		CurrentView: ViewList,
		Calendar: CalendarState{
			Mode:   ModeMonth,
			Anchor: model.CivilDate(deps.Now()),
		},
		List: ListState{Grouping: grid.GroupByUrgency},
		Keys: GlobalKeyMap{
			List:     "1",
			Calendar: "2",
			Sync:     "S",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.syncSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.preview = viewport.New(80, 20)
	return m
}

// todayMarker maps the configured presentation policy for the current day.
func (m Model) todayMarker() string {
	return m.deps.Cfg.TodayMarker
}

func (m Model) maxPerCell() int {
	if m.deps.Cfg.MaxPerCell > 0 {
		return m.deps.Cfg.MaxPerCell
	}
	return 2
}
