// Package tui renders the portfolio page in the terminal.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aTrapDeer/portfolio/internal/client"
	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/viewstate"
)

const (
	requestTimeout = 10 * time.Second
	// lookaheadLines plays the role of the browser's 200px lookahead.
	lookaheadLines = 4
	chromeLines    = 2
)

// API is the part of the portfolio API the page needs.
type API interface {
	FetchPage(ctx context.Context) (client.Page, error)
	SubmitContact(ctx context.Context, msg models.NewContactMessage) (models.ContactMessage, error)
}

type pageMsg struct {
	page client.Page
	err  error
}

type submittedMsg struct {
	msg models.ContactMessage
	err error
}

type counterTickMsg time.Time

type span struct {
	top, height int
}

// Model is the bubbletea model of the whole page.
type Model struct {
	api   API
	ready bool
	width int
	vp    viewport.Model
	spin  spinner.Model

	loading bool
	loadErr error
	page    client.Page

	tracker    *viewstate.SectionTracker
	filter     *viewstate.Filter[models.Project]
	cursor     int
	modal      viewstate.Modal[models.Project]
	counters   *viewstate.CounterSet
	trigger    viewstate.VisibilityTrigger
	milestones span
	sections   []viewstate.Section
	selLine    int

	form    contactForm
	sending viewstate.Submission

	toast    string
	toastErr bool
}

// New returns a model that loads its content from api.
func New(api API) Model {
	return Model{
		api:      api,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:  true,
		tracker:  viewstate.NewSectionTracker(lookaheadLines, viewstate.Section{ID: navItems[0].id}),
		filter:   viewstate.NewProjectFilter(nil),
		counters: viewstate.NewCounterSet(counterTargets()...),
		trigger:  viewstate.VisibilityTrigger{Threshold: viewstate.VisibleThreshold},
		form:     newContactForm(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := api.FetchPage(ctx)
		return pageMsg{page: page, err: err}
	}
}

func counterTick() tea.Cmd {
	return tea.Tick(viewstate.CounterInterval, func(t time.Time) tea.Msg {
		return counterTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.afterScroll()

	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return cmd

	case pageMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			return nil
		}
		m.page = msg.page
		m.filter.SetItems(msg.page.Projects)
		m.cursor = 0
		m.layout()
		return m.afterScroll()

	case counterTickMsg:
		running := m.counters.Tick()
		m.layout()
		if running {
			return counterTick()
		}
		return nil

	case submittedMsg:
		m.sending.End()
		if msg.err != nil {
			m.showToast(failedTitle+": "+failedBody, true)
			return nil
		}
		m.showToast(sentTitle+": "+sentBody, false)
		m.form.reset()
		m.form.open = false
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		m.toast = ""
		switch {
		case m.form.open:
			return m.updateForm(msg)
		case m.modal.IsOpen():
			switch msg.String() {
			case "esc", "enter", "q":
				m.modal.Close()
			}
			return nil
		}
		return m.updatePage(msg)

	case tea.MouseMsg:
		if m.form.open || m.modal.IsOpen() || !m.ready {
			return nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return tea.Batch(cmd, m.afterScroll())
	}
	return nil
}

func (m *Model) updatePage(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q":
		return tea.Quit
	case "r":
		if m.loadErr != nil {
			m.loadErr = nil
			m.loading = true
			return tea.Batch(m.spin.Tick, m.fetch())
		}
		return nil
	case "a", "1", "2", "3", "4":
		for _, tab := range filterTabs {
			if tab.key == key || (key == "a" && tab.value == viewstate.FilterAll) {
				m.filter.Set(tab.value)
				m.cursor = 0
				m.layout()
			}
		}
		return nil
	case "tab", "shift+tab":
		if n := len(m.filter.Visible()); n > 0 {
			step := 1
			if key == "shift+tab" {
				step = n - 1
			}
			m.cursor = (m.cursor + step) % n
			m.layout()
			m.reveal(m.selLine)
		}
		return m.afterScroll()
	case "enter":
		if p, ok := m.selectedProject(); ok {
			m.modal.Open(p)
		}
		return nil
	case "c":
		return m.form.show()
	case "]", "[":
		m.jumpSection(key == "]")
		return m.afterScroll()
	}
	if !m.ready {
		return nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return tea.Batch(cmd, m.afterScroll())
}

func (m *Model) resize(w, h int) {
	m.width = w
	height := max(h-chromeLines, 1)
	if !m.ready {
		m.vp = viewport.New(w, height)
		m.ready = true
	} else {
		m.vp.Width = w
		m.vp.Height = height
	}
	m.form.resize(w)
	m.layout()
}

// afterScroll runs the scroll listeners: the nav highlight and the one-shot
// start of the milestone counters.
func (m *Model) afterScroll() tea.Cmd {
	if !m.ready || m.loading || m.loadErr != nil {
		return nil
	}
	m.tracker.OnScroll(m.vp.YOffset)
	ratio := viewstate.VisibleRatio(m.milestones.top, m.milestones.height, m.vp.YOffset, m.vp.Height)
	if m.trigger.Observe(ratio) && m.counters.Start() {
		return counterTick()
	}
	return nil
}

// reveal scrolls just enough to bring line into view.
func (m *Model) reveal(line int) {
	switch {
	case line < m.vp.YOffset:
		m.vp.SetYOffset(line)
	case line >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

func (m *Model) jumpSection(forward bool) {
	active := m.tracker.Active()
	idx := 0
	for i, it := range navItems {
		if it.id == active {
			idx = i
		}
	}
	if forward {
		idx = min(idx+1, len(navItems)-1)
	} else {
		idx = max(idx-1, 0)
	}
	if top, ok := m.sectionTop(navItems[idx].id); ok {
		m.vp.SetYOffset(top)
	}
}

func (m *Model) showToast(text string, isErr bool) {
	m.toast = text
	m.toastErr = isErr
}
