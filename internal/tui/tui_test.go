package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aTrapDeer/portfolio/internal/client"
	"github.com/aTrapDeer/portfolio/internal/models"
)

type fakeAPI struct {
	mu        sync.Mutex
	page      client.Page
	pageErr   error
	submitErr error
	panics    bool
	submitted []models.NewContactMessage
}

func (f *fakeAPI) FetchPage(context.Context) (client.Page, error) {
	return f.page, f.pageErr
}

func (f *fakeAPI) SubmitContact(_ context.Context, msg models.NewContactMessage) (models.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, msg)
	if f.panics {
		panic("transport exploded")
	}
	if f.submitErr != nil {
		return models.ContactMessage{}, f.submitErr
	}
	return models.ContactMessage{ID: uint(len(f.submitted)), Name: msg.Name}, nil
}

func samplePage() client.Page {
	full := "The long story."
	return client.Page{
		Skills: []models.Skill{{ID: 1, Name: "Go", Percentage: 90, ColorClass: "bg-primary"}},
		Projects: []models.Project{
			{ID: 1, Title: "Fitness", Description: "d", Category: "mobile", FullDescription: &full, Technologies: []string{"Flutter"}},
			{ID: 2, Title: "Shop", Description: "d", Category: "web"},
			{ID: 3, Title: "Banking", Description: "d", Category: "ui"},
			{ID: 4, Title: "Education", Description: "d", Category: "ui"},
		},
		Milestones: []models.Milestone{
			{ID: 1, Year: "2022", Title: "Enterprise", Description: "d", Position: "left", ColorClass: "bg-primary"},
			{ID: 2, Year: "2021", Title: "International", Description: "d", Position: "right", ColorClass: "bg-secondary"},
		},
	}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loaded(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = step(t, m, pageMsg{page: api.page})
	if m.loading || m.loadErr != nil {
		t.Fatalf("page not loaded: loading=%v err=%v", m.loading, m.loadErr)
	}
	return m
}

func TestLoadPage(t *testing.T) {
	api := &fakeAPI{page: samplePage()}
	m := loaded(t, api)
	if m.tracker.Active() != "home" {
		t.Fatalf("active = %q, want home", m.tracker.Active())
	}
	if len(m.sections) != len(navItems) {
		t.Fatalf("expected %d sections, got %d", len(navItems), len(m.sections))
	}
	if !strings.Contains(m.View(), "Kevin") {
		t.Fatalf("nav not rendered")
	}
}

func TestLoadFailureAndRetry(t *testing.T) {
	api := &fakeAPI{pageErr: errors.New("connection refused")}
	m := New(api)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m, _ = step(t, m, pageMsg{err: api.pageErr})
	if !strings.Contains(m.View(), "press r to retry") {
		t.Fatalf("expected retry hint, got %q", m.View())
	}
	m, cmd := step(t, m, keyRune('r'))
	if cmd == nil || !m.loading {
		t.Fatalf("r should start a reload")
	}
}

func TestFilterKeys(t *testing.T) {
	m := loaded(t, &fakeAPI{page: samplePage()})

	m, _ = step(t, m, keyRune('4'))
	if m.filter.Current() != "ui" || len(m.filter.Visible()) != 2 {
		t.Fatalf("filter = %q with %d visible", m.filter.Current(), len(m.filter.Visible()))
	}
	for _, p := range m.filter.Visible() {
		if p.Category != "ui" {
			t.Fatalf("non-ui project visible: %+v", p)
		}
	}
	m, _ = step(t, m, keyRune('a'))
	if m.filter.Current() != "all" || len(m.filter.Visible()) != 4 {
		t.Fatalf("all should restore the full set")
	}
}

func TestProjectModal(t *testing.T) {
	m := loaded(t, &fakeAPI{page: samplePage()})

	m, _ = step(t, m, keyRune('4'))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.modal.IsOpen() {
		t.Fatalf("enter should open the modal")
	}
	p, _ := m.modal.Selected()
	if p.Title != "Education" {
		t.Fatalf("selected %q, want Education", p.Title)
	}
	if !strings.Contains(m.View(), "Project Overview") {
		t.Fatalf("modal not rendered")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal.IsOpen() {
		t.Fatalf("esc should close the modal")
	}
	if p, ok := m.modal.Selected(); !ok || p.Title != "Education" {
		t.Fatalf("selection should survive close")
	}
}

func TestCountersStartWhenMilestonesVisible(t *testing.T) {
	m := loaded(t, &fakeAPI{page: samplePage()})
	if m.counters.Started() {
		t.Fatalf("counters started before the section was visible")
	}

	var started tea.Cmd
	for i := 0; i < len(navItems) && m.tracker.Active() != "milestones"; i++ {
		var cmd tea.Cmd
		m, cmd = step(t, m, keyRune(']'))
		if cmd != nil {
			started = cmd
		}
	}
	if m.tracker.Active() != "milestones" {
		t.Fatalf("active = %q, want milestones", m.tracker.Active())
	}
	if !m.counters.Started() || started == nil {
		t.Fatalf("counters should start once the section is visible")
	}

	prev := m.counters.Values()
	for i := 0; i < 100 && !m.counters.Done(); i++ {
		m, _ = step(t, m, counterTickMsg{})
		cur := m.counters.Values()
		for j := range cur {
			if cur[j] < prev[j] || cur[j] > counterItems[j].target {
				t.Fatalf("counter %d went from %d to %d", j, prev[j], cur[j])
			}
		}
		prev = cur
	}
	got := m.counters.Values()
	for i, c := range counterItems {
		if got[i] != c.target {
			t.Fatalf("counter %d = %d, want %d", i, got[i], c.target)
		}
	}

	_, cmd := step(t, m, counterTickMsg{})
	if cmd != nil {
		t.Fatalf("finished counters must not schedule more ticks")
	}
}

func TestContactFormValidation(t *testing.T) {
	api := &fakeAPI{page: samplePage()}
	m := loaded(t, api)

	m, _ = step(t, m, keyRune('c'))
	if !m.form.open {
		t.Fatalf("c should open the contact form")
	}
	m, _ = step(t, m, keyRune('J'))
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatalf("invalid form must not be sent")
	}
	if m.form.errs["name"] != fieldHints["name"] || m.form.errs["message"] != fieldHints["message"] {
		t.Fatalf("unexpected field errors %v", m.form.errs)
	}
	if len(api.submitted) != 0 {
		t.Fatalf("nothing should reach the API")
	}
	if !strings.Contains(m.View(), fieldHints["email"]) {
		t.Fatalf("field errors not rendered")
	}
}

func fillForm(m *Model) {
	m.form.inputs[fieldName].SetValue("Jo Doe")
	m.form.inputs[fieldEmail].SetValue("jo@example.com")
	m.form.inputs[fieldSubject].SetValue("Hello")
	m.form.inputs[fieldMessage].SetValue("I would like to talk about a project.")
}

func TestContactFormSubmit(t *testing.T) {
	api := &fakeAPI{page: samplePage()}
	m := loaded(t, api)
	m, _ = step(t, m, keyRune('c'))
	fillForm(&m)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || !m.sending.InFlight() {
		t.Fatalf("valid form should be sent")
	}
	if _, again := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}); again != nil {
		t.Fatalf("second submit while in flight must be ignored")
	}

	m, _ = step(t, m, cmd())
	if m.sending.InFlight() {
		t.Fatalf("submission guard not released")
	}
	if m.form.open || m.toastErr || !strings.Contains(m.toast, sentTitle) {
		t.Fatalf("expected success toast and closed form, got open=%v toast=%q", m.form.open, m.toast)
	}
	if len(api.submitted) != 1 || api.submitted[0].Email != "jo@example.com" {
		t.Fatalf("unexpected submissions %+v", api.submitted)
	}
	if m.form.inputs[fieldName].Value() != "" {
		t.Fatalf("form should be cleared after success")
	}
}

func TestContactFormSubmitFailure(t *testing.T) {
	api := &fakeAPI{page: samplePage(), submitErr: &client.APIError{Status: 500, Message: "boom"}}
	m := loaded(t, api)
	m, _ = step(t, m, keyRune('c'))
	fillForm(&m)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	m, _ = step(t, m, cmd())
	if m.sending.InFlight() {
		t.Fatalf("submission guard not released after failure")
	}
	if !m.toastErr || m.toast != failedTitle+": "+failedBody {
		t.Fatalf("expected generic failure toast, got %q", m.toast)
	}
	if !m.form.open || m.form.inputs[fieldName].Value() != "Jo Doe" {
		t.Fatalf("form should stay open with its values after a failure")
	}
}

func TestContactFormSubmitPanicReleasesGuard(t *testing.T) {
	api := &fakeAPI{page: samplePage(), panics: true}
	m := loaded(t, api)
	m, _ = step(t, m, keyRune('c'))
	fillForm(&m)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	m, _ = step(t, m, cmd())
	if m.sending.InFlight() {
		t.Fatalf("submission guard not released after a panic")
	}
	if !m.toastErr || !m.form.open {
		t.Fatalf("expected failure toast with the form open, got toast=%q open=%v", m.toast, m.form.open)
	}
}
