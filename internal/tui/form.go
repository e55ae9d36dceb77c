package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/schema"
)

const (
	fieldName = iota
	fieldEmail
	fieldSubject
	fieldMessage
	fieldCount
)

var fieldKeys = [fieldCount]string{"name", "email", "subject", "message"}
var fieldLabels = [fieldCount]string{"Your Name", "Your Email", "Subject", "Message"}

type contactForm struct {
	open   bool
	inputs [fieldCount]textinput.Model
	focus  int
	errs   map[string]string
}

func newContactForm() contactForm {
	var f contactForm
	placeholders := [fieldCount]string{"John Doe", "john@example.com", "Project Inquiry", "Tell me about your project..."}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldMessage].CharLimit = 2000
	return f
}

func (f *contactForm) show() tea.Cmd {
	f.open = true
	f.focus = fieldName
	return f.focusCurrent()
}

func (f *contactForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *contactForm) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCurrent()
}

func (f *contactForm) resize(w int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(w-10, 10)
	}
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.errs = nil
	f.focus = fieldName
}

func (f *contactForm) values() models.NewContactMessage {
	return models.NewContactMessage{
		Name:    strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Subject: strings.TrimSpace(f.inputs[fieldSubject].Value()),
		Message: strings.TrimSpace(f.inputs[fieldMessage].Value()),
	}
}

func (f *contactForm) setErrors(verr *schema.ValidationError) {
	f.errs = make(map[string]string, len(fieldKeys))
	for _, key := range fieldKeys {
		if verr.Has(key) {
			f.errs[key] = fieldHints[key]
		}
	}
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form.open = false
		return nil
	case "tab", "down":
		return m.form.move(1)
	case "shift+tab", "up":
		return m.form.move(-1)
	case "enter":
		if m.form.focus < fieldMessage {
			return m.form.move(1)
		}
		return m.submitContact()
	case "ctrl+s":
		return m.submitContact()
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return cmd
}

// submitContact validates the form locally and, when it passes and nothing
// is in flight, sends it.
func (m *Model) submitContact() tea.Cmd {
	if m.sending.InFlight() {
		return nil
	}
	raw, err := json.Marshal(m.form.values())
	if err != nil {
		m.showToast(failedTitle+": "+failedBody, true)
		return nil
	}
	in, err := schema.Decode[models.NewContactMessage](schema.KindContactMessage, raw)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			m.form.setErrors(verr)
			return nil
		}
		m.showToast(failedTitle+": "+failedBody, true)
		return nil
	}
	m.form.errs = nil
	if !m.sending.Begin() {
		return nil
	}
	api := m.api
	return func() (msg tea.Msg) {
		// The guard is released by submittedMsg, so one must always arrive.
		defer func() {
			if r := recover(); r != nil {
				msg = submittedMsg{err: fmt.Errorf("submit contact: %v", r)}
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		saved, err := api.SubmitContact(ctx, in)
		return submittedMsg{msg: saved, err: err}
	}
}

func (f *contactForm) view(width int, sending bool) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Send Me a Message"))
	for i := range f.inputs {
		b.WriteString("\n\n")
		label := fieldLabels[i]
		if i == f.focus {
			label = accentStyle.Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View())
		if msg, ok := f.errs[fieldKeys[i]]; ok {
			b.WriteString("\n" + errorStyle.Render(msg))
		}
	}
	button := "[ Send Message ]"
	if sending {
		button = mutedStyle.Render("[ Sending... ]")
	}
	b.WriteString("\n\n" + lipgloss.NewStyle().Bold(true).Render(button))
	return panel(b.String(), width)
}
