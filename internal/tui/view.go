package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/viewstate"
)

type block struct {
	id   string
	body string
}

// layout renders every section into the viewport and records where each
// section starts.
func (m *Model) layout() {
	if !m.ready || m.loading || m.loadErr != nil {
		return
	}
	w := max(m.vp.Width, 20)
	portfolio, selOffset := m.renderPortfolio(w)
	blocks := []block{
		{"home", m.renderHome(w)},
		{"about", m.renderAbout(w)},
		{"milestones", m.renderMilestones(w)},
		{"strategy", m.renderStrategy(w)},
		{"portfolio", portfolio},
		{"contact", m.renderContact(w)},
	}

	var b strings.Builder
	sections := make([]viewstate.Section, 0, len(blocks))
	line := 0
	for _, blk := range blocks {
		sections = append(sections, viewstate.Section{ID: blk.id, Top: line})
		h := lipgloss.Height(blk.body)
		switch blk.id {
		case "milestones":
			m.milestones = span{top: line, height: h}
		case "portfolio":
			m.selLine = line + selOffset
		}
		b.WriteString(blk.body)
		b.WriteString("\n")
		line += h
	}
	m.sections = sections
	m.tracker.SetSections(sections)
	y := m.vp.YOffset
	m.vp.SetContent(b.String())
	m.vp.SetYOffset(y)
}

func (m *Model) sectionTop(id string) (int, bool) {
	for _, s := range m.sections {
		if s.ID == id {
			return s.Top, true
		}
	}
	return 0, false
}

func section(w int, title, body string) string {
	head := headingStyle.Render(title) + "\n" + accentStyle.Render(strings.Repeat("─", min(24, w)))
	return lipgloss.NewStyle().Width(w).Padding(1, 2).Render(head + "\n\n" + body)
}

func wrap(w int, s string) string {
	return lipgloss.NewStyle().Width(max(w-4, 10)).Render(s)
}

func (m *Model) renderHome(w int) string {
	body := titleStyle.Render("Hi, I'm ") + accentStyle.Bold(true).Render(ownerName) + "\n" +
		mutedStyle.Render(ownerRole) + "\n\n" +
		wrap(w, tagline) + "\n\n" +
		helpStyle.Render("] next section   [ previous section")
	return lipgloss.NewStyle().Width(w).Padding(2, 2).Render(body)
}

func (m *Model) renderAbout(w int) string {
	var b strings.Builder
	for _, p := range aboutParagraphs {
		b.WriteString(wrap(w, p))
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render("Technical Expertise"))
	for _, s := range m.page.Skills {
		fmt.Fprintf(&b, "\n%-22s %3d%%  %s", s.Name, s.Percentage, progressBar(s.Percentage, min(30, max(w-36, 5)), s.ColorClass))
	}
	return section(w, "About Me", b.String())
}

func (m *Model) renderMilestones(w int) string {
	values := m.counters.Values()
	boxW := max((w-4)/len(counterItems)-2, 12)
	boxes := make([]string, len(counterItems))
	for i, c := range counterItems {
		num := lipgloss.NewStyle().Bold(true).Foreground(colorFor(c.colorClass)).Render(fmt.Sprintf("+%d", values[i]))
		boxes[i] = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Width(boxW).
			Align(lipgloss.Center).
			Render(num + "\n" + mutedStyle.Render(strings.ToUpper(c.title)))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	half := max((w-4)/2, 10)
	for _, ms := range m.page.Milestones {
		badge := lipgloss.NewStyle().Padding(0, 1).Background(colorFor(ms.ColorClass)).Render(ms.Year)
		card := lipgloss.NewStyle().Width(half).Render(badge + " " + titleStyle.Render(ms.Title) + "\n" + ms.Description)
		if ms.Position == "right" {
			card = lipgloss.NewStyle().MarginLeft(max(w-4-half, 0)).Render(card)
		}
		b.WriteString("\n\n")
		b.WriteString(card)
	}
	return section(w, "Milestones & Achievements", b.String())
}

func (m *Model) renderStrategy(w int) string {
	var b strings.Builder
	b.WriteString(wrap(w, "A proven process that turns ideas into products people love to use."))
	for i, s := range strategyItems {
		fmt.Fprintf(&b, "\n\n%s %s\n", lipgloss.NewStyle().Foreground(colorFor(s.colorClass)).Render(fmt.Sprintf("%02d", i+1)), titleStyle.Render(s.title))
		b.WriteString(wrap(w, s.description))
		for _, p := range s.points {
			b.WriteString("\n  • " + p)
		}
	}
	return section(w, "My Strategy", b.String())
}

// renderPortfolio also returns the line of the selected project within the
// rendered block.
func (m *Model) renderPortfolio(w int) (string, int) {
	tabs := make([]string, len(filterTabs))
	for i, t := range filterTabs {
		label := t.key + " " + t.label
		if t.value == m.filter.Current() {
			tabs[i] = tabActiveStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	intro := wrap(w, "Explore a selection of my recent projects showcasing my expertise in mobile and web development.")
	head := intro + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"

	var b strings.Builder
	b.WriteString(head)
	// section() adds one padding line plus the heading and rule and a blank.
	selOffset := 4 + lipgloss.Height(head)
	visible := m.filter.Visible()
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("\nNo projects in this category yet."))
	}
	for i, p := range visible {
		prefix := "  "
		title := titleStyle.Render(p.Title)
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
			title = selectedStyle.Render(p.Title)
		}
		item := prefix + title + "  " + mutedStyle.Render(categoryLabel(p.Category)) + "\n" +
			lipgloss.NewStyle().PaddingLeft(2).Width(max(w-4, 10)).Render(p.Description)
		if i < m.cursor {
			selOffset += lipgloss.Height(item) + 1
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(item)
	}
	return section(w, "Portfolio", b.String()), selOffset
}

func (m *Model) renderContact(w int) string {
	body := wrap(w, "Have a project in mind or want to discuss potential opportunities? Feel free to reach out. I'm always open to new ideas and collaborations.") +
		"\n\n" + accentStyle.Render("Press c to send a message.")
	return section(w, "Get In Touch", body)
}

func categoryLabel(category string) string {
	if category == "" {
		return "Project"
	}
	return strings.ToUpper(category[:1]) + category[1:] + " Project"
}

func (m *Model) renderModal() string {
	p, _ := m.modal.Selected()
	overview := p.Description
	if p.FullDescription != nil && *p.FullDescription != "" {
		overview = *p.FullDescription
	}
	tags := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		tags = append(tags, tagStyle.Render(t))
	}
	inner := headingStyle.Render(p.Title) + "\n" +
		mutedStyle.Render(categoryLabel(p.Category)) + "\n\n" +
		titleStyle.Render("Project Overview") + "\n" +
		wrap(m.width-4, overview) + "\n\n" +
		titleStyle.Render("Technologies Used") + "\n" +
		wrap(m.width-4, strings.Join(tags, " ")) + "\n\n" +
		helpStyle.Render("esc close")
	return panel(inner, m.width)
}

func (m *Model) renderNav() string {
	items := make([]string, len(navItems))
	for i, it := range navItems {
		if it.id == m.tracker.Active() {
			items[i] = navActiveStyle.Render(it.label)
		} else {
			items[i] = navStyle.Render(it.label)
		}
	}
	brand := titleStyle.Render("Kevin") + accentStyle.Bold(true).Render("George")
	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m *Model) renderStatus() string {
	if m.toast != "" {
		if m.toastErr {
			return errorStyle.Render("✖ " + m.toast)
		}
		return successStyle.Render("✔ " + m.toast)
	}
	switch {
	case m.form.open:
		return helpStyle.Render("tab next field • shift+tab previous • ctrl+s send • esc close")
	case m.modal.IsOpen():
		return helpStyle.Render("esc close")
	}
	return helpStyle.Render("↑/↓ scroll • [/] section • 1-4 filter • tab select • enter details • c contact • q quit")
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading…"
	}
	var body string
	switch {
	case m.loading:
		body = "\n  " + m.spin.View() + " Loading portfolio…"
	case m.loadErr != nil:
		body = "\n  " + errorStyle.Render("Could not load the portfolio.") + "\n  " +
			mutedStyle.Render(m.loadErr.Error()) + "\n\n  " + helpStyle.Render("press r to retry")
	case m.form.open:
		body = m.form.view(m.width, m.sending.InFlight())
	case m.modal.IsOpen():
		body = m.renderModal()
	default:
		body = m.vp.View()
	}
	body = lipgloss.NewStyle().Height(m.vp.Height).MaxHeight(m.vp.Height).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderNav(), body, m.renderStatus())
}

// selectedProject is the project under the cursor, if any.
func (m *Model) selectedProject() (models.Project, bool) {
	visible := m.filter.Visible()
	if m.cursor >= len(visible) {
		return models.Project{}, false
	}
	return visible[m.cursor], true
}
