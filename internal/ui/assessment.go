package ui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"ailit/internal/profile"
	"ailit/internal/session"
	"ailit/internal/store"
	"ailit/internal/survey"
	"ailit/internal/ui/components"
	"ailit/internal/ui/theme"
)

// Field order of the profile form.
const (
	fieldJobTitle = iota
	fieldTeam
	fieldSubDepartment
	fieldJobLevel
	fieldAIUsage
	fieldTools
	fieldWorkFocus
	fieldCount
)

// Model is the root Bubble Tea model for the assessment flow: the profile
// form, then one multi-select screen per question. Scoring and
// recommendations happen after the program exits.
type Model struct {
	sess     *session.Session
	catalog  *survey.Catalog
	progress store.ProgressRepo

	inputs  []components.TextInput
	focus   int
	formErr string

	question components.MultiSelect

	width     int
	height    int
	completed bool
}

// NewModel builds the flow model around an already-resumed session.
func NewModel(sess *session.Session, catalog *survey.Catalog, progress store.ProgressRepo) Model {
	inputs := make([]components.TextInput, fieldCount)
	inputs[fieldJobTitle] = components.NewTextInput("Job title", "e.g. Product Designer", 60)
	inputs[fieldTeam] = components.NewTextInput("Team", "e.g. Marketing", 60)
	inputs[fieldSubDepartment] = components.NewTextInput("Sub-department (optional)", "", 60)
	inputs[fieldJobLevel] = components.NewTextInput("Job level", "P3 or M4", 8)
	inputs[fieldAIUsage] = components.NewTextInput("AI usage", "never, monthly, weekly or daily", 16)
	inputs[fieldTools] = components.NewTextInput("AI tools you've used (optional)", "comma-separated", 120)
	inputs[fieldWorkFocus] = components.NewTextInput("Primary work focus (optional)", "", 120)

	m := Model{
		sess:     sess,
		catalog:  catalog,
		progress: progress,
		inputs:   inputs,
	}
	if sess.Section() == session.SectionQuestions {
		m.syncQuestion()
	}
	return m
}

// Completed reports whether the user reached the end of the questionnaire.
func (m Model) Completed() bool {
	return m.completed
}

func (m Model) Init() tea.Cmd {
	if m.sess.Section() == session.SectionProfile {
		return m.inputs[m.focus].Focus()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.save()
			return m, tea.Quit
		}

		switch m.sess.Section() {
		case session.SectionProfile:
			return m.updateProfile(msg)
		case session.SectionQuestions:
			return m.updateQuestion(msg)
		}
	}

	return m, nil
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		if msg.String() == "enter" && m.focus == fieldCount-1 {
			return m.submitProfile()
		}
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := m.focus + delta
	if next < 0 || next >= fieldCount {
		return m, nil
	}
	m.inputs[m.focus].Blur()
	m.focus = next
	return m, m.inputs[m.focus].Focus()
}

func (m Model) submitProfile() (tea.Model, tea.Cmd) {
	p := profile.Profile{
		JobTitle:         strings.TrimSpace(m.inputs[fieldJobTitle].Value()),
		Team:             strings.TrimSpace(m.inputs[fieldTeam].Value()),
		SubDepartment:    strings.TrimSpace(m.inputs[fieldSubDepartment].Value()),
		JobLevel:         strings.TrimSpace(m.inputs[fieldJobLevel].Value()),
		AIUsageFrequency: profile.UsageFrequency(strings.ToLower(strings.TrimSpace(m.inputs[fieldAIUsage].Value()))),
		ToolsUsed:        splitList(m.inputs[fieldTools].Value()),
		PrimaryWorkFocus: strings.TrimSpace(m.inputs[fieldWorkFocus].Value()),
	}

	if err := p.Validate(); err != nil {
		m.formErr = err.Error()
		for i := range m.inputs {
			m.inputs[i].MarkInvalid(false)
		}
		m.inputs[invalidField(p)].MarkInvalid(true)
		return m, nil
	}

	m.formErr = ""
	m.sess.SetProfile(p)
	m.save()
	m.syncQuestion()
	return m, nil
}

// invalidField maps the first validation failure to the form field that
// caused it, mirroring the order Validate checks them in.
func invalidField(p profile.Profile) int {
	if strings.TrimSpace(p.JobTitle) == "" {
		return fieldJobTitle
	}
	if strings.TrimSpace(p.Team) == "" {
		return fieldTeam
	}
	if _, err := profile.ParseJobLevel(p.JobLevel); err != nil {
		return fieldJobLevel
	}
	return fieldAIUsage
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := m.sess.Current()
	if q == nil {
		m.completed = true
		return m, tea.Quit
	}

	switch key := msg.String(); key {
	case "esc":
		m.save()
		return m, tea.Quit

	case " ", "space":
		m.toggle(q, m.question.Cursor)
		return m, nil

	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(q.Options) {
			m.toggle(q, idx)
		}
		return m, nil

	case "enter", "right", "l", "n":
		if !m.sess.Advance() {
			m.completed = true
			m.save()
			return m, tea.Quit
		}
		m.save()
		m.syncQuestion()
		return m, nil

	case "left", "h", "b":
		if m.sess.Back() {
			m.syncQuestion()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

// toggle flips one option in the live answer store and mirrors the change
// into the checkbox list.
func (m *Model) toggle(q *survey.Question, idx int) {
	if idx < 0 || idx >= len(q.Options) {
		return
	}
	if err := m.sess.Answers().Toggle(q.ID, q.Options[idx].Value); err != nil {
		return
	}
	m.question.Chosen[idx] = !m.question.Chosen[idx]
	m.save()
}

// syncQuestion rebuilds the checkbox list from the current question and any
// previously selected answers.
func (m *Model) syncQuestion() {
	q := m.sess.Current()
	if q == nil {
		return
	}

	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = fmt.Sprintf("%s — %s", opt.Label, opt.Description)
	}
	ms := components.NewMultiSelect(q.Text, options)
	for _, v := range m.sess.Answers().Get(q.ID) {
		for i, opt := range q.Options {
			if opt.Value == v {
				ms.Chosen[i] = true
			}
		}
	}
	m.question = ms
}

// save persists progress after every change. Failures are non-fatal; the
// flow keeps going on the in-memory state.
func (m *Model) save() {
	_ = m.sess.Save(context.Background(), m.progress)
}

func (m Model) View() tea.View {
	v := tea.NewView("")

	var b strings.Builder
	b.WriteString(theme.Title.Render("AI Literacy Assessment"))
	b.WriteString("\n\n")

	switch m.sess.Section() {
	case session.SectionProfile:
		b.WriteString(theme.Subtitle.Render("A few questions about your role first."))
		b.WriteString("\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n\n")
		}
		if m.formErr != "" {
			b.WriteString(theme.Invalid.Render(m.formErr))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render("Enter: next field · last field submits · Ctrl+C: save and quit"))

	case session.SectionQuestions:
		q := m.sess.Current()
		if q != nil {
			width := m.width
			if width <= 0 || width > 72 {
				width = 72
			}
			bar := components.NewProgressBar(q.Category, m.sess.Index()+1, len(m.catalog.Questions), width)
			b.WriteString(bar.View())
			b.WriteString("\n\n")
			b.WriteString(m.question.View())
			b.WriteString("\n")
			b.WriteString(theme.Subtitle.Render("Select every answer that applies to you."))
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("1-4/Space: toggle · Enter: next · ←: back · Esc: save and quit"))
		}

	default:
		b.WriteString(theme.Subtitle.Render("Scoring..."))
	}

	v.SetContent(b.String())
	return v
}

// Run drives the interactive assessment and reports whether the user reached
// the end of the questionnaire (as opposed to saving and quitting early).
func Run(sess *session.Session, catalog *survey.Catalog, progress store.ProgressRepo) (bool, error) {
	p := tea.NewProgram(NewModel(sess, catalog, progress))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Completed(), nil
	}
	return false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
