package ui

import (
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/client"
	"taskboard/internal/client/view"
	"taskboard/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type taskSavedMsg struct {
	Res client.Result
}

func (m taskSavedMsg) result() client.Result { return m.Res }

type formCancelledMsg struct{}

const (
	formTitle = iota
	formDescription
	formStatus
)

// FormModel serves both create and edit; a zero TaskID means create.
type FormModel struct {
	Client    *client.Client
	TaskID    int
	Title     textinput.Model
	Desc      textinput.Model
	StatusIdx int
	Focus     int
	Err       string
}

func NewFormModel(c *client.Client, t api.TaskResponse) FormModel {
	title := textinput.New()
	title.Prompt = "Title: "
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200
	title.Focus()

	desc := textinput.New()
	desc.Prompt = "Description: "

	statusIdx := 0
	for i, s := range model.Statuses() {
		if string(s) == t.Status {
			statusIdx = i
		}
	}
	if t.ID != 0 {
		title.SetValue(t.Title)
		desc.SetValue(t.Description)
	}

	return FormModel{
		Client:    c,
		TaskID:    t.ID,
		Title:     title,
		Desc:      desc,
		StatusIdx: statusIdx,
	}
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) focus(idx int) {
	if idx < 0 {
		idx = formStatus
	}
	if idx > formStatus {
		idx = formTitle
	}
	m.Focus = idx
	m.Title.Blur()
	m.Desc.Blur()
	switch idx {
	case formTitle:
		m.Title.Focus()
	case formDescription:
		m.Desc.Focus()
	}
}

func (m FormModel) status() model.Status {
	return model.Statuses()[m.StatusIdx]
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	title := strings.TrimSpace(m.Title.Value())
	if title == "" {
		// never hits the network for a blank title
		m.Err = "Title is required"
		return m, nil
	}
	m.Err = ""

	c := m.Client
	id := m.TaskID
	description := m.Desc.Value()
	status := string(m.status())

	return m, func() tea.Msg {
		if id == 0 {
			_, res := c.CreateTask(api.CreateTaskRequest{
				Title:       title,
				Description: description,
				Status:      status,
			})
			return taskSavedMsg{Res: res}
		}
		_, res := c.UpdateTask(id, api.UpdateTaskRequest{
			Title:       &title,
			Description: &description,
			Status:      &status,
		})
		return taskSavedMsg{Res: res}
	}
}

func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m, func() tea.Msg { return formCancelledMsg{} }
		case tea.KeyTab, tea.KeyDown:
			m.focus(m.Focus + 1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus(m.Focus - 1)
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyLeft, tea.KeyRight:
			if m.Focus == formStatus {
				n := len(model.Statuses())
				if key.Type == tea.KeyLeft {
					m.StatusIdx = (m.StatusIdx + n - 1) % n
				} else {
					m.StatusIdx = (m.StatusIdx + 1) % n
				}
				return m, nil
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Title, cmd = m.Title.Update(msg)
	cmds = append(cmds, cmd)
	m.Desc, cmd = m.Desc.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m FormModel) View() string {
	var b strings.Builder

	heading := "New task"
	if m.TaskID != 0 {
		heading = "Edit task"
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")

	b.WriteString(m.Title.View() + "\n")
	b.WriteString(m.Desc.View() + "\n")

	statusLine := "Status: " + view.StatusBadge(string(m.status()))
	if m.Focus == formStatus {
		statusLine = focusedStyle.Render(statusLine + "  ◀ ▶")
	} else {
		statusLine = blurredStyle.Render(statusLine)
	}
	b.WriteString(statusLine + "\n\n")

	b.WriteString(blurredStyle.Render("Tab moves, ←/→ change status, Enter saves, Esc cancels"))

	if m.Err != "" {
		b.WriteString("\n\n" + errorMessageStyle(m.Err))
	}
	return b.String()
}
