package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/client"
	"taskboard/internal/client/view"

	tea "github.com/charmbracelet/bubbletea"
)

const pageSize = 10

type dashMode int

const (
	modeList dashMode = iota
	modeForm
	modeConfirm
	modeAdmin
)

var statusFilters = []string{"", "pending", "in_progress", "completed", "cancelled"}

type tasksLoadedMsg struct {
	Data api.TaskListData
	Res  client.Result
}

func (m tasksLoadedMsg) result() client.Result { return m.Res }

type taskDeletedMsg struct {
	Res client.Result
}

func (m taskDeletedMsg) result() client.Result { return m.Res }

type adminLoadedMsg struct {
	Users api.UsersData
	All   api.AdminTaskListData
	Res   client.Result
}

func (m adminLoadedMsg) result() client.Result { return m.Res }

type loggedOutMsg struct {
	Res client.Result
}

func (m loggedOutMsg) result() client.Result { return m.Res }

type DashModel struct {
	Client      *client.Client
	User        api.UserResponse
	Mode        dashMode
	Tasks       []api.TaskResponse
	Pagination  api.Pagination
	Cursor      int
	Page        int
	StatusIdx   int
	All         bool
	Form        FormModel
	ConfirmTask api.TaskResponse
	Users       api.UsersData
	AllTasks    api.AdminTaskListData
	Err         string
}

func NewDashModel(c *client.Client, user api.UserResponse) DashModel {
	return DashModel{
		Client: c,
		User:   user,
		Page:   1,
	}
}

func (m DashModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashModel) loadCmd() tea.Cmd {
	c := m.Client
	q := client.TaskQuery{
		Page:   m.Page,
		Limit:  pageSize,
		Status: statusFilters[m.StatusIdx],
		All:    m.All,
	}
	return func() tea.Msg {
		data, res := c.Tasks(q)
		return tasksLoadedMsg{Data: data, Res: res}
	}
}

func (m DashModel) deleteCmd(t api.TaskResponse) tea.Cmd {
	c := m.Client
	admin := m.User.IsAdmin()
	ownerID := m.User.ID
	return func() tea.Msg {
		// admins use the admin route for tasks they do not own
		if admin && t.UserID != ownerID {
			return taskDeletedMsg{Res: c.AdminDeleteTask(t.ID)}
		}
		return taskDeletedMsg{Res: c.DeleteTask(t.ID)}
	}
}

func (m DashModel) adminLoadCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		users, res := c.Users()
		if !res.OK() {
			return adminLoadedMsg{Res: res}
		}
		all, res := c.AdminAllTasks("", 0)
		return adminLoadedMsg{Users: users, All: all, Res: res}
	}
}

func (m DashModel) logoutCmd() tea.Cmd {
	c := m.Client
	return func() tea.Msg {
		return loggedOutMsg{Res: c.Logout()}
	}
}

func (m DashModel) selected() (api.TaskResponse, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return api.TaskResponse{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m DashModel) pager() view.Pager {
	return view.Pages(m.Pagination)
}

func (m DashModel) Update(msg tea.Msg) (DashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if !msg.Res.OK() {
			m.Err = msg.Res.Message
			return m, nil
		}
		m.Err = ""
		m.Tasks = msg.Data.Tasks
		m.Pagination = msg.Data.Pagination
		if m.Cursor >= len(m.Tasks) {
			m.Cursor = len(m.Tasks) - 1
		}
		if m.Cursor < 0 {
			m.Cursor = 0
		}
		return m, nil

	case taskDeletedMsg:
		m.Mode = modeList
		if !msg.Res.OK() {
			m.Err = msg.Res.Message
			return m, nil
		}
		m.Err = ""
		return m, m.loadCmd()

	case taskSavedMsg:
		m.Mode = modeList
		if !msg.Res.OK() {
			m.Err = msg.Res.Message
			return m, nil
		}
		m.Err = ""
		return m, m.loadCmd()

	case formCancelledMsg:
		m.Mode = modeList
		return m, nil

	case adminLoadedMsg:
		if !msg.Res.OK() {
			m.Mode = modeList
			m.Err = msg.Res.Message
			return m, nil
		}
		m.Users = msg.Users
		m.AllTasks = msg.All
		return m, nil
	}

	switch m.Mode {
	case modeForm:
		var cmd tea.Cmd
		m.Form, cmd = m.Form.Update(msg)
		return m, cmd

	case modeConfirm:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "y":
				return m, m.deleteCmd(m.ConfirmTask)
			case "n", "esc":
				m.Mode = modeList
			}
		}
		return m, nil

	case modeAdmin:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc", "q":
				m.Mode = modeList
			case "r":
				return m, m.adminLoadCmd()
			}
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Tasks)-1 {
				m.Cursor++
			}
		case "left", "h":
			if m.pager().HasPrev {
				m.Page--
				return m, m.loadCmd()
			}
		case "right", "l":
			if m.pager().HasNext {
				m.Page++
				return m, m.loadCmd()
			}
		case "f":
			m.StatusIdx = (m.StatusIdx + 1) % len(statusFilters)
			m.Page = 1
			return m, m.loadCmd()
		case "a":
			if m.User.IsAdmin() {
				m.All = !m.All
				m.Page = 1
				return m, m.loadCmd()
			}
		case "n":
			m.Form = NewFormModel(m.Client, api.TaskResponse{})
			m.Mode = modeForm
			return m, m.Form.Init()
		case "e":
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			if !view.TaskCard(t, m.User).CanEdit {
				m.Err = "You can only edit your own tasks"
				return m, nil
			}
			m.Form = NewFormModel(m.Client, t)
			m.Mode = modeForm
			return m, m.Form.Init()
		case "d":
			t, ok := m.selected()
			if !ok {
				return m, nil
			}
			if !view.TaskCard(t, m.User).CanDelete {
				m.Err = "You can only delete your own tasks"
				return m, nil
			}
			m.ConfirmTask = t
			m.Mode = modeConfirm
		case "u":
			if m.User.IsAdmin() {
				m.Mode = modeAdmin
				return m, m.adminLoadCmd()
			}
		case "r":
			return m, m.loadCmd()
		case "x":
			return m, m.logoutCmd()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m DashModel) View() string {
	switch m.Mode {
	case modeForm:
		return m.Form.View()
	case modeConfirm:
		card := view.TaskCard(m.ConfirmTask, m.User)
		var b strings.Builder
		b.WriteString(titleStyle.Render("Delete task?") + "\n\n")
		b.WriteString(card.Title + "\n\n")
		b.WriteString(blurredStyle.Render("y confirms, n cancels"))
		return b.String()
	case modeAdmin:
		return m.adminView()
	}
	return m.listView()
}

func (m DashModel) listView() string {
	var b strings.Builder

	heading := fmt.Sprintf("Tasks — %s", m.User.Name)
	if m.All {
		heading = "Tasks — all users"
	}
	b.WriteString(titleStyle.Render(heading) + "\n")

	filter := statusFilters[m.StatusIdx]
	if filter == "" {
		b.WriteString(blurredStyle.Render("Filter: all statuses") + "\n\n")
	} else {
		b.WriteString(blurredStyle.Render("Filter: "+view.StatusBadge(filter)) + "\n\n")
	}

	if len(m.Tasks) == 0 {
		b.WriteString(view.EmptyListMessage + "\n")
	}
	for i, t := range m.Tasks {
		card := view.TaskCard(t, m.User)
		var lines []string
		lines = append(lines, card.Title+"  "+badgeStyle.Render(card.Badge))
		if card.Description != "" {
			lines = append(lines, card.Description)
		}
		meta := card.Date
		if card.ShowOwner {
			meta += "  " + card.Owner
		}
		lines = append(lines, blurredStyle.Render(meta))

		style := cardStyle
		if i == m.Cursor {
			style = selectedCardStyle
		}
		b.WriteString(style.Render(strings.Join(lines, "\n")) + "\n")
	}

	if p := m.pager(); p.Visible {
		b.WriteString("\n" + p.Label)
		hints := []string{}
		if p.HasPrev {
			hints = append(hints, "← prev")
		}
		if p.HasNext {
			hints = append(hints, "next →")
		}
		if len(hints) > 0 {
			b.WriteString("  " + blurredStyle.Render(strings.Join(hints, "  ")))
		}
		b.WriteString("\n")
	}

	help := "n new, e edit, d delete, f filter, r refresh, x logout, q quit"
	if m.User.IsAdmin() {
		help = "n new, e edit, d delete, f filter, a all users, u admin, r refresh, x logout, q quit"
	}
	b.WriteString("\n" + blurredStyle.Render(help))

	if m.Err != "" {
		b.WriteString("\n" + errorMessageStyle(m.Err))
	}
	return b.String()
}

func (m DashModel) adminView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin panel") + "\n\n")
	b.WriteString(fmt.Sprintf("Users: %d   Tasks: %d\n\n", m.Users.Total, m.AllTasks.Total))
	for _, u := range m.Users.Users {
		role := u.Role
		if u.IsAdmin() {
			role = badgeStyle.Render(u.Role)
		}
		b.WriteString(fmt.Sprintf("%s <%s>  %s\n", view.Escape(u.Name), u.Email, role))
	}
	b.WriteString("\n" + blurredStyle.Render("r refresh, esc back"))
	return b.String()
}
