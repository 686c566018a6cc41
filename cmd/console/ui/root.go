package ui

import (
	"time"

	"taskboard/internal/api"
	"taskboard/internal/client"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateAuth state = iota
	stateDashboard
)

const bannerTTL = 5 * time.Second

// resulter lets the root inspect any gateway outcome flowing through
// the program, so an expired session can interrupt every view.
type resulter interface {
	result() client.Result
}

type sessionMsg struct {
	User api.UserResponse
	Res  client.Result
	None bool
}

func (m sessionMsg) result() client.Result { return m.Res }

type clearBannerMsg struct{}

type RootModel struct {
	State    state
	Client   *client.Client
	Auth     AuthModel
	Dash     DashModel
	Banner   string
	Quitting bool
	width    int
	height   int
}

func NewRootModel(c *client.Client) RootModel {
	return RootModel{
		State:  stateAuth,
		Client: c,
		Auth:   NewAuthModel(c),
	}
}

func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.Auth.Init(), bootstrapCmd(m.Client))
}

// bootstrapCmd resumes a persisted session. A token without a cached
// profile means the profile fetch decides; any failure drops the
// session.
func bootstrapCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		if c.Store.Token() == "" {
			return sessionMsg{None: true}
		}
		if u, ok := c.Store.User(); ok {
			return sessionMsg{User: u, Res: client.Result{Outcome: client.OK}}
		}
		u, res := c.Me()
		if !res.OK() {
			if err := c.Store.Clear(); err != nil {
				return sessionMsg{Res: res}
			}
		}
		return sessionMsg{User: u, Res: res}
	}
}

func (m RootModel) showBanner(text string) (RootModel, tea.Cmd) {
	m.Banner = text
	return m, tea.Tick(bannerTTL, func(time.Time) tea.Msg { return clearBannerMsg{} })
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			return m, tea.Quit
		}

	case clearBannerMsg:
		m.Banner = ""
		return m, nil

	case sessionMsg:
		if msg.None {
			return m, nil
		}
		if msg.Res.OK() {
			m.State = stateDashboard
			m.Dash = NewDashModel(m.Client, msg.User)
			return m, m.Dash.Init()
		}
		m.State = stateAuth
		return m.showBanner(msg.Res.Message)

	case authDoneMsg:
		if msg.Res.OK() && !msg.Registered {
			m.State = stateDashboard
			m.Dash = NewDashModel(m.Client, msg.User)
			cmds = append(cmds, m.Dash.Init())
		}
	}

	// Any unauthorized outcome drops back to the login view; the
	// gateway has already cleared the stored session. Failed login
	// attempts stay with the auth view itself.
	if rm, ok := msg.(resulter); ok && rm.result().Outcome == client.Unauthorized && m.State != stateAuth {
		m.State = stateAuth
		m.Auth = NewAuthModel(m.Client)
		next, cmd := m.showBanner(rm.result().Message)
		return next, tea.Batch(cmd, next.Auth.Init())
	}
	if rm, ok := msg.(resulter); ok && rm.result().Outcome == client.NetworkError {
		var cmd tea.Cmd
		m, cmd = m.showBanner(rm.result().Message)
		cmds = append(cmds, cmd)
	}

	switch m.State {
	case stateAuth:
		var cmd tea.Cmd
		m.Auth, cmd = m.Auth.Update(msg)
		cmds = append(cmds, cmd)

	case stateDashboard:
		if lm, ok := msg.(loggedOutMsg); ok {
			m.State = stateAuth
			m.Auth = NewAuthModel(m.Client)
			cmds = append(cmds, m.Auth.Init())
			if lm.Res.Message != "" {
				var cmd tea.Cmd
				m, cmd = m.showBanner(lm.Res.Message)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.Dash, cmd = m.Dash.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RootModel) View() string {
	if m.Quitting {
		return "Bye!\n"
	}
	var body string
	switch m.State {
	case stateAuth:
		body = m.Auth.View()
	case stateDashboard:
		body = m.Dash.View()
	}
	if m.Banner != "" {
		body = bannerStyle.Render(m.Banner) + "\n\n" + body
	}
	return body
}
