package ui

import (
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authTab int

const (
	tabLogin authTab = iota
	tabRegister
)

const (
	regName = iota
	regEmail
	regPassword
)

type authDoneMsg struct {
	User       api.UserResponse
	Res        client.Result
	Registered bool
}

func (m authDoneMsg) result() client.Result { return m.Res }

type AuthModel struct {
	Client      *client.Client
	Tab         authTab
	LoginInputs []textinput.Model
	RegInputs   []textinput.Model
	FocusIdx    int
	Err         string
	Notice      string
	busy        bool
}

func NewAuthModel(c *client.Client) AuthModel {
	login := make([]textinput.Model, 2)
	login[0] = textinput.New()
	login[0].Prompt = "Email: "
	login[0].Placeholder = "alice@example.com"
	login[0].Focus()
	login[1] = textinput.New()
	login[1].Prompt = "Password: "
	login[1].EchoMode = textinput.EchoPassword

	reg := make([]textinput.Model, 3)
	reg[regName] = textinput.New()
	reg[regName].Prompt = "Name: "
	reg[regName].Placeholder = "Alice"
	reg[regEmail] = textinput.New()
	reg[regEmail].Prompt = "Email: "
	reg[regEmail].Placeholder = "alice@example.com"
	reg[regPassword] = textinput.New()
	reg[regPassword].Prompt = "Password: "
	reg[regPassword].EchoMode = textinput.EchoPassword

	return AuthModel{
		Client:      c,
		Tab:         tabLogin,
		LoginInputs: login,
		RegInputs:   reg,
	}
}

func (m AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AuthModel) inputs() []textinput.Model {
	if m.Tab == tabRegister {
		return m.RegInputs
	}
	return m.LoginInputs
}

func (m *AuthModel) focus(idx int) {
	fields := m.inputs()
	if idx < 0 {
		idx = len(fields) - 1
	}
	if idx >= len(fields) {
		idx = 0
	}
	for i := range fields {
		if i == idx {
			fields[i].Focus()
		} else {
			fields[i].Blur()
		}
	}
	m.FocusIdx = idx
}

func (m *AuthModel) switchTab() {
	if m.Tab == tabLogin {
		m.Tab = tabRegister
	} else {
		m.Tab = tabLogin
	}
	m.Err = ""
	m.focus(0)
}

func (m *AuthModel) resetRegisterForm() {
	for i := range m.RegInputs {
		m.RegInputs[i].SetValue("")
	}
}

func (m AuthModel) submit() (AuthModel, tea.Cmd) {
	c := m.Client
	if m.Tab == tabLogin {
		email := strings.TrimSpace(m.LoginInputs[0].Value())
		password := m.LoginInputs[1].Value()
		if email == "" || password == "" {
			m.Err = "Email and password are required"
			return m, nil
		}
		m.Err = ""
		m.busy = true
		return m, func() tea.Msg {
			data, res := c.Login(email, password)
			return authDoneMsg{User: data.User, Res: res}
		}
	}

	name := strings.TrimSpace(m.RegInputs[regName].Value())
	email := strings.TrimSpace(m.RegInputs[regEmail].Value())
	password := m.RegInputs[regPassword].Value()
	if name == "" || email == "" || password == "" {
		m.Err = "Name, email and password are required"
		return m, nil
	}
	m.Err = ""
	m.busy = true
	return m, func() tea.Msg {
		_, res := c.Register(name, email, password, "")
		return authDoneMsg{Res: res, Registered: true}
	}
}

func (m AuthModel) Update(msg tea.Msg) (AuthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if !msg.Res.OK() {
			m.Err = msg.Res.Message
			return m, nil
		}
		if msg.Registered {
			// back to login with a clean form, no auto-login
			m.resetRegisterForm()
			m.Tab = tabLogin
			m.focus(0)
			m.Notice = "Account created. Please log in."
		}
		return m, nil

	case tea.KeyMsg:
		m.Notice = ""
		switch msg.Type {
		case tea.KeyTab:
			m.switchTab()
			return m, nil
		case tea.KeyDown:
			m.focus(m.FocusIdx + 1)
			return m, nil
		case tea.KeyUp:
			m.focus(m.FocusIdx - 1)
			return m, nil
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			if m.FocusIdx < len(m.inputs())-1 {
				m.focus(m.FocusIdx + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	fields := m.inputs()
	cmds := make([]tea.Cmd, len(fields))
	for i := range fields {
		fields[i], cmds[i] = fields[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m AuthModel) View() string {
	var b strings.Builder

	var tabs string
	if m.Tab == tabRegister {
		tabs = "Login | " + focusedStyle.Render("Register")
	} else {
		tabs = focusedStyle.Render("Login") + " | Register"
	}
	b.WriteString(titleStyle.Render("Taskboard") + "  " + tabs + "\n\n")

	for i, in := range m.inputs() {
		b.WriteString(in.View())
		if i < len(m.inputs())-1 {
			b.WriteRune('\n')
		}
	}

	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("Tab switches forms, up/down moves, Enter submits, Ctrl+C quits"))

	if m.Notice != "" {
		b.WriteString("\n\n" + focusedStyle.Render(m.Notice))
	}
	if m.Err != "" {
		b.WriteString("\n\n" + errorMessageStyle(m.Err))
	}
	return b.String()
}
