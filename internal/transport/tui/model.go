package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultSessionID = "tui-local"

// AgentPort is the TUI-facing subset of the agent service.
type AgentPort interface {
	Generate(ctx context.Context, sessionID, prompt string) (string, error)
}

type replyMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the interactive chat.
type Model struct {
	ctx      context.Context
	agent    AgentPort
	input    textinput.Model
	viewport viewport.Model
	lines    []string
	status   string
	waiting  bool
	ready    bool
}

func New(ctx context.Context, agent AgentPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Digite sua mensagem e pressione Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:      ctx,
		agent:    agent,
		input:    ti,
		viewport: vp,
		status:   "Pronto. Ctrl+C para sair.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-ch)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.waiting {
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" {
				return m, nil
			}
			m.input.Reset()
			m.lines = append(m.lines, userStyle.Render("Você: ")+prompt)
			m.waiting = true
			m.status = "Pensando..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, m.ask(prompt)
		}
	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Erro: " + msg.err.Error()
		} else {
			m.status = "Pronto. Ctrl+C para sair."
			m.lines = append(m.lines, botStyle.Render("Bot: ")+msg.text)
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.agent.Generate(m.ctx, defaultSessionID, prompt)
		return replyMsg{text: reply, err: err}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("RouteBot")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.lines) == 0 {
		return "Nenhuma mensagem ainda."
	}
	return strings.Join(m.lines, "\n\n")
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
