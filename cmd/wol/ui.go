package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/world-of-london/internal/session"
	"github.com/jwebster45206/world-of-london/pkg/actor"
	"github.com/jwebster45206/world-of-london/pkg/state"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PlaceHolderText = "go <direction>, look, take <item>, eat, quit, help, random"
	GameOverText    = "The game has ended. Press Enter to leave."
)

type entryRole int

const (
	roleGame entryRole = iota
	rolePlayer
	roleNote
)

type entry struct {
	role entryRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx          context.Context
	session      *session.Session
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	transcript   []entry
	ready        bool
	width        int
	height       int

	// Quit confirmation state
	showQuitModal bool

	// copyFn writes to the system clipboard; tests replace it.
	copyFn func(string) error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

var titleCaser = cases.Title(language.BritishEnglish)

func NewConsoleUI(ctx context.Context, s *session.Session) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:          ctx,
		session:      s,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		transcript:   []entry{{role: roleGame, text: s.Welcome(ctx)}},
		copyFn:       clipboard.WriteAll,
	}
}

// titleKey turns a room or character key into a display label.
func titleKey(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

func writeMetadata(sum state.Summary) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("LONDON") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(sum.ID.String()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	content.WriteString(titleKey(sum.Room) + "\n\n")

	content.WriteString("Turn:\n")
	content.WriteString(fmt.Sprintf("%d of %d\n\n", sum.Turn, sum.TimeLimit))

	content.WriteString("Carrying:\n")
	if len(sum.Inventory) == 0 {
		content.WriteString("Nothing\n")
	} else {
		for _, it := range sum.Inventory {
			content.WriteString("• " + it + "\n")
		}
	}
	content.WriteString("\n")

	content.WriteString("Sightings:\n")
	for _, id := range actor.IDs() {
		if id == actor.Player {
			continue
		}
		content.WriteString(fmt.Sprintf("• %s: %s\n", titleKey(id.String()), titleKey(sum.Locations[id.String()])))
	}

	if sum.Finished {
		content.WriteString("\nOutcome:\n")
		content.WriteString(titleKey(string(sum.Outcome)) + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /copy: Copy last reply\n")

	return content.String()
}

// writeChatContent builds the transcript for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("WORLD OF LONDON") + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.transcript {
		switch e.role {
		case roleGame:
			content.WriteString(gameStyle.Render(wordwrap.String(strings.Trim(e.text, "\n"), chatWidth)) + "\n\n")
		case rolePlayer:
			content.WriteString(userStyle.Render("> ") + wordwrap.String(e.text, chatWidth-2) + "\n\n")
		case roleNote:
			content.WriteString(noteStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n\n")
		}
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.session.Game().Summary()))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.session.Finished() {
				return m, tea.Quit
			}
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.session.Finished() {
				return m, tea.Quit
			}

			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleSlash(input)
			}
			return m.play(input), nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// play sends one line to the game and records the reply.
func (m ConsoleUI) play(input string) ConsoleUI {
	reply := m.session.Handle(m.ctx, input)
	m.transcript = append(m.transcript,
		entry{role: rolePlayer, text: input},
		entry{role: roleGame, text: reply},
	)
	if m.session.Finished() {
		m.textarea.Placeholder = GameOverText
	}
	m.writeChatContent()
	m.metaViewport.SetContent(writeMetadata(m.session.Game().Summary()))
	return m
}

func (m ConsoleUI) handleSlash(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/copy":
		last := m.lastReply()
		if err := m.copyFn(last); err != nil {
			m.transcript = append(m.transcript, entry{role: roleNote, text: "Could not copy: " + err.Error()})
		} else {
			m.transcript = append(m.transcript, entry{role: roleNote, text: "Copied the last reply."})
		}
	default:
		m.transcript = append(m.transcript, entry{role: roleNote, text: "Console commands: /copy"})
	}
	m.writeChatContent()
	return m, nil
}

func (m ConsoleUI) lastReply() string {
	for i := len(m.transcript) - 1; i >= 0; i-- {
		if m.transcript[i].role == roleGame {
			return m.transcript[i].text
		}
	}
	return ""
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			m.session.Handle(m.ctx, string(state.CmdQuit))
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				m.session.Handle(m.ctx, string(state.CmdQuit))
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave London?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
