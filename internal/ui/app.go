package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/config"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/forms"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/store"
	"github.com/yildizm/TalentTrack/internal/transcript"
	"github.com/yildizm/TalentTrack/internal/ui/components"
)

// Model is the interactive dashboard. It owns the draft forms, listens
// to the dispatcher's outcome stream and re-renders from the store on
// every phase change.
type Model struct {
	width    int
	height   int
	ready    bool
	quitting bool

	dispatcher *ops.Dispatcher
	store      *store.Store
	cfg        *config.Config
	outcomes   <-chan ops.Outcome

	// Navigation state
	currentView   View
	selectedIndex int
	maxIndex      int
	category      common.Category

	// Draft forms
	loginForm     *forms.LoginForm
	chatForm      *forms.ChatForm
	candidateForm *forms.CandidateForm

	// Field editing state
	fields     []*textField
	focusIndex int
	formError  string

	statusLine string

	// Animation state
	spinnerFrame int
	tick         int

	// Colors and styles
	primaryColor   lipgloss.AdaptiveColor
	secondaryColor lipgloss.AdaptiveColor
	successColor   lipgloss.AdaptiveColor
	warningColor   lipgloss.AdaptiveColor
	errorColor     lipgloss.AdaptiveColor
	selectedColor  lipgloss.AdaptiveColor
}

// NewModel creates the dashboard model. The dispatcher subscription is
// taken here so no outcome published after construction is missed.
func NewModel(dispatcher *ops.Dispatcher, st *store.Store, cfg *config.Config) *Model {
	m := &Model{
		dispatcher:    dispatcher,
		store:         st,
		cfg:           cfg,
		outcomes:      dispatcher.Subscribe(16),
		currentView:   ViewLogin,
		category:      common.CategoryResume,
		loginForm:     forms.NewLoginForm(),
		chatForm:      forms.NewChatForm(cfg.Chat.MaxLength),
		candidateForm: forms.NewCandidateForm(forms.NewResumeUploadForm(cfg.Upload)),

		primaryColor:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
		secondaryColor: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		successColor:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
		warningColor:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
		errorColor:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
		selectedColor:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	}

	if st.Session().Authenticated {
		m.currentView = ViewMenu
	}
	m.enterView(m.currentView)
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		waitForOutcome(m.outcomes),
		tick(),
	)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case outcomeMsg:
		return m.handleOutcome(msg)
	}

	return m, nil
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

// handleTick handles timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	return m, tick()
}

// handleOutcome reacts to one dispatcher phase change
func (m *Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	outcome := msg.outcome

	switch outcome.Phase {
	case ops.PhasePending:
		m.statusLine = emoji.GetEmoji("pending") + " " + string(outcome.Op) + " in progress"
	case ops.PhaseFulfilled:
		m.statusLine = emoji.GetEmoji("success") + " " + string(outcome.Op) + " completed in " + outcome.Elapsed.Round(time.Millisecond).String()
	case ops.PhaseRejected:
		m.statusLine = emoji.GetEmoji("error") + " " + outcome.Err
	}

	if outcome.Op == ops.OpChatSummary && outcome.Phase != ops.PhasePending {
		m.chatForm.SetProcessing(false)
		m.syncChatField()
	}
	if outcome.Op == ops.OpLogin && outcome.Phase == ops.PhaseFulfilled {
		m.enterView(ViewMenu)
	}

	return m, waitForOutcome(m.outcomes)
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with text fields consume printable keys first.
	if m.editing() {
		return m.handleEditingKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m.handleEscape()
	case "h", "?":
		m.enterView(ViewHelp)
		return m, nil
	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
		return m, nil
	case "down", "j":
		if m.selectedIndex < m.maxIndex {
			m.selectedIndex++
		}
		return m, nil
	case "enter", " ":
		return m.handleSelection()
	case "c":
		if m.authenticated() {
			m.enterView(ViewChat)
		}
		return m, nil
	case "n":
		if m.authenticated() {
			m.enterView(ViewCandidate)
		}
		return m, nil
	case "1", "2", "3", "4", "m":
		return m.handleNumberKey(msg.String())
	}
	return m, nil
}

// editing reports whether the current view owns text fields
func (m *Model) editing() bool {
	switch m.currentView {
	case ViewLogin, ViewChat, ViewCandidate:
		return len(m.fields) > 0
	default:
		return false
	}
}

// handleEditingKey routes keys while a form view is active
func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.handleEscape()
	case tea.KeyTab, tea.KeyDown:
		m.focusIndex = (m.focusIndex + 1) % len(m.fields)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusIndex = (m.focusIndex - 1 + len(m.fields)) % len(m.fields)
		return m, nil
	case tea.KeyEnter:
		return m.handleFormSubmit()
	}

	if m.fields[m.focusIndex].HandleKey(msg) {
		m.formError = ""
	}
	return m, nil
}

// handleEscape returns to the menu, or the login screen when signed out
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewLogin, ViewMenu:
		return m, nil
	case ViewDetail:
		m.enterView(ViewRecords)
	default:
		if m.authenticated() {
			m.enterView(ViewMenu)
		} else {
			m.enterView(ViewLogin)
		}
	}
	return m, nil
}

// handleSelection handles enter key presses outside form views
func (m *Model) handleSelection() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewMenu:
		switch m.selectedIndex {
		case 0:
			m.enterView(ViewChat)
		case 1:
			m.enterView(ViewCandidate)
		case 2, 3, 4, 5:
			m.category = common.Categories()[m.selectedIndex-2]
			m.enterView(ViewRecords)
		case 6:
			m.enterView(ViewHelp)
		}
	case ViewRecords:
		if m.maxIndex >= 0 && m.recordCount() > 0 {
			m.enterView(ViewDetail)
		}
	}
	return m, nil
}

// handleNumberKey handles numbered shortcuts
func (m *Model) handleNumberKey(key string) (tea.Model, tea.Cmd) {
	if !m.authenticated() {
		return m, nil
	}

	switch key {
	case "1":
		m.category = common.CategoryResume
		m.enterView(ViewRecords)
	case "2":
		m.category = common.CategoryInterview
		m.enterView(ViewRecords)
	case "3":
		m.category = common.CategoryChat
		m.enterView(ViewRecords)
	case "4":
		m.category = common.CategoryBias
		m.enterView(ViewRecords)
	case "m":
		m.enterView(ViewMenu)
	}
	return m, nil
}

// handleFormSubmit validates and dispatches the active form
func (m *Model) handleFormSubmit() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewLogin:
		return m.submitLogin()
	case ViewChat:
		return m.submitChat()
	case ViewCandidate:
		return m.submitCandidate()
	}
	return m, nil
}

func (m *Model) submitLogin() (tea.Model, tea.Cmd) {
	m.loginForm.Email = m.fields[0].String()
	m.loginForm.Password = m.fields[1].String()

	var cmd tea.Cmd
	err := m.loginForm.Submit(func(email, password string) {
		cmd = dispatch(func() {
			_, _ = m.dispatcher.Login(context.Background(), api.LoginRequest{
				Email:    email,
				Password: password,
			})
		})
	})
	if err != nil {
		m.formError = err.Error()
		return m, nil
	}

	m.fields[1].Clear()
	return m, cmd
}

func (m *Model) submitChat() (tea.Model, tea.Cmd) {
	m.chatForm.SetDraft(m.fields[0].String())

	var cmd tea.Cmd
	err := m.chatForm.Submit(func(text string) {
		messages := chatMessages(text)
		cmd = dispatch(func() {
			_, _ = m.dispatcher.SummarizeChat(context.Background(), api.ChatSummaryRequest{
				Messages: messages,
			})
		})
	})
	if err != nil {
		m.formError = err.Error()
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitCandidate() (tea.Model, tea.Cmd) {
	m.candidateForm.Name = m.fields[0].String()
	m.candidateForm.Email = m.fields[1].String()
	m.candidateForm.Position = m.fields[2].String()
	m.candidateForm.Phone = m.fields[3].String()
	m.candidateForm.Notes = m.fields[4].String()

	if path := strings.TrimSpace(m.fields[5].String()); path != "" && path != m.candidateForm.ResumePath() {
		if err := m.candidateForm.AttachResume(path); err != nil {
			m.formError = err.Error()
			return m, nil
		}
	}

	var cmd tea.Cmd
	err := m.candidateForm.Submit(func(c common.Candidate) {
		cmd = m.dispatchCandidate(c)
	})
	if err != nil {
		m.formError = err.Error()
		return m, nil
	}

	m.enterView(ViewMenu)
	return m, cmd
}

// dispatchCandidate uploads the attached resume, or requests a match
// against the entered position when no file is attached
func (m *Model) dispatchCandidate(c common.Candidate) tea.Cmd {
	if path := m.candidateForm.ResumePath(); path != "" {
		upload, err := api.OpenUpload(path)
		if err != nil {
			m.store.SetResumeError(err.Error())
			m.statusLine = emoji.GetEmoji("error") + " " + err.Error()
			return nil
		}
		return dispatch(func() {
			defer upload.Close()
			_, _ = m.dispatcher.UploadResumes(context.Background(), []api.Upload{upload.Upload})
		})
	}

	return dispatch(func() {
		_, _ = m.dispatcher.MatchResumes(context.Background(), api.MatchRequest{
			JobTitle:       c.Position,
			JobDescription: c.Notes,
		})
	})
}

// chatMessages converts pasted text to messages, treating structured
// transcripts as multi-party and anything else as a single note
func chatMessages(text string) []common.ChatMessage {
	if messages, err := transcript.ParseAuto([]byte(text)); err == nil {
		return messages
	}
	return []common.ChatMessage{{Sender: "recruiter", Text: text, SentAt: time.Now()}}
}

// enterView resets per-view state and installs the view's fields
func (m *Model) enterView(view View) {
	m.currentView = view
	m.selectedIndex = 0
	m.focusIndex = 0
	m.formError = ""
	m.fields = nil

	switch view {
	case ViewLogin:
		email := newTextField("Email")
		email.SetValue(m.loginForm.Email)
		m.fields = []*textField{email, newSecretField("Password")}
	case ViewChat:
		m.fields = []*textField{newTextField("Conversation")}
		m.fields[0].limit = m.cfg.Chat.MaxLength + 1
		m.syncChatField()
	case ViewCandidate:
		m.candidateForm.Open()
		name := newTextField("Name")
		name.SetValue(m.candidateForm.Name)
		mail := newTextField("Email")
		mail.SetValue(m.candidateForm.Email)
		position := newTextField("Position")
		position.SetValue(m.candidateForm.Position)
		phone := newTextField("Phone")
		phone.SetValue(m.candidateForm.Phone)
		notes := newTextField("Notes")
		notes.SetValue(m.candidateForm.Notes)
		resume := newTextField("Resume file")
		resume.SetValue(m.candidateForm.ResumePath())
		m.fields = []*textField{name, mail, position, phone, notes, resume}
	}

	m.updateMaxIndex()
}

// syncChatField mirrors the form draft into the edit buffer
func (m *Model) syncChatField() {
	if m.currentView == ViewChat && len(m.fields) > 0 {
		m.fields[0].SetValue(m.chatForm.Draft())
	}
}

// updateMaxIndex updates the maximum selectable index for current view
func (m *Model) updateMaxIndex() {
	switch m.currentView {
	case ViewMenu:
		m.maxIndex = 6 // 7 menu items (0-6)
	case ViewRecords:
		m.maxIndex = maxInt(0, m.recordCount()-1)
	default:
		m.maxIndex = 0
	}
}

// recordCount returns the number of records in the active category
func (m *Model) recordCount() int {
	return m.store.Counts()[m.category]
}

func (m *Model) authenticated() bool {
	return m.store.Session().Authenticated
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// View renders the model
func (m *Model) View() string {
	if !m.ready {
		return m.renderLoadingScreen()
	}
	if m.quitting {
		return m.renderGoodbyeScreen()
	}

	switch m.currentView {
	case ViewLogin:
		return m.renderLoginView()
	case ViewMenu:
		return m.renderMenu()
	case ViewChat:
		return m.renderChatView()
	case ViewCandidate:
		return m.renderCandidateView()
	case ViewRecords:
		return m.renderRecordsView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderMenu()
	}
}

func (m *Model) renderLoadingScreen() string {
	loading := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render("Starting TalentTrack...")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
}

func (m *Model) renderGoodbyeScreen() string {
	goodbye := lipgloss.NewStyle().
		Foreground(m.successColor).
		Bold(true).
		Render("Thanks for using TalentTrack! 👋")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
}

// renderStatusLine renders the async status footer shared by all views
func (m *Model) renderStatusLine() string {
	if m.store.AnyLoading() {
		spinner := lipgloss.NewStyle().
			Foreground(m.primaryColor).
			Bold(true).
			Render(spinnerChars[m.spinnerFrame])
		return spinner + " " + lipgloss.NewStyle().Foreground(m.warningColor).Render(m.statusLine)
	}
	if m.statusLine == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(m.secondaryColor).Render(m.statusLine)
}

func (m *Model) renderFormError() string {
	if m.formError == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(m.errorColor).Render(emoji.GetEmoji("warning") + " " + m.formError)
}

func (m *Model) renderLoginView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("session") + " Sign in to TalentTrack")

	labelStyle := lipgloss.NewStyle().Foreground(m.secondaryColor)
	valueStyle := lipgloss.NewStyle().Foreground(m.primaryColor)

	fieldLines := make([]string, 0, len(m.fields))
	for i, field := range m.fields {
		fieldLines = append(fieldLines, field.Render(i == m.focusIndex, labelStyle, valueStyle))
	}

	session := m.store.Session()
	var errLine string
	if session.Err != "" {
		errLine = lipgloss.NewStyle().Foreground(m.errorColor).Render(emoji.GetEmoji("error") + " " + session.Err)
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Tab switch field • Enter sign in • Ctrl+C quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, fieldLines...),
		"",
		m.renderFormError(),
		errLine,
		m.renderStatusLine(),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(minInt(m.width-4, 60))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderMenu() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("rocket") + " TalentTrack")

	session := m.store.Session()
	counts := m.store.Counts()

	recruiter := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(emoji.GetEmoji("candidate") + " " + session.User.Name)

	statsStyled := components.StatsRow(
		components.NewCountCard("Resumes", counts[common.CategoryResume]).SetIcon(emoji.GetEmoji("resume")),
		components.NewCountCard("Interviews", counts[common.CategoryInterview]).SetIcon(emoji.GetEmoji("interview")),
		components.NewCountCard("Chats", counts[common.CategoryChat]).SetIcon(emoji.GetEmoji("chat")),
		components.NewCountCard("Bias", counts[common.CategoryBias]).SetIcon(emoji.GetEmoji("bias")),
	)

	menuItems := []string{
		emoji.GetEmoji("chat") + " Summarize a Conversation",
		emoji.GetEmoji("candidate") + " Add a Candidate",
		emoji.GetEmoji("resume") + " Resume Matches",
		emoji.GetEmoji("interview") + " Interview Analyses",
		emoji.GetEmoji("chat") + " Chat Summaries",
		emoji.GetEmoji("bias") + " Bias Reports",
		emoji.GetEmoji("help") + " Help",
	}

	menuList := make([]string, 0, len(menuItems))
	for i, item := range menuItems {
		style := lipgloss.NewStyle().Foreground(m.secondaryColor)
		prefix := "  "

		if i == m.selectedIndex {
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
			prefix = "▶ "
		}

		menuList = append(menuList, style.Render(prefix+item))
	}

	instructions := []string{
		emoji.GetEmoji("target") + " Navigation: ↑↓ or j/k to move, Enter to select",
		emoji.GetEmoji("number") + " Quick keys: 1-Resumes, 2-Interviews, 3-Chats, 4-Bias, c-Chat, n-Candidate",
		emoji.GetEmoji("door") + " Exit: q to quit, Esc to go back",
	}

	instructionList := make([]string, 0, len(instructions))
	for _, instruction := range instructions {
		instructionList = append(instructionList, lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render(instruction))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		recruiter,
		"",
		statsStyled,
		"",
		lipgloss.JoinVertical(lipgloss.Left, menuList...),
		"",
		m.renderStatusLine(),
		"",
		lipgloss.JoinVertical(lipgloss.Left, instructionList...),
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(minInt(m.width-4, 90))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderChatView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("chat") + " Summarize a Conversation")

	labelStyle := lipgloss.NewStyle().Foreground(m.secondaryColor)
	valueStyle := lipgloss.NewStyle().Foreground(m.primaryColor)

	draft := m.fields[0].Render(true, labelStyle, valueStyle)

	used := len(m.fields[0].String())
	counter := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(fmt.Sprintf("%d / %d characters", used, m.cfg.Chat.MaxLength))
	if used > m.cfg.Chat.MaxLength {
		counter = lipgloss.NewStyle().
			Foreground(m.errorColor).
			Render(fmt.Sprintf("%d / %d characters (too long)", used, m.cfg.Chat.MaxLength))
	}

	status := m.store.ChatStatus()
	var errLine string
	if status.Err != "" {
		errLine = lipgloss.NewStyle().Foreground(m.errorColor).Render(emoji.GetEmoji("error") + " " + status.Err)
	}

	var latest string
	if summary, ok := m.store.CurrentChatSummary(); ok {
		latest = lipgloss.NewStyle().Foreground(m.successColor).Render(
			emoji.GetEmoji("success") + " Latest: " + truncateLine(summary.Summary, 70))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Paste or type the conversation • Enter summarize • Esc back")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		draft,
		counter,
		"",
		m.renderFormError(),
		errLine,
		latest,
		m.renderStatusLine(),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(minInt(m.width-4, 100))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderCandidateView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("candidate") + " Add a Candidate")

	labelStyle := lipgloss.NewStyle().Foreground(m.secondaryColor)
	valueStyle := lipgloss.NewStyle().Foreground(m.primaryColor)

	fieldLines := make([]string, 0, len(m.fields))
	for i, field := range m.fields {
		fieldLines = append(fieldLines, field.Render(i == m.focusIndex, labelStyle, valueStyle))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Tab switch field • Enter submit • Esc discard")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, fieldLines...),
		"",
		m.renderFormError(),
		m.renderStatusLine(),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(minInt(m.width-4, 80))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderRecordsView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(getCategoryIcon(m.category) + " " + categoryTitle(m.category))

	items := m.recordItems()

	if len(items) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render("Nothing here yet")

		content := lipgloss.JoinVertical(lipgloss.Center, title, "", empty, "",
			lipgloss.NewStyle().Foreground(m.secondaryColor).Render("Press Esc to go back"))

		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(m.secondaryColor)

		if i == m.selectedIndex {
			prefix = "▶ "
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		}

		lines = append(lines, style.Render(prefix+item))
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Enter Details • Esc Back • q Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		"",
		m.renderStatusLine(),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(minInt(m.width-4, 100)).
		Height(minInt(m.height-4, 30))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// recordItems lists the active category's records, newest first
func (m *Model) recordItems() []string {
	var items []string
	switch m.category {
	case common.CategoryResume:
		records := m.store.ResumeAnalyses()
		for i := len(records) - 1; i >= 0; i-- {
			items = append(items, records[i].Headline())
		}
	case common.CategoryInterview:
		records := m.store.InterviewAnalyses()
		for i := len(records) - 1; i >= 0; i-- {
			items = append(items, records[i].Headline())
		}
	case common.CategoryChat:
		records := m.store.ChatSummaries()
		for i := len(records) - 1; i >= 0; i-- {
			items = append(items, records[i].Headline())
		}
	case common.CategoryBias:
		records := m.store.BiasDetections()
		for i := len(records) - 1; i >= 0; i-- {
			items = append(items, records[i].Headline())
		}
	}
	return items
}

func (m *Model) renderDetailView() string {
	viewer := components.NewDetailViewer(categoryTitle(m.category), minInt(m.width-4, 100), minInt(m.height-4, 30))
	m.fillDetailSections(viewer)

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Esc Back • q Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		viewer.Render(),
		"",
		instructions,
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// fillDetailSections builds the detail sections for the selected record
func (m *Model) fillDetailSections(viewer *components.DetailViewer) {
	index := m.selectedRecordIndex()
	if index < 0 {
		viewer.AddSection(components.DetailSection{Title: "Record", Lines: []string{"not found"}})
		return
	}

	switch m.category {
	case common.CategoryResume:
		r := m.store.ResumeAnalyses()[index]
		viewer.AddSection(components.DetailSection{Title: r.Headline(), Lines: []string{r.Summary}})
		viewer.AddSection(components.DetailSection{
			Title: "Scores",
			Lines: []string{fmt.Sprintf("match %.0f%% • skills %.0f%% • experience %.0f%%", r.MatchScore, r.SkillsScore, r.ExpScore)},
		})
		addListSection(viewer, "Strengths", r.Strengths)
		addListSection(viewer, "Gaps", r.Gaps)
		addListSection(viewer, "Suggestions", r.Suggestions)
	case common.CategoryInterview:
		r := m.store.InterviewAnalyses()[index]
		viewer.AddSection(components.DetailSection{Title: r.Headline(), Lines: []string{r.Summary}})
		viewer.AddSection(components.DetailSection{
			Title: "Scores",
			Lines: []string{fmt.Sprintf("overall %.0f%% • technical %.0f%% • communication %.0f%%", r.OverallScore, r.TechScore, r.CommScore)},
		})
		addListSection(viewer, "Strengths", r.Strengths)
		addListSection(viewer, "Concerns", r.Concerns)
		addListSection(viewer, "Suggestions", r.Suggestions)
	case common.CategoryChat:
		r := m.store.ChatSummaries()[index]
		viewer.AddSection(components.DetailSection{Title: r.Headline(), Lines: []string{r.Summary}})
		addListSection(viewer, "Key Points", r.KeyPoints)
		addListSection(viewer, "Action Items", r.ActionItems)
	case common.CategoryBias:
		r := m.store.BiasDetections()[index]
		viewer.AddSection(components.DetailSection{Title: r.Headline(), Lines: []string{r.Report}})
		flagged := make([]string, 0, len(r.FlaggedTerms))
		for _, term := range r.FlaggedTerms {
			line := fmt.Sprintf("%q", term.Term)
			if term.Suggestion != "" {
				line += " → " + term.Suggestion
			}
			flagged = append(flagged, line)
		}
		addListSection(viewer, "Flagged Terms", flagged)
		addListSection(viewer, "Suggestions", r.Suggestions)
	}
}

// selectedRecordIndex maps the newest-first list position back to the
// store's append order
func (m *Model) selectedRecordIndex() int {
	count := m.recordCount()
	if count == 0 || m.selectedIndex >= count {
		return -1
	}
	return count - 1 - m.selectedIndex
}

func addListSection(viewer *components.DetailViewer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	viewer.AddSection(components.DetailSection{Title: title, Lines: lines})
}

func (m *Model) renderHelpView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("help") + " TalentTrack Help")

	helpSections := []string{
		emoji.GetEmoji("target") + " Navigation:",
		"  ↑↓ or j/k    Move up/down in lists",
		"  Enter or Space    Select item",
		"  Esc    Go back",
		"  m    Return to main menu",
		"",
		emoji.GetEmoji("number") + " Quick Keys:",
		"  1    Resume Matches",
		"  2    Interview Analyses",
		"  3    Chat Summaries",
		"  4    Bias Reports",
		"  c    Summarize a conversation",
		"  n    Add a candidate",
		"  h or ?    Show this help",
		"",
		emoji.GetEmoji("door") + " Exit:",
		"  q    Quit application",
		"  Ctrl+C    Force quit",
	}

	var helpList []string
	for _, line := range helpSections {
		switch {
		case strings.HasSuffix(line, ":"):
			helpList = append(helpList, lipgloss.NewStyle().
				Foreground(m.primaryColor).
				Bold(true).
				Render(line))
		case line == "":
			helpList = append(helpList, "")
		default:
			helpList = append(helpList, lipgloss.NewStyle().
				Foreground(m.secondaryColor).
				Render(line))
		}
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.warningColor).
		Bold(true).
		Render("Press Esc to go back")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, helpList...),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(minInt(m.width-4, 80))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func getCategoryIcon(category common.Category) string {
	switch category {
	case common.CategoryResume:
		return emoji.GetEmoji("resume")
	case common.CategoryInterview:
		return emoji.GetEmoji("interview")
	case common.CategoryChat:
		return emoji.GetEmoji("chat")
	case common.CategoryBias:
		return emoji.GetEmoji("bias")
	default:
		return emoji.GetEmoji("help")
	}
}

func categoryTitle(category common.Category) string {
	switch category {
	case common.CategoryResume:
		return "Resume Matches"
	case common.CategoryInterview:
		return "Interview Analyses"
	case common.CategoryChat:
		return "Chat Summaries"
	case common.CategoryBias:
		return "Bias Reports"
	default:
		return "Records"
	}
}

func truncateLine(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > limit {
		return s[:limit-3] + "..."
	}
	return s
}

// Run starts the interactive dashboard
func Run(dispatcher *ops.Dispatcher, st *store.Store, cfg *config.Config) error {
	model := NewModel(dispatcher, st, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
