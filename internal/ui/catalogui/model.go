package catalogui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hangarhub/hangarctl/internal/catalog"
	"github.com/hangarhub/hangarctl/internal/hangar"
	"github.com/hangarhub/hangarctl/internal/ui/styles"
)

// View states
type viewState int

const (
	viewList viewState = iota
	viewPublish
	viewProgress
	viewInfo
)

// addonItem implements list.Item for bubbles/list
type addonItem struct {
	addon *catalog.Addon
}

func (i addonItem) Title() string {
	mark := "[ ]"
	if i.addon.IsSelected() {
		mark = "[" + styles.CheckMark.String() + "]"
	}
	return mark + " " + i.addon.Metadata().Title()
}

func (i addonItem) Description() string {
	md := i.addon.Metadata()
	parts := []string{
		"v" + md.Version(),
		"by " + md.Creator(),
		styles.FormatContentType(md.ContentType().String()),
	}
	return strings.Join(parts, " | ")
}

func (i addonItem) FilterValue() string {
	return i.addon.Metadata().Title() + " " + i.addon.Metadata().Creator()
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	Toggle    key.Binding
	SelectAll key.Binding
	ClearAll  key.Binding
	Publish   key.Binding
	Rescan    key.Binding
	Info      key.Binding
	Quit      key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "clear selection"),
		),
		Publish: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "publish"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Info: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "info"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model is the main TUI model
type Model struct {
	manager   *hangar.Manager
	list      list.Model
	textInput textinput.Model
	spinner   spinner.Model
	keys      KeyMap

	state         viewState
	width, height int

	selectedAddon *catalog.Addon
	statusMsg     string
	errorMsg      string
	progressMsg   string
	selectedCount int
	totalCount    int
}

// NewModel creates a new TUI model
func NewModel(manager *hangar.Manager) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Primary).
		BorderForeground(styles.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Muted).
		BorderForeground(styles.Primary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Catalog"
	l.Styles.Title = styles.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	ti := textinput.New()
	ti.Placeholder = "discord"
	ti.CharLimit = 32
	ti.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return Model{
		manager:   manager,
		list:      l,
		textInput: ti,
		spinner:   s,
		keys:      DefaultKeyMap(),
		state:     viewList,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog,
		m.spinner.Tick,
	)
}

// loadCatalog rebuilds the addon list from the store
func (m Model) loadCatalog() tea.Msg {
	cat, err := m.manager.Catalog(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return catalogLoadedMsg{
		addons:   cat.AllAddons(),
		selected: len(cat.SelectedAddons()),
	}
}

// Messages
type catalogLoadedMsg struct {
	addons   []*catalog.Addon
	selected int
}

type errMsg struct {
	err error
}

type operationCompleteMsg struct {
	success bool
	message string
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := styles.App.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if m.state == viewList {
				return m, tea.Quit
			}
			m.state = viewList
			m.errorMsg = ""
			m.statusMsg = ""
			return m, nil
		}

		if key.Matches(msg, m.keys.Back) {
			if m.state != viewList {
				m.state = viewList
				m.errorMsg = ""
				m.statusMsg = ""
				return m, nil
			}
		}

		switch m.state {
		case viewList:
			return m.updateList(msg)
		case viewPublish:
			return m.updatePublish(msg)
		case viewInfo:
			return m.updateInfo(msg)
		}

	case catalogLoadedMsg:
		items := make([]list.Item, len(msg.addons))
		for i, addon := range msg.addons {
			items[i] = addonItem{addon: addon}
		}
		m.list.SetItems(items)
		m.selectedCount = msg.selected
		m.totalCount = len(msg.addons)
		return m, nil

	case errMsg:
		m.errorMsg = msg.err.Error()
		m.state = viewList
		return m, nil

	case operationCompleteMsg:
		if msg.success {
			m.statusMsg = msg.message
			m.errorMsg = ""
		} else {
			m.errorMsg = msg.message
			m.statusMsg = ""
		}
		m.state = viewList
		return m, m.loadCatalog

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keep navigation keys working while the filter input is open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.list.SelectedItem().(addonItem); ok {
			return m, m.toggleAddon(item.addon.ID())
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		return m, m.selectAll(true)

	case key.Matches(msg, m.keys.ClearAll):
		return m, m.selectAll(false)

	case key.Matches(msg, m.keys.Publish):
		if m.selectedCount == 0 {
			m.errorMsg = "Nothing selected to publish"
			return m, nil
		}
		m.state = viewPublish
		m.textInput.Focus()
		m.textInput.SetValue("")
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rescan):
		m.state = viewProgress
		m.progressMsg = "Scanning community folder..."
		return m, m.rescan

	case key.Matches(msg, m.keys.Info):
		if item, ok := m.list.SelectedItem().(addonItem); ok {
			m.selectedAddon = item.addon
			m.state = viewInfo
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updatePublish(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		platform := m.textInput.Value()
		if platform == "" {
			platform = m.textInput.Placeholder
		}
		m.state = viewProgress
		m.progressMsg = "Publishing to " + platform + "..."
		return m, m.publish(platform)

	case tea.KeyEsc:
		m.state = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) updateInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || msg.Type == tea.KeyEnter {
		m.state = viewList
		m.selectedAddon = nil
	}
	return m, nil
}

// Commands

func (m Model) toggleAddon(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.manager.ToggleSelection(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return m.loadCatalog()
	}
}

func (m Model) selectAll(selected bool) tea.Cmd {
	return func() tea.Msg {
		var (
			flipped int
			err     error
		)
		if selected {
			flipped, err = m.manager.SelectAll(context.Background())
		} else {
			flipped, err = m.manager.ClearSelection(context.Background())
		}
		if err != nil {
			return errMsg{err}
		}
		if flipped == 0 {
			return m.loadCatalog()
		}
		return operationCompleteMsg{true, fmt.Sprintf("%d addon(s) changed", flipped)}
	}
}

func (m Model) rescan() tea.Msg {
	report, err := m.manager.Rescan(context.Background())
	if err != nil {
		return operationCompleteMsg{false, err.Error()}
	}
	return operationCompleteMsg{true, fmt.Sprintf(
		"Scan found %d package(s): %d added, %d updated, %d removed",
		report.Discovered, report.Added, report.Updated, report.Removed)}
}

func (m Model) publish(platform string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.manager.Publish(context.Background(), platform)
		if err != nil {
			return operationCompleteMsg{false, err.Error()}
		}
		return operationCompleteMsg{result.Success(), result.Message()}
	}
}

// View renders the UI
func (m Model) View() string {
	var content string

	switch m.state {
	case viewList:
		content = m.viewList()
	case viewPublish:
		content = m.viewPublish()
	case viewProgress:
		content = m.viewProgress()
	case viewInfo:
		content = m.viewInfo()
	}

	return styles.App.Render(content)
}

func (m Model) viewList() string {
	var s strings.Builder

	s.WriteString(m.list.View())

	s.WriteString("\n" + styles.FormatCount(m.selectedCount, m.totalCount))
	if m.errorMsg != "" {
		s.WriteString("\n" + styles.FormatError(m.errorMsg))
	} else if m.statusMsg != "" {
		s.WriteString("\n" + styles.FormatSuccess(m.statusMsg))
	}

	help := "\n" + styles.Help.Render("space:toggle  a:all  n:none  p:publish  r:rescan  enter:info  q:quit")
	s.WriteString(help)

	return s.String()
}

func (m Model) viewPublish() string {
	var s strings.Builder

	s.WriteString(styles.Title.Render("Publish Selection") + "\n\n")
	s.WriteString(fmt.Sprintf("Publishing %d addon(s). Platform name:\n\n", m.selectedCount))
	s.WriteString(m.textInput.View() + "\n\n")
	s.WriteString(styles.Help.Render("enter:publish  esc:cancel"))

	return s.String()
}

func (m Model) viewProgress() string {
	return m.spinner.View() + " " + m.progressMsg
}

func (m Model) viewInfo() string {
	var s strings.Builder

	if m.selectedAddon == nil {
		return "No addon selected"
	}

	a := m.selectedAddon
	md := a.Metadata()

	s.WriteString(styles.Title.Render("Addon Info") + "\n\n")

	s.WriteString(styles.AddonTitle.Render(md.Title()) + "\n\n")

	s.WriteString(fmt.Sprintf("Creator:      %s\n", md.Creator()))
	s.WriteString(fmt.Sprintf("Version:      %s\n", md.Version()))
	s.WriteString(fmt.Sprintf("Type:         %s\n", md.ContentType()))
	s.WriteString(fmt.Sprintf("Package:      %s\n", md.PackageVersion()))
	s.WriteString(fmt.Sprintf("Min. game:    %s\n", md.MinimumGameVersion()))
	s.WriteString(fmt.Sprintf("Selected:     %v\n", a.IsSelected()))
	s.WriteString(fmt.Sprintf("Discovered:   %s\n", a.DiscoveredAt().Format("2006-01-02 15:04")))
	s.WriteString(fmt.Sprintf("Path:         %s\n", a.InstallPath()))

	if notes := md.ReleaseNotes(); len(notes) > 0 {
		s.WriteString("\nRelease notes:\n")
		for section, text := range notes {
			s.WriteString(fmt.Sprintf("  %s: %s\n", section, text))
		}
	}

	s.WriteString("\n" + styles.Help.Render("esc/enter:back"))

	return s.String()
}
