// Command graphsight-tui is an interactive browser over an analysis report.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/graphsight/graphsight/pkg/analysis"
	"github.com/graphsight/graphsight/pkg/graph"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/parser"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	overviewView view = iota
	centralityView
	communitiesView
	suggestionsView
	anomaliesView
	viewCount
)

var viewNames = []string{"Overview", "Centrality", "Communities", "Suggestions", "Anomalies"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	report          *analysis.Report
	source          string
	currentView     view
	centralityTable table.Model
	help            help.Model
	keys            keyMap
	width           int
	height          int
}

func initialModel(report *analysis.Report, source string) model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "User", Width: 20},
		{Title: "Degree", Width: 10},
		{Title: "Betweenness", Width: 12},
		{Title: "Closeness", Width: 10},
	}

	rows := make([]table.Row, 0, len(report.TopDegree))
	for i, rn := range report.TopDegree {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			rn.Node,
			fmt.Sprintf("%.4f", rn.Score),
			"", "",
		}
		if i < len(report.TopBetweenness) {
			row[3] = fmt.Sprintf("%.4f", report.TopBetweenness[i].Score)
		}
		if i < len(report.TopCloseness) {
			row[4] = fmt.Sprintf("%.4f", report.TopCloseness[i].Score)
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	return model{
		report:          report,
		source:          source,
		currentView:     overviewView,
		centralityTable: t,
		help:            help.New(),
		keys:            keys,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}
		}
	}

	if m.currentView == centralityView {
		m.centralityTable, cmd = m.centralityTable.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("GraphSight - " + m.source))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case overviewView:
		s.WriteString(m.renderOverview())
	case centralityView:
		s.WriteString(m.renderCentrality())
	case communitiesView:
		s.WriteString(m.renderCommunities())
	case suggestionsView:
		s.WriteString(m.renderSuggestions())
	case anomaliesView:
		s.WriteString(m.renderAnomalies())
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	var renderedTabs []string
	for i, tab := range viewNames {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderOverview() string {
	r := m.report

	avgPath := "n/a (disconnected)"
	if r.Connected {
		avgPath = fmt.Sprintf("%.4f", r.AveragePathLength)
	}

	network := fmt.Sprintf(`Network
Users:       %d
Friendships: %d
Density:     %.4f
Avg path:    %s`,
		r.NodeCount, r.EdgeCount, r.Density, avgPath)

	structure := fmt.Sprintf(`Structure
Communities:    %d
Modularity:     %.4f
Avg clustering: %.4f
Flagged users:  %d`,
		r.CommunityCount, r.Modularity, r.AverageClustering, len(r.Anomalies))

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(network),
		statsBoxStyle.Render(structure)))
}

func (m model) renderCentrality() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Top users per centrality"))
	s.WriteString("\n\n")
	s.WriteString(m.centralityTable.View())
	return contentStyle.Render(s.String())
}

func (m model) renderCommunities() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("%d communities (modularity %.4f)",
		m.report.CommunityCount, m.report.Modularity)))
	s.WriteString("\n\n")

	ids := make([]int, 0, len(m.report.CommunitySizes))
	for id := range m.report.CommunitySizes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		size := m.report.CommunitySizes[id]
		bar := strings.Repeat("█", scaleBar(size, m.report.NodeCount, 40))
		s.WriteString(fmt.Sprintf("  %3d: %4d members %s\n", id, size, bar))
	}

	return contentStyle.Render(s.String())
}

func (m model) renderSuggestions() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Suggestions for " + m.report.SampleUser))
	s.WriteString("\n\n")

	if len(m.report.Recommendations) == 0 {
		s.WriteString(helpStyle.Render("No suggestions: the sample user already knows every reachable friend-of-friend."))
	}
	for i, rec := range m.report.Recommendations {
		s.WriteString(fmt.Sprintf("  %d. %-20s %.4f\n", i+1, rec.Node, rec.Score))
	}

	return contentStyle.Render(s.String())
}

func (m model) renderAnomalies() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("Possible fake accounts"))
	s.WriteString("\n\n")

	if len(m.report.Anomalies) == 0 {
		s.WriteString(helpStyle.Render("No accounts fall below the clustering threshold."))
	}
	for _, a := range m.report.Anomalies {
		s.WriteString(fmt.Sprintf("  %-20s clustering %.4f\n", a.Node, a.Coefficient))
	}

	return contentStyle.Render(s.String())
}

func scaleBar(value, max, width int) int {
	if max == 0 {
		return 0
	}
	n := value * width / max
	if n == 0 && value > 0 {
		n = 1
	}
	return n
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <adjacency-list-file>\n", os.Args[0])
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	edges, err := parser.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	g, err := graph.Build(edges)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	report, err := analysis.NewAnalyzer(analysis.DefaultOptions(), logging.NewNopLogger()).
		Run(context.Background(), g)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	p := tea.NewProgram(initialModel(report, os.Args[1]), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
