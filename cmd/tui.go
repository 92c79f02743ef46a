// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live meter dashboard",
	Long: `Interactive dashboard showing the latest meter readings as records
arrive: demand, summation, price, link state, and meter messages.

Key bindings poll the adapter directly:
  d  get_instantaneous_demand       s  get_current_summation_delivered
  p  get_current_price              t  get_time
  m  get_message                    c  get_connection_status
  q  quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// meterReadings is the dashboard state assembled from incoming records.
type meterReadings struct {
	demand       string
	demandAt     time.Time
	delivered    string
	received     string
	summationAt  time.Time
	price        string
	tier         string
	priceAt      time.Time
	linkStatus   string
	linkStrength string
	meterTime    string
	message      string
	messageQueue string
}

type logEntry struct {
	timestamp time.Time
	message   string
}

// tuiModel is the Bubble Tea model for the dashboard.
type tuiModel struct {
	session  *gavia.Session
	connInfo string

	readings    meterReadings
	recordCount int

	log      []logEntry
	maxLog   int
	logView  viewport.Model
	width    int
	height   int
	quitting bool
	linkDown bool
}

// Messages
type meterRecordMsg struct {
	record *gavia.Record
}
type sessionDoneMsg struct{}
type tuiTickMsg time.Time

func initialTUIModel(session *gavia.Session, connInfo string) tuiModel {
	return tuiModel{
		session:  session,
		connInfo: connInfo,
		maxLog:   200,
		logView:  viewport.New(76, 10),
		width:    80,
		height:   24,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(
		tuiTickCmd(),
		tea.EnterAltScreen,
	)
}

func tuiTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tuiTickMsg(t)
	})
}

// pollCommands maps dashboard keys to catalog commands.
var pollCommands = map[string]string{
	"d": "get_instantaneous_demand",
	"s": "get_current_summation_delivered",
	"p": "get_current_price",
	"t": "get_time",
	"m": "get_message",
	"c": "get_connection_status",
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}
		if name, ok := pollCommands[key]; ok {
			if err := m.session.SendCommand(name, nil); err != nil {
				m.addLog(fmt.Sprintf("send %s: %v", name, err))
			} else {
				m.addLog(fmt.Sprintf("sent %s", name))
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 6
		logHeight := msg.Height - 16
		if logHeight < 5 {
			logHeight = 5
		}
		m.logView.Height = logHeight

	case tuiTickMsg:
		return m, tuiTickCmd()

	case meterRecordMsg:
		m.recordCount++
		m.absorb(msg.record)

	case sessionDoneMsg:
		m.linkDown = true
		m.addLog("connection closed")
	}

	return m, nil
}

func (m *tuiModel) addLog(message string) {
	m.log = append(m.log, logEntry{timestamp: time.Now(), message: message})
	if len(m.log) > m.maxLog {
		m.log = m.log[len(m.log)-m.maxLog:]
	}
	var b strings.Builder
	for _, entry := range m.log {
		fmt.Fprintf(&b, "%s %s\n", entry.timestamp.Format("15:04:05.000"), entry.message)
	}
	m.logView.SetContent(b.String())
	m.logView.GotoBottom()
}

func getString(record *gavia.Record, name string) (string, bool) {
	value, ok := record.Get(name)
	if !ok {
		return "", false
	}
	return formatValue(value), true
}

// absorb folds one record into the dashboard readings.
func (m *tuiModel) absorb(record *gavia.Record) {
	now := time.Now()
	switch record.Tag {
	case "InstantaneousDemand":
		if v, ok := getString(record, "Demand"); ok {
			m.readings.demand = v
			m.readings.demandAt = now
		}

	case "CurrentSummationDelivered":
		if v, ok := getString(record, "SummationDelivered"); ok {
			m.readings.delivered = v
		}
		if v, ok := getString(record, "SummationReceived"); ok {
			m.readings.received = v
		}
		m.readings.summationAt = now

	case "PriceCluster":
		price, _ := record.Get("Price")
		currency, _ := record.Get("Currency")
		digits, _ := record.Get("TrailingDigits")
		if n, ok := price.(uint64); ok {
			shift := 0
			if d, ok := digits.(uint64); ok {
				shift = int(d)
			}
			m.readings.price = fmt.Sprintf("%s %s", shiftPrice(n, shift), currency)
			m.readings.priceAt = now
		}
		if v, ok := getString(record, "Tier"); ok {
			m.readings.tier = v
		}

	case "ConnectionStatus", "NetworkInfo":
		if v, ok := getString(record, "Status"); ok {
			m.readings.linkStatus = v
		}
		if v, ok := getString(record, "LinkStrength"); ok {
			m.readings.linkStrength = v
		}

	case "TimeCluster":
		if v, ok := getString(record, "LocalTime"); ok {
			m.readings.meterTime = v
		}

	case "MessageCluster":
		if v, ok := getString(record, "Text"); ok {
			m.readings.message = v
		}
		if v, ok := getString(record, "Queue"); ok {
			m.readings.messageQueue = v
		}

	case "Warning":
		if v, ok := getString(record, "Text"); ok {
			m.addLog("WARNING: " + v)
			return
		}
	}
	m.addLog(record.Tag)
}

// shiftPrice renders an integer price with the given number of trailing
// digits as the fractional part.
func shiftPrice(price uint64, digits int) string {
	text := fmt.Sprintf("%d", price)
	if digits <= 0 {
		return text
	}
	for len(text) <= digits {
		text = "0" + text
	}
	cut := len(text) - digits
	return text[:cut] + "." + text[cut:]
}

func (m tuiModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	staleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	alertStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	reading := func(v string, at time.Time) string {
		if v == "" {
			return staleStyle.Render("-")
		}
		rendered := valueStyle.Render(v)
		if !at.IsZero() && time.Since(at) > time.Minute {
			rendered = staleStyle.Render(v)
		}
		return rendered
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("LOONSTAT - METER DASHBOARD"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | %d records | d/s/p/t/m/c poll, q quits",
		m.connInfo, m.recordCount)))
	s.WriteString("\n\n")

	if m.linkDown {
		s.WriteString(alertStyle.Render("✗ Connection lost"))
		s.WriteString("\n\n")
	}

	meterContent := strings.Builder{}
	meterContent.WriteString(fmt.Sprintf("%s %s   %s %s / %s\n",
		labelStyle.Render("Demand:"), reading(m.readings.demand, m.readings.demandAt),
		labelStyle.Render("Summation:"), reading(m.readings.delivered, m.readings.summationAt),
		reading(m.readings.received, m.readings.summationAt),
	))
	price := m.readings.price
	if m.readings.tier != "" {
		price += " (tier " + m.readings.tier + ")"
	}
	meterContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Price:"), reading(price, m.readings.priceAt),
		labelStyle.Render("Meter time:"), reading(m.readings.meterTime, time.Time{}),
	))
	if m.readings.message != "" {
		queue := ""
		if m.readings.messageQueue != "" {
			queue = " [" + m.readings.messageQueue + "]"
		}
		meterContent.WriteString(fmt.Sprintf("\n%s %s%s",
			labelStyle.Render("Message:"), valueStyle.Render(m.readings.message), queue))
	}
	s.WriteString(boxStyle.Render(meterContent.String()))
	s.WriteString("\n\n")

	linkContent := fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Link:"), reading(m.readings.linkStatus, time.Time{}),
		labelStyle.Render("Strength:"), reading(m.readings.linkStrength, time.Time{}),
	)
	s.WriteString(boxStyle.Render(linkContent))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("Recent Records:"))
	s.WriteString("\n")
	s.WriteString(boxStyle.Width(m.width - 4).Render(m.logView.View()))

	return s.String()
}

func runTUI(cmd *cobra.Command, args []string) error {
	session, connInfo, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	p := tea.NewProgram(initialTUIModel(session, connInfo))

	// Record forwarder goroutine
	go func() {
		for {
			select {
			case record := <-session.Records():
				p.Send(meterRecordMsg{record: record})
			case <-session.Done():
				p.Send(sessionDoneMsg{})
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
