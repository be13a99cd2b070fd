// Command tradingclocks renders a live terminal dashboard of world market
// sessions, with time-travel controls for demos and testing.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/can-finance/tradingclocks/internal/clock"
	"github.com/can-finance/tradingclocks/internal/config"
	"github.com/can-finance/tradingclocks/internal/dashboard"
	"github.com/can-finance/tradingclocks/internal/domain"
	"github.com/can-finance/tradingclocks/internal/session"
	"github.com/can-finance/tradingclocks/internal/store"
	"github.com/can-finance/tradingclocks/internal/util"
)

// Styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	simStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	regionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	openStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lunchStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	closedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	weekendStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	holidayStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	codeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	clockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// displayZones cycles through the timezone override with the "t" key. The
// empty entry means "viewer's local zone".
var displayZones = []string{"", "UTC", "America/New_York", "Europe/London", "Asia/Tokyo"}

// Messages.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func statusStyle(s domain.MarketState) lipgloss.Style {
	switch s {
	case domain.StateOpen:
		return openStyle
	case domain.StateOnLunch:
		return lunchStyle
	case domain.StateWeekendClosed:
		return weekendStyle
	case domain.StateHolidayClosed:
		return holidayStyle
	default:
		return closedStyle
	}
}

type model struct {
	markets   []domain.Market
	overrides map[string]domain.TimeOverride
	cls       *session.Classifier
	clk       *clock.Clock

	zoneIdx int
	vp      viewport.Model
	ready   bool
	width   int
}

func (m *model) Init() tea.Cmd {
	return tickCmd()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.ready {
			m.vp.SetContent(m.renderBody())
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.width = msg.Width
		m.vp.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.clk.Snapshot().Paused {
				m.clk.Unfreeze()
			} else {
				m.clk.Freeze()
			}
		case "left":
			m.clk.SetInstant(m.clk.Now().Add(-time.Hour))
		case "right":
			m.clk.SetInstant(m.clk.Now().Add(time.Hour))
		case "shift+left":
			m.clk.SetInstant(m.clk.Now().Add(-24 * time.Hour))
		case "shift+right":
			m.clk.SetInstant(m.clk.Now().Add(24 * time.Hour))
		case "r":
			m.clk.Reset()
			m.zoneIdx = 0
		case "t":
			m.zoneIdx = (m.zoneIdx + 1) % len(displayZones)
			m.clk.SetTimezoneOverride(displayZones[m.zoneIdx])
		}
		m.vp.SetContent(m.renderBody())
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.renderHeader() + "\n" + m.vp.View() + "\n" + m.renderFooter()
}

func (m *model) renderHeader() string {
	now := m.clk.Now()
	viewerTZ := m.clk.TimezoneOverride()
	loc := time.Local
	zoneLabel := "local"
	if viewerTZ != "" {
		if l, err := time.LoadLocation(viewerTZ); err == nil {
			loc = l
			zoneLabel = viewerTZ
		}
	}

	title := titleStyle.Render("TRADING CLOCKS")
	clockLine := clockStyle.Render(now.In(loc).Format("Mon 2 Jan 2006 15:04:05")) +
		dimStyle.Render(" ("+zoneLabel+")")

	sim := ""
	if m.clk.SimulationActive() {
		label := " SIMULATED TIME "
		if m.clk.Snapshot().Paused {
			label = " SIMULATED TIME · PAUSED "
		}
		sim = " " + simStyle.Render(label)
	}

	return title + sim + "\n" + clockLine + "\n"
}

func (m *model) renderFooter() string {
	return helpStyle.Render("←/→ ±1h · shift+←/→ ±1d · space freeze · r reset · t timezone · q quit")
}

var regionOrder = []domain.Region{domain.RegionAmericas, domain.RegionEMEA, domain.RegionAPAC}

var regionNames = map[domain.Region]string{
	domain.RegionAmericas: " AMERICAS ",
	domain.RegionEMEA:     " EUROPE / MIDDLE EAST / AFRICA ",
	domain.RegionAPAC:     " ASIA-PACIFIC ",
}

func (m *model) renderBody() string {
	now := m.clk.Now()
	views := dashboard.BuildViews(m.cls, m.markets, m.overrides, now, m.clk.TimezoneOverride())

	byRegion := make(map[domain.Region][]dashboard.MarketView)
	for _, v := range views {
		byRegion[v.Market.Region] = append(byRegion[v.Market.Region], v)
	}

	var b strings.Builder
	for _, region := range regionOrder {
		group := byRegion[region]
		if len(group) == 0 {
			continue
		}
		b.WriteString(regionStyle.Render(regionNames[region]))
		b.WriteString("\n")
		for _, v := range group {
			b.WriteString(renderRow(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow renders one market line:
//
//	NYSE   New York Stock Exchange   9:30am EST GMT-5   OPEN      closes in 02:13:44 (Mon 4:00pm)
func renderRow(v dashboard.MarketView) string {
	status := statusStyle(v.State.State).Render(fmt.Sprintf("%-12s", v.StatusLabel))
	localClock := clockStyle.Render(fmt.Sprintf("%8s %-4s", v.LocalTime, v.ZoneAbbrev)) +
		dimStyle.Render(fmt.Sprintf("%-8s", v.OffsetLabel))

	event := fmt.Sprintf("%s in %s", v.State.NextEvent, v.Countdown)
	eventLine := countdownStyle.Render(event) + dimStyle.Render(" ("+v.ViewerTime+")")

	row := fmt.Sprintf("  %s %s %s %s %s",
		codeStyle.Render(fmt.Sprintf("%-7s", v.Market.Code)),
		fmt.Sprintf("%-28s", v.Market.Name),
		localClock,
		status,
		eventLine,
	)

	if v.State.HolidayName != "" {
		row += holidayStyle.Render("  ★ " + v.State.HolidayName)
	}
	return row + "\n"
}

func main() {
	cfgPath := "config/tradingclocks.yaml"
	if p := os.Getenv("CLOCKS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = config.Default()
	}

	// The TUI is chatty enough on its own; keep the logger quiet unless a
	// log file is configured.
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = os.DevNull
	}
	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format, logFile,
		cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)

	ctx := context.Background()
	markets := config.LoadMarkets(ctx, cfg.Markets.File, logger)
	holidays := config.LoadHolidays(ctx, cfg.Markets.HolidaysFile, logger)

	overrides := map[string]domain.TimeOverride{}
	if prefs, err := store.NewSQLiteStore(cfg.Storage.SQLitePath); err == nil {
		if ovs, err := prefs.TimeOverrides(ctx); err == nil {
			overrides = ovs
		}
		prefs.Close()
	}

	clk := clock.New()
	m := &model{
		markets:   markets,
		overrides: overrides,
		cls:       session.NewClassifier(clk, holidays),
		clk:       clk,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
