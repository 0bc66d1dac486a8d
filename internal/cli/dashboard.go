package cli

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"worktime/internal/api"
	"worktime/internal/i18n"
)

type tickMsg time.Time

type storeChangedMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks on changes and reports one store write
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// dashboardModel is the live clock shown by the watch command
type dashboardModel struct {
	ctx          context.Context
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	labels       i18n.Labels
	styles       Styles
	changes      <-chan struct{}

	now     time.Time
	status  *api.Status
	message string
}

func newDashboardModel(ctx context.Context, businessAPI api.BusinessAPI, styles Styles, changes <-chan struct{}) dashboardModel {
	now := timeNow()
	return dashboardModel{
		ctx:          ctx,
		businessAPI:  businessAPI,
		errorHandler: NewErrorHandler(),
		labels:       businessAPI.Labels(),
		styles:       styles,
		changes:      changes,
		now:          now,
		status:       businessAPI.Status(now),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForChange(m.changes))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.message = ""
			if m.status.Working {
				_, err := m.businessAPI.StopWork(m.ctx)
				m.setError(err)
			} else {
				_, err := m.businessAPI.StartWork(m.ctx)
				m.setError(err)
			}
		case "b":
			m.message = ""
			_, err := m.businessAPI.ToggleBreak(m.ctx)
			if !m.errorHandler.IsNoActiveSession(err) {
				m.setError(err)
			}
		}
		m.status = m.businessAPI.Status(m.now)

	case tickMsg:
		m.now = time.Time(msg)
		m.status = m.businessAPI.Status(m.now)
		return m, tickCmd()

	case storeChangedMsg:
		if err := m.businessAPI.Reload(m.ctx); err != nil {
			m.setError(err)
		}
		m.status = m.businessAPI.Status(m.now)
		return m, waitForChange(m.changes)
	}
	return m, nil
}

func (m *dashboardModel) setError(err error) {
	if err != nil {
		m.message = m.errorHandler.HandleSimple(err).Error()
	}
}

func (m dashboardModel) View() string {
	l := m.labels
	s := m.styles

	var b strings.Builder
	b.WriteString(s.Clock.Render(m.now.Format(timeLayout)))
	b.WriteString("\n")
	b.WriteString(l.LongDate(m.now))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(statusLines(l, s, m.status), "\n"))
	b.WriteString("\n\n")

	var keys []string
	if m.status.Working {
		keys = append(keys, "[s] "+l.StopWork)
		if m.status.OnBreak {
			keys = append(keys, "[b] "+l.EndBreak)
		} else {
			keys = append(keys, "[b] "+l.StartBreak)
		}
	} else {
		keys = append(keys, "[s] "+l.StartWork)
	}
	keys = append(keys, "[q] "+l.Quit)
	b.WriteString(s.Dim.Render(strings.Join(keys, "  ")))

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(m.message))
	}
	return s.Box.Render(b.String()) + "\n"
}
