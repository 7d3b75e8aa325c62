package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.statusPanel())
	b.WriteString("\n")
	b.WriteString(m.queuePanel())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s sync now · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) headerView() string {
	title := titleStyle.Render("qc monitor")
	if m.version != "" {
		title += subtleStyle.Render(" " + m.version)
	}
	if m.syncing {
		title += "  " + m.spinner.View() + subtleStyle.Render(" syncing")
	} else if !m.lastSync.IsZero() {
		title += "  " + subtleStyle.Render("last sync "+m.lastSync.Format("15:04:05"))
	}
	return title
}

func (m Model) statusPanel() string {
	var lines []string

	if m.snap.Auth.Authenticated {
		who := "logged in"
		if m.snap.Auth.User != nil {
			who = m.snap.Auth.User.Email
		}
		lines = append(lines, okStyle.Render("● ")+who)
	} else {
		lines = append(lines, errStyle.Render("● ")+"not authenticated")
	}

	lines = append(lines, fmt.Sprintf("%d bookmarks, %d folders", m.snap.Bookmarks, m.snap.Folders))

	if cursor := m.snap.Sync.LastPullCursor; cursor != "" {
		lines = append(lines, subtleStyle.Render("cursor: "+cursor))
	}
	if bo := m.snap.Sync.Backoff; bo.RetryCount > 0 && bo.NextRetryAt != nil {
		wait := time.Until(*bo.NextRetryAt).Round(time.Second)
		if wait < 0 {
			wait = 0
		}
		lines = append(lines, warnStyle.Render(fmt.Sprintf("backoff: retry %d in %s", bo.RetryCount, wait)))
	}
	if m.lastErr != nil {
		lines = append(lines, errStyle.Render("sync error: "+m.lastErr.Error()))
	}
	if m.snap.Err != nil {
		lines = append(lines, errStyle.Render("store error: "+m.snap.Err.Error()))
	}

	return m.panel("Status", strings.Join(lines, "\n"))
}

func (m Model) queuePanel() string {
	if len(m.snap.Queue) == 0 {
		return m.panel("Queue", subtleStyle.Render("nothing pending"))
	}

	var lines []string
	for i, op := range m.snap.Queue {
		age := time.Since(op.CreatedAt).Round(time.Second)
		line := fmt.Sprintf("%2d. %-16s %s", i+1, string(op.Type), subtleStyle.Render(age.String()+" ago"))
		lines = append(lines, line)
		if i >= 9 {
			lines = append(lines, subtleStyle.Render(fmt.Sprintf("    … %d more", len(m.snap.Queue)-10)))
			break
		}
	}
	title := fmt.Sprintf("Queue (%d)", len(m.snap.Queue))
	return m.panel(title, strings.Join(lines, "\n"))
}

func (m Model) panel(title, content string) string {
	width := m.width - 2
	if width < 20 {
		width = 60
	}
	body := lipgloss.JoinVertical(lipgloss.Left, panelTitleStyle.Render(title), content)
	return panelStyle.Width(width).Render(body)
}
