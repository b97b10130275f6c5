package tui

import (
	"fmt"
	"strings"

	"rds-restore/internal/utils"
	"rds-restore/pkg/storage"
)

const activityLines = 5

func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("RDS Restore"))
	if m.busy {
		s.WriteString(" " + m.spinner.View() + dimStyle.Render(" working..."))
	}
	s.WriteString("\n\n")

	s.WriteString(m.renderRegion())
	s.WriteString("\n\n")
	s.WriteString(m.renderInstances())
	s.WriteString("\n")
	s.WriteString(m.renderSnapshots())
	s.WriteString("\n")
	s.WriteString(m.heading("Restore", focusName))
	s.WriteString("\n" + m.input.View() + "\n\n")

	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message + "\n\n" + dimStyle.Render("enter: OK")))
		s.WriteString("\n\n")
	}

	s.WriteString(m.renderActivity())
	s.WriteString("\n")
	s.WriteString(dimStyle.Render("tab: next pane • ↑/↓: move • enter: select • r: refresh • q: quit"))
	s.WriteString("\n")

	return s.String()
}

func (m Model) heading(title string, f focus) string {
	if m.focus == f {
		return focusedStyle.Render("▸ " + title)
	}
	return sectionStyle.Render("  " + title)
}

func (m Model) renderRegion() string {
	line := m.heading("Region", focusRegions) + "  " + m.view.Region
	if m.focus == focusRegions && len(m.view.Regions) > 0 && m.regionCursor < len(m.view.Regions) {
		candidate := m.view.Regions[m.regionCursor]
		if candidate != m.view.Region {
			line += dimStyle.Render(fmt.Sprintf("  → %s (enter to switch)", candidate))
		}
	}
	return line
}

func (m Model) renderInstances() string {
	var s strings.Builder
	s.WriteString(m.heading("DB Instances", focusInstances) + "\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("  %-32s %-14s %-10s %-10s", "Name", "Status", "Storage", "Max Storage")))
	s.WriteString("\n")

	if len(m.view.Instances) == 0 {
		s.WriteString(dimStyle.Render("  no DB instances") + "\n")
		return s.String()
	}

	for i, inst := range m.view.Instances {
		line := fmt.Sprintf("%-32s %-14s %-10s %-10s",
			truncate(inst.Identifier, 32),
			inst.Status,
			utils.FormatStorage(inst.AllocatedStorage),
			utils.FormatStorage(inst.MaxAllocatedStorage))
		s.WriteString(m.cursorMark(focusInstances, i == m.instanceCursor))
		s.WriteString(rowStyle(inst.Hint, i == m.view.SelectedInstance).Render(line))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) renderSnapshots() string {
	var s strings.Builder
	s.WriteString(m.heading("Snapshots", focusSnapshots) + "\n")
	s.WriteString(dimStyle.Render(fmt.Sprintf("  %-44s %-24s %-8s %-12s", "Name", "Created", "Age", "Status")))
	s.WriteString("\n")

	if len(m.view.Snapshots) == 0 {
		s.WriteString(dimStyle.Render("  no snapshots") + "\n")
		return s.String()
	}

	now := m.now()
	for i, snap := range m.view.Snapshots {
		line := fmt.Sprintf("%-44s %-24s %-8s %-12s",
			truncate(snap.Identifier, 44),
			utils.FormatTimestamp(snap.CreatedAt),
			utils.FormatAge(snap.CreatedAt, now),
			snap.Status)
		s.WriteString(m.cursorMark(focusSnapshots, i == m.snapshotCursor))
		s.WriteString(rowStyle(snap.Hint, i == m.view.SelectedSnapshot).Render(line))
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) cursorMark(f focus, atCursor bool) string {
	if m.focus == f && atCursor {
		return focusedStyle.Render("> ")
	}
	return "  "
}

func (m Model) renderActivity() string {
	var s strings.Builder
	s.WriteString(sectionStyle.Render("  Activity") + "\n")

	start := len(m.activity) - activityLines
	if start < 0 {
		start = 0
	}
	for _, e := range m.activity[start:] {
		line := fmt.Sprintf("  %s %s", e.Time.Format("15:04:05"), e.Message)
		if e.Kind == storage.KindRejection || e.Kind == storage.KindGateway {
			line = errorStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}
	return s.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
