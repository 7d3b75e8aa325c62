// Package output provides styled terminal output helpers (success, error,
// warning, bookmark formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/quiclick/qc/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	folderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const defaultWidth = 80

// TerminalWidth returns the current terminal width or a fallback when
// unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// FormatBookmark renders one bookmark line, truncated to width.
func FormatBookmark(b models.Bookmark, width int) string {
	id := subtleStyle.Render(FormatID(b.ID))
	line := fmt.Sprintf("%s  %s  %s", id, titleStyle.Render(b.Title), subtleStyle.Render(b.URL))
	return Truncate(line, width)
}

// FormatFolder renders one folder line with its bookmark count.
func FormatFolder(f models.Folder, count int) string {
	id := subtleStyle.Render(FormatID(f.ID))
	return fmt.Sprintf("%s  %s %s", id, folderStyle.Render(f.Name+"/"), subtleStyle.Render(fmt.Sprintf("(%d)", count)))
}

// FormatID renders an entity id, marking provisional ids that have not been
// acknowledged by the server yet.
func FormatID(id int64) string {
	if models.IsProvisional(id) {
		return pendingStyle.Render(fmt.Sprintf("~%d", id))
	}
	return strconv.FormatInt(id, 10)
}

// Truncate cuts s to at most width runes, appending an ellipsis.
func Truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
