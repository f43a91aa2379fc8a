package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// inputHistory recalls earlier chat input with up/down. When path is set,
// lines are loaded from and appended to that file.
type inputHistory struct {
	path  string
	lines []string
	idx   int
}

func newInputHistory(path string) *inputHistory {
	h := &inputHistory{path: path}
	if path != "" {
		h.lines = loadHistoryFromPath(path)
	}
	h.idx = len(h.lines)
	return h
}

func (h *inputHistory) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > maxHistoryLines {
		h.lines = h.lines[len(h.lines)-maxHistoryLines:]
	}
	h.idx = len(h.lines)
	if h.path != "" {
		appendHistoryToPath(h.path, line)
	}
}

// prev moves to the previous line. ok is false at the oldest entry.
func (h *inputHistory) prev() (line string, ok bool) {
	if h.idx == 0 {
		return "", false
	}
	h.idx--
	return h.lines[h.idx], true
}

// next moves toward the newest entry and returns "" once past it.
func (h *inputHistory) next() string {
	if h.idx < len(h.lines)-1 {
		h.idx++
		return h.lines[h.idx]
	}
	h.idx = len(h.lines)
	return ""
}

// loadHistoryFromPath returns nil if the file does not exist or cannot be read.
func loadHistoryFromPath(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistoryToPath ignores write errors.
func appendHistoryToPath(path, line string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line + "\n")
}
