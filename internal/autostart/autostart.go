// Package autostart toggles "start at login" through an XDG autostart entry.
package autostart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Manager struct {
	dir  string
	name string
	exec string
}

func NewManager(dir, name, exec string) *Manager {
	return &Manager{dir: dir, name: name, exec: exec}
}

func (m *Manager) Path() string {
	return filepath.Join(m.dir, m.name+".desktop")
}

func (m *Manager) Enabled() (bool, error) {
	_, err := os.Stat(m.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Toggle flips the entry and returns the new state.
func (m *Manager) Toggle() (bool, error) {
	enabled, err := m.Enabled()
	if err != nil {
		return false, err
	}

	if enabled {
		if err := os.Remove(m.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return true, fmt.Errorf("autostart: disable: %w", err)
		}
		return false, nil
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return false, fmt.Errorf("autostart: enable: %w", err)
	}
	if err := os.WriteFile(m.Path(), []byte(m.entry()), 0o644); err != nil {
		return false, fmt.Errorf("autostart: enable: %w", err)
	}
	return true, nil
}

func (m *Manager) entry() string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", m.name)
	fmt.Fprintf(&b, "Exec=%q\n", m.exec)
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}
