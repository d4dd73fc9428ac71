// Package config loads a declarative hotkey program from disk and lowers
// it into a compiled compile.Program.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/aluo96078/hookwire/button"
	"github.com/aluo96078/hookwire/compile"
	"github.com/aluo96078/hookwire/event"
)

// Kind selects which compile.Compiler method an Entry lowers to.
type Kind string

const (
	// KindRemap presses Dest instead of each of Targets.
	KindRemap Kind = "remap"
	// KindDisable blocks both press and release of each of Targets.
	KindDisable Kind = "disable"
	// KindLogOnPress logs every press of a target in Targets.
	KindLogOnPress Kind = "log_on_press"
	// KindLogOnRelease logs the release of a target in Targets that was
	// pressed while the entry's modifiers were held.
	KindLogOnRelease Kind = "log_on_release"
)

// Entry is one line of a declarative hotkey program: a set of target
// buttons, the modifier context they are scoped to, and what to do.
type Entry struct {
	Kind             Kind     `json:"kind"`
	Targets          []string `json:"targets"`
	Modifiers        []string `json:"modifiers,omitempty"`
	WithoutModifiers []string `json:"without_modifiers,omitempty"`
	Dest             string   `json:"dest,omitempty"`
}

// Program is the JSON document the demo binary loads.
type Program struct {
	Entries []Entry `json:"entries"`
}

// DefaultProgram returns a small starter program: CapsLock acts as Esc,
// and Space presses are logged.
func DefaultProgram() *Program {
	return &Program{
		Entries: []Entry{
			{Kind: KindRemap, Targets: []string{"CapsLock"}, Dest: "Esc"},
			{Kind: KindLogOnPress, Targets: []string{"Space"}},
		},
	}
}

func parseButtons(names []string) ([]button.Button, error) {
	bs := make([]button.Button, 0, len(names))
	for _, n := range names {
		b, ok := button.Parse(n)
		if !ok {
			return nil, fmt.Errorf("config: unknown button %q", n)
		}
		bs = append(bs, b)
	}
	return bs, nil
}

func (e Entry) context() (compile.Context, error) {
	ctx := compile.NewContext()
	if len(e.Modifiers) > 0 {
		mods, err := parseButtons(e.Modifiers)
		if err != nil {
			return ctx, err
		}
		ctx = ctx.Modifier(mods...)
	}
	if len(e.WithoutModifiers) > 0 {
		mods, err := parseButtons(e.WithoutModifiers)
		if err != nil {
			return ctx, err
		}
		ctx = ctx.WithoutModifier(mods...)
	}
	return ctx, nil
}

// Compile lowers p into a compile.Program. onPress and onRelease are
// invoked by KindLogOnPress/KindLogOnRelease entries, receiving the
// zero-based entry index so the caller can correlate firings back to the
// program that was loaded.
func (p *Program) Compile(onPress func(entry int, ev event.ButtonEvent), onRelease func(entry int, ev *event.ButtonEvent)) (*compile.Program, error) {
	c := compile.New()
	for i, e := range p.Entries {
		ctx, err := e.context()
		if err != nil {
			return nil, fmt.Errorf("config: entry %d: %w", i, err)
		}
		targets, err := parseButtons(e.Targets)
		if err != nil {
			return nil, fmt.Errorf("config: entry %d: %w", i, err)
		}

		switch e.Kind {
		case KindRemap:
			dst, ok := button.Parse(e.Dest)
			if !ok {
				return nil, fmt.Errorf("config: entry %d: unknown dest %q", i, e.Dest)
			}
			if err := c.Remap(ctx, targets, dst); err != nil {
				return nil, fmt.Errorf("config: entry %d: %w", i, err)
			}
		case KindDisable:
			if err := c.Disable(ctx, targets); err != nil {
				return nil, fmt.Errorf("config: entry %d: %w", i, err)
			}
		case KindLogOnPress:
			entry := i
			if err := c.OnPress(ctx, targets, func(ev event.ButtonEvent) {
				if onPress != nil {
					onPress(entry, ev)
				}
			}); err != nil {
				return nil, fmt.Errorf("config: entry %d: %w", i, err)
			}
		case KindLogOnRelease:
			entry := i
			if err := c.OnRelease(ctx, targets, func(ev *event.ButtonEvent) {
				if onRelease != nil {
					onRelease(entry, ev)
				}
			}); err != nil {
				return nil, fmt.Errorf("config: entry %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("config: entry %d: unknown kind %q", i, e.Kind)
		}
	}
	return c.Build(), nil
}

// Manager loads and saves a Program from the user's configuration
// directory.
type Manager struct {
	mu         sync.Mutex
	configPath string
	program    *Program
}

// NewManager creates a Manager backed by the OS-appropriate config path.
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return &Manager{
		configPath: configPath,
		program:    DefaultProgram(),
	}, nil
}

func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "hookwire")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "hookwire")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "hookwire")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "program.json"), nil
}

// Load reads the program from disk, falling back to DefaultProgram if no
// file exists yet.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	m.program = &p
	return nil
}

// Save writes the current program to disk, via a temp-file-then-rename so
// a crash mid-write never leaves a truncated file behind.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.program, "", "  ")
	if err != nil {
		return err
	}

	tmp := m.configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.configPath)
}

// Get returns the currently loaded program.
func (m *Manager) Get() *Program {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.program
}

// Set replaces the currently loaded program.
func (m *Manager) Set(p *Program) {
	m.mu.Lock()
	m.program = p
	m.mu.Unlock()
}
