// Package settings persists the last play session so the next one resumes
// where it stopped.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/pelletier/go-toml/v2"
)

const sessionFilename = "play" + config.FileExtTOML

// Session is the state of the play screen when it was closed.
type Session struct {
	Template string `toml:"template"`
	Values   string `toml:"values"`
	Order    string `toml:"order,omitempty"`
	Truncate bool   `toml:"truncate"`
}

// IsEmpty reports whether there is nothing worth restoring.
func (s Session) IsEmpty() bool {
	return s.Template == "" && s.Values == ""
}

// Path returns the session file. play_session_path overrides the default
// location under state_dir.
func Path() string {
	if override := config.Get("play_session_path", ""); override != "" {
		return override
	}
	return filepath.Join(config.Get("state_dir", ""), sessionFilename)
}

// Load reads the saved session. A missing file yields an empty session.
func Load() (Session, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := toml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if err := validate(s); err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}
	return s, nil
}

// Save writes s, creating the state directory when needed.
func Save(s Session) error {
	if err := validate(s); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, config.FileModeFile); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func validate(s Session) error {
	if s.Order == "" {
		return nil
	}
	if _, ok := interpolate.ParseFieldOrder(s.Order); !ok {
		return fmt.Errorf("invalid order value: %s", s.Order)
	}
	return nil
}
