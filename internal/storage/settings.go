package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"trata/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// fileSettings mirrors preferences.Settings on disk. Every field is optional;
// an absent field keeps its default, an explicit zero is kept as written.
type fileSettings struct {
	Work                    *string `yaml:"work,omitempty" toml:"work"`
	ShortBreak              *string `yaml:"short_break,omitempty" toml:"short_break"`
	LongBreak               *string `yaml:"long_break,omitempty" toml:"long_break"`
	SessionsBeforeLongBreak *int    `yaml:"sessions_before_long_break,omitempty" toml:"sessions_before_long_break"`
	LongBreakEnabled        *bool   `yaml:"long_break_enabled,omitempty" toml:"long_break_enabled"`
	AutoContinue            *bool   `yaml:"auto_continue,omitempty" toml:"auto_continue"`
	TickInterval            *string `yaml:"tick_interval,omitempty" toml:"tick_interval"`
	Bell                    *bool   `yaml:"bell,omitempty" toml:"bell"`
}

// ResolveConfigPath returns the default settings location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from a YAML or TOML file, chosen by
// extension. If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	fileData, err := decodeFileSettings(path, rawData)
	if err != nil {
		return settings, err
	}

	if err := applyFileSettings(&settings, fileData, path); err != nil {
		return preferences.DefaultSettings(), err
	}
	return settings, nil
}

// SaveSettings atomically writes user preferences to path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := Marshal(path, settings)
	if err != nil {
		return err
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer func() {
		_ = pendingFile.Cleanup()
	}()

	if _, err := pendingFile.Write(serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Marshal encodes settings in the format implied by path's extension.
func Marshal(path string, settings preferences.Settings) ([]byte, error) {
	fileData := toFileSettings(settings)

	if isTOML(path) {
		var buffer bytes.Buffer
		if err := toml.NewEncoder(&buffer).Encode(fileData); err != nil {
			return nil, fmt.Errorf("marshal settings toml: %w", err)
		}
		return buffer.Bytes(), nil
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// decodeFileSettings rejects keys that do not map to a setting, so a typo
// fails loudly instead of silently keeping the default.
func decodeFileSettings(path string, rawData []byte) (fileSettings, error) {
	var fileData fileSettings

	if isTOML(path) {
		meta, err := toml.Decode(string(rawData), &fileData)
		if err != nil {
			return fileData, fmt.Errorf("parse settings toml %q: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			return fileData, fmt.Errorf("parse settings toml %q: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return fileData, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(rawData))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fileData); err != nil && !errors.Is(err, io.EOF) {
		return fileData, fmt.Errorf("parse settings yaml %q: %w", path, err)
	}
	return fileData, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func toFileSettings(settings preferences.Settings) fileSettings {
	work := settings.Work.String()
	shortBreak := settings.ShortBreak.String()
	longBreak := settings.LongBreak.String()
	tick := settings.TickInterval.String()
	return fileSettings{
		Work:                    &work,
		ShortBreak:              &shortBreak,
		LongBreak:               &longBreak,
		SessionsBeforeLongBreak: &settings.SessionsBeforeLongBreak,
		LongBreakEnabled:        &settings.LongBreakEnabled,
		AutoContinue:            &settings.AutoContinue,
		TickInterval:            &tick,
		Bell:                    &settings.Bell,
	}
}

func applyFileSettings(settings *preferences.Settings, fileData fileSettings, path string) error {
	durations := []struct {
		key    string
		value  *string
		target *time.Duration
	}{
		{"work", fileData.Work, &settings.Work},
		{"short_break", fileData.ShortBreak, &settings.ShortBreak},
		{"long_break", fileData.LongBreak, &settings.LongBreak},
		{"tick_interval", fileData.TickInterval, &settings.TickInterval},
	}
	for _, duration := range durations {
		if duration.value == nil {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(*duration.value))
		if err != nil {
			return fmt.Errorf("parse %s in %q: %w", duration.key, path, err)
		}
		*duration.target = parsed
	}

	if fileData.SessionsBeforeLongBreak != nil {
		settings.SessionsBeforeLongBreak = *fileData.SessionsBeforeLongBreak
	}
	if fileData.LongBreakEnabled != nil {
		settings.LongBreakEnabled = *fileData.LongBreakEnabled
	}
	if fileData.AutoContinue != nil {
		settings.AutoContinue = *fileData.AutoContinue
	}
	if fileData.Bell != nil {
		settings.Bell = *fileData.Bell
	}
	return nil
}
