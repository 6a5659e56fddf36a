package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration.
type Config struct {
	ServerURL string
	StateFile string
	Output    string

	state clientState
}

// clientState is persisted between invocations so the session and credential
// cookies survive across commands.
type clientState struct {
	Session    string `json:"session,omitempty"`
	Credential string `json:"credential,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("PANEL_SERVER", "http://localhost:8080"),
		StateFile: getEnvOrDefault("PANEL_STATE_FILE", defaultStateFile()),
		Output:    "text",
	}
}

// LoadState reads the persisted cookies. A missing state file is fine.
func (c *Config) LoadState() error {
	data, err := os.ReadFile(c.StateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &c.state)
}

// SaveState persists the client's current cookies.
func (c *Config) SaveState(session, credential string) error {
	c.state = clientState{Session: session, Credential: credential}

	dir := filepath.Dir(c.StateFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(c.state)
	if err != nil {
		return err
	}
	return os.WriteFile(c.StateFile, data, 0600)
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".panelctl/state.json"
	}
	return filepath.Join(home, ".panelctl", "state.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
