package shared

import (
	"encoding/json"
	"os"
)

type ServerConfig struct {
	Addr   string `json:"addr"`
	Store  string `json:"store"`   // "mem" | "sqlite"
	DBPath string `json:"db_path"` // sqlite only; ":memory:" keeps state in-process
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:   ":8086",
		Store:  "mem",
		DBPath: ":memory:",
	}
}

func LoadServerConfig(path string) (*ServerConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultServerConfig()
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if c.Addr == "" {
		c.Addr = ":8086"
	}
	if c.Store == "" {
		c.Store = "mem"
	}
	if c.DBPath == "" {
		c.DBPath = ":memory:"
	}
	return c, nil
}

func SaveServerConfig(path string, c *ServerConfig) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

// ApplyEnv lets env vars override whatever the file said.
func (c *ServerConfig) ApplyEnv() {
	if v := os.Getenv("TC_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("TC_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("TC_DB_PATH"); v != "" {
		c.DBPath = v
	}
}
