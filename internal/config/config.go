package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration tree. Every field has a working
// default; config.toml only needs the values that differ.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Game     Game     `toml:"game"`
	Log      Log      `toml:"log"`
}

type Server struct {
	Addr      string `toml:"addr"`
	StaticDir string `toml:"static_dir"`
}

type Database struct {
	URL string `toml:"url"`
}

type Game struct {
	TickRateHz int    `toml:"tick_rate_hz"`
	UnitsPath  string `toml:"units_path"`
	MedalsPath string `toml:"medals_path"`
}

type Log struct {
	Development bool `toml:"development"`
}

func defaults() Config {
	return Config{
		Server: Server{
			Addr:      ":8080",
			StaticDir: "web/static",
		},
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
		},
		Game: Game{
			TickRateHz: 30,
			UnitsPath:  "internal/data/units.yaml",
			MedalsPath: "internal/data/medals.json",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error: the defaults stand. PORT, when set, overrides the listen
// address either way (hosting platforms inject it).
func Load(path string) (Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}
