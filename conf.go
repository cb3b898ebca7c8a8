package todogo

import (
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string
	LogPath    string
	DateFormat string
}

const (
	DefaultLogLevel = "WARN"
	// DefaultDateFormat renders due dates the MM/DD/YYYY way the add
	// command accepts them.
	DefaultDateFormat = "01/02/2006"
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultLogPath = path.Join(userHome, ".todogo", "todo.log")
)

// LoadConfig resolves configuration as env > conf file > default. A
// missing conf file is created with the defaults. The store file path
// is deliberately not configurable; the store always lives in the
// working directory.
func LoadConfig() (Config, error) {
	confFromEnv := Config{
		LogLevel:   os.Getenv("TODOGO_LOG_LEVEL"),
		LogPath:    os.Getenv("TODOGO_LOG_PATH"),
		DateFormat: os.Getenv("TODOGO_DATE_FORMAT"),
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	cfgDir = path.Join(cfgDir, "todogo")
	confFile := path.Join(cfgDir, "todogo.conf")
	if _, err := os.Stat(confFile); err != nil {
		if err := os.MkdirAll(cfgDir, 0o744); err != nil {
			return Config{}, fmt.Errorf("create config dir: %w", err)
		}
		f, err := os.Create(confFile)
		if err != nil {
			return Config{}, fmt.Errorf("create conf file: %w", err)
		}
		if _, err := f.WriteString(
			"TODOGO_LOG_LEVEL=" + DefaultLogLevel + "\n" +
				"TODOGO_LOG_PATH=" + DefaultLogPath + "\n" +
				"TODOGO_DATE_FORMAT=" + DefaultDateFormat + "\n",
		); err != nil {
			_ = f.Close()
			return Config{}, fmt.Errorf("write default conf: %w", err)
		}
		_ = f.Close()
	}
	if err := godotenv.Load(confFile); err != nil {
		return Config{}, fmt.Errorf("load conf file: %w", err)
	}
	confFromFile := Config{
		LogLevel:   os.Getenv("TODOGO_LOG_LEVEL"),
		LogPath:    os.Getenv("TODOGO_LOG_PATH"),
		DateFormat: os.Getenv("TODOGO_DATE_FORMAT"),
	}

	return Config{
		LogLevel:   coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:    coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		DateFormat: coalesce(confFromEnv.DateFormat, confFromFile.DateFormat, DefaultDateFormat),
	}, nil
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
