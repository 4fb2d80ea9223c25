package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"lookup-service/internal/lookup/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	SchemaFile    string      // YAML с раскладкой колонок; пусто — встроенная
	Scope         model.Scope // row | key; пусто — по режиму (nearest: row, tolerance: key)
	UnicodeNFC    bool        // NFC для ключей в режиме tolerance
	LocaleNumbers bool        // "1.234,5" в текстовых ячейках считать числом
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	nfc, _ := strconv.ParseBool(getenv("LOOKUP_UNICODE_NFC", "false"))
	locale, _ := strconv.ParseBool(getenv("LOOKUP_LOCALE_NUMBERS", "false"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          port,
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		MaxUploadMB:   mb,
		LogFile:       getenv("LOG_FILE", "logs/lookup-service.log"),
		SchemaFile:    os.Getenv("LOOKUP_SCHEMA_FILE"),
		Scope:         model.Scope(os.Getenv("LOOKUP_SCOPE")),
		UnicodeNFC:    nfc,
		LocaleNumbers: locale,
	}
}

// Validate — проверка на старте, чтобы не падать на первом запросе.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_MB %d", c.MaxUploadMB)
	}
	if _, ok := model.ParseScope(string(c.Scope)); !ok && c.Scope != "" {
		return fmt.Errorf("invalid LOOKUP_SCOPE %q (want row or key)", c.Scope)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c Config) Options() model.Options {
	return model.Options{Scope: c.Scope, UnicodeNFC: c.UnicodeNFC, LocaleNumbers: c.LocaleNumbers}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
