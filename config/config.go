package config

import (
	"encoding/json"
	"io/fs"
	"os"

	"golang.org/x/xerrors"
)

// DefaultPath is read when no other configuration file is given.
const DefaultPath = "trasm.json"

type Config struct {
	ListingOptions        string `json:"listingOptions"` // letters of c, l, f, a
	Title                 string `json:"title"`          // first header line of written listings
	WebAddress            string `json:"webAddress"`
	LanguageServerAddress string `json:"languageServerAddress"`
	LogEndpoint           string `json:"logEndpoint"`
	FirstPassSuffix       string `json:"firstPassSuffix"`
	LexemeSuffix          string `json:"lexemeSuffix"`
}

func Default() *Config {
	return &Config{
		Title:                 "x86 Translator listing",
		WebAddress:            ":2035",
		LanguageServerAddress: ":2035",
		LogEndpoint:           "http://localhost:8006/log",
		FirstPassSuffix:       ".flst",
		LexemeSuffix:          ".lex",
	}
}

// Load reads the JSON file at path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	conf := Default()

	b, err := os.ReadFile(path)
	if xerrors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, xerrors.Errorf("reading config %s: %w", path, err)
	}

	if err := json.Unmarshal(b, conf); err != nil {
		return nil, xerrors.Errorf("parsing config %s: %w", path, err)
	}
	return conf, nil
}
