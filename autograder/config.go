package autograder

import (
	"encoding/json"
	"log"
	"os"

	"golang.org/x/xerrors"
)

// ConfigPath is where a Gradescope submission keeps the autograder configuration.
const ConfigPath = "source/autograderConfig.json"

type TestCase struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Visibility string `json:"visibility"`
	Points     int    `json:"points"`
}

type Config struct {
	AssignmentName    string     `json:"assignmentName"`
	AssignmentCodeDir string     `json:"assignmentCodeDir"` // holds the reference <n>.asm files
	StudentCodePath   string     `json:"studentCodePath"`   // holds the submitted <n>.lst files
	TestCases         []TestCase `json:"testCases"`
	FormatPoints      int        `json:"formatPoints"`
	ListingOptions    string     `json:"listingOptions"` // options the listings were produced with, e.g. "a"
	Mode              string     `json:"mode"`           // only 'asm' is supported
}

var conf *Config

// LoadConfig reads an autograder configuration file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading autograder config: %w", err)
	}

	c := new(Config)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, xerrors.Errorf("parsing autograder config %s: %w", path, err)
	}
	return c, nil
}

// GetConfig returns the configuration at ConfigPath, or nil when there is none, meaning the
// program is not running as an autograder.
func GetConfig() *Config {
	if conf == nil {
		if _, err := os.Stat(ConfigPath); err != nil {
			return nil
		}

		c, err := LoadConfig(ConfigPath)
		if err != nil {
			log.Fatalln("Error loading autograder config:", err)
		}
		conf = c
	}

	return conf
}
