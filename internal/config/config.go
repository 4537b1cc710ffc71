package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Sector is a configured content category: where to look for source
// material and what the generated post should be about.
type Sector struct {
	Name     string   `yaml:"name"`
	Feeds    []string `yaml:"feeds"`
	Tags     []string `yaml:"tags"`
	Keywords []string `yaml:"keywords"`
}

type Config struct {
	// LLM settings
	OpenAIAPIKey string
	Model        string

	// Acquisition settings
	SectorsPath    string
	MaxPerFeed     int
	PickCount      int
	MinWords       int
	FetchDelay     time.Duration
	RequestTimeout time.Duration

	// Output settings
	ContentRoot string

	// Scheduler settings. MaxBarrenRounds aborts the run after that many
	// consecutive full round-robin passes with zero candidates anywhere;
	// 0 disables the guard and the loop spins until candidates appear.
	MaxBarrenRounds int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		Model:           "gpt-5",
		SectorsPath:     "configs/sectors.yaml",
		MaxPerFeed:      8,
		PickCount:       3,
		MinWords:        200,
		FetchDelay:      500 * time.Millisecond,
		RequestTimeout:  30 * time.Second,
		ContentRoot:     "content",
		MaxBarrenRounds: 3,
	}

	// Load from environment
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	}

	cfg.SectorsPath = getEnvOrDefault("SECTORS_CONFIG_PATH", cfg.SectorsPath)
	cfg.ContentRoot = getEnvOrDefault("CONTENT_ROOT", cfg.ContentRoot)

	cfg.MaxPerFeed = getEnvIntOrDefault("MAX_PER_FEED", cfg.MaxPerFeed)
	cfg.PickCount = getEnvIntOrDefault("PICK_COUNT", cfg.PickCount)
	cfg.MinWords = getEnvIntOrDefault("MIN_WORDS", cfg.MinWords)

	// 0 is meaningful here: it disables the barren-rounds guard entirely.
	if v := os.Getenv("MAX_BARREN_ROUNDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.MaxBarrenRounds = val
		}
	}

	if v := os.Getenv("FETCH_DELAY_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.FetchDelay = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.MaxPerFeed < 1 {
		return fmt.Errorf("MAX_PER_FEED must be positive")
	}
	if c.PickCount < 1 {
		return fmt.Errorf("PICK_COUNT must be positive")
	}
	return nil
}

// sectorsFile is the YAML config structure:
//
//	sectors:
//	  - name: ...
//	    feeds: [...]
//	    tags: [...]
//	    keywords: [...]
type sectorsFile struct {
	Sectors []Sector `yaml:"sectors"`
}

// LoadSectors reads the sector list from a YAML file. A missing or
// malformed file is fatal to the run, so errors propagate unwrapped.
func LoadSectors(path string) ([]Sector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg sectorsFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode sectors config %s: %w", path, err)
	}
	if len(cfg.Sectors) == 0 {
		return nil, fmt.Errorf("sectors config %s defines no sectors", path)
	}
	for i, s := range cfg.Sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector %d in %s has no name", i, path)
		}
	}
	return cfg.Sectors, nil
}
