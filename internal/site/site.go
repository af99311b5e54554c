// Package site holds the static content of the public site: its base URL,
// the pages listed in the sitemap, business details and the FAQ.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultConfig []byte

type Page struct {
	Path       string `yaml:"path"`
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
}

type Business struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Logo        string   `yaml:"logo"`
	Image       string   `yaml:"image"`
	Email       string   `yaml:"email"`
	Locality    string   `yaml:"locality"`
	Region      string   `yaml:"region"`
	Country     string   `yaml:"country"`
	Latitude    string   `yaml:"latitude"`
	Longitude   string   `yaml:"longitude"`
	PriceRange  string   `yaml:"price_range"`
	SameAs      []string `yaml:"same_as"`
}

type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Config struct {
	BaseURL     string   `yaml:"base_url"`
	Name        string   `yaml:"name"`
	StaticPages []Page   `yaml:"static_pages"`
	Business    Business `yaml:"business"`
	FAQ         []FAQ    `yaml:"faq"`
}

// URL joins path onto the base URL.
func (c Config) URL(path string) string {
	if path == "" || path == "/" {
		return c.BaseURL + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

// Default returns the embedded configuration.
func Default() Config {
	c, err := Parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("embedded site config: %v", err))
	}
	return c
}

// Load reads the configuration at path, or the embedded default when path
// is empty.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read site config: %w", err)
	}
	return Parse(b)
}

// Parse decodes and checks a yaml document.
func Parse(b []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("decode site config: %w", err)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return Config{}, errors.New("site config: base_url is required")
	}
	if c.Name == "" {
		c.Name = strings.TrimPrefix(strings.TrimPrefix(c.BaseURL, "https://"), "http://")
	}
	return c, nil
}
