// Package config merges flags, INPUT_* environment variables and an optional
// config file into the parameters of a sync run.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gabesw/confluence-readme-sync/internal/confluence"
	"github.com/gabesw/confluence-readme-sync/internal/syncerr"
)

// EnvPrefix matches the way GitHub passes action inputs: INPUT_FILEPATH, INPUT_URL, ...
const EnvPrefix = "INPUT"

const (
	KeyFilePath         = "filepath"
	KeyURL              = "url"
	KeyUsername         = "username"
	KeyToken            = "token"
	KeyStartMarker      = "insert_start_text"
	KeyEndMarker        = "insert_end_text"
	KeyMaxImageWidth    = "max_image_width"
	KeyStripFrontMatter = "strip_front_matter"
	KeyWorkspace        = "workspace"
	KeyDryRun           = "dry_run"
	KeyReport           = "report"
)

var keys = []string{
	KeyFilePath, KeyURL, KeyUsername, KeyToken, KeyStartMarker, KeyEndMarker,
	KeyMaxImageWidth, KeyStripFrontMatter, KeyWorkspace, KeyDryRun, KeyReport,
}

var digitsPattern = regexp.MustCompile(`^\d+$`)

// Config holds the parameters of one invocation. The json tags name the keys
// in validation errors.
type Config struct {
	FilePath    string `json:"filepath"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	Token       string `json:"token"`
	StartMarker string `json:"insert_start_text"`
	EndMarker   string `json:"insert_end_text"`

	MaxImageWidth    string `json:"max_image_width"`
	StripFrontMatter bool   `json:"strip_front_matter"`
	Workspace        string `json:"workspace"`
	DryRun           bool   `json:"dry_run"`
	Report           string `json:"report"`

	// Derived from URL by Validate
	Domain string `json:"-"`
	PageID string `json:"-"`
}

// New returns a viper instance reading INPUT_* environment variables
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyStripFrontMatter, false)
	v.SetDefault(KeyDryRun, false)
	return v
}

// BindFlags binds every flag named after a key, with hyphens in place of
// underscores (--insert-start-text), to that key. Flags override environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range keys {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return syncerr.Config(err, "failed to bind flag "+f.Name)
		}
	}
	return nil
}

// Load reads the configuration. When configFile is set it is read first and
// environment variables and flags take precedence over it. Nothing is
// validated here.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, syncerr.Config(err, "failed to read config file "+configFile)
		}
	}

	cfg := &Config{
		FilePath:         v.GetString(KeyFilePath),
		URL:              v.GetString(KeyURL),
		Username:         v.GetString(KeyUsername),
		Token:            v.GetString(KeyToken),
		StartMarker:      v.GetString(KeyStartMarker),
		EndMarker:        v.GetString(KeyEndMarker),
		MaxImageWidth:    v.GetString(KeyMaxImageWidth),
		StripFrontMatter: v.GetBool(KeyStripFrontMatter),
		DryRun:           v.GetBool(KeyDryRun),
		Report:           v.GetString(KeyReport),
	}
	cfg.Workspace = resolveWorkspace(v.GetString(KeyWorkspace), cfg.FilePath)

	return cfg, nil
}

// resolveWorkspace falls back to GITHUB_WORKSPACE, then to the markdown
// file's directory when running inside an action that did not export one.
func resolveWorkspace(explicit, markdownPath string) string {
	if explicit != "" {
		return explicit
	}
	if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
		return ws
	}
	if os.Getenv("GITHUB_ACTION") != "" && markdownPath != "" {
		return filepath.Dir(markdownPath)
	}
	return ""
}

// Validate checks everything a sync needs and derives Domain and PageID.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.FilePath, validation.Required),
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.StartMarker, validation.Required),
		validation.Field(&c.EndMarker, validation.Required),
		validation.Field(&c.MaxImageWidth, validation.Match(digitsPattern).Error("must be a whole number of pixels")),
	)
	if err != nil {
		return syncerr.Config(err, "invalid configuration: "+err.Error())
	}
	return c.parseURL()
}

// ValidateConnection checks only what is needed to talk to the page.
func (c *Config) ValidateConnection() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Token, validation.Required),
	)
	if err != nil {
		return syncerr.Config(err, "invalid configuration: "+err.Error())
	}
	return c.parseURL()
}

func (c *Config) parseURL() error {
	domain, pageID, err := confluence.ParsePageURL(c.URL)
	if err != nil {
		return syncerr.Config(err, err.Error())
	}
	c.Domain = domain
	c.PageID = pageID
	return nil
}
