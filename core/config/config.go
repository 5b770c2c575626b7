package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	TranscriptDirName = "session_logs"
	HostKeyName       = "host_key"
)

// Configuration holds everything the shell and its SSH surface read at
// startup. The interactive shell itself runs fine with the built-in
// defaults; a config file is only needed to change them or to serve.
type Configuration struct {
	configFs afero.Fs

	// Prompt is the prompt template. Supports \u, \h, \w and \$ escapes.
	Prompt string `json:"prompt"`
	// HistorySize is the capacity of the in-memory history ring. History
	// is never persisted across sessions.
	HistorySize int    `json:"history_size" validate:"gte=1"`
	Motd        string `json:"motd"`

	SSH SSH `json:"ssh"`
}

// SSH configures the serve command.
type SSH struct {
	Port        int    `json:"port" validate:"gte=0,lte=65535"`
	HostKeyPath string `json:"host_key_path"`

	// SessionsPerMinute caps the rate of new inbound sessions.
	SessionsPerMinute int `json:"sessions_per_minute" validate:"gte=1"`

	Users []User `json:"users" validate:"unique=Username"`
}

// User is one account allowed to open an SSH session.
type User struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewOsFs()
	}
	return c.configFs
}

// TranscriptFs returns the filesystem that session transcripts are written
// under.
func (c *Configuration) TranscriptFs() afero.Fs {
	return c.fs()
}

// HostKeyPem returns the bytes of the SSH host private key.
func (c *Configuration) HostKeyPem() ([]byte, error) {
	path := c.SSH.HostKeyPath
	if path == "" {
		path = HostKeyName
	}
	return afero.ReadFile(c.fs(), path)
}

// Passwords returns allowable passwords for the given username.
func (c *Configuration) Passwords(username string) []string {
	var out []string
	for _, v := range c.SSH.Users {
		if v.Username == username {
			out = append(out, v.Password)
		}
	}
	return out
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.configFs = afero.NewOsFs()
	return &out
}
