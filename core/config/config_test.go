package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.HistorySize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Configuration)
	}{
		{"zero history size", func(c *Configuration) { c.HistorySize = 0 }},
		{"negative port", func(c *Configuration) { c.SSH.Port = -1 }},
		{"huge port", func(c *Configuration) { c.SSH.Port = 70000 }},
		{"duplicate users", func(c *Configuration) {
			c.SSH.Users = append(c.SSH.Users, c.SSH.Users[0])
		}},
		{"user without password", func(c *Configuration) {
			c.SSH.Users = []User{{Username: "demo"}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte("promt: oops\n"), 0600))

	_, err := Load(fs, ".")
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	cfg := Default()
	cfg.SSH.Users = []User{
		{Username: "alice", Password: "one"},
		{Username: "bob", Password: "two"},
	}

	assert.Equal(t, []string{"one"}, cfg.Passwords("alice"))
	assert.Empty(t, cfg.Passwords("mallory"))
}
