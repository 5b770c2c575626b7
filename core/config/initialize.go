package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"
)

// Initialize writes the default configuration and a fresh host key into the
// directory. Existing files are left untouched so it is safe to re-run.
func Initialize(fs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	if exists, _ := afero.Exists(fs, configPath); !exists {
		logger.Printf("Writing %s", configPath)
		if err := afero.WriteFile(fs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	} else {
		logger.Printf("Keeping existing %s", configPath)
	}

	keyPath := filepath.Join(dir, HostKeyName)
	if exists, _ := afero.Exists(fs, keyPath); !exists {
		logger.Printf("Generating host key %s", keyPath)
		keyPem, err := generateHostKey()
		if err != nil {
			return nil, fmt.Errorf("generating host key: %w", err)
		}
		if err := afero.WriteFile(fs, keyPath, keyPem, 0600); err != nil {
			return nil, err
		}
	} else {
		logger.Printf("Keeping existing host key %s", keyPath)
	}

	return Load(fs, dir)
}

func generateHostKey() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	block, err := ssh.MarshalPrivateKey(priv, "catshell host key")
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(block), nil
}
