// Package config resolves where levelup keeps its data and opens the matching store.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/levelup/internal/constants"
	"github.com/julianstephens/levelup/internal/keyring"
	"github.com/julianstephens/levelup/internal/logger"
	"github.com/julianstephens/levelup/internal/storage"
	"github.com/julianstephens/levelup/internal/storage/memory"
	"github.com/julianstephens/levelup/internal/storage/postgres"
	"github.com/julianstephens/levelup/internal/storage/sqlite"
)

// Source records where the storage target came from
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

// Target is a resolved storage location: a sqlite path, a PostgreSQL
// connection string, or "memory".
type Target struct {
	Value  string
	Source Source
}

// Postgres reports whether the target is a PostgreSQL connection string
func (t Target) Postgres() bool {
	return IsPostgres(t.Value)
}

// Memory reports whether the target is the in-process store
func (t Target) Memory() bool {
	return t.Value == memory.ConfigPath
}

// IsPostgres accepts URL and key=value connection strings.
func IsPostgres(s string) bool {
	return postgres.IsConnString(s) || strings.Contains(s, "host=") || strings.Contains(s, "dbname=")
}

// SecretGetter reads the stored connection string
type SecretGetter interface {
	Get() (string, error)
}

// Resolver picks the storage target: an explicit --config flag, then
// LEVELUP_DB_CONNECTION, then the OS keyring, then the default sqlite path.
type Resolver struct {
	Getenv func(string) string
	Vault  SecretGetter
}

// DefaultResolver reads the process environment and the OS keyring
func DefaultResolver() Resolver {
	return Resolver{Getenv: os.Getenv, Vault: keyring.Connection}
}

func (r Resolver) Resolve(flag string) (Target, error) {
	if flag != "" && flag != constants.DefaultConfigPath {
		if IsPostgres(flag) {
			// flags end up in shell history and process listings
			if err := postgres.ValidateConnString(flag); err != nil {
				return Target{}, err
			}
			return Target{Value: flag, Source: SourceFlag}, nil
		}
		if flag == memory.ConfigPath {
			return Target{Value: flag, Source: SourceFlag}, nil
		}
		path, err := ExpandPath(flag)
		if err != nil {
			return Target{}, err
		}
		return Target{Value: path, Source: SourceFlag}, nil
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if conn := strings.TrimSpace(getenv(constants.EnvDBConnection)); conn != "" {
		if err := validateStored(conn); err != nil {
			return Target{}, fmt.Errorf("%s: %w", constants.EnvDBConnection, err)
		}
		return Target{Value: conn, Source: SourceEnv}, nil
	}

	if r.Vault != nil {
		conn, err := r.Vault.Get()
		switch {
		case err == nil:
			if err := validateStored(conn); err != nil {
				return Target{}, fmt.Errorf("keyring: %w", err)
			}
			return Target{Value: conn, Source: SourceKeyring}, nil
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("keyring lookup failed", "error", err)
		}
	}

	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return Target{}, err
	}
	return Target{Value: path, Source: SourceDefault}, nil
}

// validateStored accepts passwords, which are safe in the environment or keyring.
func validateStored(conn string) error {
	err := postgres.ValidateConnString(conn)
	if err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	return nil
}

// Open returns an unloaded store for the target
func Open(t Target) storage.Provider {
	switch {
	case t.Memory():
		return memory.New()
	case t.Postgres():
		return postgres.New(t.Value)
	default:
		return sqlite.New(t.Value)
	}
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir is where logs and other local state live for the target. File targets
// use their own directory, everything else the default config directory.
func Dir(t Target) (string, error) {
	if !t.Memory() && !t.Postgres() {
		return filepath.Dir(t.Value), nil
	}
	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
