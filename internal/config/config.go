// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Client is a struct that contains the configuration of the web service client.
	Client client
	// Server is a struct that contains the configuration of the reference action server.
	Server server
	// Archive is a struct that contains the configuration of the call outcome archive.
	Archive archive
)

type global struct {
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type client struct {
	// Address is the address of the action-dispatch endpoint.
	Address string `yaml:"address,omitempty"`
	// AddressSSMKey is the SSM parameter holding the address. It takes precedence over Address.
	AddressSSMKey string `yaml:"addressSSMKey,omitempty"`
	// Method is the HTTP method used to send actions: GET or POST.
	Method string `yaml:"method,omitempty" default:"POST"`
	// Throwable makes transport and decode failures fail the command.
	Throwable bool `yaml:"throwable,omitempty"`
	// Timeout bounds every call.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"10s"`
	// Token is an OPTIONAL bearer token sent with every call.
	Token string `yaml:"token,omitempty"`
}

type server struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type archive struct {
	Enabled    bool   `yaml:"enabled,omitempty"`
	BucketName string `yaml:"bucketName,omitempty"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Client),
		defaults.Set(&Server),
		defaults.Set(&Archive),
	)
}

// LoadFromFile loads the configuration from a file. A missing file is not an error.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Client  client  `yaml:"client,omitempty"`
		Server  server  `yaml:"server,omitempty"`
		Archive archive `yaml:"archive,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Client = a.Client
	Server = a.Server
	Archive = a.Archive

	return nil
}
