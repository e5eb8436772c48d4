// Copyright 2025 Skugraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package graph

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Environment variables consumed by FromEnv.
const (
	EnvURI      = "NEO4J_URI"
	EnvUser     = "NEO4J_USER"
	EnvPassword = "NEO4J_PASSWORD"
	EnvDatabase = "NEO4J_DATABASE"
)

// Config holds connection settings for the graph database.
type Config struct {
	// URI is the Bolt endpoint, e.g. "bolt://localhost:7687".
	URI string

	// Username and Password authenticate the connection. Password may be
	// empty for unauthenticated local instances.
	Username string
	Password string

	// Database selects a named database. Empty uses the server default.
	Database string

	// MaxConnectionPoolSize caps pooled connections.
	// Default: 50
	MaxConnectionPoolSize int

	// MaxConnectionLifetime retires pooled connections after this duration.
	// Default: 1000s
	MaxConnectionLifetime time.Duration

	// ConnectTimeout bounds socket establishment and the connectivity check.
	// Default: 5s
	ConnectTimeout time.Duration
}

// DefaultConfig returns a Config with defaults for a local instance.
func DefaultConfig() *Config {
	return &Config{
		URI:                   "bolt://localhost:7687",
		Username:              "neo4j",
		MaxConnectionPoolSize: 50,
		MaxConnectionLifetime: 1000 * time.Second,
		ConnectTimeout:        5 * time.Second,
	}
}

// FromEnv builds a Config from NEO4J_* environment variables, falling back
// to defaults for anything unset.
func FromEnv() *Config {
	cfg := DefaultConfig()

	if uri := strings.TrimSpace(os.Getenv(EnvURI)); uri != "" {
		cfg.URI = uri
	}
	if user := strings.TrimSpace(os.Getenv(EnvUser)); user != "" {
		cfg.Username = user
	}
	cfg.Password = strings.TrimSpace(os.Getenv(EnvPassword))
	cfg.Database = strings.TrimSpace(os.Getenv(EnvDatabase))

	return cfg
}

// Validate checks that the configuration is complete enough to connect.
func (c *Config) Validate() error {
	if c.URI == "" {
		return errors.New("graph config: URI is required")
	}
	if c.Username == "" {
		return errors.New("graph config: Username is required")
	}
	if c.MaxConnectionPoolSize < 1 {
		return errors.New("graph config: MaxConnectionPoolSize must be positive")
	}
	if c.MaxConnectionLifetime <= 0 {
		return errors.New("graph config: MaxConnectionLifetime must be positive")
	}
	if c.ConnectTimeout <= 0 {
		return errors.New("graph config: ConnectTimeout must be positive")
	}
	return nil
}
