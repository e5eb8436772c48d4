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
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jStore implements Store over the official Bolt driver.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewNeo4jStore connects to the configured endpoint and verifies
// connectivity before returning.
//
// Returns Store interface to enforce abstraction.
func NewNeo4jStore(ctx context.Context, config *Config) (Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(config.URI,
		neo4j.BasicAuth(config.Username, config.Password, ""),
		func(cfg *neo4j.Config) {
			cfg.MaxConnectionPoolSize = config.MaxConnectionPoolSize
			cfg.MaxConnectionLifetime = config.MaxConnectionLifetime
			cfg.SocketConnectTimeout = config.ConnectTimeout
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: verify connectivity: %w", ErrConnection, err)
	}

	return &Neo4jStore{
		driver:   driver,
		database: config.Database,
		logger:   slog.Default().With("component", "neo4j-store"),
	}, nil
}

// BeginTx opens a write session and an explicit transaction on it. The
// returned Tx owns the session and releases it on Commit or Rollback.
func (s *Neo4jStore) BeginTx(ctx context.Context) (Tx, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		_ = session.Close(ctx)
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrConnection, err)
	}

	return &neo4jTx{session: session, tx: tx}, nil
}

// Close releases the driver and its connection pool.
func (s *Neo4jStore) Close(ctx context.Context) error {
	s.logger.Debug("closing neo4j driver")
	return s.driver.Close(ctx)
}

type neo4jTx struct {
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
	done    bool
}

func (t *neo4jTx) Run(ctx context.Context, query string, params map[string]any) (Counters, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return Counters{}, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return Counters{}, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	counters := summary.Counters()
	return Counters{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		PropertiesSet:        counters.PropertiesSet(),
	}, nil
}

func (t *neo4jTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	err := t.tx.Commit(ctx)
	closeErr := t.session.Close(ctx)
	if err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStatement, err)
	}
	return closeErr
}

func (t *neo4jTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	err := t.tx.Rollback(ctx)
	closeErr := t.session.Close(ctx)
	if err != nil {
		return err
	}
	return closeErr
}
