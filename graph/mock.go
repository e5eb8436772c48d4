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
	"sync"
)

// Statement records one Run call for test assertions.
type Statement struct {
	Query  string
	Params map[string]any
}

// ProductProps is the stored property set of a product node.
type ProductProps struct {
	Name        string
	Description string
	Price       string
}

type specKey struct {
	key   string
	value string
}

type edgeKey struct {
	productID string
	edgeType  string
	targetA   string
	targetB   string
}

// graphState is one snapshot of the mock database. Every open transaction
// works on its own clone; Commit swaps the clone in.
type graphState struct {
	products       map[string]ProductProps
	categories     map[string]struct{}
	specifications map[specKey]struct{}
	edges          map[edgeKey]struct{}
}

func newGraphState() *graphState {
	return &graphState{
		products:       make(map[string]ProductProps),
		categories:     make(map[string]struct{}),
		specifications: make(map[specKey]struct{}),
		edges:          make(map[edgeKey]struct{}),
	}
}

func (s *graphState) clone() *graphState {
	copied := &graphState{
		products:       make(map[string]ProductProps, len(s.products)),
		categories:     make(map[string]struct{}, len(s.categories)),
		specifications: make(map[specKey]struct{}, len(s.specifications)),
		edges:          make(map[edgeKey]struct{}, len(s.edges)),
	}
	for id, props := range s.products {
		copied.products[id] = props
	}
	for name := range s.categories {
		copied.categories[name] = struct{}{}
	}
	for key := range s.specifications {
		copied.specifications[key] = struct{}{}
	}
	for key := range s.edges {
		copied.edges[key] = struct{}{}
	}
	return copied
}

// MockStore is an in-memory test double for Store. It applies the same MERGE
// semantics the real statements have, so idempotence, atomicity, and edge
// uniqueness are observable in tests without a server. Counters approximate
// the driver's summary counters.
type MockStore struct {
	mu         sync.Mutex
	state      *graphState
	statements []Statement
	begins     int
	commits    int
	rollbacks  int
	closed     bool

	// BeginErr fails BeginTx while set.
	BeginErr error

	// CommitErr fails Commit while set. A failed commit leaves the
	// transaction open so a rollback is still observable.
	CommitErr error

	// FailOnStatement fails the Nth Run call across the store's lifetime
	// (1-based) with FailWith, or ErrStatement when FailWith is nil.
	FailOnStatement int
	FailWith        error
}

// NewMockStore creates an empty in-memory store.
// Note: Returns concrete type to allow state assertions in tests.
func NewMockStore() *MockStore {
	return &MockStore{state: newGraphState()}
}

// BeginTx opens a transaction over a snapshot of the current state.
func (s *MockStore) BeginTx(ctx context.Context) (Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if s.BeginErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, s.BeginErr)
	}

	s.begins++
	return &mockTx{store: s, state: s.state.clone()}, nil
}

// Close marks the store closed. Further BeginTx calls fail.
func (s *MockStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Product returns a stored product's properties.
func (s *MockStore) Product(id string) (ProductProps, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.state.products[id]
	return props, ok
}

// ProductCount returns the number of committed product nodes.
func (s *MockStore) ProductCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.products)
}

// CategoryCount returns the number of committed category nodes.
func (s *MockStore) CategoryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.categories)
}

// SpecificationCount returns the number of committed specification nodes.
func (s *MockStore) SpecificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.specifications)
}

// RelationshipCount returns the number of committed edges of all types.
func (s *MockStore) RelationshipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.edges)
}

// HasCategory reports whether a category node exists.
func (s *MockStore) HasCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.categories[name]
	return ok
}

// HasSpecification reports whether a specification node exists.
func (s *MockStore) HasSpecification(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.specifications[specKey{key: key, value: value}]
	return ok
}

// HasBelongsTo reports whether a product-to-category edge exists.
func (s *MockStore) HasBelongsTo(productID, category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.edges[edgeKey{productID: productID, edgeType: EdgeBelongsTo, targetA: category}]
	return ok
}

// HasSpecificationEdge reports whether a product-to-specification edge exists.
func (s *MockStore) HasSpecificationEdge(productID, key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.edges[edgeKey{
		productID: productID,
		edgeType:  EdgeHasSpecification,
		targetA:   key,
		targetB:   value,
	}]
	return ok
}

// Statements returns a copy of every Run call seen so far, committed or not.
func (s *MockStore) Statements() []Statement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Statement(nil), s.statements...)
}

// StatementCount returns the number of Run calls seen so far.
func (s *MockStore) StatementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.statements)
}

// BeginCount returns the number of transactions opened.
func (s *MockStore) BeginCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begins
}

// CommitCount returns the number of committed transactions.
func (s *MockStore) CommitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// RollbackCount returns the number of rolled back transactions.
func (s *MockStore) RollbackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// Reset clears state, history, and failure injections.
func (s *MockStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newGraphState()
	s.statements = nil
	s.begins = 0
	s.commits = 0
	s.rollbacks = 0
	s.closed = false
	s.BeginErr = nil
	s.CommitErr = nil
	s.FailOnStatement = 0
	s.FailWith = nil
}

type mockTx struct {
	store *MockStore
	state *graphState
	done  bool
}

func (t *mockTx) Run(ctx context.Context, query string, params map[string]any) (Counters, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.done {
		return Counters{}, fmt.Errorf("%w: transaction finished", ErrStatement)
	}
	if err := ctx.Err(); err != nil {
		return Counters{}, fmt.Errorf("%w: %w", ErrStatement, err)
	}

	t.store.statements = append(t.store.statements, Statement{Query: query, Params: params})

	if t.store.FailOnStatement > 0 && len(t.store.statements) == t.store.FailOnStatement {
		if t.store.FailWith != nil {
			return Counters{}, t.store.FailWith
		}
		return Counters{}, ErrStatement
	}

	return t.state.apply(query, params)
}

func (t *mockTx) Commit(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.done {
		return nil
	}
	if t.store.CommitErr != nil {
		return fmt.Errorf("%w: %w", ErrStatement, t.store.CommitErr)
	}

	t.done = true
	t.store.state = t.state
	t.store.commits++
	return nil
}

func (t *mockTx) Rollback(ctx context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.done {
		return nil
	}

	t.done = true
	t.store.rollbacks++
	return nil
}

func (s *graphState) apply(query string, params map[string]any) (Counters, error) {
	switch query {
	case stmtUpsertProducts:
		return s.applyUpsertProducts(params)

	case stmtUpsertCategory:
		name, err := stringParam(params, "name")
		if err != nil {
			return Counters{}, err
		}
		return s.mergeCategory(name), nil

	case stmtRelateCategory:
		productID, err := stringParam(params, "product_id")
		if err != nil {
			return Counters{}, err
		}
		category, err := stringParam(params, "category_name")
		if err != nil {
			return Counters{}, err
		}
		return s.relateCategory(productID, category), nil

	case stmtUpsertSpecification:
		key, err := stringParam(params, "key")
		if err != nil {
			return Counters{}, err
		}
		value, err := stringParam(params, "value")
		if err != nil {
			return Counters{}, err
		}
		return s.mergeSpecification(key, value), nil

	case stmtRelateSpecification:
		productID, err := stringParam(params, "product_id")
		if err != nil {
			return Counters{}, err
		}
		key, err := stringParam(params, "spec_key")
		if err != nil {
			return Counters{}, err
		}
		value, err := stringParam(params, "spec_value")
		if err != nil {
			return Counters{}, err
		}
		return s.relateSpecification(productID, key, value), nil

	default:
		return Counters{}, fmt.Errorf("%w: unrecognized statement", ErrStatement)
	}
}

func (s *graphState) applyUpsertProducts(params map[string]any) (Counters, error) {
	list, ok := params["products"].([]any)
	if !ok {
		return Counters{}, fmt.Errorf("%w: parameter products missing or not a list", ErrStatement)
	}

	var counters Counters
	for _, entry := range list {
		props, ok := entry.(map[string]any)
		if !ok {
			return Counters{}, fmt.Errorf("%w: product entry is not a map", ErrStatement)
		}

		id, _ := props["id"].(string)
		if id == "" {
			return Counters{}, fmt.Errorf("%w: product entry missing id", ErrStatement)
		}

		name, _ := props["name"].(string)
		description, _ := props["description"].(string)
		price, _ := props["price"].(string)

		if _, exists := s.products[id]; exists {
			counters.PropertiesSet += 3
		} else {
			counters.NodesCreated++
			counters.PropertiesSet += 4
		}
		s.products[id] = ProductProps{Name: name, Description: description, Price: price}
	}
	return counters, nil
}

func (s *graphState) mergeCategory(name string) Counters {
	if _, exists := s.categories[name]; exists {
		return Counters{}
	}
	s.categories[name] = struct{}{}
	return Counters{NodesCreated: 1, PropertiesSet: 1}
}

func (s *graphState) mergeSpecification(key, value string) Counters {
	if _, exists := s.specifications[specKey{key: key, value: value}]; exists {
		return Counters{}
	}
	s.specifications[specKey{key: key, value: value}] = struct{}{}
	return Counters{NodesCreated: 1, PropertiesSet: 2}
}

// relateCategory mirrors the real statement: MATCH without a match is a
// silent no-op, and a duplicate MERGE creates nothing.
func (s *graphState) relateCategory(productID, category string) Counters {
	if _, ok := s.products[productID]; !ok {
		return Counters{}
	}
	if _, ok := s.categories[category]; !ok {
		return Counters{}
	}

	key := edgeKey{productID: productID, edgeType: EdgeBelongsTo, targetA: category}
	if _, exists := s.edges[key]; exists {
		return Counters{}
	}
	s.edges[key] = struct{}{}
	return Counters{RelationshipsCreated: 1}
}

func (s *graphState) relateSpecification(productID, specificationKey, specificationValue string) Counters {
	if _, ok := s.products[productID]; !ok {
		return Counters{}
	}
	if _, ok := s.specifications[specKey{key: specificationKey, value: specificationValue}]; !ok {
		return Counters{}
	}

	key := edgeKey{
		productID: productID,
		edgeType:  EdgeHasSpecification,
		targetA:   specificationKey,
		targetB:   specificationValue,
	}
	if _, exists := s.edges[key]; exists {
		return Counters{}
	}
	s.edges[key] = struct{}{}
	return Counters{RelationshipsCreated: 1}
}

func stringParam(params map[string]any, key string) (string, error) {
	value, ok := params[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %s missing or not a string", ErrStatement, key)
	}
	return value, nil
}
