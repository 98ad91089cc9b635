// Package jsonstore persists each collection as a single JSON document on
// disk. It is the primary backend: one file per entity type, whole-file
// read-modify-write guarded by a store-wide mutex, atomic replace via
// temp-file rename.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sudo-init-do/hirewise/internal/store"
)

const schemaVersion = 1

type fileDoc struct {
	SchemaVersion int      `json:"schema_version"`
	Records       []record `json:"records"`
}

type record struct {
	ID  string          `json:"id"`
	Doc json.RawMessage `json:"doc"`
}

type collection struct {
	records []record
	index   map[string]int
}

func newCollection() *collection {
	return &collection{index: make(map[string]int)}
}

func (c *collection) clone() *collection {
	dup := &collection{
		records: make([]record, len(c.records)),
		index:   make(map[string]int, len(c.index)),
	}
	copy(dup.records, c.records)
	for id, i := range c.index {
		dup.index[id] = i
	}
	return dup
}

// Store keeps every collection in memory and mirrors each change to its file.
// A single mutex serializes all access; the application is effectively
// single-writer, so contention is not a concern.
type Store struct {
	dir  string
	mu   sync.Mutex
	data map[string]*collection
}

var _ store.Store = (*Store)(nil)

// Open loads every known collection from dir, creating dir if needed.
// A file that exists but cannot be parsed, or that carries an unknown schema
// version, aborts the open: refusing to start beats running on partial state.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("jsonstore: empty data dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: create data dir: %w", err)
	}

	s := &Store{dir: dir, data: make(map[string]*collection, len(store.Collections))}
	for _, name := range store.Collections {
		coll, err := loadCollection(s.path(name))
		if err != nil {
			return nil, err
		}
		s.data[name] = coll
	}
	return s, nil
}

func loadCollection(path string) (*collection, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonstore: read %s: %w", path, err)
	}

	var doc fileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("jsonstore: corrupt collection file %s: %w", path, err)
	}
	if doc.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("jsonstore: %s has schema version %d, want %d", path, doc.SchemaVersion, schemaVersion)
	}

	coll := newCollection()
	for _, rec := range doc.Records {
		if rec.ID == "" {
			return nil, fmt.Errorf("jsonstore: corrupt collection file %s: record with empty id", path)
		}
		if _, dup := coll.index[rec.ID]; dup {
			return nil, fmt.Errorf("jsonstore: corrupt collection file %s: duplicate id %q", path, rec.ID)
		}
		coll.index[rec.ID] = len(coll.records)
		coll.records = append(coll.records, rec)
	}
	return coll, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) collection(name string) (*collection, error) {
	coll, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("jsonstore: unknown collection %q", name)
	}
	return coll, nil
}

func (s *Store) Get(ctx context.Context, name, id string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.collection(name)
	if err != nil {
		return err
	}
	return getRecord(coll, name, id, out)
}

func (s *Store) List(ctx context.Context, name string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.collection(name)
	if err != nil {
		return err
	}
	return listRecords(coll, name, out)
}

// Update runs fn against staged copies of the collections it touches and, on
// success, flushes each modified collection to disk (temp file + rename) before
// publishing the new state in memory.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &jsonTx{store: s, staged: make(map[string]*collection)}
	if err := fn(tx); err != nil {
		return err
	}

	// Flush in the fixed collection order rather than map order, so a
	// multi-collection update always lands its files in the same sequence and
	// the job record, which gates every lifecycle decision, hits disk before
	// the quotes settled alongside it.
	for _, name := range store.Collections {
		coll, ok := tx.staged[name]
		if !ok {
			continue
		}
		if err := s.flush(name, coll); err != nil {
			return err
		}
		s.data[name] = coll
	}
	return nil
}

func (s *Store) flush(name string, coll *collection) error {
	body, err := json.Marshal(fileDoc{SchemaVersion: schemaVersion, Records: coll.records})
	if err != nil {
		return fmt.Errorf("jsonstore: encode %s: %w", name, err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("jsonstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("jsonstore: replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

type jsonTx struct {
	store  *Store
	staged map[string]*collection
}

func (t *jsonTx) lookup(name string) (*collection, error) {
	if coll, ok := t.staged[name]; ok {
		return coll, nil
	}
	return t.store.collection(name)
}

func (t *jsonTx) Get(name, id string, out any) error {
	coll, err := t.lookup(name)
	if err != nil {
		return err
	}
	return getRecord(coll, name, id, out)
}

func (t *jsonTx) List(name string, out any) error {
	coll, err := t.lookup(name)
	if err != nil {
		return err
	}
	return listRecords(coll, name, out)
}

func (t *jsonTx) Put(name, id string, v any) error {
	if id == "" {
		return fmt.Errorf("jsonstore: put into %s with empty id", name)
	}

	coll, ok := t.staged[name]
	if !ok {
		base, err := t.store.collection(name)
		if err != nil {
			return err
		}
		coll = base.clone()
		t.staged[name] = coll
	}

	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("jsonstore: encode record %s/%s: %w", name, id, err)
	}

	if i, exists := coll.index[id]; exists {
		coll.records[i].Doc = doc
		return nil
	}
	coll.index[id] = len(coll.records)
	coll.records = append(coll.records, record{ID: id, Doc: doc})
	return nil
}

func getRecord(coll *collection, name, id string, out any) error {
	i, ok := coll.index[id]
	if !ok {
		return fmt.Errorf("jsonstore: %s/%s: %w", name, id, store.ErrNotFound)
	}
	if err := json.Unmarshal(coll.records[i].Doc, out); err != nil {
		return fmt.Errorf("jsonstore: decode record %s/%s: %w", name, id, err)
	}
	return nil
}

func listRecords(coll *collection, name string, out any) error {
	// Records are stored in insertion order; assembling a JSON array keeps the
	// decode generic over the caller's slice type.
	body := make([]byte, 0, 2)
	body = append(body, '[')
	for i, rec := range coll.records {
		if i > 0 {
			body = append(body, ',')
		}
		body = append(body, rec.Doc...)
	}
	body = append(body, ']')

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("jsonstore: decode collection %s: %w", name, err)
	}
	return nil
}
