package repositories

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrSequenceExhausted is returned when an id sequence has reached the
	// largest representable id.
	ErrSequenceExhausted = errors.New("id sequence exhausted")
)

// BadgerStore owns a Badger database shared by the post and comment
// repositories. Writes are serialized so that sequence allocation and
// check-then-write upserts never race.
type BadgerStore struct {
	db       *badger.DB
	writeMu  sync.Mutex
	dbPath   string
	isTestDB bool
}

// OpenBadger opens the database at path. An empty path opens a throwaway
// database in a fresh temporary directory that is removed on Close.
func OpenBadger(path string) (*BadgerStore, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "postboard_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if isTest {
		opts = opts.WithSyncWrites(false).WithNumGoroutines(1)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	store := NewBadgerStore(db)
	store.dbPath = path
	store.isTestDB = isTest
	return store, nil
}

// NewBadgerStore wraps an already open database. Close does not remove any
// files for stores built this way.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// DB exposes the underlying database for maintenance commands.
func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

// Posts returns the post repository backed by this store.
func (s *BadgerStore) Posts() *BadgerPostRepository {
	return &BadgerPostRepository{store: s}
}

// Comments returns the comment repository backed by this store.
func (s *BadgerStore) Comments() *BadgerCommentRepository {
	return &BadgerCommentRepository{store: s}
}

func (s *BadgerStore) view(fn func(txn *badger.Txn) error) error {
	return s.db.View(fn)
}

func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.Update(fn)
}

// Clear drops every key, including the id sequences.
func (s *BadgerStore) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.DropAll()
}

func (s *BadgerStore) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}
