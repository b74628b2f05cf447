package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/storefront/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSnapshots = []byte("snapshots")
	bucketMeta      = []byte("meta")
)

// snapshot is the persisted form of a statically generated first page
type snapshot[T any] struct {
	Page    domain.Page[T] `json:"page"`
	BuiltAt time.Time      `json:"built_at"`
}

// SnapshotStore implements domain.SnapshotStore using BoltDB.
type SnapshotStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// Decoded bytes promoted on first read
	cache map[string][]byte

	now func() time.Time
}

// NewSnapshotStore opens (or creates) the snapshot database at path.
// An empty path gives a memory-only store.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	s := &SnapshotStore{cache: make(map[string][]byte), now: time.Now}
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshots, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SnapshotStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SnapshotStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// === Posts ===

func (s *SnapshotStore) GetPosts() (domain.Page[*domain.Post], time.Time, bool) {
	var snap snapshot[*domain.Post]
	if !s.get(bucketSnapshots, string(domain.CollectionPosts), &snap) {
		return domain.Page[*domain.Post]{}, time.Time{}, false
	}
	return snap.Page, snap.BuiltAt, true
}

func (s *SnapshotStore) SavePosts(page domain.Page[*domain.Post]) error {
	return s.save(domain.CollectionPosts, snapshot[*domain.Post]{Page: page, BuiltAt: s.now().UTC()})
}

// === Products ===

func (s *SnapshotStore) GetProducts() (domain.Page[*domain.Product], time.Time, bool) {
	var snap snapshot[*domain.Product]
	if !s.get(bucketSnapshots, string(domain.CollectionProducts), &snap) {
		return domain.Page[*domain.Product]{}, time.Time{}, false
	}
	return snap.Page, snap.BuiltAt, true
}

func (s *SnapshotStore) SaveProducts(page domain.Page[*domain.Product]) error {
	return s.save(domain.CollectionProducts, snapshot[*domain.Product]{Page: page, BuiltAt: s.now().UTC()})
}

// save writes the snapshot and records the collection in the meta index
func (s *SnapshotStore) save(c domain.Collection, snap interface{}) error {
	if err := s.set(bucketSnapshots, string(c), snap); err != nil {
		return fmt.Errorf("save %s snapshot: %w", c, err)
	}

	var built []domain.Collection
	s.get(bucketMeta, "collections", &built)
	for _, existing := range built {
		if existing == c {
			return nil
		}
	}
	return s.set(bucketMeta, "collections", append(built, c))
}

// Collections returns the collections that have a snapshot, in build order
func (s *SnapshotStore) Collections() []domain.Collection {
	var built []domain.Collection
	s.get(bucketMeta, "collections", &built)
	return built
}

// Clear removes every snapshot
func (s *SnapshotStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSnapshots, bucketMeta} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
