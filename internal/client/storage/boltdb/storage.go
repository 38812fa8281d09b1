package boltdb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophsync/internal/client/storage"
)

var (
	// BoltDB bucket names created at open time
	bucketMetadata = []byte(storage.StoreMetadata)
	bucketQueue    = []byte(storage.StoreQueue)
)

// Storage represents BoltDB storage implementation for client.
// Every store name maps to a top-level bucket; keys are bucket keys.
type Storage struct {
	db *bbolt.DB
	mu sync.RWMutex
}

var _ storage.Storage = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает служебные buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMetadata, bucketQueue} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// view and update run fn against the open database, translating backend
// failures into ErrStorageUnavailable.
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return wrapErr(s.db.View(fn))
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return wrapErr(s.db.Update(fn))
}

func wrapErr(err error) error {
	if err == nil || errors.Is(err, storage.ErrKeyNotFound) || errors.Is(err, storage.ErrStorageClosed) {
		return err
	}
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return storage.ErrStorageClosed
	}
	return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
}

// Get retrieves a value by store and key
func (s *Storage) Get(ctx context.Context, store, key string) ([]byte, error) {
	var value []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			return storage.ErrKeyNotFound
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}

		// Данные валидны только внутри транзакции - копируем
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// GetAll returns all values of a store in key order
func (s *Storage) GetAll(ctx context.Context, store string) ([][]byte, error) {
	values := [][]byte{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			// Нет bucket - возвращаем пустой массив
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			value := make([]byte, len(v))
			copy(value, v)
			values = append(values, value)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all from %s: %w", store, err)
	}

	return values, nil
}

// Set stores or updates a value
func (s *Storage) Set(ctx context.Context, store, key string, value []byte) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(store))
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save value: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", store, key, err)
	}

	return nil
}

// Delete removes a key; missing keys are ignored
func (s *Storage) Delete(ctx context.Context, store, key string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(store))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", store, key, err)
	}

	return nil
}

// Clear removes all keys from a store
func (s *Storage) Clear(ctx context.Context, store string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		// Удаляем bucket полностью
		if err := tx.DeleteBucket([]byte(store)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}

		// Создаем заново пустой bucket
		if _, err := tx.CreateBucket([]byte(store)); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", store, err)
	}

	return nil
}
