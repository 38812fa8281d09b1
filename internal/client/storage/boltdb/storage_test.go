package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/gophsync/internal/client/storage"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что служебные бакеты существуют
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketMetadata, bucketQueue} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// Пытаемся открыть базу в несуществующей директории
	ctx := context.Background()
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "db")
	store, err := New(ctx, invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	// Закрываем БД
	assert.NoError(t, store.Close())

	// После закрытия поле db должно стать nil
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать и должен просто ничего не делать
	assert.NoError(t, store.Close())
}

func TestStorage_ClosedDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()

	_, err = store.Get(ctx, "todos", "1")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetAll(ctx, "todos")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	assert.ErrorIs(t, store.Set(ctx, "todos", "1", []byte("{}")), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, "todos", "1"), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Clear(ctx, "todos"), storage.ErrStorageClosed)
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	// Открываем БД вручную без создания бакетов
	db, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	store := &Storage{db: db}

	err = store.initBuckets()
	assert.NoError(t, err)

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketMetadata, bucketQueue} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestStorage_SetGet(t *testing.T) {
	tests := []struct {
		name  string
		store string
		key   string
		value []byte
	}{
		{name: "application collection", store: "todos", key: "doc-1", value: []byte(`{"id":"doc-1","title":"x"}`)},
		{name: "queue store", store: storage.StoreQueue, key: "op-1", value: []byte(`{"id":"op-1"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, tt.store, tt.key, tt.value))

			got, err := store.Get(ctx, tt.store, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestStorage_Set_Overwrites(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "todos", "doc-1", []byte("v1")))
	require.NoError(t, store.Set(ctx, "todos", "doc-1", []byte("v2")))

	got, err := store.Get(ctx, "todos", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestStorage_Get_NotFound(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Нет bucket
	_, err := store.Get(ctx, "unknown", "doc-1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Bucket есть, ключа нет
	require.NoError(t, store.Set(ctx, "todos", "doc-1", []byte("v")))
	_, err = store.Get(ctx, "todos", "doc-2")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStorage_GetAll(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Пустой или отсутствующий store возвращает пустой список
	values, err := store.GetAll(ctx, "todos")
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, store.Set(ctx, "todos", "b", []byte("2")))
	require.NoError(t, store.Set(ctx, "todos", "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "notes", "c", []byte("3")))

	values, err = store.GetAll(ctx, "todos")
	require.NoError(t, err)
	// bbolt отдает ключи в отсортированном порядке
	assert.Equal(t, [][]byte{[]byte("1"), []byte("2")}, values)
}

func TestStorage_Delete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "todos", "doc-1", []byte("v")))
	require.NoError(t, store.Delete(ctx, "todos", "doc-1"))

	_, err := store.Get(ctx, "todos", "doc-1")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// Повторное удаление и удаление из несуществующего store - не ошибка
	assert.NoError(t, store.Delete(ctx, "todos", "doc-1"))
	assert.NoError(t, store.Delete(ctx, "unknown", "doc-1"))
}

func TestStorage_Clear(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "todos", "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "todos", "b", []byte("2")))
	require.NoError(t, store.Set(ctx, "notes", "c", []byte("3")))

	require.NoError(t, store.Clear(ctx, "todos"))

	values, err := store.GetAll(ctx, "todos")
	require.NoError(t, err)
	assert.Empty(t, values)

	// Другие stores не затронуты
	values, err = store.GetAll(ctx, "notes")
	require.NoError(t, err)
	assert.Len(t, values, 1)

	// Очистка несуществующего store - не ошибка
	assert.NoError(t, store.Clear(ctx, "unknown"))
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "todos", "doc-1", []byte("v")))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "todos", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestStorage_Metadata(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	meta := storage.NewMetadata(store)

	cursor, err := meta.GetCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cursor)

	require.NoError(t, meta.SaveCursor(ctx, 1700000000123))

	cursor, err = meta.GetCursor(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), cursor)
}
