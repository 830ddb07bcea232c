// internal/testutil/testutil.go

// Package testutil provides shared helpers for store and handler tests:
// a throwaway Mongo database per test, deadline-bound contexts, a fake
// cache, and fixture builders.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/suggestbox/internal/app/system/indexes"
	"github.com/dalemusser/suggestbox/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const testDBPrefix = "suggestbox_test_"

// SetupTestDB connects to the Mongo instance named by MONGO_TEST_URI
// (default mongodb://localhost:27017) and returns a database with a
// unique name that is dropped when the test finishes. Tests are skipped
// when no server is reachable so the suite can run without
// infrastructure.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}

	db := client.Database(fmt.Sprintf("%s%d", testDBPrefix, time.Now().UnixNano()))

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes on test db: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a deadline suitable for store
// operations in tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SkipIfNoTransactions skips the test when the server cannot run
// multi-document transactions (standalone mongod). Vote and create
// tests need a replica set.
func SkipIfNoTransactions(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx, cancel := TestContext()
	defer cancel()

	probe := db.Collection("txn_probe")
	err := txn.WithTransaction(ctx, db.Client(), func(sc mongo.SessionContext) error {
		_, err := probe.InsertOne(sc, bson.M{"probe": true})
		return err
	})
	if txn.IsNotSupported(err) {
		t.Skipf("server does not support transactions: %v", err)
	}
	if err != nil {
		t.Fatalf("transaction probe failed: %v", err)
	}
	_ = probe.Drop(ctx)
}

// FakeCache is an in-memory cache.Cache implementation for unit tests.
// Entries never expire; tests control contents directly.
type FakeCache[T any] struct {
	mu sync.Mutex
	m  map[string]T

	// Sets, Removes record the keys passed to Set and Remove in order,
	// so tests can assert on invalidation behavior.
	Sets    []string
	Removes []string
}

// NewFakeCache returns an empty FakeCache.
func NewFakeCache[T any]() *FakeCache[T] {
	return &FakeCache[T]{m: make(map[string]T)}
}

func (f *FakeCache[T]) Get(key string) (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	return v, ok
}

func (f *FakeCache[T]) Set(key string, value T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	f.Sets = append(f.Sets, key)
}

func (f *FakeCache[T]) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	f.Removes = append(f.Removes, key)
}

// Contains reports whether key is currently cached.
func (f *FakeCache[T]) Contains(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.m[key]
	return ok
}
