package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"folio/internal/domain"
	"folio/internal/domain/models"
	"folio/internal/domain/repositories"
)

// fakePortfolioRepo keeps the document in memory and deep-copies on every
// read so callers cannot mutate stored state behind its back.
type fakePortfolioRepo struct {
	mu   sync.Mutex
	doc  *models.PortfolioDocument
	puts int
	fail bool
}

func (f *fakePortfolioRepo) clone() (*models.PortfolioDocument, error) {
	if f.doc == nil {
		return models.DefaultDocument(), nil
	}
	data, err := json.Marshal(f.doc)
	if err != nil {
		return nil, err
	}
	out := models.DefaultDocument()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakePortfolioRepo) Get(ctx context.Context) (*models.PortfolioDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("store down: %w", domain.ErrPersistence)
	}
	return f.clone()
}

func (f *fakePortfolioRepo) GetForUpdate(ctx context.Context) (*models.PortfolioDocument, error) {
	return f.Get(ctx)
}

func (f *fakePortfolioRepo) Put(ctx context.Context, doc *models.PortfolioDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("store down: %w", domain.ErrPersistence)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	stored := models.DefaultDocument()
	if err := json.Unmarshal(data, stored); err != nil {
		return err
	}
	f.doc = stored
	f.puts++
	return nil
}

// fakeTxManager serializes transactions with a mutex, mirroring the row lock
// the postgres implementation takes.
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

// fakeMessageRepo stores messages in memory.
type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*models.Message)}
}

func (f *fakeMessageRepo) Insert(ctx context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *msg
	f.messages[msg.ID] = &copied
	return nil
}

func (f *fakeMessageRepo) List(ctx context.Context) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Message, 0, len(f.messages))
	for _, msg := range f.messages {
		out = append(out, *msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageRepo) Get(ctx context.Context, id string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	copied := *msg
	return &copied, nil
}

func (f *fakeMessageRepo) SetRead(ctx context.Context, id string, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg, ok := f.messages[id]
	if !ok {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	msg.Read = read
	return nil
}

func (f *fakeMessageRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.messages[id]; !ok {
		return fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	delete(f.messages, id)
	return nil
}

// fakeObjectStore records saves and deletes.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string
	failDel bool
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "/uploads/" + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	if f.failDel {
		return fmt.Errorf("object store unreachable")
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) KeyFromPublicPath(path string) (string, bool) {
	if len(path) <= len("/uploads/") || path[:len("/uploads/")] != "/uploads/" {
		return "", false
	}
	return path[len("/uploads/"):], true
}

func (f *fakeObjectStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
