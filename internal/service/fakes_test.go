package service

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"

	"inventory-spa/internal/model"
	"inventory-spa/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]model.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]model.User{}}
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	f.users[username] = u
	return nil
}

type fakeStockRepo struct {
	mu        sync.Mutex
	items     []model.StockItem
	createErr error
	findCalls int
}

func (f *fakeStockRepo) Create(ctx context.Context, item *model.StockItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeStockRepo) FindAll(ctx context.Context) ([]model.StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	return append([]model.StockItem{}, f.items...), nil
}

type fakeUploads struct {
	ref   string
	err   error
	saved int
}

func (f *fakeUploads) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved++
	return f.ref, nil
}

type fakePublisher struct {
	events []any
}

func (f *fakePublisher) Publish(event any) {
	f.events = append(f.events, event)
}

var errStoreDown = errors.New("store down")
