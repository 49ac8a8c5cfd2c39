package enrich

import (
	"context"
	"errors"
	"sync"

	"smarttodo-backend/internal/models"
)

// fakeStore is an in-memory Store used by the tests in this package.
type fakeStore struct {
	mu sync.Mutex

	tasks      map[int64]models.Task
	contexts   []models.ContextEntry
	categories map[string]models.Category // keyed by name, single user
	nextCatID  int64

	updateCalls      int
	batchCalls       int
	failBatchUpdate  bool
	failGetOrCreate  bool
	lastBatchUpdated []models.Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tasks:      map[int64]models.Task{},
		categories: map[string]models.Category{},
		nextCatID:  1,
	}
}

func (f *fakeStore) addTask(t models.Task) {
	f.tasks[t.ID] = t
}

func (f *fakeStore) TaskByID(_ context.Context, userID, taskID int64) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return models.Task{}, models.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeStore) ListTasks(_ context.Context, userID int64) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	// deterministic order by id
	for id := int64(1); len(out) < len(f.tasks) && id < 1000; id++ {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) RecentContexts(_ context.Context, userID int64, limit int) ([]models.ContextEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ContextEntry
	for _, e := range f.contexts {
		if e.UserID == userID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetOrCreateCategory(_ context.Context, userID int64, name string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetOrCreate {
		return models.Category{}, errors.New("category store down")
	}
	if c, ok := f.categories[name]; ok {
		c.UsageFrequency++
		f.categories[name] = c
		return c, nil
	}
	c := models.Category{ID: f.nextCatID, UserID: userID, Name: name, UsageFrequency: 1}
	f.nextCatID++
	f.categories[name] = c
	return c, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, t models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if _, ok := f.tasks[t.ID]; !ok {
		return models.Task{}, models.ErrTaskNotFound
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeStore) UpdateTasks(_ context.Context, ts []models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	if f.failBatchUpdate {
		return errors.New("batch write failed")
	}
	for _, t := range ts {
		f.tasks[t.ID] = t
	}
	f.lastBatchUpdated = ts
	return nil
}
