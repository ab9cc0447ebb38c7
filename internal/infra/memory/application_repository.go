package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"technohunter_bot/internal/domain/application"
)

var ErrMissingUser = errors.New("application record has no user id")

// ApplicationRepository keeps submitted applications in process memory.
// Records are lost on restart.
type ApplicationRepository struct {
	mu      sync.RWMutex
	byID    map[string]*application.Record
	ordered []*application.Record
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{byID: make(map[string]*application.Record)}
}

// Create derives the ID from the user and receipt time. If that ID is
// already taken the timestamp is moved forward a millisecond at a time,
// so an existing record is never replaced.
func (r *ApplicationRepository) Create(_ context.Context, rec *application.Record) error {
	if rec.UserID == 0 {
		return ErrMissingUser
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := application.NewID(rec.UserID, rec.SubmittedAt)
	for {
		if _, taken := r.byID[id]; !taken {
			break
		}
		rec.SubmittedAt = rec.SubmittedAt.Add(time.Millisecond)
		id = application.NewID(rec.UserID, rec.SubmittedAt)
	}
	rec.ID = id

	stored := rec.Clone()
	r.byID[id] = stored
	r.ordered = append(r.ordered, stored)
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*application.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, application.ErrApplicationNotFound
	}
	return rec.Clone(), nil
}

func (r *ApplicationRepository) List(_ context.Context) ([]*application.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.ordered), nil
}

func (r *ApplicationRepository) ListRecent(_ context.Context, limit int) ([]*application.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		return []*application.Record{}, nil
	}
	start := len(r.ordered) - limit
	if start < 0 {
		start = 0
	}
	return cloneAll(r.ordered[start:]), nil
}

func (r *ApplicationRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ordered), nil
}

func cloneAll(records []*application.Record) []*application.Record {
	out := make([]*application.Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
