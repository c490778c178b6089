package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/todo-list-api/internal/model"
	"github.com/iliyamo/todo-list-api/internal/queue"
	"github.com/iliyamo/todo-list-api/internal/repository"
)

// In-memory store doubles backed by maps. They mirror the repository
// contracts, including ErrNotFound/ErrDuplicate signalling, so the services
// under test see exactly what they would see in production.

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, users: make(map[int64]model.User)}
}

func (f *fakeUsers) Insert(_ context.Context, u *model.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.UserName == u.UserName || existing.Email == u.Email || existing.PhoneNumber == u.PhoneNumber {
			return 0, repository.ErrDuplicate
		}
	}
	id := f.nextID
	f.nextID++
	u.UserID = id
	f.users[id] = *u
	return id, nil
}

func (f *fakeUsers) ByUsername(_ context.Context, userName string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UsernameExists(ctx context.Context, userName string) (bool, error) {
	_, err := f.ByUsername(ctx, userName)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) PhoneExists(_ context.Context, phone string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.UserID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.users {
		if id == u.UserID {
			continue
		}
		if existing.UserName == u.UserName || existing.Email == u.Email || existing.PhoneNumber == u.PhoneNumber {
			return repository.ErrDuplicate
		}
	}
	f.users[u.UserID] = *u
	return nil
}

func (f *fakeUsers) UpdateRole(_ context.Context, userID, roleID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.RoleID = roleID
	f.users[userID] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUsers) All(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) AllByRole(_ context.Context, role string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeRoles struct{}

func (fakeRoles) All(_ context.Context) ([]model.Role, error) {
	return []model.Role{
		{ID: 1, Name: model.RoleUser},
		{ID: 2, Name: model.RoleAdmin},
		{ID: 3, Name: model.RoleSuperAdmin},
	}, nil
}

func (fakeRoles) IDByName(_ context.Context, name string) (int64, error) {
	switch name {
	case model.RoleUser:
		return 1, nil
	case model.RoleAdmin:
		return 2, nil
	case model.RoleSuperAdmin:
		return 3, nil
	}
	return 0, repository.ErrNotFound
}

type fakeTokens struct {
	mu     sync.Mutex
	nextID int64
	byTok  map[string]*model.RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{nextID: 1, byTok: make(map[string]*model.RefreshToken)}
}

func (f *fakeTokens) Insert(_ context.Context, t *model.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.byTok[t.Token] = &cp
	return nil
}

func (f *fakeTokens) Find(_ context.Context, token string, userID int64) (model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byTok[token]
	if !ok || t.UserID != userID {
		return model.RefreshToken{}, repository.ErrNotFound
	}
	return *t, nil
}

func (f *fakeTokens) Revoke(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byTok[token]
	if !ok || t.Revoked {
		return false, nil
	}
	t.Revoked = true
	return true, nil
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byTok {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokens) Delete(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byTok[token]; !ok {
		return false, nil
	}
	delete(f.byTok, token)
	return true, nil
}

// expire backdates a stored token so expiry paths can be exercised.
func (f *fakeTokens) expire(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.byTok[token]; ok {
		t.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	}
}

func (f *fakeTokens) get(token string) (model.RefreshToken, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byTok[token]
	if !ok {
		return model.RefreshToken{}, false
	}
	return *t, true
}

type fakeEvents struct {
	mu     sync.Mutex
	events []queue.AccountEvent
}

func (f *fakeEvents) PublishAccountEvent(_ context.Context, e queue.AccountEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}
