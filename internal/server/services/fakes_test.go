package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/dbx"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/dmitrijs2005/aura/internal/server/repositories/resources"
	"github.com/dmitrijs2005/aura/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	byHandle  map[string]*models.User
	byID      map[string]*models.User
	getErr    error
	createErr error
	created   []*models.User
}

func newFakeUsersRepo(us ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byHandle: map[string]*models.User{}, byID: map[string]*models.User{}}
	for _, u := range us {
		r.byHandle[u.Handle] = u
		r.byID[u.ID] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "new-id"
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byHandle[handle]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeResourcesRepo struct {
	items     []*models.Resource
	err       error
	lastSaved *models.Resource
}

func (f *fakeResourcesRepo) Create(ctx context.Context, r *models.Resource) (*models.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	r.ID = "res-1"
	f.lastSaved = r
	return r, nil
}

func (f *fakeResourcesRepo) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeResourcesRepo) List(ctx context.Context) ([]*models.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeRepoManager struct {
	users     *fakeUsersRepo
	resources *fakeResourcesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) Resources(dbx.DBTX) resources.Repository { return m.resources }

type fakeCache struct {
	items map[string]models.Principal
}

func (c *fakeCache) Get(ctx context.Context, subject string) (*models.Principal, error) {
	p, ok := c.items[subject]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *fakeCache) Set(ctx context.Context, p models.Principal) error {
	c.items[p.SubjectID] = p
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, subject string) error {
	delete(c.items, subject)
	return nil
}
