package inmemdb

import (
	"context"
	"sort"

	"github.com/festify/console/core/admin"
)

type AdminRepository struct {
	db *adminTable
}

var _ admin.Repository = (*AdminRepository)(nil)

func NewAdminRepository(db *DB) *AdminRepository {
	return &AdminRepository{db: db.admin}
}

func (repo *AdminRepository) QueryAdmins(_ context.Context) ([]admin.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	admins := make([]admin.Admin, 0, len(repo.db.t))
	for _, a := range repo.db.t {
		admins = append(admins, admin.Admin{ID: a.ID, Username: a.Username})
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].Username < admins[j].Username })
	return admins, nil
}

func (repo *AdminRepository) GetAdmin(_ context.Context, uid string) (admin.Admin, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.t[uid]; ok {
		return admin.Admin{ID: a.ID, Username: a.Username}, nil
	}
	return admin.Admin{}, admin.ErrNotFound
}

func (repo *AdminRepository) CreateAdmin(_ context.Context, a admin.Admin) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.t[a.ID] = &admin.Admin{ID: a.ID, Username: a.Username}
	return nil
}

func (repo *AdminRepository) DeleteAdmin(_ context.Context, uid string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, uid)
	return nil
}
