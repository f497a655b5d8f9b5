package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/festify/console/core/user"
)

type UserRepository struct {
	db *userTable
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.user}
}

// CreateUser stores a mobile user; users are otherwise created by the app, not the console.
func (repo *UserRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	cp := copyUser(usr)
	repo.db.t[usr.ID] = &cp
	return usr, nil
}

func (repo *UserRepository) QueryUsers(_ context.Context) ([]user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	users := make([]user.User, 0, len(repo.db.t))
	for _, u := range repo.db.t {
		users = append(users, copyUser(*u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (repo *UserRepository) GetUser(_ context.Context, id string) (user.User, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if u, ok := repo.db.t[id]; ok {
		return copyUser(*u), nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) ResetProgress(_ context.Context, id string, p user.Progress) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	u, ok := repo.db.t[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Avatar = ""
	u.Progress = copyUser(user.User{Progress: p}).Progress
	return nil
}
