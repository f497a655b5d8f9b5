package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/festify/console/core/reward"
)

type RewardRepository struct {
	db *rewardTable
}

var _ reward.Repository = (*RewardRepository)(nil)

func NewRewardRepository(db *DB) *RewardRepository {
	return &RewardRepository{db: db.reward}
}

func (repo *RewardRepository) GetReward(_ context.Context, id string) (reward.Reward, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if r, ok := repo.db.t[id]; ok {
		return *r, nil
	}
	return reward.Reward{}, reward.ErrNotFound
}

func (repo *RewardRepository) CreateReward(_ context.Context, r reward.Reward) (reward.Reward, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	r.ID = uuid.NewString()
	repo.db.t[r.ID] = &r
	return r, nil
}

func (repo *RewardRepository) UpdateReward(_ context.Context, r reward.Reward) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.t[r.ID]; !ok {
		return reward.ErrNotFound
	}
	repo.db.t[r.ID] = &r
	return nil
}

func (repo *RewardRepository) DeleteReward(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	delete(repo.db.t, id)
	return nil
}
