package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/festify/console/core/reward"
)

type (
	rewardRecord struct {
		Name      string `firestore:"name" validate:"required"`
		Thumbnail string `firestore:"thumbnail"`
	}

	RewardRepository struct {
		client   *firestore.Client
		validate *validator.Validate
	}
)

var _ reward.Repository = (*RewardRepository)(nil)

func NewRewardRepository(client *firestore.Client, validate *validator.Validate) *RewardRepository {
	return &RewardRepository{client: client, validate: validate}
}

func (repo *RewardRepository) rewards() *firestore.CollectionRef {
	return repo.client.Collection(rewardCollection)
}

func (repo *RewardRepository) GetReward(ctx context.Context, id string) (reward.Reward, error) {
	snap, err := repo.rewards().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return reward.Reward{}, reward.ErrNotFound
		}
		return reward.Reward{}, errors.Wrap(err, "getting reward")
	}

	var rec rewardRecord
	if err := decode(repo.validate, snap, &rec); err != nil {
		return reward.Reward{}, err
	}
	return reward.Reward{ID: snap.Ref.ID, Name: rec.Name, Thumbnail: rec.Thumbnail}, nil
}

func (repo *RewardRepository) CreateReward(ctx context.Context, r reward.Reward) (reward.Reward, error) {
	ref := repo.rewards().NewDoc()
	if _, err := ref.Create(ctx, rewardRecord{Name: r.Name, Thumbnail: r.Thumbnail}); err != nil {
		return reward.Reward{}, errors.Wrap(err, "creating reward")
	}
	r.ID = ref.ID
	return r, nil
}

func (repo *RewardRepository) UpdateReward(ctx context.Context, r reward.Reward) error {
	_, err := repo.rewards().Doc(r.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: r.Name},
		{Path: "thumbnail", Value: r.Thumbnail},
	})
	if err != nil {
		if isNotFound(err) {
			return reward.ErrNotFound
		}
		return errors.Wrap(err, "updating reward")
	}
	return nil
}

func (repo *RewardRepository) DeleteReward(ctx context.Context, id string) error {
	if _, err := repo.rewards().Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "deleting reward")
	}
	return nil
}
