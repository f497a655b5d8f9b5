package home

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/festify/console/core"
)

type (
	Statistics struct {
		TotalUsers   int `json:"total_users"`
		TotalLessons int `json:"total_lessons"`
	}

	LessonCounter interface {
		Count(ctx context.Context, season core.Season) (int, error)
	}

	ServiceInterface interface {
		Statistics(ctx context.Context) (Statistics, error)
	}

	Service struct {
		identities core.IdentityProvider
		lessons    LessonCounter
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(identities core.IdentityProvider, lessons LessonCounter) *Service {
	return &Service{identities: identities, lessons: lessons}
}

// Statistics counts the accounts and the lessons of all seasons.
func (svc *Service) Statistics(ctx context.Context) (Statistics, error) {
	var lessons atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	for _, season := range core.Seasons {
		g.Go(func() error {
			n, err := svc.lessons.Count(gCtx, season)
			if err != nil {
				return err
			}
			lessons.Add(int64(n))
			return nil
		})
	}

	idts, err := svc.identities.ListUsers(ctx, 0)
	if err != nil {
		_ = g.Wait()
		return Statistics{}, core.NewInternalError(err, "Failed to count users")
	}
	if err := g.Wait(); err != nil {
		return Statistics{}, err
	}

	return Statistics{TotalUsers: len(idts), TotalLessons: int(lessons.Load())}, nil
}
