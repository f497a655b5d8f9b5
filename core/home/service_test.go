package home_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
	"github.com/festify/console/core/home"
	"github.com/festify/console/tests"
)

func TestService_Statistics(t *testing.T) {
	env := testutil.NewEnv(t)

	stats, err := env.HomeSvc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, home.Statistics{}, stats)

	env.CreateAdmin(t, "alice")
	env.CreateAdmin(t, "bob")
	env.CreateLesson(t, core.Spring, "Easter")
	env.CreateLesson(t, core.Winter, "Christmas")
	env.CreateLesson(t, core.Winter, "New Year")

	stats, err = env.HomeSvc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, home.Statistics{TotalUsers: 2, TotalLessons: 3}, stats)
}
