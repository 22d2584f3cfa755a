package worldconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/errors"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
	"github.com/KirkDiggler/reroll-stats/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    worldconfig.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := worldconfig.NewRedisRepository(&worldconfig.Config{
		Client:  client,
		WorldID: "test-world",
	})
	s.Require().NoError(err)

	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestGetFlagsDefaults() {
	got, err := s.repo.GetFlags(s.ctx, worldconfig.GetFlagsInput{})

	s.Require().NoError(err)
	s.Equal(worldconfig.DefaultFlags(), got.Flags)
	s.True(got.Flags.IgnoreMinion)
	s.False(got.Flags.OutputToChat)
	s.Equal(worldconfig.DebugNone, got.Flags.DebugLevel)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetFlags() {
	flags := &worldconfig.Flags{
		OutputToChat:           true,
		IgnoreMinion:           false,
		IgnoreWorkbenchVariant: true,
		DebugLevel:             worldconfig.DebugAll,
	}

	_, err := s.repo.SaveFlags(s.ctx, worldconfig.SaveFlagsInput{Flags: flags})
	s.Require().NoError(err)

	got, err := s.repo.GetFlags(s.ctx, worldconfig.GetFlagsInput{})
	s.Require().NoError(err)
	s.Equal(flags, got.Flags)
}

func (s *RedisRepositoryTestSuite) TestSaveFlagsValidation() {
	_, err := s.repo.SaveFlags(s.ctx, worldconfig.SaveFlagsInput{Flags: nil})

	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestMigrationStateDefaultsToEmpty() {
	got, err := s.repo.GetMigrationState(s.ctx, worldconfig.GetMigrationStateInput{})

	s.Require().NoError(err)
	s.NotNil(got.State)
	s.False(got.State.Done("critFailMigration"))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetMigrationState() {
	state := entities.MigrationState{}
	state.MarkDone("critFailMigration")

	_, err := s.repo.SaveMigrationState(s.ctx, worldconfig.SaveMigrationStateInput{State: state})
	s.Require().NoError(err)

	got, err := s.repo.GetMigrationState(s.ctx, worldconfig.GetMigrationStateInput{})
	s.Require().NoError(err)
	s.True(got.State.Done("critFailMigration"))
	s.False(got.State.Done("someOtherMigration"))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
