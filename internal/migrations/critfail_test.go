package migrations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	"github.com/KirkDiggler/reroll-stats/internal/host"
	hostmock "github.com/KirkDiggler/reroll-stats/internal/host/mock"
	"github.com/KirkDiggler/reroll-stats/internal/migrations"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/clock"
	"github.com/KirkDiggler/reroll-stats/internal/pkg/idgen"
	rollstats "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats"
	rollstatsmock "github.com/KirkDiggler/reroll-stats/internal/repositories/roll_stats/mock"
)

type CritFailTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	repo      *rollstatsmock.MockRepository
	gateway   *hostmock.MockGateway
	prompter  *hostmock.MockPrompter
	migration *migrations.CritFail
	ctx       context.Context
}

func (s *CritFailTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = rollstatsmock.NewMockRepository(s.ctrl)
	s.gateway = hostmock.NewMockGateway(s.ctrl)
	s.prompter = hostmock.NewMockPrompter(s.ctrl)
	s.ctx = context.Background()

	migration, err := migrations.NewCritFail(&migrations.CritFailConfig{
		RollStatsRepo: s.repo,
		Gateway:       s.gateway,
		Prompter:      s.prompter,
		IDGenerator:   idgen.NewSequential("archive"),
		Clock:         clock.NewFixed(time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
	s.migration = migration
}

func (s *CritFailTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CritFailTestSuite) TestID() {
	s.Equal("critFailMigration", s.migration.ID())
}

func (s *CritFailTestSuite) TestKeepCompletesWithoutTouchingData() {
	s.prompter.EXPECT().ChooseOption(s.ctx, gomock.Any()).Return("keep", nil)

	result, err := s.migration.Apply(s.ctx)

	s.Require().NoError(err)
	s.Equal(migrations.ResultCompleted, result)
}

func (s *CritFailTestSuite) TestDismissalDefers() {
	// The console returns the default key when the dialog is dismissed.
	s.prompter.EXPECT().
		ChooseOption(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req host.OptionRequest) (string, error) {
			s.Equal("defer", req.DefaultKey)
			return req.DefaultKey, nil
		})

	result, err := s.migration.Apply(s.ctx)

	s.Require().NoError(err)
	s.Equal(migrations.ResultDeferred, result)
}

func (s *CritFailTestSuite) TestArchiveSnapshotsThenResets() {
	data := entities.RollData{
		"actor-1": {RerollCount: 3, BetterCount: 2, SameCount: 1, SuccessCount: 1},
		"actor-2": {RerollCount: 1, WorseCount: 1},
	}

	s.prompter.EXPECT().ChooseOption(s.ctx, gomock.Any()).Return("archive", nil)
	s.repo.EXPECT().
		List(s.ctx, rollstats.ListInput{}).
		Return(&rollstats.ListOutput{Data: data}, nil)
	s.gateway.EXPECT().
		WorldInfo(s.ctx).
		Return(entities.WorldInfo{ID: "world-1"}, entities.SystemInfo{ID: "pf2e"})

	var archived *entities.BackupEnvelope
	s.repo.EXPECT().
		Archive(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in rollstats.ArchiveInput) (*rollstats.ArchiveOutput, error) {
			s.Equal("archive_1", in.ArchiveID)
			archived = in.Snapshot
			return &rollstats.ArchiveOutput{}, nil
		})

	s.gateway.EXPECT().GetCharacter(s.ctx, "actor-1").Return(&host.Character{ID: "actor-1", Name: "Amiri"}, nil)
	s.gateway.EXPECT().GetCharacter(s.ctx, "actor-2").Return(&host.Character{ID: "actor-2", Name: "Ezren"}, nil)
	s.gateway.EXPECT().
		UpsertJournal(s.ctx, "Reroll Stats Archive 2025-03-01", gomock.Any()).
		Return(nil)

	saved := map[string]*entities.RollCounters{}
	s.repo.EXPECT().
		Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in rollstats.SaveInput) (*rollstats.SaveOutput, error) {
			saved[in.ActorID] = in.Counters.Clone()
			return &rollstats.SaveOutput{}, nil
		}).
		Times(2)

	s.gateway.EXPECT().Notify(s.ctx, host.NotifyInfo, gomock.Any())

	result, err := s.migration.Apply(s.ctx)

	s.Require().NoError(err)
	s.Equal(migrations.ResultCompleted, result)

	// The snapshot was taken before the reset.
	s.Require().NotNil(archived)
	s.Equal(3, archived.Data["actor-1"].RerollCount)
	s.Equal(entities.ModuleID, archived.ModuleID)

	// Every actor was zeroed afterwards.
	s.Equal(&entities.RollCounters{}, saved["actor-1"])
	s.Equal(&entities.RollCounters{}, saved["actor-2"])
}

func TestCritFailTestSuite(t *testing.T) {
	suite.Run(t, new(CritFailTestSuite))
}
