package migrations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/reroll-stats/internal/entities"
	hostmock "github.com/KirkDiggler/reroll-stats/internal/host/mock"
	"github.com/KirkDiggler/reroll-stats/internal/migrations"
	worldconfig "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config"
	worldconfigmock "github.com/KirkDiggler/reroll-stats/internal/repositories/world_config/mock"
)

// stubMigration counts its Apply calls and returns a canned verdict.
type stubMigration struct {
	id     string
	result migrations.Result
	err    error
	calls  int
}

func (m *stubMigration) ID() string { return m.id }

func (m *stubMigration) Apply(_ context.Context) (migrations.Result, error) {
	m.calls++
	return m.result, m.err
}

type RunnerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	configRepo *worldconfigmock.MockRepository
	gateway    *hostmock.MockGateway
	ctx        context.Context
}

func (s *RunnerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.configRepo = worldconfigmock.NewMockRepository(s.ctrl)
	s.gateway = hostmock.NewMockGateway(s.ctrl)
	s.ctx = context.Background()
}

func (s *RunnerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RunnerTestSuite) newRunner(ms ...migrations.Migration) *migrations.Runner {
	runner, err := migrations.NewRunner(&migrations.RunnerConfig{
		ConfigRepo: s.configRepo,
		Gateway:    s.gateway,
		Migrations: ms,
	})
	s.Require().NoError(err)
	return runner
}

func (s *RunnerTestSuite) expectState(state entities.MigrationState) {
	s.configRepo.EXPECT().
		GetMigrationState(s.ctx, worldconfig.GetMigrationStateInput{}).
		Return(&worldconfig.GetMigrationStateOutput{State: state}, nil)
}

func (s *RunnerTestSuite) TestSkipsWhenNotGM() {
	mig := &stubMigration{id: "m1", result: migrations.ResultCompleted}
	runner := s.newRunner(mig)

	s.gateway.EXPECT().CurrentUserIsGM(s.ctx).Return(false)

	s.Require().NoError(runner.Run(s.ctx))
	s.Equal(0, mig.calls)
}

func (s *RunnerTestSuite) TestCompletedMigrationIsRecorded() {
	mig := &stubMigration{id: "m1", result: migrations.ResultCompleted}
	runner := s.newRunner(mig)

	s.gateway.EXPECT().CurrentUserIsGM(s.ctx).Return(true)
	s.expectState(entities.MigrationState{})

	var savedState entities.MigrationState
	s.configRepo.EXPECT().
		SaveMigrationState(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in worldconfig.SaveMigrationStateInput) (*worldconfig.SaveMigrationStateOutput, error) {
			savedState = in.State
			return &worldconfig.SaveMigrationStateOutput{}, nil
		})

	s.Require().NoError(runner.Run(s.ctx))
	s.Equal(1, mig.calls)
	s.True(savedState.Done("m1"))
}

func (s *RunnerTestSuite) TestCompletedMigrationNeverRunsAgain() {
	mig := &stubMigration{id: "m1", result: migrations.ResultCompleted}
	runner := s.newRunner(mig)

	state := entities.MigrationState{}
	state.MarkDone("m1")

	s.gateway.EXPECT().CurrentUserIsGM(s.ctx).Return(true)
	s.expectState(state)

	s.Require().NoError(runner.Run(s.ctx))
	s.Equal(0, mig.calls)
}

func (s *RunnerTestSuite) TestDeferredMigrationStaysPending() {
	mig := &stubMigration{id: "m1", result: migrations.ResultDeferred}
	runner := s.newRunner(mig)

	// Two startups: a deferred migration is asked again, never recorded.
	for i := 0; i < 2; i++ {
		s.gateway.EXPECT().CurrentUserIsGM(s.ctx).Return(true)
		s.expectState(entities.MigrationState{})
	}

	s.Require().NoError(runner.Run(s.ctx))
	s.Require().NoError(runner.Run(s.ctx))
	s.Equal(2, mig.calls)
}

func (s *RunnerTestSuite) TestMigrationsRunInRegistrationOrder() {
	var order []string
	first := &orderedMigration{id: "m1", order: &order}
	second := &orderedMigration{id: "m2", order: &order}
	runner := s.newRunner(first, second)

	s.gateway.EXPECT().CurrentUserIsGM(s.ctx).Return(true)
	s.expectState(entities.MigrationState{})
	s.configRepo.EXPECT().
		SaveMigrationState(s.ctx, gomock.Any()).
		Return(&worldconfig.SaveMigrationStateOutput{}, nil).
		Times(2)

	s.Require().NoError(runner.Run(s.ctx))
	s.Equal([]string{"m1", "m2"}, order)
}

type orderedMigration struct {
	id    string
	order *[]string
}

func (m *orderedMigration) ID() string { return m.id }

func (m *orderedMigration) Apply(_ context.Context) (migrations.Result, error) {
	*m.order = append(*m.order, m.id)
	return migrations.ResultCompleted, nil
}

func TestRunnerTestSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}
