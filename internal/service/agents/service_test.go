package agents

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

type fakeAgentRepo struct {
	byID         map[int64]*domain.Agent
	byTelegramID map[int64]*domain.Agent
	nextID       int64
}

func newFakeAgentRepo(agents ...*domain.Agent) *fakeAgentRepo {
	repo := &fakeAgentRepo{
		byID:         make(map[int64]*domain.Agent),
		byTelegramID: make(map[int64]*domain.Agent),
		nextID:       100,
	}
	for _, a := range agents {
		repo.byID[a.ID] = a
		repo.byTelegramID[a.TelegramID] = a
	}
	return repo
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if _, ok := f.byTelegramID[agent.TelegramID]; ok {
		return nil, agentRepo.ErrDuplicateAgent
	}
	created := *agent
	f.nextID++
	created.ID = f.nextID
	f.byID[created.ID] = &created
	f.byTelegramID[created.TelegramID] = &created
	return &created, nil
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id int64) (*domain.Agent, error) {
	agent, ok := f.byID[id]
	if !ok {
		return nil, agentRepo.ErrAgentNotFound
	}
	return agent, nil
}

func (f *fakeAgentRepo) GetByTelegramID(_ context.Context, telegramID int64) (*domain.Agent, error) {
	agent, ok := f.byTelegramID[telegramID]
	if !ok {
		return nil, agentRepo.ErrAgentNotFound
	}
	return agent, nil
}

func (f *fakeAgentRepo) List(_ context.Context) ([]*domain.Agent, error) {
	result := make([]*domain.Agent, 0, len(f.byID))
	for _, a := range f.byID {
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAgentRepo) UpdateCommission(_ context.Context, id int64, rate decimal.Decimal) error {
	agent, ok := f.byID[id]
	if !ok {
		return agentRepo.ErrAgentNotFound
	}
	agent.CommissionRate = rate
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func adminAgent() *domain.Agent {
	return &domain.Agent{ID: 1, TelegramID: 999, FullName: "Админов Админ", Role: domain.RoleAdmin}
}

func TestRegister(t *testing.T) {
	repo := newFakeAgentRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Register(context.Background(), &models.RegisterAgentRequest{
		TelegramID: 555,
		FullName:   "  Иванов Иван  ",
		Phone:      "+79001234567",
	})
	require.NoError(t, err)

	assert.Equal(t, "Иванов Иван", resp.FullName)
	assert.Equal(t, string(domain.RoleAgent), resp.Role)
	// комиссию назначает администратор отдельной операцией
	assert.Equal(t, "0.00", resp.CommissionRate)
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newFakeAgentRepo(&domain.Agent{ID: 2, TelegramID: 555, FullName: "Иванов Иван", Role: domain.RoleAgent})
	svc := NewService(repo, nopLogger{})

	_, err := svc.Register(context.Background(), &models.RegisterAgentRequest{TelegramID: 555, FullName: "Иванов Иван"})
	assert.ErrorIs(t, err, ErrDuplicateAgent)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeAgentRepo(), nopLogger{})

	_, err := svc.Register(context.Background(), &models.RegisterAgentRequest{TelegramID: 0, FullName: "Иванов Иван"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &models.RegisterAgentRequest{TelegramID: 555, FullName: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByTelegramID(t *testing.T) {
	repo := newFakeAgentRepo(&domain.Agent{ID: 2, TelegramID: 555, FullName: "Иванов Иван", Role: domain.RoleAgent})
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByTelegramID(context.Background(), 555)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)

	_, err = svc.GetByTelegramID(context.Background(), 556)
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestList_AdminOnly(t *testing.T) {
	repo := newFakeAgentRepo(
		adminAgent(),
		&domain.Agent{ID: 2, TelegramID: 555, FullName: "Иванов Иван", Role: domain.RoleAgent},
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = svc.List(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetCommission(t *testing.T) {
	repo := newFakeAgentRepo(
		adminAgent(),
		&domain.Agent{ID: 2, TelegramID: 555, FullName: "Иванов Иван", Role: domain.RoleAgent},
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.SetCommission(context.Background(), 2, &models.SetCommissionRequest{ActorID: 1, Rate: "12.5"})
	require.NoError(t, err)
	assert.Equal(t, "12.50", resp.CommissionRate)
}

func TestSetCommission_Validation(t *testing.T) {
	repo := newFakeAgentRepo(
		adminAgent(),
		&domain.Agent{ID: 2, TelegramID: 555, FullName: "Иванов Иван", Role: domain.RoleAgent},
	)
	svc := NewService(repo, nopLogger{})

	for _, rate := range []string{"-1", "100.01", "десять"} {
		_, err := svc.SetCommission(context.Background(), 2, &models.SetCommissionRequest{ActorID: 1, Rate: rate})
		assert.ErrorIs(t, err, ErrInvalidInput, "rate=%s", rate)
	}

	// не администратор
	_, err := svc.SetCommission(context.Background(), 2, &models.SetCommissionRequest{ActorID: 2, Rate: "10"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetCommission(context.Background(), 404, &models.SetCommissionRequest{ActorID: 1, Rate: "10"})
	assert.ErrorIs(t, err, ErrAgentNotFound)
}
