package balance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

type fakeCardRepo struct {
	approvedSum   decimal.Decimal
	approvedCount int
}

func (f *fakeCardRepo) SumApprovedByAgent(_ context.Context, _ int64) (decimal.Decimal, error) {
	return f.approvedSum, nil
}

func (f *fakeCardRepo) CountByAgentAndStatus(_ context.Context, _ int64, _ domain.TOCardStatus) (int, error) {
	return f.approvedCount, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
	sum      decimal.Decimal
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	created := *payment
	created.ID = int64(len(f.payments) + 1)
	created.CreatedAt = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	f.payments = append(f.payments, &created)
	return &created, nil
}

func (f *fakePaymentRepo) GetByAgentID(_ context.Context, _ int64) ([]*domain.Payment, error) {
	return f.payments, nil
}

func (f *fakePaymentRepo) SumByAgentID(_ context.Context, _ int64) (decimal.Decimal, error) {
	return f.sum, nil
}

type fakeAgentRepo struct {
	agents map[int64]*domain.Agent
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id int64) (*domain.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, agentRepo.ErrAgentNotFound
	}
	return agent, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	agentID = int64(10)
	adminID = int64(1)
	otherID = int64(20)
)

func newFixture(approvedSum string, rate string, paymentsSum string) (*Service, *fakePaymentRepo) {
	cards := &fakeCardRepo{
		approvedSum:   decimal.RequireFromString(approvedSum),
		approvedCount: 3,
	}
	payments := &fakePaymentRepo{sum: decimal.RequireFromString(paymentsSum)}
	agents := &fakeAgentRepo{agents: map[int64]*domain.Agent{
		agentID: {ID: agentID, FullName: "Иванов Иван", Role: domain.RoleAgent, CommissionRate: decimal.RequireFromString(rate)},
		adminID: {ID: adminID, FullName: "Админов Админ", Role: domain.RoleAdmin},
		otherID: {ID: otherID, FullName: "Петров Пётр", Role: domain.RoleAgent},
	}}
	return NewService(cards, payments, agents, fakeTxManager{}, nopLogger{}), payments
}

func TestGetBalance(t *testing.T) {
	// 1000 одобрено, комиссия 10% = 100, выплачено 200 => баланс 700
	svc, _ := newFixture("1000", "10", "200")

	resp, err := svc.GetBalance(context.Background(), agentID, agentID)
	require.NoError(t, err)

	assert.Equal(t, agentID, resp.AgentID)
	assert.Equal(t, 3, resp.ApprovedCount)
	assert.Equal(t, "1000.00", resp.ApprovedSum)
	assert.Equal(t, "10.00", resp.CommissionRate)
	assert.Equal(t, "100.00", resp.CommissionAmount)
	assert.Equal(t, "200.00", resp.PaymentsSum)
	assert.Equal(t, "700.00", resp.Balance)
}

func TestGetBalance_NegativeAfterOverpayment(t *testing.T) {
	svc, _ := newFixture("1000", "10", "1000")

	resp, err := svc.GetBalance(context.Background(), agentID, agentID)
	require.NoError(t, err)
	assert.Equal(t, "-100.00", resp.Balance)
}

func TestGetBalance_NegativePaymentsSumIncreasesBalance(t *testing.T) {
	// корректировка выплат ушла в минус: вычитание отрицательной суммы
	// увеличивает баланс — 1000 - 100 - (-200) = 1100
	svc, _ := newFixture("1000", "10", "-200")

	resp, err := svc.GetBalance(context.Background(), agentID, agentID)
	require.NoError(t, err)
	assert.Equal(t, "-200.00", resp.PaymentsSum)
	assert.Equal(t, "1100.00", resp.Balance)
}

func TestGetBalance_AccessControl(t *testing.T) {
	svc, _ := newFixture("1000", "10", "0")

	_, err := svc.GetBalance(context.Background(), agentID, adminID)
	assert.NoError(t, err)

	_, err = svc.GetBalance(context.Background(), agentID, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRecordPayment(t *testing.T) {
	svc, payments := newFixture("1000", "10", "0")

	resp, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID,
		AgentID: agentID,
		Amount:  "250.50",
		Comment: "  выплата за октябрь  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "250.50", resp.Amount)
	assert.Equal(t, "выплата за октябрь", resp.Comment)
	require.Len(t, payments.payments, 1)
}

func TestRecordPayment_NegativeCorrection(t *testing.T) {
	svc, _ := newFixture("1000", "10", "0")

	resp, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID,
		AgentID: agentID,
		Amount:  "-100",
		Comment: "корректировка",
	})
	require.NoError(t, err)
	assert.Equal(t, "-100.00", resp.Amount)
}

func TestRecordPayment_Validation(t *testing.T) {
	svc, payments := newFixture("1000", "10", "0")

	_, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID, AgentID: agentID, Amount: "0",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID, AgentID: agentID, Amount: "сто рублей",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, payments.payments)
}

func TestRecordPayment_AdminOnly(t *testing.T) {
	svc, _ := newFixture("1000", "10", "0")

	_, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: agentID, AgentID: agentID, Amount: "100",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRecordPayment_UnknownAgent(t *testing.T) {
	svc, _ := newFixture("1000", "10", "0")

	_, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID, AgentID: 404, Amount: "100",
	})
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestGetPayments(t *testing.T) {
	svc, _ := newFixture("1000", "10", "0")

	_, err := svc.RecordPayment(context.Background(), &models.RecordPaymentRequest{
		ActorID: adminID, AgentID: agentID, Amount: "100",
	})
	require.NoError(t, err)

	resp, err := svc.GetPayments(context.Background(), agentID, agentID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.GetPayments(context.Background(), agentID, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
