package cards

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	cardRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/card"
	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type statusUpdate struct {
	cardID  int64
	from    domain.TOCardStatus
	to      domain.TOCardStatus
	comment *string
}

type fakeCardRepo struct {
	cards     map[int64]*domain.TOCard
	updateErr error

	updates []statusUpdate
}

func (f *fakeCardRepo) GetByID(_ context.Context, id int64) (*domain.TOCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, cardRepo.ErrCardNotFound
	}
	return card, nil
}

func (f *fakeCardRepo) GetByAgentID(_ context.Context, agentID int64, status *domain.TOCardStatus) ([]*domain.TOCard, error) {
	result := make([]*domain.TOCard, 0)
	for _, card := range f.cards {
		if card.AgentID != agentID {
			continue
		}
		if status != nil && card.Status != *status {
			continue
		}
		result = append(result, card)
	}
	return result, nil
}

func (f *fakeCardRepo) GetByStationWithFilter(_ context.Context, filter domain.StationCardsFilter) ([]*domain.TOCard, error) {
	result := make([]*domain.TOCard, 0)
	for _, card := range f.cards {
		if card.StationID == filter.StationID {
			result = append(result, card)
		}
	}
	return result, nil
}

func (f *fakeCardRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.TOCardStatus, comment *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{cardID: id, from: from, to: to, comment: comment})
	return nil
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

type fakeNotifier struct {
	err error

	chatIDs  []int64
	messages []string
}

func (f *fakeNotifier) Notify(_ context.Context, chatID int64, message string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.messages = append(f.messages, message)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	ownerID = int64(10)
	adminID = int64(1)
	otherID = int64(20)
)

func newFixture(cardStatus domain.TOCardStatus) (*Service, *fakeCardRepo, *fakeNotifier) {
	cards := &fakeCardRepo{cards: map[int64]*domain.TOCard{
		1: {
			ID:              1,
			CardNumber:      "151020251001",
			AgentID:         ownerID,
			StationID:       "central",
			Status:          cardStatus,
			AppointmentTime: time.Date(2025, 10, 16, 10, 30, 0, 0, time.UTC),
		},
	}}
	agents := &fakeAgentRepo{agents: map[int64]*domain.Agent{
		ownerID: {ID: ownerID, TelegramID: 111, FullName: "Иванов Иван", Role: domain.RoleAgent},
		adminID: {ID: adminID, TelegramID: 999, FullName: "Админов Админ", Role: domain.RoleAdmin},
		otherID: {ID: otherID, TelegramID: 222, FullName: "Петров Пётр", Role: domain.RoleAgent},
	}}
	notifier := &fakeNotifier{}
	return NewService(cards, agents, notifier, nopLogger{}), cards, notifier
}

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	card, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), card.ID)

	_, err = svc.GetByID(context.Background(), 1, adminID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	_, err := svc.GetByID(context.Background(), 404, ownerID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetAgentCards_AccessControl(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	own, err := svc.GetAgentCards(context.Background(), &models.GetAgentCardsRequest{ActorID: ownerID, AgentID: ownerID})
	require.NoError(t, err)
	assert.Len(t, own.Cards, 1)

	_, err = svc.GetAgentCards(context.Background(), &models.GetAgentCardsRequest{ActorID: adminID, AgentID: ownerID})
	assert.NoError(t, err)

	_, err = svc.GetAgentCards(context.Background(), &models.GetAgentCardsRequest{ActorID: otherID, AgentID: ownerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAgentCards_InvalidStatus(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	bad := "done"
	_, err := svc.GetAgentCards(context.Background(), &models.GetAgentCardsRequest{ActorID: ownerID, AgentID: ownerID, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStationCards_AdminOnly(t *testing.T) {
	svc, _, _ := newFixture(domain.StatusPending)

	_, err := svc.GetStationCards(context.Background(), &models.GetStationCardsRequest{ActorID: ownerID, StationID: "central"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetStationCards(context.Background(), &models.GetStationCardsRequest{ActorID: adminID, StationID: "central"})
	require.NoError(t, err)
	assert.Len(t, resp.Cards, 1)
}

func TestCancel_ByOwner(t *testing.T) {
	svc, cards, notifier := newFixture(domain.StatusPending)

	err := svc.Cancel(context.Background(), 1, &models.CancelCardRequest{ActorID: ownerID})
	require.NoError(t, err)

	require.Len(t, cards.updates, 1)
	update := cards.updates[0]
	assert.Equal(t, domain.StatusPending, update.from)
	assert.Equal(t, domain.StatusCancelled, update.to)
	require.NotNil(t, update.comment)
	assert.Equal(t, "cancelled by Иванов Иван", *update.comment)

	require.Len(t, notifier.chatIDs, 1)
	assert.Equal(t, int64(111), notifier.chatIDs[0])
}

func TestCancel_AccessDenied(t *testing.T) {
	svc, cards, _ := newFixture(domain.StatusPending)

	err := svc.Cancel(context.Background(), 1, &models.CancelCardRequest{ActorID: otherID})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, cards.updates)
}

func TestCancel_NotPending(t *testing.T) {
	svc, cards, _ := newFixture(domain.StatusApproved)

	err := svc.Cancel(context.Background(), 1, &models.CancelCardRequest{ActorID: ownerID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, cards.updates)
}

func TestApprove_AdminOnly(t *testing.T) {
	svc, cards, notifier := newFixture(domain.StatusPending)

	err := svc.Approve(context.Background(), 1, &models.ApproveCardRequest{ActorID: ownerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Approve(context.Background(), 1, &models.ApproveCardRequest{ActorID: adminID})
	require.NoError(t, err)

	require.Len(t, cards.updates, 1)
	assert.Equal(t, domain.StatusApproved, cards.updates[0].to)
	// устаревший комментарий администратора очищается
	assert.Nil(t, cards.updates[0].comment)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "согласована")
}

func TestReject_RequiresReason(t *testing.T) {
	svc, cards, _ := newFixture(domain.StatusPending)

	// пустая причина отклоняется до проверок доступа и чтения карточки
	err := svc.Reject(context.Background(), 1, &models.RejectCardRequest{ActorID: adminID, Reason: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, cards.updates)
}

func TestReject_Success(t *testing.T) {
	svc, cards, notifier := newFixture(domain.StatusPending)

	err := svc.Reject(context.Background(), 1, &models.RejectCardRequest{ActorID: adminID, Reason: "  нет свободного бокса  "})
	require.NoError(t, err)

	require.Len(t, cards.updates, 1)
	require.NotNil(t, cards.updates[0].comment)
	assert.Equal(t, "нет свободного бокса", *cards.updates[0].comment)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "нет свободного бокса")
}

func TestTransition_ConcurrentConflict(t *testing.T) {
	svc, cards, _ := newFixture(domain.StatusPending)
	cards.updateErr = cardRepo.ErrStatusConflict

	err := svc.Approve(context.Background(), 1, &models.ApproveCardRequest{ActorID: adminID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_RepositoryError(t *testing.T) {
	svc, cards, _ := newFixture(domain.StatusPending)
	cards.updateErr = errors.New("connection reset")

	err := svc.Approve(context.Background(), 1, &models.ApproveCardRequest{ActorID: adminID})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNotifierFailureDoesNotFailTransition(t *testing.T) {
	svc, cards, notifier := newFixture(domain.StatusPending)
	notifier.err = errors.New("telegram unavailable")

	err := svc.Approve(context.Background(), 1, &models.ApproveCardRequest{ActorID: adminID})
	require.NoError(t, err)
	assert.Len(t, cards.updates, 1)
}
