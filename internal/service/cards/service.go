package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	cardRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/card"
	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

// Service сервис для работы с карточками ТО: чтение и жизненный цикл
// pending -> approved | rejected | cancelled
type Service struct {
	cardRepo  CardRepository
	agentRepo AgentRepository
	notifier  Notifier
	logger    Logger
}

// NewService создает новый экземпляр сервиса карточек ТО
func NewService(
	cardRepo CardRepository,
	agentRepo AgentRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		cardRepo:  cardRepo,
		agentRepo: agentRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// GetByID получает карточку ТО по ID
// Агент видит только свои карточки, администратор — любые
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.CardResponse, error) {
	s.logger.Info("GetByID: fetching card id=%d for actor=%d", id, actorID)

	card, err := s.getCard(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.getAgent(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if card.AgentID != actor.ID && !actor.IsAdmin() {
		s.logger.Warn("GetByID: access denied for actor=%d to card id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainCard(card), nil
}

// GetAgentCards получает карточки агента, опционально фильтруя по статусу
// Агент видит только свою историю, администратор — любую.
// Отменённые карточки включаются — агент видит их в истории
func (s *Service) GetAgentCards(ctx context.Context, req *models.GetAgentCardsRequest) (*models.CardListResponse, error) {
	s.logger.Info("GetAgentCards: fetching cards for agent=%d, actor=%d, status=%v", req.AgentID, req.ActorID, req.Status)

	if req.ActorID != req.AgentID {
		if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
			return nil, err
		}
	}

	var domainStatus *domain.TOCardStatus
	if req.Status != nil {
		status, err := models.ToDomainCardStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAgentCards: invalid status=%s for agent=%d", *req.Status, req.AgentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	cards, err := s.cardRepo.GetByAgentID(ctx, req.AgentID, domainStatus)
	if err != nil {
		s.logger.Error("GetAgentCards: repository error for agent=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: GetAgentCards - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAgentCards: successfully fetched %d cards for agent=%d", len(cards), req.AgentID)
	return models.FromDomainCardList(cards), nil
}

// GetStationCards получает карточки станции за период
// Доступно только администраторам
func (s *Service) GetStationCards(ctx context.Context, req *models.GetStationCardsRequest) (*models.CardListResponse, error) {
	s.logger.Info("GetStationCards: fetching cards for station=%s, actor=%d", req.StationID, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetByStationWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetStationCards: repository error for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: GetStationCards - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStationCards: successfully fetched %d cards for station=%s", len(cards), req.StationID)
	return models.FromDomainCardList(cards), nil
}

// Cancel отменяет карточку ТО
// Разрешено владельцу или администратору и только из статуса pending.
// В комментарий записывается "cancelled by <actor>"
func (s *Service) Cancel(ctx context.Context, cardID int64, req *models.CancelCardRequest) error {
	s.logger.Info("Cancel: cancelling card id=%d by actor=%d", cardID, req.ActorID)

	card, err := s.getCard(ctx, cardID)
	if err != nil {
		return err
	}

	actor, err := s.getAgent(ctx, req.ActorID)
	if err != nil {
		return err
	}

	if card.AgentID != actor.ID && !actor.IsAdmin() {
		s.logger.Warn("Cancel: access denied for actor=%d to card id=%d", req.ActorID, cardID)
		return ErrAccessDenied
	}

	if !card.CanBeCancelled() {
		s.logger.Warn("Cancel: card id=%d cannot be cancelled, status=%s", cardID, card.Status)
		return ErrInvalidTransition
	}

	comment := fmt.Sprintf("cancelled by %s", actor.FullName)
	if err := s.transition(ctx, cardID, domain.StatusCancelled, &comment); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled card id=%d", cardID)

	s.notifyOwner(ctx, card, fmt.Sprintf(
		"🚫 Карточка ТО №%s отменена.\nЗапись: %s",
		card.CardNumber, card.AppointmentTime.Format("02.01.2006 15:04")))

	return nil
}

// Approve согласует карточку ТО (только администратор, только из pending)
// Устаревший комментарий администратора очищается
func (s *Service) Approve(ctx context.Context, cardID int64, req *models.ApproveCardRequest) error {
	s.logger.Info("Approve: approving card id=%d by actor=%d", cardID, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return err
	}

	card, err := s.getCard(ctx, cardID)
	if err != nil {
		return err
	}

	if !card.Status.CanTransitionTo(domain.StatusApproved) {
		s.logger.Warn("Approve: card id=%d is not pending, status=%s", cardID, card.Status)
		return ErrInvalidTransition
	}

	if err := s.transition(ctx, cardID, domain.StatusApproved, nil); err != nil {
		return err
	}

	s.logger.Info("Approve: successfully approved card id=%d", cardID)

	s.notifyOwner(ctx, card, fmt.Sprintf(
		"✅ Карточка ТО №%s согласована.\nЗапись: %s",
		card.CardNumber, card.AppointmentTime.Format("02.01.2006 15:04")))

	return nil
}

// Reject отклоняет карточку ТО (только администратор, только из pending)
// Причина обязательна и проверяется до какого-либо перехода
func (s *Service) Reject(ctx context.Context, cardID int64, req *models.RejectCardRequest) error {
	s.logger.Info("Reject: rejecting card id=%d by actor=%d", cardID, req.ActorID)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		s.logger.Warn("Reject: empty reason for card id=%d", cardID)
		return fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return err
	}

	card, err := s.getCard(ctx, cardID)
	if err != nil {
		return err
	}

	if !card.Status.CanTransitionTo(domain.StatusRejected) {
		s.logger.Warn("Reject: card id=%d is not pending, status=%s", cardID, card.Status)
		return ErrInvalidTransition
	}

	if err := s.transition(ctx, cardID, domain.StatusRejected, &reason); err != nil {
		return err
	}

	s.logger.Info("Reject: successfully rejected card id=%d", cardID)

	s.notifyOwner(ctx, card, fmt.Sprintf(
		"❌ Карточка ТО №%s отклонена.\n📝 Причина: %s",
		card.CardNumber, reason))

	return nil
}

// transition выполняет CAS-переход pending -> to
// Проверка текущего статуса и запись нового происходят одним UPDATE,
// поэтому из двух конкурентных переходов побеждает ровно один
func (s *Service) transition(ctx context.Context, cardID int64, to domain.TOCardStatus, comment *string) error {
	err := s.cardRepo.UpdateStatusFrom(ctx, cardID, domain.StatusPending, to, comment)
	if err != nil {
		switch {
		case errors.Is(err, cardRepo.ErrCardNotFound):
			return ErrCardNotFound
		case errors.Is(err, cardRepo.ErrStatusConflict):
			s.logger.Warn("transition: concurrent status change detected for card id=%d", cardID)
			return ErrInvalidTransition
		default:
			s.logger.Error("transition: repository error for card id=%d: %v", cardID, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}
	}
	return nil
}

// notifyOwner отправляет уведомление владельцу карточки
// Недоставленное уведомление не откатывает переход: ошибка логируется и
// проглатывается
func (s *Service) notifyOwner(ctx context.Context, card *domain.TOCard, message string) {
	owner, err := s.agentRepo.GetByID(ctx, card.AgentID)
	if err != nil {
		s.logger.Warn("notifyOwner: failed to resolve owner agent=%d for card id=%d: %v",
			card.AgentID, card.ID, err)
		return
	}

	if err := s.notifier.Notify(ctx, owner.TelegramID, message); err != nil {
		s.logger.Warn("notifyOwner: failed to notify agent=%d for card id=%d: %v",
			card.AgentID, card.ID, err)
	}
}

func (s *Service) getCard(ctx context.Context, id int64) (*domain.TOCard, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, cardRepo.ErrCardNotFound) {
			s.logger.Warn("getCard: card id=%d not found", id)
			return nil, ErrCardNotFound
		}
		s.logger.Error("getCard: repository error for card id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getCard - repository error: %v", ErrInternal, err)
	}
	return card, nil
}

func (s *Service) getAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			s.logger.Warn("getAgent: agent id=%d not found", id)
			return nil, ErrAgentNotFound
		}
		s.logger.Error("getAgent: repository error for agent id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAgent - repository error: %v", ErrInternal, err)
	}
	return agent, nil
}

// checkAdminAccess проверяет, что актор является администратором
func (s *Service) checkAdminAccess(ctx context.Context, actorID int64) error {
	actor, err := s.getAgent(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		s.logger.Warn("checkAdminAccess: agent=%d is not an admin", actorID)
		return ErrAccessDenied
	}
	return nil
}
