package balance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

// Service сервис расчета баланса агента и ведения журнала выплат
type Service struct {
	cardRepo    CardRepository
	paymentRepo PaymentRepository
	agentRepo   AgentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса баланса
func NewService(
	cardRepo CardRepository,
	paymentRepo PaymentRepository,
	agentRepo AgentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		cardRepo:    cardRepo,
		paymentRepo: paymentRepo,
		agentRepo:   agentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetBalance рассчитывает текущий баланс агента
// Агент видит только свой баланс, администратор — любой
func (s *Service) GetBalance(ctx context.Context, agentID int64, actorID int64) (*models.BalanceResponse, error) {
	s.logger.Info("GetBalance: calculating balance for agent=%d, actor=%d", agentID, actorID)

	if err := s.checkOwnerOrAdmin(ctx, agentID, actorID); err != nil {
		return nil, err
	}

	agent, err := s.getAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	var (
		approvedSum   decimal.Decimal
		approvedCount int
		paymentsSum   decimal.Decimal
	)

	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var txErr error
		approvedSum, txErr = s.cardRepo.SumApprovedByAgent(txCtx, agentID)
		if txErr != nil {
			return fmt.Errorf("sum approved cards: %w", txErr)
		}
		approvedCount, txErr = s.cardRepo.CountByAgentAndStatus(txCtx, agentID, domain.StatusApproved)
		if txErr != nil {
			return fmt.Errorf("count approved cards: %w", txErr)
		}
		paymentsSum, txErr = s.paymentRepo.SumByAgentID(txCtx, agentID)
		if txErr != nil {
			return fmt.Errorf("sum payments: %w", txErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("GetBalance: failed to read balance components for agent=%d: %v", agentID, err)
		return nil, fmt.Errorf("%w: GetBalance - %v", ErrInternal, err)
	}

	resp := models.NewBalanceResponse(agentID, approvedCount, approvedSum, agent.CommissionRate, paymentsSum)

	s.logger.Info("GetBalance: agent=%d balance=%s (approved=%s, commission=%s, payments=%s)",
		agentID, resp.Balance, resp.ApprovedSum, resp.CommissionAmount, resp.PaymentsSum)
	return resp, nil
}

// RecordPayment регистрирует выплату агенту (только администратор)
// Журнал append-only: записи не редактируются и не удаляются,
// ошибочная выплата исправляется корректировкой с противоположным знаком
func (s *Service) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("RecordPayment: recording payment for agent=%d by actor=%d", req.AgentID, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		s.logger.Warn("RecordPayment: invalid amount %q for agent=%d", req.Amount, req.AgentID)
		return nil, fmt.Errorf("%w: invalid amount", ErrInvalidInput)
	}
	if amount.IsZero() {
		s.logger.Warn("RecordPayment: zero amount for agent=%d", req.AgentID)
		return nil, fmt.Errorf("%w: amount must be non-zero", ErrInvalidInput)
	}

	if _, err := s.getAgent(ctx, req.AgentID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		AgentID: req.AgentID,
		Amount:  amount,
		Comment: strings.TrimSpace(req.Comment),
	})
	if err != nil {
		s.logger.Error("RecordPayment: repository error for agent=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordPayment: successfully recorded payment id=%d for agent=%d, amount=%s",
		payment.ID, req.AgentID, amount.StringFixed(2))
	return models.FromDomainPayment(payment), nil
}

// GetPayments возвращает журнал выплат агента (новые первыми)
// Агент видит только свой журнал, администратор — любой
func (s *Service) GetPayments(ctx context.Context, agentID int64, actorID int64) (*models.PaymentListResponse, error) {
	s.logger.Info("GetPayments: fetching payments for agent=%d, actor=%d", agentID, actorID)

	if err := s.checkOwnerOrAdmin(ctx, agentID, actorID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.GetByAgentID(ctx, agentID)
	if err != nil {
		s.logger.Error("GetPayments: repository error for agent=%d: %v", agentID, err)
		return nil, fmt.Errorf("%w: GetPayments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPayments: successfully fetched %d payments for agent=%d", len(payments), agentID)
	return models.FromDomainPaymentList(payments), nil
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

// checkOwnerOrAdmin проверяет, что актор — сам агент или администратор
func (s *Service) checkOwnerOrAdmin(ctx context.Context, agentID, actorID int64) error {
	if agentID == actorID {
		return nil
	}
	return s.checkAdminAccess(ctx, actorID)
}
