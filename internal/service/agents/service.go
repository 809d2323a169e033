package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

// maxCommissionRate верхняя граница ставки комиссии в процентах
var maxCommissionRate = decimal.NewFromInt(100)

// Service сервис для работы с агентами
type Service struct {
	agentRepo AgentRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса агентов
func NewService(agentRepo AgentRepository, logger Logger) *Service {
	return &Service{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

// Register регистрирует нового агента с ролью agent и нулевой комиссией
// Ставку комиссии назначает администратор отдельной операцией
func (s *Service) Register(ctx context.Context, req *models.RegisterAgentRequest) (*models.AgentResponse, error) {
	s.logger.Info("Register: registering agent telegram_id=%d", req.TelegramID)

	fullName := strings.TrimSpace(req.FullName)
	if req.TelegramID <= 0 || fullName == "" {
		s.logger.Warn("Register: invalid input for telegram_id=%d", req.TelegramID)
		return nil, fmt.Errorf("%w: telegram_id and full_name are required", ErrInvalidInput)
	}

	agent, err := s.agentRepo.Create(ctx, &domain.Agent{
		TelegramID:     req.TelegramID,
		FullName:       fullName,
		Phone:          strings.TrimSpace(req.Phone),
		Company:        strings.TrimSpace(req.Company),
		Role:           domain.RoleAgent,
		CommissionRate: decimal.Zero,
	})
	if err != nil {
		if errors.Is(err, agentRepo.ErrDuplicateAgent) {
			s.logger.Warn("Register: agent telegram_id=%d already exists", req.TelegramID)
			return nil, ErrDuplicateAgent
		}
		s.logger.Error("Register: repository error for telegram_id=%d: %v", req.TelegramID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered agent id=%d, telegram_id=%d", agent.ID, agent.TelegramID)
	return models.FromDomainAgent(agent), nil
}

// GetByID получает агента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AgentResponse, error) {
	s.logger.Info("GetByID: fetching agent id=%d", id)

	agent, err := s.getAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAgent(agent), nil
}

// GetByTelegramID получает агента по telegram_id
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*models.AgentResponse, error) {
	s.logger.Info("GetByTelegramID: fetching agent telegram_id=%d", telegramID)

	agent, err := s.agentRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			s.logger.Warn("GetByTelegramID: agent telegram_id=%d not found", telegramID)
			return nil, ErrAgentNotFound
		}
		s.logger.Error("GetByTelegramID: repository error for telegram_id=%d: %v", telegramID, err)
		return nil, fmt.Errorf("%w: GetByTelegramID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAgent(agent), nil
}

// List возвращает всех агентов (только администратор)
func (s *Service) List(ctx context.Context, actorID int64) (*models.AgentListResponse, error) {
	s.logger.Info("List: fetching agents for actor=%d", actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		return nil, err
	}

	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d agents", len(agents))
	return models.FromDomainAgentList(agents), nil
}

// SetCommission устанавливает ставку комиссии агента (только администратор)
// Ставка в процентах, от 0 до 100 включительно
func (s *Service) SetCommission(ctx context.Context, agentID int64, req *models.SetCommissionRequest) (*models.AgentResponse, error) {
	s.logger.Info("SetCommission: setting commission for agent=%d by actor=%d", agentID, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil {
		s.logger.Warn("SetCommission: invalid rate %q for agent=%d", req.Rate, agentID)
		return nil, fmt.Errorf("%w: invalid rate", ErrInvalidInput)
	}
	if rate.IsNegative() || rate.GreaterThan(maxCommissionRate) {
		s.logger.Warn("SetCommission: rate %s out of range for agent=%d", rate, agentID)
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", ErrInvalidInput)
	}

	if err := s.agentRepo.UpdateCommission(ctx, agentID, rate); err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			s.logger.Warn("SetCommission: agent id=%d not found", agentID)
			return nil, ErrAgentNotFound
		}
		s.logger.Error("SetCommission: repository error for agent=%d: %v", agentID, err)
		return nil, fmt.Errorf("%w: SetCommission - repository error: %v", ErrInternal, err)
	}

	agent, err := s.getAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetCommission: successfully set commission=%s for agent=%d", rate.StringFixed(2), agentID)
	return models.FromDomainAgent(agent), nil
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
