package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveCardHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/approve_card"
	cancelCardHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/cancel_card"
	createCardHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/create_card"
	getAgentCardsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_agent_cards"
	getAvailableDatesHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_balance"
	getCardHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_card"
	getPaymentsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_payments"
	getStationCardsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/get_station_cards"
	listAgentsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/list_agents"
	listStationsHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/list_stations"
	recordPaymentHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/record_payment"
	registerAgentHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/register_agent"
	rejectCardHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/reject_card"
	setCommissionHandler "github.com/avtoagent/STO-BookingService/internal/api/handlers/set_commission"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/config"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	cardRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/card"
	paymentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/payment"
	"github.com/avtoagent/STO-BookingService/internal/integrations/notifier"
	agentsService "github.com/avtoagent/STO-BookingService/internal/service/agents"
	balanceService "github.com/avtoagent/STO-BookingService/internal/service/balance"
	cardsService "github.com/avtoagent/STO-BookingService/internal/service/cards"
	"github.com/avtoagent/STO-BookingService/internal/stations"
	createCardUC "github.com/avtoagent/STO-BookingService/internal/usecase/create_card"
	getAvailableDatesUC "github.com/avtoagent/STO-BookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/avtoagent/STO-BookingService/internal/usecase/get_available_slots"
	"github.com/avtoagent/STO-BookingService/pkg/dbmetrics"
	"github.com/avtoagent/STO-BookingService/pkg/logger"
	"github.com/avtoagent/STO-BookingService/pkg/metrics"
	"github.com/avtoagent/STO-BookingService/pkg/simpletxmanager"
	"github.com/avtoagent/STO-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting STO-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Справочник станций: конфигурация валидируется fail-fast при старте
	stationProvider, err := stations.NewProvider(cfg.Stations)
	if err != nil {
		log.Fatal("Failed to build station provider: %v", err)
	}
	log.Info("Station provider initialized with %d stations", len(stationProvider.ListStations()))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Уведомления агентам через Telegram Bot API (опционально)
	var agentNotifier cardsService.Notifier
	if cfg.Notifier.Enabled {
		tgNotifier, err := notifier.NewTelegramNotifier(cfg.Notifier.BotToken, log)
		if err != nil {
			log.Fatal("Failed to initialize telegram notifier: %v", err)
		}
		agentNotifier = tgNotifier
		log.Info("Telegram notifier initialized")
	} else {
		agentNotifier = notifier.NoopNotifier{}
		log.Info("Notifier disabled, agent notifications are dropped")
	}

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		cardRepository    *cardRepo.Repository
		agentRepository   *agentRepo.Repository
		paymentRepository *paymentRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		cardRepository = cardRepo.NewRepository(wrappedDB)
		agentRepository = agentRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		cardRepository = cardRepo.NewRepository(db)
		agentRepository = agentRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	cardsSvc := cardsService.NewService(
		cardRepository,
		agentRepository,
		agentNotifier,
		log,
	)
	balanceSvc := balanceService.NewService(
		cardRepository,
		paymentRepository,
		agentRepository,
		txMgr,
		log,
	)
	agentsSvc := agentsService.NewService(
		agentRepository,
		log,
	)

	// Инициализируем use cases
	createCardUseCase := createCardUC.NewUseCase(
		cardRepository,
		agentRepository,
		stationProvider,
		txMgr,
		cfg.Booking.DaysAhead,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		cardRepository,
		stationProvider,
		cfg.Booking.DaysAhead,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		cardRepository,
		stationProvider,
		cfg.Booking.DaysAhead,
		log,
	)

	// Инициализируем handlers
	createCard := createCardHandler.NewHandler(createCardUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	listStations := listStationsHandler.NewHandler(stationProvider, log)
	getCard := getCardHandler.NewHandler(cardsSvc, log)
	cancelCard := cancelCardHandler.NewHandler(cardsSvc, log)
	approveCard := approveCardHandler.NewHandler(cardsSvc, log)
	rejectCard := rejectCardHandler.NewHandler(cardsSvc, log)
	getAgentCards := getAgentCardsHandler.NewHandler(cardsSvc, log)
	getStationCards := getStationCardsHandler.NewHandler(cardsSvc, log)
	getBalance := getBalanceHandler.NewHandler(balanceSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(balanceSvc, log)
	getPayments := getPaymentsHandler.NewHandler(balanceSvc, log)
	setCommission := setCommissionHandler.NewHandler(agentsSvc, log)
	registerAgent := registerAgentHandler.NewHandler(agentsSvc, log)
	listAgents := listAgentsHandler.NewHandler(agentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник станций
	api.HandleFunc("/stations", listStations.Handle).Methods(http.MethodGet)

	// Слоты станции на дату
	api.HandleFunc("/stations/{stationId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайшие даты для записи
	api.HandleFunc("/stations/{stationId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)

	// Регистрация агента (вызывается ботом при первом обращении)
	api.HandleFunc("/agents", registerAgent.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Agent-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Карточки ТО ---
	// Создание карточки (запись клиента на ТО)
	protected.HandleFunc("/bookings", createCard.Handle).Methods(http.MethodPost)

	// Получение карточки по ID
	protected.HandleFunc("/bookings/{bookingId}", getCard.Handle).Methods(http.MethodGet)

	// Отмена карточки (владелец или администратор)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelCard.Handle).Methods(http.MethodPatch)

	// Согласование карточки (администратор)
	protected.HandleFunc("/bookings/{bookingId}/approve", approveCard.Handle).Methods(http.MethodPatch)

	// Отклонение карточки с причиной (администратор)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectCard.Handle).Methods(http.MethodPatch)

	// История карточек агента
	protected.HandleFunc("/agents/{agentId}/bookings", getAgentCards.Handle).Methods(http.MethodGet)

	// Карточки станции за период (администратор)
	protected.HandleFunc("/stations/{stationId}/bookings", getStationCards.Handle).Methods(http.MethodGet)

	// --- Баланс и выплаты ---
	// Баланс агента со слагаемыми
	protected.HandleFunc("/agents/{agentId}/balance", getBalance.Handle).Methods(http.MethodGet)

	// Регистрация выплаты (администратор)
	protected.HandleFunc("/agents/{agentId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// Журнал выплат агента
	protected.HandleFunc("/agents/{agentId}/payments", getPayments.Handle).Methods(http.MethodGet)

	// --- Управление агентами (для администраторов) ---
	// Список агентов
	protected.HandleFunc("/agents", listAgents.Handle).Methods(http.MethodGet)

	// Установка ставки комиссии
	protected.HandleFunc("/agents/{agentId}/commission", setCommission.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
