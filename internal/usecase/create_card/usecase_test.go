package create_card

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	cardRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/card"
	"github.com/avtoagent/STO-BookingService/internal/stations"
)

type fakeCardRepo struct {
	existing  []*domain.TOCard
	dailyCnt  int
	createErr error

	created *domain.TOCard
}

func (f *fakeCardRepo) Create(_ context.Context, card *domain.TOCard) (*domain.TOCard, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *card
	created.ID = 101
	created.CreatedAt = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeCardRepo) GetByStationWithFilter(_ context.Context, _ domain.StationCardsFilter) ([]*domain.TOCard, error) {
	return f.existing, nil
}

func (f *fakeCardRepo) CountByAgentSince(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.dailyCnt, nil
}

type fakeAgentRepo struct {
	err error
}

func (f *fakeAgentRepo) GetByID(_ context.Context, id int64) (*domain.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Agent{ID: id, FullName: "Иванов Иван", Role: domain.RoleAgent}, nil
}

type fakeStationProvider struct {
	station *domain.Station
}

func (f *fakeStationProvider) GetStation(id string) (*domain.Station, error) {
	if f.station == nil || f.station.ID != id {
		return nil, stations.ErrStationNotFound
	}
	return f.station, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestStation() *domain.Station {
	return &domain.Station{
		ID:                  "central",
		Name:                "СТО Центральная",
		WorkingHoursStart:   "09:00",
		WorkingHoursEnd:     "18:00",
		SlotDurationMinutes: 30,
		SlotsPerHour:        2,
		Prices: map[domain.VehicleCategory]decimal.Decimal{
			domain.CategoryB: decimal.NewFromInt(1200),
		},
		DefectPrices: map[domain.DefectType]decimal.Decimal{
			domain.DefectMinor: decimal.NewFromInt(300),
		},
	}
}

func newTestUseCase(cards *fakeCardRepo, agents *fakeAgentRepo, station *domain.Station) *UseCase {
	uc := NewUseCase(cards, agents, &fakeStationProvider{station: station}, fakeTxManager{}, 7, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		AgentID:     42,
		StationID:   "central",
		Category:    "B",
		Date:        time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:30",
		ClientName:  "Петров Пётр",
		CarNumber:   "А123БВ77",
		VINNumber:   "XTA210990Y1234567",
		ClientPhone: "+79001234567",
	}
}

func TestExecute_Success(t *testing.T) {
	cards := &fakeCardRepo{dailyCnt: 2}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	// ДДММГГГГ + agentID*10 + третья карточка агента за день
	assert.Equal(t, "151020254203", resp.CardNumber)
	assert.Equal(t, "СТО Центральная", resp.StationName)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), resp.AppointmentTime)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(1200)))
	require.NotNil(t, cards.created)
	assert.Equal(t, domain.DefectNone, cards.created.DefectType)
}

func TestExecute_DefectSurcharge(t *testing.T) {
	cards := &fakeCardRepo{}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	description := "трещина лобового стекла"
	req := validRequest()
	req.HasDefects = true
	req.DefectType = "minor"
	req.DefectDescription = &description

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(1500)), "получено %s", resp.TotalPrice)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	cases := map[string]func(req *Request){
		"missing client name":        func(req *Request) { req.ClientName = "  " },
		"missing car number":         func(req *Request) { req.CarNumber = "" },
		"missing vin":                func(req *Request) { req.VINNumber = "" },
		"missing phone":              func(req *Request) { req.ClientPhone = "" },
		"unknown category":           func(req *Request) { req.Category = "F" },
		"bad time format":            func(req *Request) { req.StartTime = "10-30" },
		"defect type without flag":   func(req *Request) { req.DefectType = "minor" },
		"defect flag without type":   func(req *Request) { req.HasDefects = true },
		"unparseable defect type":    func(req *Request) { req.HasDefects = true; req.DefectType = "fatal" },
		"defect type none with flag": func(req *Request) { req.HasDefects = true; req.DefectType = "none" },
		"defect without description": func(req *Request) { req.HasDefects = true; req.DefectType = "major" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_AgentNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{err: agentRepo.ErrAgentNotFound}, newTestStation())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestExecute_StationNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	req := validRequest()
	req.StationID = "south"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestExecute_CategoryNotServed(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	req := validRequest()
	req.Category = "C"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCategoryNotServed)
}

func TestExecute_DateValidation(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	past := validRequest()
	past.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), past)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// горизонт 7 дней: сегодня + 6 — последний допустимый день
	tooFar := validRequest()
	tooFar.Date = testNow.AddDate(0, 0, 7)
	_, err = uc.Execute(context.Background(), tooFar)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	lastAllowed := validRequest()
	lastAllowed.Date = testNow.AddDate(0, 0, 6)
	_, err = uc.Execute(context.Background(), lastAllowed)
	assert.NoError(t, err)
}

func TestExecute_OffGridMinuteAllowed(t *testing.T) {
	// запись на минуту вне сетки слотов допустима, пока в часе есть место
	cards := &fakeCardRepo{}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	req := validRequest()
	req.StartTime = "10:15"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 15, 0, 0, time.UTC), resp.AppointmentTime)
}

func TestExecute_OffGridMinuteHourFull(t *testing.T) {
	// 09:00 и 09:30 заняты, пропускная способность часа (2) исчерпана:
	// третья запись на 09:15 отклоняется, хотя точное время свободно
	cards := &fakeCardRepo{
		existing: []*domain.TOCard{
			{StationID: "central", AppointmentTime: time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), Status: domain.StatusPending},
			{StationID: "central", AppointmentTime: time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)}

	req := validRequest()
	req.StartTime = "09:15"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	before := validRequest()
	before.StartTime = "08:30"
	_, err := uc.Execute(context.Background(), before)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// приём длится 30 минут и не укладывается до закрытия в 18:00
	late := validRequest()
	late.StartTime = "17:45"
	_, err = uc.Execute(context.Background(), late)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SlotInPast(t *testing.T) {
	uc := newTestUseCase(&fakeCardRepo{}, &fakeAgentRepo{}, newTestStation())

	// день сегодняшний и проверку даты проходит, но само время слота уже прошло
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)}

	req := validRequest()
	req.StartTime = "09:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_SlotTaken(t *testing.T) {
	slotTime := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
	cards := &fakeCardRepo{
		existing: []*domain.TOCard{
			{StationID: "central", AppointmentTime: slotTime, Status: domain.StatusPending},
		},
	}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_HourCapacityExhausted(t *testing.T) {
	cards := &fakeCardRepo{
		existing: []*domain.TOCard{
			{StationID: "central", AppointmentTime: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), Status: domain.StatusPending},
			{StationID: "central", AppointmentTime: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC).Add(45 * time.Minute), Status: domain.StatusApproved},
		},
	}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentInsertLosesRace(t *testing.T) {
	// уникальный индекс сработал после успешной проверки доступности
	cards := &fakeCardRepo{createErr: cardRepo.ErrSlotTaken}
	uc := newTestUseCase(cards, &fakeAgentRepo{}, newTestStation())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
