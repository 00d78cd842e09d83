package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/skyfare/ticketapi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTicketRepository is a mock implementation of repository.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Ticket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ByIssueDate(ctx context.Context, day time.Time) ([]domain.Ticket, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Insert(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) InsertBatch(ctx context.Context, tickets []domain.Ticket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticketNumber string, t *domain.Ticket) error {
	args := m.Called(ctx, ticketNumber, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, ticketNumber string) error {
	args := m.Called(ctx, ticketNumber)
	return args.Error(0)
}

func (m *MockTicketRepository) Stats(ctx context.Context, filter domain.StatsFilter) (*domain.TicketStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketStats), args.Error(1)
}

func (m *MockTicketRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestTicketService_List_AppliesDefaults(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	expected := domain.ListParams{
		Page:   1,
		Limit:  domain.DefaultPageSize,
		SortBy: domain.SortByIssueDate,
		Order:  domain.OrderAsc,
	}
	repo.On("List", mock.Anything, expected).Return([]domain.Ticket{}, nil)

	_, err := svc.List(context.Background(), domain.ListParams{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTicketService_List_ClampsLimit(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(p domain.ListParams) bool {
		return p.Limit == domain.MaxPageSize
	})).Return([]domain.Ticket{}, nil)

	_, err := svc.List(context.Background(), domain.ListParams{Page: 1, Limit: 500})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTicketService_List_RejectsUnknownSortKey(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	_, err := svc.List(context.Background(), domain.ListParams{SortBy: "fare"})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "sort_by", vErr.Field)
	repo.AssertNotCalled(t, "List")
}

func TestTicketService_List_RejectsUnknownOrder(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	_, err := svc.List(context.Background(), domain.ListParams{Order: "sideways"})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "order", vErr.Field)
}

func TestTicketService_Search_RequiresAFilter(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	_, err := svc.Search(context.Background(), domain.SearchFilter{})

	assert.ErrorIs(t, err, domain.ErrNoSearchFilter)
	repo.AssertNotCalled(t, "Search")
}

func TestTicketService_Search_PassesFilterThrough(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	filter := domain.SearchFilter{PaxName: "doe"}
	repo.On("Search", mock.Anything, filter).Return([]domain.Ticket{{TicketCode: "T1", TicketNumber: "100"}}, nil)

	got, err := svc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestTicketService_Create_ValidatesRequiredFields(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	err := svc.Create(context.Background(), &domain.Ticket{TicketCode: "T1"})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ticket_number", vErr.Field)
	repo.AssertNotCalled(t, "Insert")
}

func TestTicketService_CreateBatch_RejectsEmptyBatch(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	err := svc.CreateBatch(context.Background(), nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	repo.AssertNotCalled(t, "InsertBatch")
}

func TestTicketService_CreateBatch_RejectsInBatchDuplicate(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	batch := []domain.Ticket{
		{TicketCode: "T1", TicketNumber: "100"},
		{TicketCode: "T2", TicketNumber: "100"},
	}
	err := svc.CreateBatch(context.Background(), batch)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "ticket_number", vErr.Field)
	repo.AssertNotCalled(t, "InsertBatch")
}

func TestTicketService_Update_PathNumberWins(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	body := &domain.Ticket{TicketCode: "T1", TicketNumber: "999"}
	repo.On("Update", mock.Anything, "100", mock.MatchedBy(func(t *domain.Ticket) bool {
		return t.TicketNumber == "100"
	})).Return(nil)

	require.NoError(t, svc.Update(context.Background(), "100", body))
	repo.AssertExpectations(t)
}

func TestTicketService_Delete_PropagatesNotFound(t *testing.T) {
	repo := &MockTicketRepository{}
	svc := NewTicketService(repo)

	repo.On("Delete", mock.Anything, "missing").Return(domain.ErrNotFound)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
