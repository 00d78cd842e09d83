package tickets

import (
	"context"
	"time"

	"github.com/skyfare/ticketapi/internal/domain"
	"github.com/skyfare/ticketapi/internal/repository"
)

type TicketUseCase interface {
	List(ctx context.Context, params domain.ListParams) ([]domain.Ticket, error)
	ByIssueDate(ctx context.Context, day time.Time) ([]domain.Ticket, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Ticket, error)
	Create(ctx context.Context, t *domain.Ticket) error
	CreateBatch(ctx context.Context, tickets []domain.Ticket) error
	Update(ctx context.Context, ticketNumber string, t *domain.Ticket) error
	Delete(ctx context.Context, ticketNumber string) error
	Stats(ctx context.Context, filter domain.StatsFilter) (*domain.TicketStats, error)
	Ping(ctx context.Context) error
}

type TicketService struct {
	repo repository.TicketRepository
}

func NewTicketService(repo repository.TicketRepository) *TicketService {
	return &TicketService{repo: repo}
}

// List applies the pagination and sort policy before hitting the store:
// page defaults to 1, limit to 10 with a hard cap of 100, and the sort
// key must come from the allow-list.
func (s *TicketService) List(ctx context.Context, params domain.ListParams) ([]domain.Ticket, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = domain.DefaultPageSize
	}
	if params.Limit > domain.MaxPageSize {
		params.Limit = domain.MaxPageSize
	}
	if params.SortBy == "" {
		params.SortBy = domain.SortByIssueDate
	}
	switch params.SortBy {
	case domain.SortByIssueDate, domain.SortByTicketNumber, domain.SortByPaxName:
	default:
		return nil, &domain.ValidationError{Field: "sort_by", Reason: "must be one of issue_date, ticket_number, pax_name"}
	}
	if params.Order == "" {
		params.Order = domain.OrderAsc
	}
	if params.Order != domain.OrderAsc && params.Order != domain.OrderDesc {
		return nil, &domain.ValidationError{Field: "order", Reason: "must be asc or desc"}
	}
	return s.repo.List(ctx, params)
}

func (s *TicketService) ByIssueDate(ctx context.Context, day time.Time) ([]domain.Ticket, error) {
	return s.repo.ByIssueDate(ctx, day)
}

func (s *TicketService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Ticket, error) {
	if filter.Empty() {
		return nil, domain.ErrNoSearchFilter
	}
	return s.repo.Search(ctx, filter)
}

func (s *TicketService) Create(ctx context.Context, t *domain.Ticket) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.Insert(ctx, t)
}

// CreateBatch validates every row up front, then hands the batch to the
// store as one all-or-nothing unit of work.
func (s *TicketService) CreateBatch(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return &domain.ValidationError{Field: "tickets", Reason: "must not be empty"}
	}
	seen := make(map[string]struct{}, len(tickets))
	for i := range tickets {
		if err := tickets[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[tickets[i].TicketNumber]; dup {
			return &domain.ValidationError{Field: "ticket_number", Reason: "duplicated within batch: " + tickets[i].TicketNumber}
		}
		seen[tickets[i].TicketNumber] = struct{}{}
	}
	return s.repo.InsertBatch(ctx, tickets)
}

// Update is a full-record replace: every column is overwritten. The
// path ticket_number wins over whatever the body carries.
func (s *TicketService) Update(ctx context.Context, ticketNumber string, t *domain.Ticket) error {
	t.TicketNumber = ticketNumber
	if err := t.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, ticketNumber, t)
}

func (s *TicketService) Delete(ctx context.Context, ticketNumber string) error {
	return s.repo.Delete(ctx, ticketNumber)
}

func (s *TicketService) Stats(ctx context.Context, filter domain.StatsFilter) (*domain.TicketStats, error) {
	return s.repo.Stats(ctx, filter)
}

func (s *TicketService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

var _ TicketUseCase = (*TicketService)(nil)
