package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfare/ticketapi/internal/domain"
)

// ticketColumns fixes the field-to-column order in one place. The
// select list, insert placeholders, update set-list and row scanner are
// all derived from it.
var ticketColumns = []string{
	"ticket_code", "ticket_number", "type", "document_status_code",
	"owner_pcc", "owner_agent", "agent_issue_pcc", "agent_issue_name",
	"class_", "pax_name", "itinerary", "ticket_exchange_info",
	"indicator", "group_name", "issue_date", "currency",
	"fare", "net_fare", "taxes", "total_fare",
	"comm", "cancellation_fee", "payable", "amount_used",
	"booking_date", "booking_signon", "pnr_code", "tour_code",
	"claim_amount", "date_of_payment", "form_of_payment", "place_of_payment",
	"remark", "phone", "email", "sold_price",
}

var (
	selectTickets = "SELECT " + strings.Join(ticketColumns, ", ") + " FROM tickets"
	insertTicket  = buildInsertStatement()
	updateTicket  = buildUpdateStatement()
)

func buildInsertStatement() string {
	placeholders := make([]string, len(ticketColumns))
	for i := range ticketColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO tickets (%s) VALUES (%s)",
		strings.Join(ticketColumns, ", "), strings.Join(placeholders, ", "))
}

func buildUpdateStatement() string {
	assignments := make([]string, len(ticketColumns))
	for i, col := range ticketColumns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf("UPDATE tickets SET %s WHERE ticket_number = $%d",
		strings.Join(assignments, ", "), len(ticketColumns)+1)
}

// ticketArgs returns the statement arguments for t in ticketColumns order.
func ticketArgs(t *domain.Ticket) []any {
	return []any{
		t.TicketCode, t.TicketNumber, t.Type, t.DocumentStatusCode,
		t.OwnerPCC, t.OwnerAgent, t.AgentIssuePCC, t.AgentIssueName,
		t.Class, t.PaxName, t.Itinerary, t.TicketExchangeInfo,
		t.Indicator, t.GroupName, t.IssueDate, t.Currency,
		t.Fare, t.NetFare, t.Taxes, t.TotalFare,
		t.Comm, t.CancellationFee, t.Payable, t.AmountUsed,
		t.BookingDate, t.BookingSignon, t.PNRCode, t.TourCode,
		t.ClaimAmount, t.DateOfPayment, t.FormOfPayment, t.PlaceOfPayment,
		t.Remark, t.Phone, t.Email, t.SoldPrice,
	}
}

// ticketScanTargets returns scan destinations for t in ticketColumns order.
func ticketScanTargets(t *domain.Ticket) []any {
	return []any{
		&t.TicketCode, &t.TicketNumber, &t.Type, &t.DocumentStatusCode,
		&t.OwnerPCC, &t.OwnerAgent, &t.AgentIssuePCC, &t.AgentIssueName,
		&t.Class, &t.PaxName, &t.Itinerary, &t.TicketExchangeInfo,
		&t.Indicator, &t.GroupName, &t.IssueDate, &t.Currency,
		&t.Fare, &t.NetFare, &t.Taxes, &t.TotalFare,
		&t.Comm, &t.CancellationFee, &t.Payable, &t.AmountUsed,
		&t.BookingDate, &t.BookingSignon, &t.PNRCode, &t.TourCode,
		&t.ClaimAmount, &t.DateOfPayment, &t.FormOfPayment, &t.PlaceOfPayment,
		&t.Remark, &t.Phone, &t.Email, &t.SoldPrice,
	}
}

type TicketRepository interface {
	List(ctx context.Context, params domain.ListParams) ([]domain.Ticket, error)
	ByIssueDate(ctx context.Context, day time.Time) ([]domain.Ticket, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Ticket, error)
	Insert(ctx context.Context, t *domain.Ticket) error
	InsertBatch(ctx context.Context, tickets []domain.Ticket) error
	Update(ctx context.Context, ticketNumber string, t *domain.Ticket) error
	Delete(ctx context.Context, ticketNumber string) error
	Stats(ctx context.Context, filter domain.StatsFilter) (*domain.TicketStats, error)
	Ping(ctx context.Context) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func (r *PGTicketRepository) List(ctx context.Context, params domain.ListParams) ([]domain.Ticket, error) {
	query, args := buildListQuery(params)
	return r.queryTickets(ctx, query, args...)
}

func (r *PGTicketRepository) ByIssueDate(ctx context.Context, day time.Time) ([]domain.Ticket, error) {
	return r.queryTickets(ctx, selectTickets+" WHERE issue_date = $1", day)
}

func (r *PGTicketRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Ticket, error) {
	query, args := buildSearchQuery(filter)
	return r.queryTickets(ctx, query, args...)
}

func (r *PGTicketRepository) queryTickets(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(ticketScanTargets(&t)...); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) Insert(ctx context.Context, t *domain.Ticket) error {
	_, err := r.db.Exec(ctx, insertTicket, ticketArgs(t)...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", t.TicketNumber, domain.ErrDuplicateTicket)
	}
	return err
}

// InsertBatch writes all tickets in one transaction. Any failure rolls
// the whole batch back.
func (r *PGTicketRepository) InsertBatch(ctx context.Context, tickets []domain.Ticket) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range tickets {
		if _, err := tx.Exec(ctx, insertTicket, ticketArgs(&tickets[i])...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%s: %w", tickets[i].TicketNumber, domain.ErrDuplicateTicket)
			}
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGTicketRepository) Update(ctx context.Context, ticketNumber string, t *domain.Ticket) error {
	args := append(ticketArgs(t), ticketNumber)
	res, err := r.db.Exec(ctx, updateTicket, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", t.TicketNumber, domain.ErrDuplicateTicket)
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGTicketRepository) Delete(ctx context.Context, ticketNumber string) error {
	res, err := r.db.Exec(ctx, "DELETE FROM tickets WHERE ticket_number = $1", ticketNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGTicketRepository) Stats(ctx context.Context, filter domain.StatsFilter) (*domain.TicketStats, error) {
	query, args := buildStatsQuery(filter)
	row := r.db.QueryRow(ctx, query, args...)

	var stats domain.TicketStats
	var first, last *time.Time
	if err := row.Scan(
		&stats.Count,
		&stats.TotalFare,
		&stats.AverageFare,
		&stats.DistinctIssuingPCC,
		&stats.DistinctPassengers,
		&first,
		&last,
	); err != nil {
		return nil, err
	}
	if first != nil {
		stats.FirstIssueDate = &domain.Date{Time: *first}
	}
	if last != nil {
		stats.LastIssueDate = &domain.Date{Time: *last}
	}
	return &stats, nil
}

func (r *PGTicketRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ TicketRepository = (*PGTicketRepository)(nil)
