package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyfare/ticketapi/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewTicketRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewTicketRepository(pool)
	assert.NotNil(t, repo)
}

func TestBuildSearchQuery_AllFilters(t *testing.T) {
	query, args := buildSearchQuery(domain.SearchFilter{
		TicketNumber:  "100",
		PaxName:       "doe",
		AgentIssuePCC: "PCC1",
	})

	assert.Contains(t, query, "ticket_number = $1")
	assert.Contains(t, query, "pax_name ILIKE $2")
	assert.Contains(t, query, "agent_issue_pcc = $3")
	assert.Equal(t, []any{"100", "%doe%", "PCC1"}, args)
}

func TestBuildSearchQuery_SingleFilter(t *testing.T) {
	query, args := buildSearchQuery(domain.SearchFilter{PaxName: "smith"})

	assert.NotContains(t, query, "ticket_number =")
	assert.Contains(t, query, "pax_name ILIKE $1")
	assert.Equal(t, []any{"%smith%"}, args)
}

func TestBuildListQuery(t *testing.T) {
	query, args := buildListQuery(domain.ListParams{
		Page:   3,
		Limit:  10,
		SortBy: domain.SortByTicketNumber,
		Order:  domain.OrderDesc,
	})

	assert.Contains(t, query, "ORDER BY ticket_number DESC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{10, 20}, args)
}

func TestBuildListQuery_UnknownSortKeyNeverReachesSQL(t *testing.T) {
	query, _ := buildListQuery(domain.ListParams{
		Page:   1,
		Limit:  10,
		SortBy: "fare; DROP TABLE tickets",
		Order:  domain.OrderAsc,
	})

	assert.NotContains(t, query, "DROP TABLE")
	assert.Contains(t, query, "ORDER BY issue_date ASC")
}

func TestBuildStatsQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildStatsQuery(domain.StatsFilter{From: &from, To: &to})
	assert.Contains(t, query, "issue_date >= $1")
	assert.Contains(t, query, "issue_date <= $2")
	assert.Equal(t, []any{from, to}, args)

	query, args = buildStatsQuery(domain.StatsFilter{To: &to})
	assert.NotContains(t, query, ">=")
	assert.Contains(t, query, "issue_date <= $1")
	assert.Equal(t, []any{to}, args)

	query, args = buildStatsQuery(domain.StatsFilter{})
	assert.Empty(t, args)
	assert.NotContains(t, query, "issue_date >")
}

func TestStatementsCoverEveryColumn(t *testing.T) {
	var ticket domain.Ticket
	assert.Len(t, ticketArgs(&ticket), len(ticketColumns))
	assert.Len(t, ticketScanTargets(&ticket), len(ticketColumns))

	for _, col := range ticketColumns {
		assert.Contains(t, insertTicket, col)
		assert.Contains(t, updateTicket, col+" = $")
	}
	assert.Contains(t, updateTicket, "WHERE ticket_number = $37")
}
