package repository

import (
	"fmt"
	"strings"

	"github.com/skyfare/ticketapi/internal/domain"
)

// sortColumns maps the caller-facing sort keys to column names. The
// ORDER BY clause is always built from this table, never from request
// text.
var sortColumns = map[string]string{
	domain.SortByIssueDate:    "issue_date",
	domain.SortByTicketNumber: "ticket_number",
	domain.SortByPaxName:      "pax_name",
}

// buildSearchQuery produces the search statement and its ordered
// argument list. Values are always passed as positional parameters.
func buildSearchQuery(filter domain.SearchFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(selectTickets)
	sb.WriteString(" WHERE 1=1")
	args := make([]any, 0, 3)

	if filter.TicketNumber != "" {
		args = append(args, filter.TicketNumber)
		fmt.Fprintf(&sb, " AND ticket_number = $%d", len(args))
	}
	if filter.PaxName != "" {
		args = append(args, "%"+filter.PaxName+"%")
		fmt.Fprintf(&sb, " AND pax_name ILIKE $%d", len(args))
	}
	if filter.AgentIssuePCC != "" {
		args = append(args, filter.AgentIssuePCC)
		fmt.Fprintf(&sb, " AND agent_issue_pcc = $%d", len(args))
	}
	return sb.String(), args
}

// buildListQuery produces the paginated list statement. The sort key
// must already be validated; an unknown key falls back to issue_date.
func buildListQuery(params domain.ListParams) (string, []any) {
	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "issue_date"
	}
	direction := "ASC"
	if params.Order == domain.OrderDesc {
		direction = "DESC"
	}
	offset := (params.Page - 1) * params.Limit
	query := fmt.Sprintf("%s ORDER BY %s %s LIMIT $1 OFFSET $2", selectTickets, column, direction)
	return query, []any{params.Limit, offset}
}

// buildStatsQuery produces the aggregate statement with optional
// inclusive issue-date bounds.
func buildStatsQuery(filter domain.StatsFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*),
	COALESCE(SUM(fare), 0),
	COALESCE(AVG(fare), 0),
	COUNT(DISTINCT agent_issue_pcc),
	COUNT(DISTINCT pax_name),
	MIN(issue_date),
	MAX(issue_date)
FROM tickets WHERE 1=1`)
	args := make([]any, 0, 2)

	if filter.From != nil {
		args = append(args, *filter.From)
		fmt.Fprintf(&sb, " AND issue_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		fmt.Fprintf(&sb, " AND issue_date <= $%d", len(args))
	}
	return sb.String(), args
}
