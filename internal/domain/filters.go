package domain

import "time"

// Sort keys permitted on the list endpoint. Anything else is rejected
// before it can reach statement text.
const (
	SortByIssueDate    = "issue_date"
	SortByTicketNumber = "ticket_number"
	SortByPaxName      = "pax_name"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams controls pagination and ordering of the list endpoint.
type ListParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// SearchFilter holds the optional multi-field search inputs. Filters
// combine with AND; pax_name is a case-insensitive substring match.
type SearchFilter struct {
	TicketNumber  string
	PaxName       string
	AgentIssuePCC string
}

// Empty reports whether no filter was supplied at all.
func (f SearchFilter) Empty() bool {
	return f.TicketNumber == "" && f.PaxName == "" && f.AgentIssuePCC == ""
}

// StatsFilter bounds the stats aggregation by issue date, both ends
// inclusive; a nil bound imposes no constraint.
type StatsFilter struct {
	From *time.Time
	To   *time.Time
}
