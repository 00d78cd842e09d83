package domain

// Ticket is one issued travel ticket. ticket_number is the caller-facing
// unique key; every other field besides ticket_code is optional.
type Ticket struct {
	TicketCode         string   `json:"ticket_code"`
	TicketNumber       string   `json:"ticket_number"`
	Type               *string  `json:"type"`
	DocumentStatusCode *string  `json:"document_status_code"`
	OwnerPCC           *string  `json:"owner_pcc"`
	OwnerAgent         *string  `json:"owner_agent"`
	AgentIssuePCC      *string  `json:"agent_issue_pcc"`
	AgentIssueName     *string  `json:"agent_issue_name"`
	Class              *string  `json:"class"`
	PaxName            *string  `json:"pax_name"`
	Itinerary          *string  `json:"itinerary"`
	TicketExchangeInfo *string  `json:"ticket_exchange_info"`
	Indicator          *string  `json:"indicator"`
	GroupName          *string  `json:"group_name"`
	IssueDate          *Date    `json:"issue_date"`
	Currency           *string  `json:"currency"`
	Fare               *float64 `json:"fare"`
	NetFare            *float64 `json:"net_fare"`
	Taxes              *float64 `json:"taxes"`
	TotalFare          *float64 `json:"total_fare"`
	Comm               *float64 `json:"comm"`
	CancellationFee    *float64 `json:"cancellation_fee"`
	Payable            *float64 `json:"payable"`
	AmountUsed         *float64 `json:"amount_used"`
	BookingDate        *Date    `json:"booking_date"`
	BookingSignon      *string  `json:"booking_signon"`
	PNRCode            *string  `json:"pnr_code"`
	TourCode           *string  `json:"tour_code"`
	ClaimAmount        *float64 `json:"claim_amount"`
	DateOfPayment      *Date    `json:"date_of_payment"`
	FormOfPayment      *string  `json:"form_of_payment"`
	PlaceOfPayment     *string  `json:"place_of_payment"`
	Remark             *string  `json:"remark"`
	Phone              *string  `json:"phone"`
	Email              *string  `json:"email"`
	SoldPrice          *float64 `json:"sold_price"`
}

// Validate checks the creation invariants.
func (t Ticket) Validate() error {
	if t.TicketCode == "" {
		return &ValidationError{Field: "ticket_code", Reason: "required"}
	}
	if t.TicketNumber == "" {
		return &ValidationError{Field: "ticket_number", Reason: "required"}
	}
	return nil
}

// TicketStats aggregates a filtered set of tickets.
type TicketStats struct {
	Count              int64   `json:"count"`
	TotalFare          float64 `json:"total_fare"`
	AverageFare        float64 `json:"average_fare"`
	DistinctIssuingPCC int64   `json:"distinct_issuing_pcc"`
	DistinctPassengers int64   `json:"distinct_passengers"`
	FirstIssueDate     *Date   `json:"first_issue_date"`
	LastIssueDate      *Date   `json:"last_issue_date"`
}
