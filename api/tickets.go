package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skyfare/ticketapi/internal/domain"
	"github.com/skyfare/ticketapi/internal/service/tickets"
)

type TicketHandler struct {
	service tickets.TicketUseCase
	logger  *log.Logger
}

func NewTicketHandler(service tickets.TicketUseCase, logger *log.Logger) *TicketHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &TicketHandler{service: service, logger: logger}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.POST("/bulk", h.bulkCreate)
	router.GET("/search", h.search)
	router.GET("/stats", h.stats)
	router.GET("/:date", h.byDate)
	router.PUT("/:ticket_number", h.update)
	router.DELETE("/:ticket_number", h.delete)
}

// Health answers liveness with a store round-trip; a failed round-trip
// degrades the status to 503.
func (h *TicketHandler) Health(c *gin.Context) {
	if err := h.service.Ping(c.Request.Context()); err != nil {
		h.logger.Printf("ERROR health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TicketHandler) list(c *gin.Context) {
	params := domain.ListParams{
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}
	var err error
	if params.Page, err = intQuery(c, "page", 1); err != nil {
		writeError(c, http.StatusBadRequest, codeValidationFailed, "page must be a positive integer")
		return
	}
	if params.Limit, err = intQuery(c, "limit", domain.DefaultPageSize); err != nil {
		writeError(c, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
		return
	}

	list, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TicketHandler) byDate(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, "invalid date, use YYYY-MM-DD")
		return
	}
	list, err := h.service.ByIssueDate(c.Request.Context(), day)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TicketHandler) search(c *gin.Context) {
	filter := domain.SearchFilter{
		TicketNumber:  c.Query("ticket_number"),
		PaxName:       c.Query("pax_name"),
		AgentIssuePCC: c.Query("agent_issue_pcc"),
	}
	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TicketHandler) create(c *gin.Context) {
	var t domain.Ticket
	if !bindJSON(c, &t) {
		return
	}
	if err := h.service.Create(c.Request.Context(), &t); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

type bulkCreateResponse struct {
	Count   int             `json:"count"`
	Records []domain.Ticket `json:"records"`
}

func (h *TicketHandler) bulkCreate(c *gin.Context) {
	var batch []domain.Ticket
	if !bindJSON(c, &batch) {
		return
	}
	if err := h.service.CreateBatch(c.Request.Context(), batch); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, bulkCreateResponse{Count: len(batch), Records: batch})
}

func (h *TicketHandler) update(c *gin.Context) {
	var t domain.Ticket
	if !bindJSON(c, &t) {
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("ticket_number"), &t); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("ticket_number")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}

func (h *TicketHandler) stats(c *gin.Context) {
	var filter domain.StatsFilter
	for name, dst := range map[string]**time.Time{
		"start_date": &filter.From,
		"end_date":   &filter.To,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, codeInvalidDate, name+" must be YYYY-MM-DD")
			return
		}
		*dst = &day
	}

	stats, err := h.service.Stats(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// bindJSON decodes the request body into dst, translating decode
// failures into the error envelope. A malformed date names the field it
// was found under rather than surfacing the raw unmarshal text.
func bindJSON(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequestBody, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var dateErr *domain.DateFormatError
		if errors.As(err, &dateErr) {
			msg := dateErr.Error()
			if field := dateFieldName(body, dateErr.Value); field != "" {
				msg = (&domain.ValidationError{Field: field, Reason: "expected DD-MMM-YYYY"}).Error()
			}
			writeError(c, http.StatusBadRequest, codeInvalidDate, msg)
			return false
		}
		writeError(c, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return false
	}
	return true
}

var dateFields = []string{"issue_date", "booking_date", "date_of_payment"}

// dateFieldName locates the date field carrying value in a ticket
// object or an array of them. Empty when the body cannot be matched.
func dateFieldName(body []byte, value string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		return matchDateField(obj, value)
	}
	var arr []map[string]json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		for _, obj := range arr {
			if field := matchDateField(obj, value); field != "" {
				return field
			}
		}
	}
	return ""
}

func matchDateField(obj map[string]json.RawMessage, value string) string {
	quoted := `"` + value + `"`
	for _, field := range dateFields {
		if raw, ok := obj[field]; ok && string(raw) == quoted {
			return field
		}
	}
	return ""
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
