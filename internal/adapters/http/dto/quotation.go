package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// dateOnlyLayout is accepted for eventDate alongside RFC 3339 timestamps.
const dateOnlyLayout = "2006-01-02"

// CreateQuotationRequest is the body of POST /api/quotations.
// Pointer fields distinguish an absent field from a zero value.
type CreateQuotationRequest struct {
	ClientName        *string  `json:"clientName"        validate:"required,notempty"`
	CompanyName       *string  `json:"companyName"       validate:"required,notempty"`
	EventDate         *string  `json:"eventDate"         validate:"required,eventdate"`
	StartTime         *string  `json:"startTime"         validate:"required,notempty"`
	EndTime           *string  `json:"endTime"           validate:"required,notempty"`
	NumberOfGuests    *int     `json:"numberOfGuests"    validate:"required"`
	ServicesRequested []string `json:"servicesRequested" validate:"required"`
}

// ToDraft converts the request into a domain draft. An eventDate that does
// not parse is left nil so domain validation reports it.
func (r *CreateQuotationRequest) ToDraft() *domain.QuotationDraft {
	draft := &domain.QuotationDraft{
		ClientName:        r.ClientName,
		CompanyName:       r.CompanyName,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		NumberOfGuests:    r.NumberOfGuests,
		ServicesRequested: r.ServicesRequested,
	}

	if r.EventDate != nil {
		if t, err := ParseEventDate(*r.EventDate); err == nil {
			draft.EventDate = &t
		}
	}

	return draft
}

// ParseEventDate parses an RFC 3339 timestamp or a plain YYYY-MM-DD date.
// Plain dates are taken as midnight UTC.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, err
	}

	return t.UTC(), nil
}

// validateEventDate checks that a string parses as an event date.
func validateEventDate(fl validator.FieldLevel) bool {
	_, err := ParseEventDate(fl.Field().String())
	return err == nil
}

// QuotationResponse is the JSON representation of a stored quotation.
// The same shape is used for HTTP responses and realtime events.
type QuotationResponse struct {
	ID                string    `json:"_id"`
	ClientName        string    `json:"clientName"`
	CompanyName       string    `json:"companyName"`
	EventDate         time.Time `json:"eventDate"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	NumberOfGuests    int       `json:"numberOfGuests"`
	ServicesRequested []string  `json:"servicesRequested"`
	CreatedAt         time.Time `json:"createdAt"`
}

// NewQuotationResponse converts a domain quotation to its JSON form.
func NewQuotationResponse(q *domain.Quotation) QuotationResponse {
	services := q.ServicesRequested
	if services == nil {
		services = []string{}
	}

	return QuotationResponse{
		ID:                q.ID,
		ClientName:        q.ClientName,
		CompanyName:       q.CompanyName,
		EventDate:         q.EventDate.UTC(),
		StartTime:         q.StartTime,
		EndTime:           q.EndTime,
		NumberOfGuests:    q.NumberOfGuests,
		ServicesRequested: services,
		CreatedAt:         q.CreatedAt.UTC(),
	}
}

// NewQuotationListResponse converts a list of quotations. The result is
// never nil so an empty list encodes as [].
func NewQuotationListResponse(qs []*domain.Quotation) []QuotationResponse {
	out := make([]QuotationResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewQuotationResponse(q))
	}

	return out
}
