// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Quotation is a persisted request for event services.
// Records are created once and never updated.
type Quotation struct {
	// ID is the opaque identifier assigned by the store.
	ID string

	ClientName        string
	CompanyName       string
	EventDate         time.Time
	StartTime         string
	EndTime           string
	NumberOfGuests    int
	ServicesRequested []string

	// CreatedAt is set by the store at persist time.
	CreatedAt time.Time
}

// QuotationDraft is a candidate quotation as submitted by a client.
// Nil fields were absent from the submission.
type QuotationDraft struct {
	ClientName        *string
	CompanyName       *string
	EventDate         *time.Time
	StartTime         *string
	EndTime           *string
	NumberOfGuests    *int
	ServicesRequested []string
}

// Validate checks that every required field is present and well formed.
// All failures are reported together in a single *ValidationError.
//
// ServicesRequested must be present but may be empty. StartTime and
// EndTime are free text with no ordering between them.
func (d *QuotationDraft) Validate() error {
	fields := make(map[string]string)

	requireText(fields, "clientName", d.ClientName)
	requireText(fields, "companyName", d.CompanyName)
	requireText(fields, "startTime", d.StartTime)
	requireText(fields, "endTime", d.EndTime)

	if d.EventDate == nil || d.EventDate.IsZero() {
		fields["eventDate"] = "this field is required"
	}

	if d.NumberOfGuests == nil {
		fields["numberOfGuests"] = "this field is required"
	}

	if d.ServicesRequested == nil {
		fields["servicesRequested"] = "this field is required"
	}

	if len(fields) > 0 {
		return NewFieldsValidationError(fields)
	}

	return nil
}

// Quotation builds the unpersisted record from a validated draft.
// ID and CreatedAt are left for the store to assign.
func (d *QuotationDraft) Quotation() *Quotation {
	services := make([]string, len(d.ServicesRequested))
	copy(services, d.ServicesRequested)

	return &Quotation{
		ClientName:        *d.ClientName,
		CompanyName:       *d.CompanyName,
		EventDate:         d.EventDate.UTC(),
		StartTime:         *d.StartTime,
		EndTime:           *d.EndTime,
		NumberOfGuests:    *d.NumberOfGuests,
		ServicesRequested: services,
	}
}

func requireText(fields map[string]string, name string, value *string) {
	switch {
	case value == nil:
		fields[name] = "this field is required"
	case strings.TrimSpace(*value) == "":
		fields[name] = "must not be empty"
	}
}
