package application

import (
	"fmt"
	"maps"
	"time"

	"technohunter_bot/internal/domain/form"
)

// Record is one accepted submission as stored by the bot.
// Records are created once and never modified.
type Record struct {
	ID          string
	UserID      int64
	Type        form.Branch
	SubmittedAt time.Time // assigned by the bot on receipt
	Data        form.Values
}

// NewID builds the public application number: TH-<userID>-<epoch millis>.
func NewID(userID int64, receivedAt time.Time) string {
	return fmt.Sprintf("TH-%d-%d", userID, receivedAt.UnixMilli())
}

// Field returns a data value rendered as text, or "" when absent.
func (r *Record) Field(key string) string {
	return form.AsString(r.Data[key])
}

// DisplayName is the company legal name or the participant's full name.
func (r *Record) DisplayName() string {
	switch r.Type {
	case form.BranchCompany:
		return r.Field(form.KeyCompanyName)
	case form.BranchParticipant:
		return r.Field(form.KeyFullName)
	}
	return ""
}

// ContactEmail is the email the submitter will be answered on.
func (r *Record) ContactEmail() string {
	if r.Type == form.BranchCompany {
		return r.Field(form.KeyMentorEmail)
	}
	return r.Field(form.KeyEmail)
}

// ContactPhone mirrors ContactEmail for phone numbers.
func (r *Record) ContactPhone() string {
	if r.Type == form.BranchCompany {
		return r.Field(form.KeyMentorPhone)
	}
	return r.Field(form.KeyPhone)
}

// Clone returns a copy that shares nothing mutable with r.
func (r *Record) Clone() *Record {
	c := *r
	c.Data = maps.Clone(r.Data)
	return &c
}
