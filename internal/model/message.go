package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MessageStatus is the moderation state of a contact message.
type MessageStatus string

const (
	StatusPending  MessageStatus = "pending"
	StatusAccepted MessageStatus = "accepted"
	StatusRejected MessageStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s MessageStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ParseMessageStatus returns the status for s, or false when s is not a
// known status.
func ParseMessageStatus(s string) (MessageStatus, bool) {
	st := MessageStatus(strings.TrimSpace(s))
	return st, st.Valid()
}

// Schema limits for stored messages. The intake endpoint applies stricter
// minimums on top of these.
const (
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MaxMessageLength = 2000
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Message represents a message submitted via the contact form.
type Message struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Normalize trims every text field and lowercases the email address.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
}

// Validate checks the stored-message constraints and returns
// ValidationErrors listing every offending field, or nil.
func (m *Message) Validate() error {
	var errs ValidationErrors

	checkText := func(field, label, value string, max int) {
		switch n := utf8.RuneCountInString(value); {
		case n == 0:
			errs = append(errs, FieldError{Field: field, Message: label + " is required"})
		case n > max:
			errs = append(errs, FieldError{Field: field, Message: label + " cannot exceed " + strconv.Itoa(max) + " characters"})
		}
	}

	checkText("name", "Name", m.Name, MaxNameLength)
	switch {
	case m.Email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	case !emailPattern.MatchString(m.Email):
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email"})
	}
	checkText("subject", "Subject", m.Subject, MaxSubjectLength)
	checkText("message", "Message", m.Message, MaxMessageLength)
	if !m.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "Status must be one of pending, accepted, rejected"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MessageListOptions carries filter and pagination parameters for listing
// contact messages.
type MessageListOptions struct {
	// Status filters by exact status. Empty returns all messages.
	Status MessageStatus
	Page   int
	Limit  int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalized returns a copy of o with defaults applied to out-of-range
// values.
func (o MessageListOptions) Normalized() MessageListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if !o.Status.Valid() {
		o.Status = ""
	}
	return o
}

// Offset is the number of records skipped before the requested page.
func (o MessageListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// MessagePage is one page of a message listing. Total counts every message
// matching the filter, ignoring pagination.
type MessagePage struct {
	Messages []*Message
	Total    int
}

// Pages returns ceil(total/limit).
func Pages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
