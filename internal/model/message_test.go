package model

import (
	"errors"
	"strings"
	"testing"
)

func validMessage() *Message {
	return &Message{
		Name:    "Jo",
		Email:   "a@b.com",
		Subject: "Hi there",
		Message: "1234567890",
		Status:  StatusPending,
	}
}

func TestMessage_Normalize(t *testing.T) {
	m := &Message{
		Name:    "  Alice ",
		Email:   "  Alice@Example.COM ",
		Subject: "\tHello\n",
		Message: " body ",
	}
	m.Normalize()

	if m.Name != "Alice" {
		t.Errorf("expected name=Alice, got %q", m.Name)
	}
	if m.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", m.Email)
	}
	if m.Subject != "Hello" {
		t.Errorf("expected subject=Hello, got %q", m.Subject)
	}
	if m.Message != "body" {
		t.Errorf("expected message=body, got %q", m.Message)
	}
}

func TestMessage_Validate_OK(t *testing.T) {
	if err := validMessage().Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}

func TestMessage_Validate_ReportsEveryField(t *testing.T) {
	m := &Message{Status: "archived"}

	err := m.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	for _, field := range []string{"name", "email", "subject", "message", "status"} {
		if !verrs.Has(field) {
			t.Errorf("expected validation entry for %q, got %v", field, verrs)
		}
	}
}

func TestMessage_Validate_MaxLengthsCountRunes(t *testing.T) {
	m := validMessage()
	m.Name = strings.Repeat("é", MaxNameLength)
	if err := m.Validate(); err != nil {
		t.Fatalf("expected %d multibyte runes to be accepted, got %v", MaxNameLength, err)
	}

	m.Name = strings.Repeat("é", MaxNameLength+1)
	var verrs ValidationErrors
	if !errors.As(m.Validate(), &verrs) || !verrs.Has("name") {
		t.Fatalf("expected name length failure, got %v", verrs)
	}
}

func TestMessage_Validate_EmailPattern(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":            true,
		"first.last@mail.io": true,
		"x-y@sub.domain.org": true,
		"no-at-sign.com":     false,
		"a@b":                false,
		"a@b.technology":     false,
	}
	for email, ok := range cases {
		m := validMessage()
		m.Email = email
		err := m.Validate()
		if ok && err != nil {
			t.Errorf("expected %q to be accepted, got %v", email, err)
		}
		if !ok && err == nil {
			t.Errorf("expected %q to be rejected", email)
		}
	}
}

func TestMessageListOptions_Normalized(t *testing.T) {
	got := MessageListOptions{Page: 0, Limit: -5, Status: "bogus"}.Normalized()
	if got.Page != DefaultPage || got.Limit != DefaultLimit || got.Status != "" {
		t.Errorf("unexpected defaults: %+v", got)
	}

	got = MessageListOptions{Page: 3, Limit: 1000, Status: StatusRejected}.Normalized()
	if got.Limit != MaxLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxLimit, got.Limit)
	}
	if got.Status != StatusRejected {
		t.Errorf("expected status kept, got %q", got.Status)
	}
	if got.Offset() != 2*MaxLimit {
		t.Errorf("expected offset %d, got %d", 2*MaxLimit, got.Offset())
	}
}

func TestPages(t *testing.T) {
	cases := []struct{ total, limit, want int }{
		{0, 10, 0},
		{10, 10, 1},
		{15, 10, 2},
		{21, 10, 3},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := Pages(c.total, c.limit); got != c.want {
			t.Errorf("Pages(%d, %d) = %d, want %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestParseMessageStatus(t *testing.T) {
	if st, ok := ParseMessageStatus(" accepted "); !ok || st != StatusAccepted {
		t.Errorf("expected accepted, got %q ok=%v", st, ok)
	}
	if _, ok := ParseMessageStatus("unread"); ok {
		t.Error("expected unread to be rejected")
	}
}
