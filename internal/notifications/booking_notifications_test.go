package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/9ssi7/exponent"
)

type mockPushSender struct {
	published []*exponent.Message
	err       error
}

func (m *mockPushSender) Publish(_ context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	m.published = append(m.published, msgs...)
	return nil, m.err
}

func (m *mockPushSender) PublishSingle(_ context.Context, msg *exponent.Message) ([]*exponent.MessageResponse, error) {
	m.published = append(m.published, msg)
	return nil, m.err
}

type mockTokenStore struct {
	tokens map[int64][]string
}

func (m *mockTokenStore) AddOrUpdatePushToken(_ context.Context, _ int64, _ string, _ json.RawMessage) error {
	return nil
}

func (m *mockTokenStore) RemovePushToken(_ context.Context, _ int64, _ string) error {
	return nil
}

func (m *mockTokenStore) GetTokensByAdminIDs(_ context.Context, _ []int64) (map[int64][]string, error) {
	return m.tokens, nil
}

func TestSendBookingNotificationOneMessagePerDevice(t *testing.T) {
	push := &mockPushSender{}
	tokens := &mockTokenStore{tokens: map[int64][]string{
		1: {"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"},
	}}

	err := SendBookingNotification(context.Background(), push, tokens, 1, BookingFrozen, "50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(push.published) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(push.published))
	}

	msg := push.published[0]
	if msg.Title != "Booking Frozen" {
		t.Errorf("title = %q", msg.Title)
	}
	if msg.Data["event"] != string(BookingFrozen) || msg.Data["bookingRef"] != "50" {
		t.Errorf("data = %+v", msg.Data)
	}
	if msg.Data["category"] != string(CategoryBooking) {
		t.Errorf("category = %q", msg.Data["category"])
	}
}

func TestSendBookingNotificationCreditCategory(t *testing.T) {
	push := &mockPushSender{}
	tokens := &mockTokenStore{tokens: map[int64][]string{1: {"ExponentPushToken[aaa]"}}}

	if err := SendBookingNotification(context.Background(), push, tokens, 1, CreditIssued, "50"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if push.published[0].Data["category"] != string(CategoryCredit) {
		t.Errorf("credit events should carry the credit category, got %q", push.published[0].Data["category"])
	}
}

func TestSendBookingNotificationNoTokens(t *testing.T) {
	push := &mockPushSender{}
	tokens := &mockTokenStore{tokens: map[int64][]string{}}

	err := SendBookingNotification(context.Background(), push, tokens, 1, BookingCancelled, "50")
	if err == nil {
		t.Fatal("expected an error when the admin has no devices")
	}
	if len(push.published) != 0 {
		t.Errorf("nothing should be published, got %d", len(push.published))
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []Category{CategoryBooking, CategoryCredit, CategorySchedule, CategoryGeneral} {
		if !ValidCategory(c) {
			t.Errorf("%s should be valid", c)
		}
	}
	if ValidCategory("marketing") {
		t.Error("unknown categories must be rejected")
	}
}
