package notifications

import (
	"reflect"
	"testing"
)

func TestNormalizeChannels(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty defaults to normal", nil, []string{"normal"}},
		{"keeps allowed", []string{"normal", "popup"}, []string{"normal", "popup"}},
		{"drops unknown", []string{"email", "popup"}, []string{"popup"}},
		{"all unknown falls back", []string{"email", "sms"}, []string{"normal"}},
		{"dedupes", []string{"popup", "popup", "normal"}, []string{"popup", "normal"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeChannels(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("normalizeChannels(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestQueuedWithData(t *testing.T) {
	q := QueuedWithData("Payment approved", "Your beginner access is live", "success",
		map[string]interface{}{"proof_id": 7}, "normal", "popup")

	if q.Title != "Payment approved" || q.Type != "success" {
		t.Fatalf("unexpected payload: %+v", q)
	}
	if q.Data == nil {
		t.Fatal("expected data payload to be attached")
	}
	if !reflect.DeepEqual(q.Channels, []string{"normal", "popup"}) {
		t.Fatalf("channels = %v", q.Channels)
	}

	plain := Queued("Reminder", "Session today", "info")
	if !reflect.DeepEqual(plain.Channels, []string{"normal"}) {
		t.Fatalf("default channels = %v", plain.Channels)
	}
}
