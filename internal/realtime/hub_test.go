package realtime

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func testHub() *Hub {
	return NewHub(slog.Default())
}

// ---------------------------------------------------------------------------
// shouldSend tests
// ---------------------------------------------------------------------------

func TestShouldSend_AllEvents(t *testing.T) {
	h := testHub()
	client := &Client{sub: Subscription{AllEvents: true}}

	event := &Event{Type: EventScore, Timestamp: time.Now()}
	if !h.shouldSend(client, event) {
		t.Error("AllEvents client should receive all events")
	}
}

func TestShouldSend_EventTypeFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		EventTypes: []EventType{EventFraudAlert},
	}}

	alertEvent := &Event{Type: EventFraudAlert}
	scoreEvent := &Event{Type: EventScore}

	if !h.shouldSend(client, alertEvent) {
		t.Error("Should receive fraud_alert events")
	}
	if h.shouldSend(client, scoreEvent) {
		t.Error("Should NOT receive plain score events")
	}
}

func TestShouldSend_FraudLevelFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		FraudLevels: []string{"HIGH", "CRITICAL"},
	}}

	critical := &Event{
		Type: EventFraudAlert,
		Data: map[string]interface{}{"fraud_level": "CRITICAL"},
	}
	low := &Event{
		Type: EventScore,
		Data: map[string]interface{}{"fraud_level": "LOW"},
	}

	if !h.shouldSend(client, critical) {
		t.Error("Should match CRITICAL level")
	}
	if h.shouldSend(client, low) {
		t.Error("Should NOT match LOW level")
	}
}

func TestShouldSend_MerchantFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		Merchants: []string{"Amazon"},
	}}

	matching := &Event{
		Type: EventScore,
		Data: map[string]interface{}{"merchant_name": "Amazon"},
	}
	notMatching := &Event{
		Type: EventScore,
		Data: map[string]interface{}{"merchant_name": "Flipkart"},
	}

	if !h.shouldSend(client, matching) {
		t.Error("Should match on merchant name")
	}
	if h.shouldSend(client, notMatching) {
		t.Error("Should NOT match unrelated merchants")
	}
}

func TestShouldSend_MinScoreFilter(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		MinScore: 60,
	}}

	high := &Event{
		Type: EventFraudAlert,
		Data: map[string]interface{}{"fraud_score": 85.0},
	}
	low := &Event{
		Type: EventScore,
		Data: map[string]interface{}{"fraud_score": 25.0},
	}

	if !h.shouldSend(client, high) {
		t.Error("Should receive high-score event")
	}
	if h.shouldSend(client, low) {
		t.Error("Should NOT receive low-score event")
	}
}

func TestShouldSend_EmptySubscription(t *testing.T) {
	h := testHub()

	// No filters, not AllEvents
	client := &Client{sub: Subscription{}}

	event := &Event{Type: EventScore}
	if !h.shouldSend(client, event) {
		t.Error("Empty subscription (no filters) should receive events")
	}
}

func TestShouldSend_NonMapData(t *testing.T) {
	h := testHub()

	client := &Client{sub: Subscription{
		Merchants: []string{"Amazon"},
	}}

	// Event with non-map data should not crash
	event := &Event{
		Type: EventScore,
		Data: "string data not a map",
	}

	// Merchant filter skips non-map data, so event passes through
	if !h.shouldSend(client, event) {
		t.Error("Non-map data should pass through when merchant filter can't inspect it")
	}
}

// ---------------------------------------------------------------------------
// Hub lifecycle tests
// ---------------------------------------------------------------------------

func TestHub_Stats_Initial(t *testing.T) {
	h := testHub()

	stats := h.Stats()
	if stats["connectedClients"].(int) != 0 {
		t.Errorf("Expected 0 connected clients, got %v", stats["connectedClients"])
	}
	if stats["totalEvents"].(int64) != 0 {
		t.Errorf("Expected 0 total events, got %v", stats["totalEvents"])
	}
}

func TestHub_BroadcastAndStats(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// Broadcast an event
	h.Broadcast(&Event{Type: EventScore, Timestamp: time.Now()})
	time.Sleep(50 * time.Millisecond)

	stats := h.Stats()
	if stats["totalEvents"].(int64) != 1 {
		t.Errorf("Expected 1 total event, got %v", stats["totalEvents"])
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{AllEvents: true},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	stats := h.Stats()
	if stats["connectedClients"].(int) != 1 {
		t.Errorf("Expected 1 connected client, got %v", stats["connectedClients"])
	}
	if stats["peakClients"].(int64) != 1 {
		t.Errorf("Expected peak 1, got %v", stats["peakClients"])
	}

	h.unregister <- client
	time.Sleep(50 * time.Millisecond)

	stats = h.Stats()
	if stats["connectedClients"].(int) != 0 {
		t.Errorf("Expected 0 connected clients after unregister, got %v", stats["connectedClients"])
	}
	// Peak should still be 1
	if stats["peakClients"].(int64) != 1 {
		t.Errorf("Expected peak still 1, got %v", stats["peakClients"])
	}
}

func TestHub_BroadcastToClient(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{AllEvents: true},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	h.Broadcast(&Event{
		Type:      EventScore,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{"fraud_score": 25.0},
	})

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("Expected non-empty message")
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for broadcast")
	}
}

func TestHub_BroadcastScore_FlaggedBecomesAlert(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{EventTypes: []EventType{EventFraudAlert}},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	// Flagged transaction should arrive as a fraud_alert
	h.BroadcastScore(map[string]interface{}{
		"is_fraud": true, "fraud_score": 85.0, "fraud_level": "CRITICAL",
	})

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("Expected non-empty message")
		}
	case <-time.After(time.Second):
		t.Error("Flagged score should be delivered as fraud_alert")
	}

	// Unflagged transaction arrives as a plain score and gets filtered out
	h.BroadcastScore(map[string]interface{}{
		"is_fraud": false, "fraud_score": 25.0, "fraud_level": "LOW",
	})
	time.Sleep(100 * time.Millisecond)

	select {
	case <-client.send:
		t.Error("Unflagged score should not reach fraud_alert subscribers")
	default:
	}
}

func TestHub_ContextCancellation(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Hub stopped
	case <-time.After(2 * time.Second):
		t.Error("Hub did not stop after context cancellation")
	}
}

func TestHub_FilteredBroadcast(t *testing.T) {
	h := testHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// Client only wants fraud alerts
	client := &Client{
		hub:  h,
		send: make(chan []byte, 256),
		sub:  Subscription{EventTypes: []EventType{EventFraudAlert}},
	}

	h.register <- client
	time.Sleep(50 * time.Millisecond)

	// Send a plain score event (should be filtered out)
	h.Broadcast(&Event{Type: EventScore, Timestamp: time.Now()})
	time.Sleep(100 * time.Millisecond)

	select {
	case <-client.send:
		t.Error("Client should NOT receive plain score event")
	default:
		// Good - filtered out
	}

	// Send a fraud alert (should be received)
	h.Broadcast(&Event{Type: EventFraudAlert, Timestamp: time.Now()})

	select {
	case msg := <-client.send:
		if len(msg) == 0 {
			t.Error("Expected non-empty message")
		}
	case <-time.After(time.Second):
		t.Error("Client should receive fraud alert")
	}
}
