package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
	"github.com/m04kA/SMC-AmenityBookingService/pkg/logger"
)

type recordingPublisher struct {
	mu      sync.Mutex
	events  []Event
	err     error
	release chan struct{}
}

func (p *recordingPublisher) Publish(ctx context.Context, event Event) error {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) published() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) ObserveNotification(eventType, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[result]++
}

func (m *countingMetrics) get(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[result]
}

func testReservation(id int64) *domain.Reservation {
	slot := "10:00-11:00"
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:          id,
		AmenityID:   3,
		UserID:      42,
		AmenityKind: domain.AmenityGym,
		BookingDate: date,
		TimeSlot:    &slot,
		SlotStart:   date.Add(10 * time.Hour),
		SlotEnd:     date.Add(11 * time.Hour),
	}
}

func TestDispatcher_CloseDrainsQueuedEvents(t *testing.T) {
	pub := &recordingPublisher{}
	metrics := &countingMetrics{}
	d := NewDispatcher(pub, 16, time.Second, logger.NewNop(), metrics)

	d.NotifyCreated(testReservation(1))
	d.NotifyCancelled(testReservation(1))
	d.Close()

	events := pub.published()
	require.Len(t, events, 2)
	assert.Equal(t, EventBookingCreated, events[0].EventType)
	assert.Equal(t, RoutingKeyCreated, events[0].RoutingKey())
	assert.Equal(t, EventBookingCancelled, events[1].EventType)
	assert.Equal(t, RoutingKeyCancelled, events[1].RoutingKey())
	assert.NotEqual(t, events[0].EventID, events[1].EventID)
	assert.Equal(t, 2, metrics.get(resultPublished))
}

func TestDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	metrics := &countingMetrics{}
	d := NewDispatcher(pub, 4, time.Second, logger.NewNop(), metrics)

	assert.NotPanics(t, func() { d.NotifyCreated(testReservation(1)) })
	d.Close()

	assert.Equal(t, 1, metrics.get(resultFailed))
}

func TestDispatcher_DoesNotBlockWhenBufferIsFull(t *testing.T) {
	release := make(chan struct{})
	pub := &recordingPublisher{release: release}
	metrics := &countingMetrics{}
	d := NewDispatcher(pub, 1, 5*time.Second, logger.NewNop(), metrics)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.NotifyCreated(testReservation(int64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a stalled broker")
	}

	// Не больше одного события в работе и одного в буфере
	assert.GreaterOrEqual(t, metrics.get(resultDropped), 8)

	close(release)
	d.Close()
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	pub := &recordingPublisher{}
	metrics := &countingMetrics{}
	d := NewDispatcher(pub, 1, time.Second, logger.NewNop(), metrics)
	d.Close()

	assert.NotPanics(t, func() { d.NotifyCreated(testReservation(1)) })
	assert.Equal(t, 1, metrics.get(resultDropped))
	assert.Empty(t, pub.published())
	d.Close()
}

func TestNewEvent_CarriesReservationFields(t *testing.T) {
	r := testReservation(5)
	occurred := time.Date(2026, 10, 14, 9, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	event := NewEvent(EventBookingCreated, r, occurred)

	assert.Equal(t, int64(5), event.BookingID)
	assert.Equal(t, "GYM", event.AmenityType)
	assert.Equal(t, "2026-10-20", event.BookingDate)
	require.NotNil(t, event.TimeSlot)
	assert.Equal(t, "10:00-11:00", *event.TimeSlot)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.NotEmpty(t, event.EventID)
}
