package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

const (
	resultPublished = "published"
	resultFailed    = "failed"
	resultDropped   = "dropped"
)

// Dispatcher отправляет события в фоне, не блокируя вызывающего.
// Ошибки доставки логируются и отбрасываются: бронирование уже зафиксировано.
type Dispatcher struct {
	publisher Publisher
	events    chan Event
	timeout   time.Duration
	log       Logger
	metrics   MetricsRecorder
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер и запускает воркер.
// metrics может быть nil.
func NewDispatcher(publisher Publisher, bufferSize int, timeout time.Duration, log Logger, metrics MetricsRecorder) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		publisher: publisher,
		events:    make(chan Event, bufferSize),
		timeout:   timeout,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// NotifyCreated ставит в очередь событие о создании бронирования
func (d *Dispatcher) NotifyCreated(r *domain.Reservation) {
	d.enqueue(NewEvent(EventBookingCreated, r, d.now()))
}

// NotifyCancelled ставит в очередь событие об отмене бронирования
func (d *Dispatcher) NotifyCancelled(r *domain.Reservation) {
	d.enqueue(NewEvent(EventBookingCancelled, r, d.now()))
}

func (d *Dispatcher) enqueue(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Dispatcher: closed, dropping event type=%s, booking=%d", event.EventType, event.BookingID)
		d.observe(event.EventType, resultDropped)
		return
	}

	select {
	case d.events <- event:
	default:
		d.log.Warn("Dispatcher: buffer full, dropping event type=%s, booking=%d", event.EventType, event.BookingID)
		d.observe(event.EventType, resultDropped)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for event := range d.events {
		d.publish(event)
	}
}

func (d *Dispatcher) publish(event Event) {
	// Контекст не связан с запросом: к этому моменту ответ клиенту уже может быть отправлен
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.log.Warn("Dispatcher: failed to publish type=%s, booking=%d: %v", event.EventType, event.BookingID, err)
		d.observe(event.EventType, resultFailed)
		return
	}

	d.observe(event.EventType, resultPublished)
}

func (d *Dispatcher) observe(eventType EventType, result string) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(string(eventType), result)
	}
}

// Close прекращает приём событий и дожидается отправки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	d.wg.Wait()
}
