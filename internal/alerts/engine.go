package alerts

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidDueTime = errors.New("alerts: invalid due time")

// DueAlert fires when an assignment's due moment passes while the
// program is running.
type DueAlert struct {
	Path        string
	DisplayName string
	Subject     string
	DueAt       time.Time
}

type queueItem struct {
	alert DueAlert
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].alert.DueAt.Before(pq[j].alert.DueAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// Engine holds armed alerts in a min-heap on DueAt and emits each one on
// its channel when the due moment passes. Emission is non-blocking: a
// slow consumer loses alerts rather than stalling the timer loop.
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	out     chan DueAlert
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		out:    make(chan DueAlert, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueAlert {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Arm(alert DueAlert) error {
	if alert.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("alerts: engine stopped")
	}

	heap.Push(&e.queue, queueItem{alert: alert})
	e.signalWakeup()
	return nil
}

// ReplaceAll swaps the armed set for the given alerts. Alerts whose due
// moment has already passed are skipped, so a reload never replays old
// deadlines. Returns the number armed.
func (e *Engine) ReplaceAll(alerts []DueAlert, now time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0
	}

	e.queue = e.queue[:0]
	armed := 0
	for _, a := range alerts {
		if a.DueAt.IsZero() || !a.DueAt.After(now) {
			continue
		}
		heap.Push(&e.queue, queueItem{alert: a})
		armed++
	}
	e.signalWakeup()
	return armed
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			for _, a := range due {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (DueAlert, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueAlert{}, false
	}
	return e.queue[0].alert, true
}

func (e *Engine) popDue(now time.Time) []DueAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueAlert, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alert
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alert)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
