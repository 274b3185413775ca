package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/paging"
)

// DefaultSearchDebounce is how long the search text must stay unchanged
// before a new stream is started.
const DefaultSearchDebounce = 400 * time.Millisecond

// Stream is one pagination session together with the inputs it was built from.
type Stream struct {
	Query  string
	Filter models.Filter
	Pager  *paging.Pager
}

// Browser turns search and filter changes into pagination sessions.
// Search text is debounced, filter changes apply at once, and an input
// that leaves (query, filter) unchanged starts nothing.
type Browser struct {
	svc      MovieService
	debounce time.Duration

	queries chan string
	filters chan models.Filter
	streams chan Stream
	done    chan struct{}
	once    sync.Once
}

func NewBrowser(svc MovieService, debounce time.Duration) *Browser {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &Browser{
		svc:      svc,
		debounce: debounce,
		queries:  make(chan string),
		filters:  make(chan models.Filter),
		streams:  make(chan Stream, 1),
		done:     make(chan struct{}),
	}
}

// Streams delivers the latest session. A session not yet received is
// replaced by a newer one. The channel is closed when Run returns.
func (b *Browser) Streams() <-chan Stream {
	return b.streams
}

// SetQuery submits new search text. It returns at once if Run has stopped.
func (b *Browser) SetQuery(q string) {
	select {
	case b.queries <- q:
	case <-b.done:
	}
}

// SetFilter submits a new filter. It returns at once if Run has stopped.
func (b *Browser) SetFilter(f models.Filter) {
	select {
	case b.filters <- f:
	case <-b.done:
	}
}

// Run publishes a session for the empty query and the zero filter, then one
// per distinct input until ctx is done.
func (b *Browser) Run(ctx context.Context) {
	defer b.once.Do(func() {
		close(b.done)
		close(b.streams)
	})

	var (
		query   string
		filter  models.Filter
		pending string
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	b.publish(query, filter)

	for {
		select {
		case <-ctx.Done():
			return

		case q := <-b.queries:
			pending = strings.TrimSpace(q)
			if timer == nil {
				timer = time.NewTimer(b.debounce)
			} else {
				timer.Reset(b.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != query {
				query = pending
				b.publish(query, filter)
			}

		case f := <-b.filters:
			if !f.Equal(filter) {
				filter = f
				b.publish(query, filter)
			}
		}
	}
}

func (b *Browser) publish(query string, filter models.Filter) {
	s := Stream{Query: query, Filter: filter, Pager: b.svc.Stream(query, filter)}
	select {
	case <-b.streams:
	default:
	}
	b.streams <- s
}
