package paging

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
	"github.com/google/uuid"
)

// DefaultPageSize matches the catalog's page size.
const DefaultPageSize = 20

// maxFillRounds bounds how many remote pages one call may pull in while
// trying to fill a short window (e.g. when a filter hides most rows).
const maxFillRounds = 3

// Pager is one pagination session over a query. It reads windows from
// Source and asks the Loader for more data when the cache runs dry.
//
// Loads are serialized. Items, Pages and Status are safe to call while
// a load is running.
type Pager struct {
	loadMu sync.Mutex

	mu       sync.RWMutex
	pages    []Page
	anchor   *int
	status   Status
	pageSize int

	source   Source
	mediator Loader
	log      logging.Logger
}

func NewPager(source Source, mediator Loader, log logging.Logger, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		source:   source,
		mediator: mediator,
		log:      log.With("session", uuid.NewString()),
		pageSize: pageSize,
		status:   Status{State: Idle},
	}
}

// Refresh restarts the session: the mediator refetches the page nearest the
// anchor, and the first window is read from the start of the query.
func (p *Pager) Refresh(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	p.begin(Refresh)

	res, err := p.mediator.Load(ctx, Refresh, p.state())
	if err != nil {
		return p.fail(ctx, err)
	}

	items, err := p.source.Load(ctx, 0, p.pageSize)
	if err != nil {
		return p.fail(ctx, err)
	}

	p.mu.Lock()
	p.pages = split(0, items, p.pageSize)
	p.anchor = nil
	p.status.PrependEndReached = res.EndOfPaginationReached
	p.status.AppendEndReached = res.EndOfPaginationReached
	p.mu.Unlock()

	if err := p.fill(ctx); err != nil {
		return p.fail(ctx, err)
	}
	p.finish()
	return nil
}

// Append loads the next window. Cached rows are served first; the mediator
// is asked only when the cache cannot fill a whole window.
func (p *Pager) Append(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	p.begin(Append)
	if err := p.appendLocked(ctx); err != nil {
		return p.fail(ctx, err)
	}
	p.finish()
	return nil
}

// Prepend loads the page before the first loaded item. Windows always start
// at the head of the query, so this goes to the mediator.
func (p *Pager) Prepend(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	p.begin(Prepend)

	p.mu.RLock()
	ended := p.status.PrependEndReached
	p.mu.RUnlock()
	if ended {
		p.finish()
		return nil
	}

	_, count := p.bounds()
	res, err := p.mediator.Load(ctx, Prepend, p.state())
	if err != nil {
		return p.fail(ctx, err)
	}

	// rows fetched for an earlier page sort ahead of the current window
	items, err := p.source.Load(ctx, 0, count+p.pageSize)
	if err != nil {
		return p.fail(ctx, err)
	}

	p.mu.Lock()
	p.pages = split(0, items, p.pageSize)
	p.status.PrependEndReached = res.EndOfPaginationReached
	p.mu.Unlock()

	p.finish()
	return nil
}

func (p *Pager) appendLocked(ctx context.Context) error {
	start, count := p.bounds()

	items, err := p.source.Load(ctx, start+count, p.pageSize)
	if err != nil {
		return err
	}
	if len(items) == p.pageSize {
		p.mu.Lock()
		p.pages = append(p.pages, Page{Offset: start + count, Items: items})
		p.mu.Unlock()
		return nil
	}

	p.mu.RLock()
	ended := p.status.AppendEndReached
	p.mu.RUnlock()
	if ended {
		if len(items) > 0 {
			p.mu.Lock()
			p.pages = append(p.pages, Page{Offset: start + count, Items: items})
			p.mu.Unlock()
		}
		return nil
	}

	res, err := p.mediator.Load(ctx, Append, p.state())
	if err != nil {
		return err
	}

	// new rows may sort anywhere in the window, so re-read all of it
	window, err := p.source.Load(ctx, start, count+p.pageSize)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.pages = split(start, window, p.pageSize)
	p.status.AppendEndReached = res.EndOfPaginationReached
	p.mu.Unlock()
	return nil
}

// fill appends until the first window is full, the end is reached or a
// round adds nothing.
func (p *Pager) fill(ctx context.Context) error {
	for round := 0; round < maxFillRounds; round++ {
		_, count := p.bounds()
		p.mu.RLock()
		ended := p.status.AppendEndReached
		p.mu.RUnlock()
		if count >= p.pageSize || ended || count == 0 {
			return nil
		}
		if err := p.appendLocked(ctx); err != nil {
			return err
		}
		if _, after := p.bounds(); after == count {
			return nil
		}
	}
	return nil
}

// SetAnchor records the reader's absolute position, used to pick the resume
// page on the next Refresh.
func (p *Pager) SetAnchor(pos int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anchor = &pos
}

// Items returns all loaded items in order.
func (p *Pager) Items() []models.Movie {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []models.Movie
	for _, pg := range p.pages {
		out = append(out, pg.Items...)
	}
	return out
}

// Pages returns a copy of the loaded pages.
func (p *Pager) Pages() []Page {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return clonePages(p.pages)
}

func (p *Pager) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Pager) state() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st := State{Pages: clonePages(p.pages)}
	if p.anchor != nil {
		a := *p.anchor
		st.Anchor = &a
	}
	return st
}

func (p *Pager) bounds() (start, count int) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.pages) == 0 {
		return 0, 0
	}
	start = p.pages[0].Offset
	for _, pg := range p.pages {
		count += len(pg.Items)
	}
	return start, count
}

func (p *Pager) begin(lt LoadType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.State = Loading
	p.status.Intent = lt
	p.status.Err = nil
}

func (p *Pager) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.State = Loaded
}

func (p *Pager) fail(ctx context.Context, err error) error {
	p.mu.Lock()
	intent := p.status.Intent
	p.status.State = Loaded
	p.status.Err = err
	p.mu.Unlock()

	p.log.Error(ctx, "load failed", "type", intent, "error", err)
	return err
}

func split(offset int, items []models.Movie, size int) []Page {
	var pages []Page
	for len(items) > 0 {
		n := min(size, len(items))
		pages = append(pages, Page{Offset: offset, Items: items[:n:n]})
		offset += n
		items = items[n:]
	}
	return pages
}

func clonePages(in []Page) []Page {
	out := make([]Page, len(in))
	for i, pg := range in {
		out[i] = Page{Offset: pg.Offset, Items: append([]models.Movie(nil), pg.Items...)}
	}
	return out
}
