package paging

import (
	"github.com/dmitrijs2005/gophmovies/internal/client/models"
)

// LoadType is the intent of a load request.
type LoadType int

const (
	// Refresh restarts loading near the anchor, replacing the cache.
	Refresh LoadType = iota
	// Prepend loads the page before the first loaded item.
	Prepend
	// Append loads the page after the last loaded item.
	Append
)

func (t LoadType) String() string {
	switch t {
	case Refresh:
		return "refresh"
	case Prepend:
		return "prepend"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// Page is a contiguous run of items starting at Offset in the query result.
type Page struct {
	Offset int
	Items  []models.Movie
}

// State is the reader's view handed to the mediator: what is loaded and
// where the reader currently is.
type State struct {
	Pages []Page

	// Anchor is the reader's absolute position, if known.
	Anchor *int
}

// FirstItem returns the first loaded item, or nil when nothing is loaded.
func (s State) FirstItem() *models.Movie {
	for _, p := range s.Pages {
		if len(p.Items) > 0 {
			return &p.Items[0]
		}
	}
	return nil
}

// LastItem returns the last loaded item, or nil when nothing is loaded.
func (s State) LastItem() *models.Movie {
	for i := len(s.Pages) - 1; i >= 0; i-- {
		if n := len(s.Pages[i].Items); n > 0 {
			return &s.Pages[i].Items[n-1]
		}
	}
	return nil
}

// ClosestItemToPosition returns the loaded item nearest to the absolute
// position pos, or nil when nothing is loaded.
func (s State) ClosestItemToPosition(pos int) *models.Movie {
	var (
		best     *models.Movie
		bestDist = -1
	)
	for pi := range s.Pages {
		p := &s.Pages[pi]
		for i := range p.Items {
			d := p.Offset + i - pos
			if d < 0 {
				d = -d
			}
			if bestDist < 0 || d < bestDist {
				best, bestDist = &p.Items[i], d
			}
		}
	}
	return best
}

// Result is the outcome of a successful mediator load.
type Result struct {
	// EndOfPaginationReached is true when no more data exists in the
	// requested direction.
	EndOfPaginationReached bool
}

// LoadState is the lifecycle of a pagination session.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Loaded
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Status is a snapshot of a Pager's session state.
type Status struct {
	State LoadState

	// Intent is the load in flight, or the last one when not loading.
	Intent LoadType

	PrependEndReached bool
	AppendEndReached  bool

	// Err is the error of the last load, nil when it succeeded.
	Err error
}
