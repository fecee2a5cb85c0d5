package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mhr3/hexseek/haystack"
	"github.com/mhr3/hexseek/needle"
	"github.com/mhr3/hexseek/search"
)

// Stream polls s until it finishes, passing each offset to emit. Polls are
// paced to one per interval and each poll moves at most perTick offsets.
// Stream cancels s before returning; the result is ctx's error, emit's
// error or the session's worker failure.
func Stream(ctx context.Context, s *search.Session, interval time.Duration, perTick int, emit func(offset int) error) error {
	if perTick <= 0 {
		perTick = DefaultResultsPerTick
	}
	lim := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := lim.Wait(ctx); err != nil {
			_ = s.Cancel()
			return err
		}
		st, err := drain(s, perTick, emit)
		if err != nil {
			_ = s.Cancel()
			return err
		}
		if st == search.Finished {
			return s.Cancel()
		}
	}
}

func drain(s *search.Session, limit int, emit func(int) error) (search.State, error) {
	for range limit {
		off, st := s.TryGet()
		if st != search.Ready {
			return st, nil
		}
		if err := emit(off); err != nil {
			return search.Pending, err
		}
	}
	return search.Pending, nil
}

// Source is a named haystack that is opened on demand.
type Source struct {
	Name string
	Open func(ctx context.Context) (haystack.Haystack, error)
}

// Options configure SearchAll.
type Options struct {
	// Parallel bounds how many sources are open and searched at once.
	Parallel int
	Interval time.Duration
	PerTick  int
	Session  []search.Option
}

// SearchAll searches every source for n concurrently and calls emit with
// each match. emit is never called concurrently. Haystacks that implement
// io.Closer are closed when their search ends. The first error cancels the
// remaining searches.
func SearchAll(ctx context.Context, sources []Source, n needle.Owned, opts Options, emit func(source string, offset int) error) error {
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for _, src := range sources {
		g.Go(func() error {
			h, err := src.Open(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			sessOpts := append(append([]search.Option(nil), opts.Session...), search.WithClose())
			s := search.Start(h, n, sessOpts...)
			err = Stream(ctx, s, opts.Interval, opts.PerTick, func(off int) error {
				mu.Lock()
				defer mu.Unlock()
				return emit(src.Name, off)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
