package search

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/mhr3/hexseek/haystack"
	"github.com/mhr3/hexseek/internal/logging"
	"github.com/mhr3/hexseek/needle"
)

// State is what TryGet and Drain report about a session.
type State uint8

const (
	// Pending means the worker may still produce offsets.
	Pending State = iota
	// Ready accompanies an offset returned by TryGet.
	Ready
	// Finished means the worker has exited and every offset was delivered.
	Finished
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

const (
	defaultBuffer = 1024
	defaultChunk  = 4 << 20
)

type options struct {
	buffer    int
	unbounded bool
	advise    bool
	chunk     int
	closeHay  bool
	log       *logging.Logger
}

// Option configures Start.
type Option func(*options)

// WithBuffer sets the result channel capacity. 0 makes every offset a
// hand-off between worker and caller.
func WithBuffer(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.buffer = n
		}
	}
}

// WithUnbounded lets the worker run ahead of the caller without limit,
// queueing offsets in memory until they are polled.
func WithUnbounded() Option {
	return func(o *options) { o.unbounded = true }
}

// WithAdvice controls whether haystacks implementing haystack.Sequencer are
// told about the upcoming sequential scan. On by default.
func WithAdvice(on bool) Option {
	return func(o *options) { o.advise = on }
}

// WithChunkSize sets how many bytes the worker scans between checks of the
// stop signal when no match is found.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunk = n
		}
	}
}

// WithClose hands the haystack over to the session: if it implements
// io.Closer it is closed when the worker exits. Use it with a cloned
// haystack.Shared handle.
func WithClose() Option {
	return func(o *options) { o.closeHay = true }
}

// WithLogger sets the logger for worker lifecycle events.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// stopper is the cancellation signal. It is kept separate from Session so
// a cleanup attached to the Session can fire it.
type stopper struct {
	once sync.Once
	ch   chan struct{}
}

func (s *stopper) stop() { s.once.Do(func() { close(s.ch) }) }

// worker is everything the background goroutines touch. It never refers
// back to the Session.
type worker struct {
	hay    haystack.Haystack
	finder Finder
	opts   options
	log    *logging.Logger
	stop   <-chan struct{}
	done   chan struct{}
	found  atomic.Int64
	err    error
}

// Session is one background search of one pattern in one haystack.
//
// TryGet and Drain never block. Cancel blocks until the worker is gone. A
// Session that is dropped without Cancel stops its worker once it is
// garbage collected. Only one goroutine should poll a Session at a time.
type Session struct {
	id        string
	needleLen int
	out       <-chan int
	stop      *stopper
	w         *worker
	log       *logging.Logger

	cancelOnce sync.Once
	cancelErr  error
}

// Start begins searching h for n on a new goroutine and returns at once.
// h must stay valid and unmodified until the session has finished or Cancel
// has returned.
func Start(h haystack.Haystack, n needle.Owned, opts ...Option) *Session {
	o := options{
		buffer: defaultBuffer,
		advise: true,
		chunk:  defaultChunk,
		log:    logging.NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	log := o.log.WithSession(id)
	st := &stopper{ch: make(chan struct{})}
	out := make(chan int, o.buffer)
	w := &worker{
		hay:    h,
		finder: NewFinder(n.Bytes()),
		opts:   o,
		log:    log,
		stop:   st.ch,
		done:   make(chan struct{}),
	}

	go w.start(out)

	s := &Session{
		id:        id,
		needleLen: n.Len(),
		out:       out,
		stop:      st,
		w:         w,
		log:       log,
	}
	runtime.AddCleanup(s, func(st *stopper) { st.stop() }, st)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// NeedleLen is the byte length of the pattern being searched.
func (s *Session) NeedleLen() int { return s.needleLen }

// Found is the number of offsets the worker has handed over so far.
func (s *Session) Found() int64 { return s.w.found.Load() }

// Done is closed once the worker has exited.
func (s *Session) Done() <-chan struct{} { return s.w.done }

// TryGet returns the next offset with Ready if one is buffered. Otherwise
// it returns Pending while the worker may still produce results and
// Finished once the worker has exited and nothing is left to read.
func (s *Session) TryGet() (int, State) {
	select {
	case off, ok := <-s.out:
		if !ok {
			return 0, Finished
		}
		return off, Ready
	default:
		return 0, Pending
	}
}

// Drain passes every buffered offset to fn and returns Pending or Finished,
// whichever stopped it. Draining a finished session is a no-op that returns
// Finished.
func (s *Session) Drain(fn func(offset int)) State {
	for {
		off, st := s.TryGet()
		if st != Ready {
			return st
		}
		fn(off)
	}
}

// Cancel stops the worker and waits for it to exit. It returns a
// *PanicError if the worker panicked and nil otherwise. Offsets already
// buffered can still be read afterwards. Repeated calls return the same
// result.
func (s *Session) Cancel() error {
	s.cancelOnce.Do(func() {
		start := time.Now()
		s.stop.stop()
		<-s.w.done
		s.cancelErr = s.w.err
		s.log.LogCancel(context.Background(), time.Since(start), s.cancelErr)
	})
	return s.cancelErr
}

func (w *worker) start(out chan<- int) {
	defer close(w.done)
	if !w.opts.unbounded {
		w.run(out)
		return
	}

	in := make(chan int)
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		w.run(in)
	}()
	w.pump(in, out)
	<-exited
}

// run scans the haystack chunk by chunk and sends every match on ch. It
// closes ch on return and converts a panic into w.err.
func (w *worker) run(ch chan<- int) {
	defer close(ch)

	ctx := context.Background()
	begin := time.Now()
	stopped := false
	defer func() {
		if r := recover(); r != nil {
			w.err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		w.release(ctx)
		w.log.LogSessionEnd(ctx, w.found.Load(), time.Since(begin), stopped, w.err)
	}()

	if w.opts.advise {
		if seq, ok := w.hay.(haystack.Sequencer); ok {
			if err := seq.AdviseSequential(); err != nil {
				w.log.DebugContext(ctx, "sequential advice failed", "error", err)
			}
		}
	}

	h := w.hay.Bytes()
	n := w.finder.Len()
	w.log.LogSessionStart(ctx, len(h), n)
	if n == 0 {
		return
	}

	// Each window extends n-1 bytes past its chunk so a match is reported
	// by the chunk it starts in.
	chunk := w.opts.chunk
	for base := 0; n <= len(h)-base; {
		select {
		case <-w.stop:
			stopped = true
			return
		default:
		}

		end := len(h)
		if chunk < len(h)-base-(n-1) {
			end = base + chunk + n - 1
		}
		for off := range w.finder.All(h[base:end]) {
			select {
			case ch <- base + off:
				w.found.Add(1)
			case <-w.stop:
				stopped = true
				return
			}
		}
		if chunk >= len(h)-base {
			return
		}
		base += chunk
	}
}

func (w *worker) release(ctx context.Context) {
	if !w.opts.closeHay {
		return
	}
	c, ok := w.hay.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		w.log.WarnContext(ctx, "closing haystack", "error", err)
	}
}

// pump moves offsets from the worker into an unbounded FIFO and on to the
// caller. It closes out once the worker is done and the FIFO is empty.
func (w *worker) pump(in <-chan int, out chan<- int) {
	defer close(out)
	q := queue.New()
	for in != nil || q.Length() > 0 {
		var send chan<- int
		var next int
		if q.Length() > 0 {
			send = out
			next = q.Peek().(int)
		}
		select {
		case off, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			q.Add(off)
		case send <- next:
			q.Remove()
		case <-w.stop:
			return
		}
	}
}
