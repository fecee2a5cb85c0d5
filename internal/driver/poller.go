// Package driver runs search sessions on behalf of the CLI and TUI: it polls
// them with a bounded amount of work per tick and fans searches out over
// several sources.
package driver

import (
	"github.com/mhr3/hexseek/results"
	"github.com/mhr3/hexseek/search"
)

// DefaultResultsPerTick bounds how many offsets one Tick moves, so a search
// with millions of matches cannot stall a frame.
const DefaultResultsPerTick = 100_000

// Poller owns the current session and the offsets collected from it.
// It must be used from a single goroutine.
type Poller struct {
	limit   int
	set     *results.Set
	session *search.Session
	state   search.State
	err     error
}

// NewPoller returns an idle poller draining at most limit offsets per tick.
func NewPoller(limit int) *Poller {
	if limit <= 0 {
		limit = DefaultResultsPerTick
	}
	return &Poller{limit: limit, set: results.New(), state: search.Finished}
}

// Replace cancels the running session, clears collected offsets and starts
// tracking s. s may be nil to go idle. The error is the old session's.
func (p *Poller) Replace(s *search.Session) error {
	err := p.Stop()
	p.set.Clear()
	p.session = s
	p.err = nil
	p.state = search.Pending
	if s == nil {
		p.state = search.Finished
	}
	return err
}

// Stop cancels the current session, keeping what was collected.
func (p *Poller) Stop() error {
	if p.session == nil {
		return nil
	}
	err := p.session.Cancel()
	p.session = nil
	p.state = search.Finished
	if p.err == nil {
		p.err = err
	}
	return err
}

// Tick moves up to the per-tick limit of offsets into the result set. It
// returns how many were added and whether the session may produce more.
func (p *Poller) Tick() (int, search.State) {
	if p.session == nil {
		return 0, p.state
	}
	added := 0
	for added < p.limit {
		off, st := p.session.TryGet()
		if st != search.Ready {
			p.state = st
			if st == search.Finished {
				p.err = p.session.Cancel()
			}
			return added, st
		}
		p.set.Add(off)
		added++
	}
	p.state = search.Pending
	return added, search.Pending
}

// Results returns the collected offsets.
func (p *Poller) Results() *results.Set { return p.set }

// Session returns the tracked session, or nil.
func (p *Poller) Session() *search.Session { return p.session }

// State returns the state reported by the last Tick.
func (p *Poller) State() search.State { return p.state }

// Err returns the worker failure of the last finished session, if any.
func (p *Poller) Err() error { return p.err }
