package dashboard

import (
	"sync"

	"github.com/healthsync/healthsync/internal/render"
)

// Surface is the display area of one tab. Every load issues a new
// generation; a result is applied only if no newer load was issued since,
// so a slow stale response never overwrites fresher content.
type Surface struct {
	mu      sync.Mutex
	tab     Tab
	active  bool
	latest  uint64
	loading bool
	output  render.Output
	notice  string
}

func newSurface(tab Tab) *Surface {
	return &Surface{tab: tab}
}

// Begin issues the next generation and marks the surface as loading.
func (s *Surface) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.loading = true
	return s.latest
}

// Apply stores out if gen is the latest generation issued and reports
// whether it did. Stale results are dropped.
func (s *Surface) Apply(gen uint64, out render.Output) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.latest {
		return false
	}
	s.loading = false
	s.output = out
	s.notice = ""
	return true
}

// Notify shows an inline notice without touching the loaded content or
// the generation counter.
func (s *Surface) Notify(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = notice
}

func (s *Surface) setActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

// SurfaceSnapshot is a point-in-time copy of a surface.
type SurfaceSnapshot struct {
	Tab        Tab           `json:"tab"`
	Active     bool          `json:"active"`
	Loading    bool          `json:"loading"`
	Generation uint64        `json:"generation"`
	Notice     string        `json:"notice,omitempty"`
	Output     render.Output `json:"output"`
}

func (s *Surface) Snapshot() SurfaceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SurfaceSnapshot{
		Tab:        s.tab,
		Active:     s.active,
		Loading:    s.loading,
		Generation: s.latest,
		Notice:     s.notice,
		Output:     s.output,
	}
}
