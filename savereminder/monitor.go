package savereminder

import "sync"

// Monitor observes the user-facing signals of the save flow.
type Monitor interface {
	LoadingChanged(loading bool)
	Toast(message string)
	SnackBarInt(key string)
	ErrorMessage(message string)
	StateChanged(from, to State)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) LoadingChanged(_ bool)   {}
func (n *noopMonitor) Toast(_ string)          {}
func (n *noopMonitor) SnackBarInt(_ string)    {}
func (n *noopMonitor) ErrorMessage(_ string)   {}
func (n *noopMonitor) StateChanged(_, _ State) {}

// Transition is one recorded state change.
type Transition struct {
	From State
	To   State
}

// Recorder is a Monitor that keeps every signal in order.
type Recorder struct {
	mu          sync.Mutex
	loading     []bool
	toasts      []string
	snackBars   []string
	errors      []string
	transitions []Transition
}

var _ Monitor = (*Recorder)(nil)

func (r *Recorder) LoadingChanged(loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = append(r.loading, loading)
}

func (r *Recorder) Toast(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, message)
}

func (r *Recorder) SnackBarInt(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snackBars = append(r.snackBars, key)
}

func (r *Recorder) ErrorMessage(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *Recorder) StateChanged(from, to State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, Transition{From: from, To: to})
}

// Loading returns every loading toggle in order.
func (r *Recorder) Loading() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.loading...)
}

// Toasts returns every toast message in order.
func (r *Recorder) Toasts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.toasts...)
}

// SnackBars returns every snack bar message key in order.
func (r *Recorder) SnackBars() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.snackBars...)
}

// Errors returns every error message in order.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

// Transitions returns every state change in order.
func (r *Recorder) Transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Transition(nil), r.transitions...)
}

// Reset clears all recorded signals.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = nil
	r.toasts = nil
	r.snackBars = nil
	r.errors = nil
	r.transitions = nil
}
