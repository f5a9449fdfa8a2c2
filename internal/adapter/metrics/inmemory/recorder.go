package inmemory

import "sync"

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionFailure  uint64            `json:"action_failure"`
	ByAction       map[string]uint64 `json:"by_action"`
	ByReason       map[string]uint64 `json:"by_reason"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	rejected uint64
	failure  uint64
	byAction map[string]uint64
	byReason map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[action]++
}

func (r *Recorder) RecordRejected(action, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byAction[action]++
	r.byReason[reason]++
}

func (r *Recorder) RecordFailure(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byAction[action]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.failure,
		ByAction:       make(map[string]uint64, len(r.byAction)),
		ByReason:       make(map[string]uint64, len(r.byReason)),
	}
	for k, v := range r.byAction {
		out.ByAction[k] = v
	}
	for k, v := range r.byReason {
		out.ByReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
