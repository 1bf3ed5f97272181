package state

// Status is the lifecycle state of one operation key.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Kind names a class of intent. Together with an optional key (e.g. a movie
// id) it identifies one lifecycle entry.
type Kind string

const (
	KindFetchCatalog         Kind = "fetchCatalog"
	KindSearchMovies         Kind = "searchMovies"
	KindFetchMovie           Kind = "fetchMovie"
	KindFetchReviews         Kind = "fetchReviews"
	KindSubmitReview         Kind = "submitReview"
	KindFetchAverageRating   Kind = "fetchAverageRating"
	KindFetchRecommendations Kind = "fetchRecommendations"
	KindFetchWatchlist       Kind = "fetchWatchlist"
	KindToggleWatchlist      Kind = "toggleWatchlist"
)

type OpKey struct {
	Kind Kind
	Key  string
}

type opState struct {
	status       Status
	err          error
	committedSeq uint64
}

// tracker centralizes per-operation loading and error state instead of
// scattering flags across every slice. All methods assume the store lock.
type tracker struct {
	ops map[OpKey]*opState
}

func newTracker() *tracker {
	return &tracker{ops: make(map[OpKey]*opState)}
}

func (t *tracker) state(key OpKey) *opState {
	st, ok := t.ops[key]
	if !ok {
		st = &opState{status: StatusIdle}
		t.ops[key] = st
	}
	return st
}

// begin marks a new request pending. Issuing a new request clears the
// previous error for that key; it does not cancel an earlier in-flight one.
func (t *tracker) begin(key OpKey) {
	st := t.state(key)
	st.status = StatusPending
	st.err = nil
}

func (t *tracker) succeed(key OpKey, seq uint64) {
	st := t.state(key)
	st.status = StatusSucceeded
	st.err = nil
	st.committedSeq = seq
}

func (t *tracker) fail(key OpKey, seq uint64, err error) {
	st := t.state(key)
	st.status = StatusFailed
	st.err = err
	st.committedSeq = seq
}

// committed returns the highest sequence number already committed for the
// key. Resolving requests with a lower or equal number are superseded.
func (t *tracker) committed(key OpKey) uint64 {
	if st, ok := t.ops[key]; ok {
		return st.committedSeq
	}
	return 0
}

func (t *tracker) status(key OpKey) Status {
	if st, ok := t.ops[key]; ok {
		return st.status
	}
	return StatusIdle
}

func (t *tracker) lastError(key OpKey) error {
	if st, ok := t.ops[key]; ok {
		return st.err
	}
	return nil
}
