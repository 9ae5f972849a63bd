package service

// sagaState tracks how far a mutating operation has progressed across the two
// stores. Making the states explicit keeps the failed-rollback case a real,
// loggable state instead of an implicit code path.
type sagaState int

const (
	sagaValidated sagaState = iota
	sagaRemoteCommitted
	sagaLocalCommitted
	sagaRollingBack
	sagaRolledBack
	sagaRollbackFailed
)

func (s sagaState) String() string {
	switch s {
	case sagaValidated:
		return "validated"
	case sagaRemoteCommitted:
		return "remote-committed"
	case sagaLocalCommitted:
		return "local-committed"
	case sagaRollingBack:
		return "rolling-back"
	case sagaRolledBack:
		return "rolled-back"
	case sagaRollbackFailed:
		return "rollback-failed"
	default:
		return "unknown"
	}
}

// UpdateResult distinguishes a clean failure (both stores unchanged or
// reconciled) from an inconsistent one (local commit failed and the remote
// rollback also failed). The HTTP surface collapses both failures to false;
// the distinction exists for logging and for callers inside the process.
type UpdateResult int

const (
	UpdateOK UpdateResult = iota
	UpdateFailed
	UpdateFailedInconsistent
)

// OK reports whether the update fully succeeded.
func (r UpdateResult) OK() bool {
	return r == UpdateOK
}

func (r UpdateResult) String() string {
	switch r {
	case UpdateOK:
		return "ok"
	case UpdateFailed:
		return "failed"
	case UpdateFailedInconsistent:
		return "failed-inconsistent"
	default:
		return "unknown"
	}
}
