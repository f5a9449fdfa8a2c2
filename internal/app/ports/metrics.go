package ports

type ActionMetrics interface {
	RecordSuccess(action string)
	RecordRejected(action, reason string)
	RecordFailure(action string)
}
