package usecasecontract

// IMetrics receives domain counters from use cases.
type IMetrics interface {
	RecordTransition(transition, outcome string)
	RecordBroadcastFanout(recipients int)
	RecordDeletionStep(step, outcome string)
}
