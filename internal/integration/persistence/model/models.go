package model

// All returns every model migrated at startup.
func All() []interface{} {
	return []interface{}{
		&PlanModel{},
		&EmailQueueModel{},
	}
}
