package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "miseventos",
		Name:      "registrations_total",
		Help:      "Attendance registration attempts by outcome.",
	}, []string{"outcome"})

	ScheduleConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "miseventos",
		Name:      "schedule_conflicts_total",
		Help:      "Session proposals rejected for overlapping an existing session.",
	})
)

const (
	OutcomeConfirmed         = "confirmed"
	OutcomeCancelled         = "cancelled"
	OutcomeRejectedFull      = "rejected_full"
	OutcomeRejectedDuplicate = "rejected_duplicate"
)
