package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contactsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grantflow",
		Subsystem: "contacts",
		Name:      "created_total",
		Help:      "The total number of created contacts",
	})

	contactsUpdatedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grantflow",
		Subsystem: "contacts",
		Name:      "updated_total",
		Help:      "The total number of updated contacts",
	})

	contactsDeletedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grantflow",
		Subsystem: "contacts",
		Name:      "deleted_total",
		Help:      "The total number of deleted contacts",
	})

	contactChangesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grantflow",
		Subsystem: "contact",
		Name:      "changes_total",
		Help:      "The total number of audited contact changes",
	}, []string{"kind"})

	contactListSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "grantflow",
		Subsystem: "contact",
		Name:      "list_seconds",
		Help:      "The time it takes to list contacts",
		Buckets:   prometheus.DefBuckets,
	})

	fieldAccessCacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grantflow",
		Subsystem: "field_access",
		Name:      "cache_total",
		Help:      "The total number of field access map lookups by cache result",
	}, []string{"result"})
)
