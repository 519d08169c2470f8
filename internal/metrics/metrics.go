// Package metrics defines the custom Prometheus metrics of the explorer API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto and exposed by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "explorer"

// ── Visit metrics ─────────────────────────────────────────────────────────────

// VisitsTotal counts visit claims by outcome.
// Label:
//   - result: "accepted" or the rejection reason (e.g. "OutOfRange")
var VisitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visits_total",
		Help:      "Total number of visit claims, by result.",
	},
	[]string{"result"},
)

// PlacesDiscoveredTotal counts first visits.
var PlacesDiscoveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "places_discovered_total",
		Help:      "Total number of places discovered for the first time by a user.",
	},
)

// MissionsCompletedTotal counts mission completions triggered by visits.
var MissionsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "missions_completed_total",
		Help:      "Total number of missions completed.",
	},
)

// ExpAwardedTotal sums experience granted.
// Label:
//   - source: "visit" or "moderation"
var ExpAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exp_awarded_total",
		Help:      "Total experience points awarded, by source.",
	},
	[]string{"source"},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

// PlaceRequestsSubmittedTotal counts staged place requests.
// Label:
//   - kind: "new" or "edit"
var PlaceRequestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "place_requests_submitted_total",
		Help:      "Total number of place requests submitted, by kind.",
	},
	[]string{"kind"},
)

// PlaceRequestsDecidedTotal counts operator decisions.
// Label:
//   - status: "approved" or "rejected"
var PlaceRequestsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "place_requests_decided_total",
		Help:      "Total number of place requests decided, by status.",
	},
	[]string{"status"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityQueueDepth tracks pending events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityEventsTotal counts activity events leaving the dispatcher.
// Labels:
//   - type: activity type (e.g. "place.discovered")
//   - result: "sent", "failed" or "dropped"
var ActivityEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Total number of activity events handled by the dispatcher, by type and result.",
	},
	[]string{"type", "result"},
)
