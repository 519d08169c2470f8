package handler

import (
	"errors"

	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
	"github.com/placequest/explorer-api/internal/metrics"
)

func recordVisit(r *ports.VisitResult) {
	metrics.VisitsTotal.WithLabelValues("accepted").Inc()
	if r.Discovered {
		metrics.PlacesDiscoveredTotal.Inc()
	}
	metrics.MissionsCompletedTotal.Add(float64(len(r.CompletedMissions)))
	metrics.ExpAwardedTotal.WithLabelValues("visit").Add(float64(r.ExpGained))
}

func recordVisitFailure(err error) {
	var rejected *domain.VisitRejectedError
	if errors.As(err, &rejected) {
		metrics.VisitsTotal.WithLabelValues(string(rejected.Reason)).Inc()
		return
	}
	metrics.VisitsTotal.WithLabelValues("error").Inc()
}

func recordSubmission(isNewPlace bool) {
	kind := "edit"
	if isNewPlace {
		kind = "new"
	}
	metrics.PlaceRequestsSubmittedTotal.WithLabelValues(kind).Inc()
}

func recordDecision(r *ports.DecisionResult) {
	metrics.PlaceRequestsDecidedTotal.WithLabelValues(string(r.Request.Status)).Inc()
	if r.ExpAwarded > 0 {
		metrics.ExpAwardedTotal.WithLabelValues("moderation").Add(float64(r.ExpAwarded))
	}
}
