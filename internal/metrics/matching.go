package metrics

import (
	"time"

	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Ranking and grading Prometheus metrics.
var (
	RankingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Name:      "ranking_requests_total",
			Help:      "Total number of ranking calls",
		},
		[]string{"direction"},
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Name:      "ranking_duration_seconds",
			Help:      "Ranking call duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"direction"},
	)

	RankingTargets = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Name:      "ranking_targets",
			Help:      "Number of targets scored per ranking call",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"direction"},
	)

	GradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Name:      "grades_total",
			Help:      "Total graded answers",
		},
		[]string{"category", "outcome"}, // "graded" / "rejected"
	)
)

func init() {
	prometheus.MustRegister(RankingRequestsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingTargets)
	prometheus.MustRegister(GradesTotal)
}

// RankingObserver feeds ranker statistics into the ranking metrics.
type RankingObserver struct{}

var _ matcher.Observer = RankingObserver{}

func (RankingObserver) ObserveRanking(d matcher.Direction, targets, _ int, elapsed time.Duration) {
	dir := string(d)
	RankingRequestsTotal.WithLabelValues(dir).Inc()
	RankingDuration.WithLabelValues(dir).Observe(elapsed.Seconds())
	RankingTargets.WithLabelValues(dir).Observe(float64(targets))
}

// RecordGrade counts one grading call. Results without a max score were rejected.
func RecordGrade(r models.AssessmentResult) {
	outcome := "graded"
	category := r.Category
	if r.MaxScore == 0 {
		outcome = "rejected"
		// unknown categories would otherwise grow the label set
		category = "invalid"
	}
	GradesTotal.WithLabelValues(category, outcome).Inc()
}
