package service

import (
	"math"
	"time"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
)

const (
	estimateBase  = 0.5
	estimateFloor = 0.05
	estimateCeil  = 0.95

	gpaMarginStep  = 0.25
	gpaStepBonus   = 0.08
	gpaBonusCap    = 0.24
	highAwardCut   = 10000.0
	midAwardCut    = 5000.0
	lowAwardCut    = 1000.0
	largePoolCut   = 500
	midPoolCut     = 100
	deadlineWindow = 7 * 24 * time.Hour
)

// AcceptanceEstimator calcula una probabilidad determinista de aceptacion.
// Misma entrada, misma salida; no hace I/O.
type AcceptanceEstimator struct {
	now func() time.Time
}

func NewAcceptanceEstimator() AcceptanceEstimator {
	return AcceptanceEstimator{now: func() time.Time { return time.Now().UTC() }}
}

// Estimate devuelve una probabilidad en [0.05, 0.95] redondeada a 2 decimales.
// Un GPA por debajo del requisito fija el piso directamente.
func (e AcceptanceEstimator) Estimate(sch domain.Scholarship, gpa float64) float64 {
	if math.IsNaN(gpa) || math.IsInf(gpa, 0) || gpa < 0 {
		gpa = 0
	}
	if gpa < sch.MinGPA {
		return estimateFloor
	}

	score := estimateBase

	margin := gpa - sch.MinGPA
	bonus := math.Floor(margin/gpaMarginStep) * gpaStepBonus
	if bonus > gpaBonusCap {
		bonus = gpaBonusCap
	}
	score += bonus

	switch {
	case sch.Amount >= highAwardCut:
		score -= 0.20
	case sch.Amount >= midAwardCut:
		score -= 0.10
	case sch.Amount >= lowAwardCut:
		score -= 0.05
	}

	switch {
	case sch.AppliedCount >= largePoolCut:
		score -= 0.10
	case sch.AppliedCount >= midPoolCut:
		score -= 0.05
	}

	if now := e.nowUTC(); !sch.Deadline.IsZero() && sch.Deadline.After(now) && sch.Deadline.Sub(now) <= deadlineWindow {
		score -= 0.05
	}

	if score < estimateFloor {
		score = estimateFloor
	}
	if score > estimateCeil {
		score = estimateCeil
	}
	return math.Round(score*100) / 100
}

func (e AcceptanceEstimator) nowUTC() time.Time {
	if e.now == nil {
		return time.Now().UTC()
	}
	return e.now()
}
