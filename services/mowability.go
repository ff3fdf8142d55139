package services

import (
	"greenroute-backend/models"
	"math"
)

const highHumidityPct = 90

// MowabilityScore rates a forecast day from 0 (unmowable) to 100. Penalties are
// additive and the result is clamped once at the end.
func MowabilityScore(day models.DailyForecast, t models.MowabilityThreshold) int {
	score := 100.0

	if day.RainChancePct > t.MaxRainChance {
		score -= 80
	} else {
		score -= day.RainChancePct * 0.8
	}

	if day.WindKmh > t.MaxWindKmh {
		score -= (day.WindKmh - t.MaxWindKmh) * 2
	}

	if day.TempC < t.MinTempC {
		score -= (t.MinTempC - day.TempC) * 5
	}
	if day.TempC > t.MaxTempC {
		score -= (day.TempC - t.MaxTempC) * 3
	}

	if day.HumidityPct > highHumidityPct {
		score -= 10
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// ScoreOutlook attaches a score to every forecast day
func ScoreOutlook(days []models.DailyForecast, t models.MowabilityThreshold) []models.DayOutlook {
	out := make([]models.DayOutlook, 0, len(days))
	for _, d := range days {
		out = append(out, models.DayOutlook{DailyForecast: d, Score: MowabilityScore(d, t)})
	}
	return out
}
