package weather

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/skylane/rosterops/core/model"
)

// riskFromMetrics maps daily forecast values to a risk level and a predicted
// delay. Thresholds are tuned for airline operations.
func riskFromMetrics(m Metrics) (model.RiskLevel, int) {
	switch {
	case m.PrecipProbabilityMax >= 70 || m.WindSpeed10mMax >= 40:
		return model.RiskHigh, 45
	case m.PrecipProbabilityMax >= 40 || m.WindSpeed10mMax >= 30:
		return model.RiskMedium, 20
	case m.PrecipProbabilityMax >= 20 || m.WindSpeed10mMax >= 20:
		return model.RiskLow, 0
	default:
		return model.RiskNone, 0
	}
}

// fallbackMetrics derives reproducible pseudo-forecast values from the
// airport and date alone. Same inputs always yield the same metrics;
// reproducibility is the contract, not realism.
func fallbackMetrics(airport, date string) Metrics {
	sum := sha256.Sum256([]byte(airport + "|" + date))
	hexed := hex.EncodeToString(sum[:])
	precip, _ := strconv.ParseInt(hexed[0:2], 16, 64)
	wind, _ := strconv.ParseInt(hexed[2:4], 16, 64)
	return Metrics{
		PrecipProbabilityMax: int(precip % 100),
		WindSpeed10mMax:      float64(wind%55) + 5,
	}
}
