package calc

// Tier classifies a volume efficiency percentage into a qualitative band.
type Tier string

// Efficiency tiers, best to worst.
const (
	TierOptimal   Tier = "Optimal"   // efficiency >= 95%
	TierExcellent Tier = "Excellent" // efficiency >= 85%
	TierGood      Tier = "Good"      // efficiency >= 75%
	TierModerate  Tier = "Moderate"  // efficiency >= 60%
	TierPoor      Tier = "Poor"      // efficiency >= 40%
	TierCritical  Tier = "Critical"  // everything below 40%
)

// tierThreshold pairs a tier with its inclusive lower bound.
// Checked in descending order; first match wins.
var tierThresholds = []struct {
	min  float64
	tier Tier
}{
	{95, TierOptimal},
	{85, TierExcellent},
	{75, TierGood},
	{60, TierModerate},
	{40, TierPoor},
}

// Efficiency is the result of comparing a product volume against its
// container volume. It is ephemeral: derived on demand, never persisted.
type Efficiency struct {
	// EfficiencyPct is the volume utilization percentage.
	EfficiencyPct float64 `json:"efficiency_pct"`

	// RemainingPct is the free space percentage. It goes negative when
	// the product volume exceeds the container volume, which signals
	// overflow rather than an error.
	RemainingPct float64 `json:"remaining_pct"`

	// Tier is the qualitative classification of the utilization.
	Tier Tier `json:"tier"`
}

// Evaluate computes the volume utilization of a container.
// Both volumes must be expressed in the same unit. A non-positive
// container volume yields zero efficiency. The function never fails for
// finite inputs.
//
// Parameters:
//   - productVolume: total product volume
//   - containerVolume: container (box) volume in the same unit
//
// Returns:
//   - Efficiency: utilization percentage, remaining percentage and tier
func Evaluate(productVolume, containerVolume float64) Efficiency {
	pct := 0.0
	if containerVolume > 0 {
		pct = productVolume / containerVolume * 100
	}
	return Efficiency{
		EfficiencyPct: pct,
		RemainingPct:  100 - pct,
		Tier:          TierFor(pct),
	}
}

// TierFor maps an efficiency percentage to its qualitative tier.
// Thresholds are inclusive on the lower bound and checked descending.
//
// Parameters:
//   - efficiencyPct: the utilization percentage
//
// Returns:
//   - Tier: the matching tier (TierCritical below 40%)
func TierFor(efficiencyPct float64) Tier {
	for _, t := range tierThresholds {
		if efficiencyPct >= t.min {
			return t.tier
		}
	}
	return TierCritical
}

// IsOverflow checks whether the product volume exceeded the container.
//
// Returns:
//   - bool: true if the remaining percentage is negative
func (e Efficiency) IsOverflow() bool {
	return e.RemainingPct < 0
}
