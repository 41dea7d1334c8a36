package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// innerQuietQualityLUT precomputes, for each possible InnerQuiet value
// (0..10), the QualityModifier a quality action would see with
// GreatStrides and Innovation both inactive: 5 * (iq + 10) * 2.
// QualityUpperBoundSolver stores it at construction and serves it through
// InnerQuietQualityCeiling; its DFS does not read it.
func innerQuietQualityLUT() [11]uint32 {
	var lut [11]uint32
	for iq := 0; iq <= 10; iq++ {
		lut[iq] = 5 * (uint32(iq) + 10) * 2
	}
	return lut
}

// maximumMuscleMemoryUtilization bounds how much Progress MuscleMemory's
// buff can still contribute: it is only ever active for one action, so the
// most it is worth is a single progress-action's full efficiency at the
// buffed modifier versus the unbuffed one. MacroSolver reports it in the
// shard-warmup debug log line; no search decision reads it.
func maximumMuscleMemoryUtilization(settings craftsim.Settings) uint32 {
	if !settings.AllowedActions.Has(craftsim.ActionMuscleMemory) {
		return 0
	}
	buffed := uint32(50 * (2 + 2))
	unbuffed := uint32(50 * 2)
	delta := buffed - unbuffed
	return settings.BaseProgress * delta / 100
}

// wasteNotWorthUsing reports whether WasteNot/WasteNot2 is worth casting
// given how many durability-costing actions the current durability still
// covers: it is only worth its own cost if that cost is less than simply
// buying the same durability back at price, in CP per 5 durability.
func wasteNotWorthUsing(settings craftsim.Settings, price uint32, a craftsim.Action, remainingDurabilityActions uint32) bool {
	cpCost := uint32(a.BaseCPCost())
	durabilitySaved := remainingDurabilityActions * 5 // each WasteNot-covered action saves ~5 durability
	equivalentBuyCost := (durabilitySaved / 5) * price
	return cpCost < equivalentBuyCost
}
