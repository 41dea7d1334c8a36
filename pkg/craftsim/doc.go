// Package craftsim is a deterministic, one-sided simulator for a
// crafting minigame. It models a fixed action vocabulary acting on five
// scalar resources (CP, Durability, Progress, Quality, UnreliableQuality)
// plus a packed bitfield of timed/single-use effects.
//
// The simulator is pure: UseAction takes a State and an Action and
// returns a new State or an error, never mutating its receiver. Each
// action resolves under the Condition the caller passes; the solvers
// always pass ConditionNormal. Callers modelling worst-case condition
// rolls should drive Settings.Adversarial instead of
// sampling a Condition distribution (that belongs to a separate reporting
// module, out of scope here).
//
//	settings := craftsim.Settings{
//		MaxCP: 80, MaxDurability: 60, MaxProgress: 1920, MaxQuality: 1000,
//		BaseProgress: 100, BaseQuality: 100, JobLevel: 90,
//		AllowedActions: craftsim.ActionMaskAll(),
//	}
//	state := craftsim.NewState(settings)
//	state, err := state.UseAction(craftsim.ActionMuscleMemory, craftsim.ConditionNormal, settings)
package craftsim
