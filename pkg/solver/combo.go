package solver

import "github.com/gitrdm/raphael-go/pkg/craftsim"

// ActionCombo is the solver's branching unit: either a single Action, or a
// two-step touch chain (BasicTouch->StandardTouch, StandardTouch-
// >AdvancedTouch, BasicTouch->RefinedTouch) folded into one search
// expansion so a solver reaches the combo-discounted second step in a
// single branching step. The catalog also keeps every action as a Single,
// so the first half is still expanded on its own as well.
type ActionCombo struct {
	steps [2]craftsim.Action
	n     uint8
}

// Single builds a one-step ActionCombo.
func Single(a craftsim.Action) ActionCombo {
	return ActionCombo{steps: [2]craftsim.Action{a}, n: 1}
}

// Pair builds a two-step ActionCombo.
func Pair(first, second craftsim.Action) ActionCombo {
	return ActionCombo{steps: [2]craftsim.Action{first, second}, n: 2}
}

// Actions returns the combo's steps in execution order.
func (c ActionCombo) Actions() []craftsim.Action { return c.steps[:c.n] }

// Steps is the number of craftsim actions this combo folds (1 or 2).
func (c ActionCombo) Steps() uint8 { return c.n }

// TimeCost sums the in-game seconds of every folded step.
func (c ActionCombo) TimeCost() uint32 {
	total := uint32(0)
	for _, a := range c.Actions() {
		total += uint32(a.TimeCost())
	}
	return total
}

func (c ActionCombo) String() string {
	if c.n == 1 {
		return c.steps[0].String()
	}
	return c.steps[0].String() + "+" + c.steps[1].String()
}

// comboCatalog is every solver-level branching unit: one per Action, plus
// the three folded touch chains.
var comboCatalog = buildComboCatalog()

func buildComboCatalog() []ActionCombo {
	combos := make([]ActionCombo, 0, len(craftsim.AllActions)+3)
	for _, a := range craftsim.AllActions {
		combos = append(combos, Single(a))
	}
	combos = append(combos,
		Pair(craftsim.ActionBasicTouch, craftsim.ActionStandardTouch),
		Pair(craftsim.ActionStandardTouch, craftsim.ActionAdvancedTouch),
		Pair(craftsim.ActionBasicTouch, craftsim.ActionRefinedTouch),
	)
	return combos
}

// UseActionCombo replays every step of c against st in order, short-
// circuiting on the first failing step. Every step resolves under
// condition, matching the solver's convention of always simulating under
// ConditionNormal.
func UseActionCombo(st craftsim.State, c ActionCombo, condition craftsim.Condition, settings craftsim.Settings) (craftsim.State, error) {
	next := st
	for _, a := range c.Actions() {
		n, err := next.UseAction(a, condition, settings)
		if err != nil {
			return st, err
		}
		next = n
	}
	return next, nil
}

// progressOnlyActions is the action vocabulary FinishSolver and the
// progress_only mode of the heuristic solvers search over: synthesis
// actions and the durability/CP helpers that sustain them. No
// quality-only action ever appears here, since it cannot affect whether
// Progress completes.
var progressOnlyActions = []craftsim.Action{
	craftsim.ActionBasicSynthesis,
	craftsim.ActionCarefulSynthesis,
	craftsim.ActionGroundwork,
	craftsim.ActionPrudentSynthesis,
	craftsim.ActionIntensiveSynthesis,
	craftsim.ActionMuscleMemory,
	craftsim.ActionDelicateSynthesis,
	craftsim.ActionVeneration,
	craftsim.ActionWasteNot,
	craftsim.ActionWasteNot2,
	craftsim.ActionManipulation,
	craftsim.ActionMasterMend,
	craftsim.ActionImmaculateMend,
	craftsim.ActionObserve,
	craftsim.ActionTricksOfTheTrade,
	craftsim.ActionTrainedPerfection,
	craftsim.ActionHeartAndSoul,
}

// qualityOnlyActions is the vocabulary the fast-lower-bound warmup search
// (§4.6) restricts itself to: touch actions, ByregotsBlessing as a
// terminator, and the buffs/helpers that sustain them.
var qualityOnlyActions = []craftsim.Action{
	craftsim.ActionBasicTouch,
	craftsim.ActionStandardTouch,
	craftsim.ActionAdvancedTouch,
	craftsim.ActionPrudentTouch,
	craftsim.ActionPreparatoryTouch,
	craftsim.ActionPreciseTouch,
	craftsim.ActionRefinedTouch,
	craftsim.ActionTrainedFinesse,
	craftsim.ActionReflect,
	craftsim.ActionTrainedEye,
	craftsim.ActionByregotsBlessing,
	craftsim.ActionInnovation,
	craftsim.ActionGreatStrides,
	craftsim.ActionWasteNot,
	craftsim.ActionWasteNot2,
	craftsim.ActionManipulation,
	craftsim.ActionMasterMend,
	craftsim.ActionObserve,
	craftsim.ActionTricksOfTheTrade,
	craftsim.ActionHeartAndSoul,
	craftsim.ActionTrainedPerfection,
	craftsim.ActionQuickInnovation,
}

// ProgressOnlyCombos returns the ActionCombo vocabulary restricted to
// progress-sustaining actions, from the catalog built in buildComboCatalog.
func ProgressOnlyCombos(allowed craftsim.ActionMask) []ActionCombo {
	return filterCombos(comboCatalog, actionSet(progressOnlyActions), allowed)
}

// QualityOnlyCombos returns the ActionCombo vocabulary restricted to
// quality-sustaining actions.
func QualityOnlyCombos(allowed craftsim.ActionMask) []ActionCombo {
	return filterCombos(comboCatalog, actionSet(qualityOnlyActions), allowed)
}

// FullCombos returns every ActionCombo permitted by allowed, with no
// further restriction.
func FullCombos(allowed craftsim.ActionMask) []ActionCombo {
	return filterCombos(comboCatalog, nil, allowed)
}

func actionSet(actions []craftsim.Action) craftsim.ActionMask {
	return craftsim.ActionMaskOf(actions...)
}

func filterCombos(catalog []ActionCombo, restrict craftsim.ActionMask, allowed craftsim.ActionMask) []ActionCombo {
	out := make([]ActionCombo, 0, len(catalog))
	for _, c := range catalog {
		ok := true
		for _, a := range c.Actions() {
			if !allowed.Has(a) {
				ok = false
				break
			}
			if restrict != 0 && !restrict.Has(a) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}
