package craftsim

// State is the simulator's one-sided view of an in-progress craft. It is
// small, comparable and hashable, and is never mutated in place: UseAction
// always returns a new value.
type State struct {
	CP                int32
	Durability        int16
	Progress          uint32
	Quality           uint32
	UnreliableQuality uint32
	Effects           Effects
}

// NewState returns the initial State for a fresh craft under s.
func NewState(s Settings) State {
	return State{
		CP:         int32(s.MaxCP),
		Durability: int16(s.MaxDurability),
		Effects:    InitialEffects(s),
	}
}

// IsCompleted reports whether Progress has reached MaxProgress.
func (st State) IsCompleted(s Settings) bool {
	return st.Progress >= s.MaxProgress
}

// IsFailed reports whether Durability has been exhausted without
// completing Progress.
func (st State) IsFailed(s Settings) bool {
	return !st.IsCompleted(s) && st.Durability <= 0
}

// IsTerminal reports whether no further action may be taken.
func (st State) IsTerminal(s Settings) bool {
	return st.IsCompleted(s) || st.IsFailed(s)
}

// formula holds the flat action-resolution attributes not already covered
// by action.go's cost table: which resources an action moves, and by what
// base efficiency.
type formula struct {
	progressEfficiency uint32
	qualityEfficiency  uint32
	cpDelta            int32 // TricksOfTheTrade: restores CP instead of spending progress/quality
	durabilityRestore  uint16
	setWasteNot        uint8
	setVeneration      uint8
	setInnovation      uint8
	setGreatStrides    uint8
	setManipulation    uint8
	setMuscleMemory    uint8
	requiresOpener     bool
	requiresGoodOrHAS  bool
	requiresMaxIQ      bool
	requiresIQ         bool
	isByregots         bool
	isImmaculateMend   bool
	resetsInnerQuiet   bool
	reflectBonus       bool
}

var formulas = [numActions]formula{
	ActionBasicSynthesis:     {progressEfficiency: 100},
	ActionBasicTouch:         {qualityEfficiency: 100},
	ActionMasterMend:         {durabilityRestore: 30},
	ActionObserve:            {},
	ActionTricksOfTheTrade:   {cpDelta: 20},
	ActionWasteNot:           {setWasteNot: 4},
	ActionVeneration:         {setVeneration: 4},
	ActionStandardTouch:      {qualityEfficiency: 125},
	ActionGreatStrides:       {setGreatStrides: 3},
	ActionInnovation:         {setInnovation: 4},
	ActionWasteNot2:          {setWasteNot: 8},
	ActionByregotsBlessing:   {isByregots: true, requiresIQ: true, resetsInnerQuiet: true},
	ActionPreciseTouch:       {qualityEfficiency: 150, requiresGoodOrHAS: true},
	ActionMuscleMemory:       {progressEfficiency: 300, setMuscleMemory: 5, requiresOpener: true},
	ActionCarefulSynthesis:   {progressEfficiency: 150},
	ActionManipulation:       {setManipulation: 8},
	ActionPrudentTouch:       {qualityEfficiency: 100},
	ActionTrainedEye:         {qualityEfficiency: 10000, requiresOpener: true},
	ActionReflect:            {qualityEfficiency: 100, requiresOpener: true, reflectBonus: true},
	ActionPreparatoryTouch:   {qualityEfficiency: 200},
	ActionGroundwork:         {progressEfficiency: 300},
	ActionDelicateSynthesis:  {progressEfficiency: 100, qualityEfficiency: 100},
	ActionIntensiveSynthesis: {progressEfficiency: 200, requiresGoodOrHAS: true},
	ActionAdvancedTouch:      {qualityEfficiency: 150},
	ActionHeartAndSoul:       {},
	ActionPrudentSynthesis:   {progressEfficiency: 180},
	ActionTrainedFinesse:     {qualityEfficiency: 100, requiresMaxIQ: true},
	ActionRefinedTouch:       {qualityEfficiency: 100},
	ActionImmaculateMend:     {isImmaculateMend: true},
	ActionTrainedPerfection:  {},
	ActionQuickInnovation:    {setInnovation: 1},
}

// comboPredecessor maps a combo-discounted action to the Combo value it
// must see to earn the discount.
var comboPredecessor = map[Action]Combo{
	ActionStandardTouch: ComboBasicTouch,
	ActionAdvancedTouch: ComboStandardTouch,
	ActionRefinedTouch:  ComboBasicTouch,
}

// comboOutgoing maps an action to the Combo value it leaves behind for the
// next step, for actions that participate in the touch-combo chain.
var comboOutgoing = map[Action]Combo{
	ActionBasicTouch:    ComboBasicTouch,
	ActionStandardTouch: ComboStandardTouch,
}

func conditionProgressMultiplier(c Condition) (num, den uint32) {
	switch c {
	case ConditionMalleable:
		return 3, 2
	default:
		return 1, 1
	}
}

func conditionQualityMultiplier(c Condition) (num, den uint32) {
	switch c {
	case ConditionGood, ConditionSturdy:
		return 3, 2
	case ConditionExcellent:
		return 4, 1
	case ConditionPoor:
		return 1, 2
	default:
		return 1, 1
	}
}

func applyMul(base uint32, num, den uint32) uint32 {
	return (base * num) / den
}

// UseAction resolves a single action against st under condition and
// settings, returning the resulting state or the reason the action could
// not be applied. Failed preconditions never mutate st: the receiver is
// passed by value and only a fresh State is ever returned.
func UseAction(st State, a Action, condition Condition, settings Settings) (State, error) {
	if settings.JobLevel < a.LevelRequirement() {
		return st, newSimError(a, LevelTooLow)
	}
	if !settings.AllowedActions.Has(a) {
		return st, newSimError(a, ActionDisabled)
	}
	if st.IsTerminal(settings) {
		return st, newSimError(a, StateFinal)
	}

	f := formulas[a]

	if f.requiresOpener && st.Effects.Combo() != ComboSynthesisBegin {
		return st, &SimError{Kind: ComboMismatch, Action: a}
	}
	if f.requiresIQ && st.Effects.InnerQuiet() == 0 {
		return st, newPreconditionError(a, PreconditionInnerQuietRequired)
	}
	if f.requiresMaxIQ && st.Effects.InnerQuiet() != 10 {
		return st, newPreconditionError(a, PreconditionTrainedFinesseRequiresMaxIQ)
	}
	if f.requiresGoodOrHAS {
		ok := condition == ConditionGood || condition == ConditionExcellent || st.Effects.HeartAndSoulActive()
		if !ok {
			return st, newPreconditionError(a, PreconditionRequiresGoodExcellentOrHeartAndSoul)
		}
	}
	switch a {
	case ActionHeartAndSoul:
		if !st.Effects.HeartAndSoulAvailable() {
			return st, newPreconditionError(a, PreconditionAlreadyUsed)
		}
	case ActionQuickInnovation:
		if !st.Effects.QuickInnovationAvailable() {
			return st, newPreconditionError(a, PreconditionAlreadyUsed)
		}
	case ActionTrainedPerfection:
		if !st.Effects.TrainedPerfectionAvailable() {
			return st, newPreconditionError(a, PreconditionAlreadyUsed)
		}
	}
	if f.qualityEfficiency > 0 && !st.Effects.QualityActionsAllowed() {
		return st, newPreconditionError(a, PreconditionQualityActionsForbidden)
	}

	cpCost := int32(a.BaseCPCost())
	if discount, ok := a.ComboCPCost(); ok {
		if want, isCombo := comboPredecessor[a]; isCombo && st.Effects.Combo() == want {
			cpCost = int32(discount)
		}
	}
	if condition == ConditionPliant {
		cpCost /= 2
	}
	if cpCost > st.CP {
		return st, newSimError(a, NotEnoughCp)
	}

	next := st
	hadHeartAndSoul := next.Effects.HeartAndSoulActive()

	switch a {
	case ActionHeartAndSoul:
		next.Effects.SetHeartAndSoulAvailable(false)
		next.Effects.SetHeartAndSoulActive(true)
	case ActionTrainedPerfection:
		next.Effects.SetTrainedPerfectionAvailable(false)
		next.Effects.SetTrainedPerfectionActive(true)
	case ActionQuickInnovation:
		next.Effects.SetQuickInnovationAvailable(false)
	}

	durCost := uint32(a.BaseDurabilityCost())
	if durCost != 0 {
		if next.Effects.TrainedPerfectionActive() {
			durCost = 0
		} else {
			if next.Effects.WasteNot() != 0 {
				durCost /= 2
			}
			if condition == ConditionSturdy {
				durCost /= 2
			}
		}
		next.Durability -= int16(durCost)
		next.Effects.SetTrainedPerfectionActive(false)
	}

	next.CP -= cpCost
	if f.cpDelta != 0 {
		next.CP += f.cpDelta
		if next.CP > int32(settings.MaxCP) {
			next.CP = int32(settings.MaxCP)
		}
	}

	if f.progressEfficiency > 0 {
		num, den := conditionProgressMultiplier(condition)
		gained := applyMul(settings.BaseProgress*f.progressEfficiency/100*next.Effects.ProgressModifier()/100, num, den)
		next.Progress += gained
		if gained > 0 {
			next.Effects.SetMuscleMemory(0)
		}
	}

	if f.isByregots {
		iq := uint32(st.Effects.InnerQuiet())
		f.qualityEfficiency = 100 + 20*iq
	}

	qualityGained := uint32(0)
	if f.qualityEfficiency > 0 {
		qNum, qDen := conditionQualityMultiplier(condition)
		rawModified := settings.BaseQuality * f.qualityEfficiency / 100 * next.Effects.QualityModifier() / 100
		gained := applyMul(rawModified, qNum, qDen)
		qualityGained = gained
		poorNum, poorDen := conditionQualityMultiplier(ConditionPoor)
		poorGained := applyMul(rawModified, poorNum, poorDen)

		if settings.Adversarial {
			guard := next.Effects.Guard()
			adversarialGained := poorGained
			if guard != 0 {
				adversarialGained = gained
			}
			switch {
			case guard == 0 && adversarialGained == 0:
				next.UnreliableQuality = 0
			case guard != 0 && adversarialGained != 0:
				next.Quality = clampAdd(next.Quality, adversarialGained, settings.MaxQuality)
				next.UnreliableQuality = 0
			case adversarialGained != 0:
				diff := gained - adversarialGained
				credited := adversarialGained + min(next.UnreliableQuality, diff)
				next.Quality = clampAdd(next.Quality, credited, settings.MaxQuality)
				next.UnreliableQuality = satSub(diff, next.UnreliableQuality)
			}
		} else {
			next.Quality = clampAdd(next.Quality, gained, settings.MaxQuality)
		}

		if gained > 0 && settings.JobLevel >= 11 {
			next.Effects.SetGreatStrides(0)
			iq := next.Effects.InnerQuiet()
			if iq < 10 {
				next.Effects.SetInnerQuiet(iq + 1)
			}
		}
	}

	if f.resetsInnerQuiet {
		next.Effects.SetInnerQuiet(0)
	}
	if f.reflectBonus {
		iq := next.Effects.InnerQuiet()
		if iq < 8 {
			next.Effects.SetInnerQuiet(iq + 2)
		} else {
			next.Effects.SetInnerQuiet(10)
		}
	}
	if f.durabilityRestore > 0 {
		next.Durability = clampAddI16(next.Durability, int16(f.durabilityRestore), int16(settings.MaxDurability))
	}
	if f.isImmaculateMend {
		next.Durability = int16(settings.MaxDurability)
	}

	if !next.IsTerminal(settings) && a.TicksEffects() {
		if next.Effects.Manipulation() != 0 {
			next.Durability = clampAddI16(next.Durability, 5, int16(settings.MaxDurability))
		}
		next.Effects = next.Effects.TickDown()
	}

	if !next.IsTerminal(settings) && settings.Adversarial && qualityGained > 0 {
		next.Effects.SetGuard(1)
	}

	if hadHeartAndSoul && a != ActionHeartAndSoul {
		next.Effects.SetHeartAndSoulActive(false)
	}

	if f.setWasteNot > 0 {
		dur := f.setWasteNot
		if condition == ConditionPliant {
			dur += 2
		}
		next.Effects.SetWasteNot(dur)
	}
	if f.setVeneration > 0 {
		dur := f.setVeneration
		if condition == ConditionPliant {
			dur += 2
		}
		next.Effects.SetVeneration(dur)
	}
	if f.setInnovation > 0 {
		dur := f.setInnovation
		if condition == ConditionPliant {
			dur += 2
		}
		next.Effects.SetInnovation(dur)
	}
	if f.setGreatStrides > 0 {
		next.Effects.SetGreatStrides(f.setGreatStrides)
	}
	if f.setManipulation > 0 {
		dur := f.setManipulation
		if condition == ConditionPliant {
			dur += 2
		}
		next.Effects.SetManipulation(dur)
	}
	if f.setMuscleMemory > 0 {
		next.Effects.SetMuscleMemory(f.setMuscleMemory)
	}

	if a.TicksEffects() {
		if out, ok := comboOutgoing[a]; ok {
			next.Effects.SetCombo(out)
		} else {
			next.Effects.SetCombo(ComboNone)
		}
	}

	return next, nil
}

// UseAction is also exposed as a State method so call sites read as
// state.UseAction(...) per the package doc example.
func (st State) UseAction(a Action, condition Condition, settings Settings) (State, error) {
	return UseAction(st, a, condition, settings)
}

func clampAdd(v, delta, max uint32) uint32 {
	sum := v + delta
	if sum > max {
		return max
	}
	return sum
}

// satSub returns v - delta, floored at 0 instead of wrapping.
func satSub(v, delta uint32) uint32 {
	if delta >= v {
		return 0
	}
	return v - delta
}

func clampAddI16(v, delta, max int16) int16 {
	sum := v + delta
	if sum > max {
		return max
	}
	return sum
}
