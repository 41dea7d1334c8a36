package craftsim

// Action enumerates every crafting operation the simulator knows about.
// Ordinals are stable (persisted into ActionMask bitmasks) and must never
// be reordered; append new actions at the end.
type Action uint8

const (
	ActionBasicSynthesis Action = iota
	ActionBasicTouch
	ActionMasterMend
	ActionObserve
	ActionTricksOfTheTrade
	ActionWasteNot
	ActionVeneration
	ActionStandardTouch
	ActionGreatStrides
	ActionInnovation
	ActionWasteNot2
	ActionByregotsBlessing
	ActionPreciseTouch
	ActionMuscleMemory
	ActionCarefulSynthesis
	ActionManipulation
	ActionPrudentTouch
	ActionTrainedEye
	ActionReflect
	ActionPreparatoryTouch
	ActionGroundwork
	ActionDelicateSynthesis
	ActionIntensiveSynthesis
	ActionAdvancedTouch
	ActionHeartAndSoul
	ActionPrudentSynthesis
	ActionTrainedFinesse
	ActionRefinedTouch
	ActionImmaculateMend
	ActionTrainedPerfection
	ActionQuickInnovation

	numActions
)

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UnknownAction"
}

var actionNames = map[Action]string{
	ActionBasicSynthesis:     "BasicSynthesis",
	ActionBasicTouch:         "BasicTouch",
	ActionMasterMend:         "MasterMend",
	ActionObserve:            "Observe",
	ActionTricksOfTheTrade:   "TricksOfTheTrade",
	ActionWasteNot:           "WasteNot",
	ActionVeneration:         "Veneration",
	ActionStandardTouch:      "StandardTouch",
	ActionGreatStrides:       "GreatStrides",
	ActionInnovation:         "Innovation",
	ActionWasteNot2:          "WasteNot2",
	ActionByregotsBlessing:   "ByregotsBlessing",
	ActionPreciseTouch:       "PreciseTouch",
	ActionMuscleMemory:       "MuscleMemory",
	ActionCarefulSynthesis:   "CarefulSynthesis",
	ActionManipulation:       "Manipulation",
	ActionPrudentTouch:       "PrudentTouch",
	ActionTrainedEye:         "TrainedEye",
	ActionReflect:            "Reflect",
	ActionPreparatoryTouch:   "PreparatoryTouch",
	ActionGroundwork:         "Groundwork",
	ActionDelicateSynthesis:  "DelicateSynthesis",
	ActionIntensiveSynthesis: "IntensiveSynthesis",
	ActionAdvancedTouch:      "AdvancedTouch",
	ActionHeartAndSoul:       "HeartAndSoul",
	ActionPrudentSynthesis:   "PrudentSynthesis",
	ActionTrainedFinesse:     "TrainedFinesse",
	ActionRefinedTouch:       "RefinedTouch",
	ActionImmaculateMend:     "ImmaculateMend",
	ActionTrainedPerfection:  "TrainedPerfection",
	ActionQuickInnovation:    "QuickInnovation",
}

// AllActions lists every Action in canonical enumeration order.
var AllActions = func() []Action {
	actions := make([]Action, 0, numActions)
	for a := Action(0); a < numActions; a++ {
		actions = append(actions, a)
	}
	return actions
}()

// attrs holds the compile-time-constant attributes of an action: how much
// it costs, what it requires, and how it is scheduled. Every simulator
// dispatch reduces to a lookup into this table plus the action's
// hand-written effect transition in state.go.
type attrs struct {
	level        uint8
	cpCost       uint16
	durCost      uint16
	tickEffects  bool
	steps        uint8
	timeCost     uint8
	comboCpCost  uint16 // reduced CP cost when the combo precondition is met (0 = no discount)
	requiresMask ActionMask
}

var actionAttrs = [numActions]attrs{
	ActionBasicSynthesis:     {level: 1, cpCost: 0, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionBasicTouch:         {level: 5, cpCost: 18, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionMasterMend:         {level: 7, cpCost: 88, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionObserve:            {level: 13, cpCost: 7, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionTricksOfTheTrade:   {level: 13, cpCost: 0, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionWasteNot:           {level: 15, cpCost: 56, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionVeneration:         {level: 15, cpCost: 18, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionStandardTouch:      {level: 18, cpCost: 32, durCost: 10, tickEffects: true, steps: 1, timeCost: 3, comboCpCost: 18},
	ActionGreatStrides:       {level: 21, cpCost: 32, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionInnovation:         {level: 26, cpCost: 18, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionWasteNot2:          {level: 47, cpCost: 98, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionByregotsBlessing:   {level: 50, cpCost: 24, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionPreciseTouch:       {level: 53, cpCost: 18, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionMuscleMemory:       {level: 54, cpCost: 6, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionCarefulSynthesis:   {level: 62, cpCost: 7, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionManipulation:       {level: 65, cpCost: 96, durCost: 0, tickEffects: true, steps: 1, timeCost: 2},
	ActionPrudentTouch:       {level: 66, cpCost: 25, durCost: 5, tickEffects: true, steps: 1, timeCost: 3},
	ActionTrainedEye:         {level: 80, cpCost: 250, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionReflect:            {level: 69, cpCost: 6, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionPreparatoryTouch:   {level: 71, cpCost: 40, durCost: 20, tickEffects: true, steps: 1, timeCost: 3},
	ActionGroundwork:         {level: 72, cpCost: 18, durCost: 20, tickEffects: true, steps: 1, timeCost: 3},
	ActionDelicateSynthesis:  {level: 76, cpCost: 32, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionIntensiveSynthesis: {level: 78, cpCost: 6, durCost: 10, tickEffects: true, steps: 1, timeCost: 3},
	ActionAdvancedTouch:      {level: 84, cpCost: 46, durCost: 10, tickEffects: true, steps: 1, timeCost: 3, comboCpCost: 18},
	ActionHeartAndSoul:       {level: 86, cpCost: 0, durCost: 0, tickEffects: false, steps: 1, timeCost: 1},
	ActionPrudentSynthesis:   {level: 88, cpCost: 18, durCost: 5, tickEffects: true, steps: 1, timeCost: 3},
	ActionTrainedFinesse:     {level: 90, cpCost: 32, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionRefinedTouch:       {level: 92, cpCost: 32, durCost: 10, tickEffects: true, steps: 1, timeCost: 3, comboCpCost: 24},
	ActionImmaculateMend:     {level: 98, cpCost: 112, durCost: 0, tickEffects: true, steps: 1, timeCost: 3},
	ActionTrainedPerfection:  {level: 100, cpCost: 0, durCost: 0, tickEffects: false, steps: 1, timeCost: 1},
	ActionQuickInnovation:    {level: 96, cpCost: 0, durCost: 0, tickEffects: false, steps: 1, timeCost: 1},
}

// LevelRequirement is the minimum job level needed to use the action.
func (a Action) LevelRequirement() uint8 { return actionAttrs[a].level }

// BaseCPCost is the action's CP cost before Pliant or combo discounts.
func (a Action) BaseCPCost() uint16 { return actionAttrs[a].cpCost }

// BaseDurabilityCost is the action's durability cost before WasteNot,
// TrainedPerfection or Sturdy apply.
func (a Action) BaseDurabilityCost() uint16 { return actionAttrs[a].durCost }

// TicksEffects reports whether using this action advances timed effects
// and updates the touch-combo window. HeartAndSoul, QuickInnovation and
// TrainedPerfection are "free" actions that do not consume a step of
// effect duration.
func (a Action) TicksEffects() bool { return actionAttrs[a].tickEffects }

// Steps is the number of simulator turns this action consumes (always 1;
// ActionCombo in package solver is what folds two Actions into one search
// expansion).
func (a Action) Steps() uint8 { return actionAttrs[a].steps }

// TimeCost is the in-game seconds this action takes to execute.
func (a Action) TimeCost() uint8 { return actionAttrs[a].timeCost }

// ComboCPCost returns the discounted CP cost applied when the action's
// combo precondition is satisfied, and whether a discount exists at all.
func (a Action) ComboCPCost() (cost uint16, ok bool) {
	c := actionAttrs[a].comboCpCost
	return c, c != 0
}
