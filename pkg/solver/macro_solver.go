package solver

import (
	"context"
	"io"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/gitrdm/raphael-go/internal/shardpool"
	"github.com/gitrdm/raphael-go/pkg/craftsim"
)

// Option configures a MacroSolver at construction, following the
// functional-options idiom used throughout this codebase for optional
// knobs: the zero value of every field is a sane default, so a caller
// that wants nothing special can construct with no options at all.
type Option func(*macroConfig)

type macroConfig struct {
	onIntermediateSolution func([]craftsim.Action)
	onProgress             func(uint64)
	cancel                 *AtomicFlag
	allowUnsoundPruning    bool
	log                    zerolog.Logger
}

// WithOnIntermediateSolution registers a callback invoked every time the
// search finds a strictly better completing sequence than any seen so
// far. The callback must not block and should be cheap: the search holds
// no lock while invoking it, but may invoke it frequently.
func WithOnIntermediateSolution(fn func([]craftsim.Action)) Option {
	return func(c *macroConfig) { c.onIntermediateSolution = fn }
}

// WithOnProgress registers a callback invoked periodically with an opaque
// monotone node-expansion counter, for callers that want a progress
// indicator.
func WithOnProgress(fn func(uint64)) Option {
	return func(c *macroConfig) { c.onProgress = fn }
}

// WithCancelFlag wires a caller-owned AtomicFlag as the solve's
// cancellation token. Without this option the solve is never cancellable.
func WithCancelFlag(f *AtomicFlag) Option {
	return func(c *macroConfig) { c.cancel = f }
}

// WithAllowUnsoundBranchPruning enables the opener-restriction heuristic:
// from the very first action, only a short list of historically-useful
// openers is explored rather than the full vocabulary. This can miss the
// true optimum in unusual Settings and is off by default.
func WithAllowUnsoundBranchPruning(allow bool) Option {
	return func(c *macroConfig) { c.allowUnsoundPruning = allow }
}

// WithLogger overrides the zerolog.Logger the solver's ScopedTimers write
// to. The default is a disabled logger (no output).
func WithLogger(log zerolog.Logger) Option {
	return func(c *macroConfig) { c.log = log }
}

// MacroSolver is the outer best-first search: it interleaves FinishSolver,
// QualityUpperBoundSolver and StepLowerBoundSolver over the full simulator
// state space to find the action sequence maximizing final Quality,
// preferring shorter and faster macros among equal-quality solutions.
type MacroSolver struct {
	settings craftsim.Settings
	finish   *FinishSolver
	qub      *QualityUpperBoundSolver
	stepLb   *StepLowerBoundSolver
	cfg      macroConfig
}

// NewMacroSolver constructs the three heuristic solvers for settings and
// returns a ready-to-run MacroSolver.
func NewMacroSolver(settings craftsim.Settings, opts ...Option) *MacroSolver {
	cfg := macroConfig{log: zerolog.New(io.Discard)}
	for _, o := range opts {
		o(&cfg)
	}
	return &MacroSolver{
		settings: settings,
		finish:   NewFinishSolver(settings),
		qub:      NewQualityUpperBoundSolver(settings),
		stepLb:   NewStepLowerBoundSolver(settings),
		cfg:      cfg,
	}
}

type nodeMeta struct {
	state    craftsim.State
	steps    uint32
	duration uint32
}

// Solve runs the search to completion and returns the best completing
// action sequence, or an error: ErrNoSolution if Progress is unreachable
// under any sequence, or an Interrupted error if the cancellation flag
// was observed set. The search also streams every strict improvement
// through WithOnIntermediateSolution as it is found.
func (m *MacroSolver) Solve() ([]craftsim.Action, error) {
	shardTimer := newScopedTimer(m.cfg.log, "shard_warmup")
	m.warmShards()
	shardTimer.Stop()

	warmupTimer := newScopedTimer(m.cfg.log, "fast_lower_bound")
	bestFoundQuality, err := m.fastLowerBound()
	warmupTimer.Stop()
	if err != nil {
		return nil, err
	}

	searchTimer := newScopedTimer(m.cfg.log, "search")
	defer searchTimer.Stop()

	arena := NewBacktracking[ActionCombo]()
	front := NewInsertionFront()
	queue := newSearchQueue()
	meta := make(map[int]nodeMeta)

	initial := craftsim.NewState(m.settings)
	root := arena.Push(ActionCombo{}, NoParent)
	meta[root] = nodeMeta{state: initial}
	queue.PushNode(MaxSearchScore, root)

	if !m.finish.CanFinish(initial) {
		return nil, ErrNoSolution
	}

	var bestSeq []craftsim.Action
	var expanded uint64

	for {
		if m.cfg.cancel != nil && m.cfg.cancel.IsSet() {
			return nil, ErrInterrupted
		}
		nodeIdx, ok := queue.PopBest()
		if !ok {
			break
		}
		expanded++
		if m.cfg.onProgress != nil && expanded%64 == 0 {
			m.cfg.onProgress(expanded)
		}

		nm := meta[nodeIdx]
		for _, combo := range m.comboVocabulary(nm.state) {
			if !m.shouldUseAction(nm.state, combo) {
				continue
			}
			child, err := UseActionCombo(nm.state, combo, craftsim.ConditionNormal, m.settings)
			if err != nil {
				continue
			}
			if !m.finish.CanFinish(child) {
				continue
			}

			key := insertionKey{progress: child.Progress, combo: child.Effects.Combo(), specialQ: child.Effects.SpecialQualityState()}
			value := insertionValue{cp: child.CP, durability: child.Durability, quality: child.Quality, unreliableQuality: child.UnreliableQuality, effects: child.Effects}
			if !front.Insert(key, value) {
				continue
			}

			childSteps := nm.steps + uint32(combo.Steps())
			childDuration := nm.duration + combo.TimeCost()
			qub := m.qub.QualityUpperBound(child)
			stepsLb := m.stepLb.StepLowerBound(child, 1, false)
			if m.settings.BackloadProgress && !child.Effects.QualityActionsAllowed() && child.Progress == 0 {
				stepsLb = 255
			}
			score := SearchScore{
				QualityUpperBound:  qub,
				StepsLowerBound:    stepsLb,
				DurationLowerBound: uint32(stepsLb) * 3,
				CurrentSteps:       childSteps,
				CurrentDuration:    childDuration,
			}

			childIdx := arena.Push(combo, nodeIdx)
			meta[childIdx] = nodeMeta{state: child, steps: childSteps, duration: childDuration}
			queue.PushNode(score, childIdx)

			if child.IsCompleted(m.settings) && (bestSeq == nil || child.Quality > bestFoundQuality) {
				bestFoundQuality = child.Quality
				bestSeq = flattenCombos(arena.Path(childIdx))
				if m.cfg.onIntermediateSolution != nil {
					m.cfg.onIntermediateSolution(bestSeq)
				}
			}
		}
	}

	if bestSeq == nil {
		return nil, ErrNoSolution
	}
	return bestSeq, nil
}

// warmShards precomputes FinishSolver and QualityUpperBoundSolver memo
// entries for every state one combo away from the opener, fanning the
// FinishSolver DFS work for each out across a fixed worker pool so the
// (typically wide) branching factor at the very start of the search is
// paid for in parallel rather than serially during the first batch of
// the main loop. The QualityUpperBoundSolver shards only collect the
// reduced keys in parallel; its DFS for them runs serially in MergeInto.
func (m *MacroSolver) warmShards() {
	initial := craftsim.NewState(m.settings)
	combos := m.comboVocabulary(initial)
	children := make([]craftsim.State, 0, len(combos))
	for _, c := range combos {
		if !m.shouldUseAction(initial, c) {
			continue
		}
		child, err := UseActionCombo(initial, c, craftsim.ConditionNormal, m.settings)
		if err != nil {
			continue
		}
		if child.IsTerminal(m.settings) {
			continue
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return
	}

	m.cfg.log.Debug().
		Uint32("muscle_memory_utilization", maximumMuscleMemoryUtilization(m.settings)).
		Int("children", len(children)).
		Msg("warming shards")

	workers := runtime.NumCPU()
	ctx := context.Background()

	_ = shardpool.RunShards(ctx, workers, children,
		func() *FinishSolverShard { return NewFinishSolverShard(m.finish) },
		func(sh *FinishSolverShard, st craftsim.State) { sh.Warm(st) },
		func(sh *FinishSolverShard) { sh.MergeInto(m.finish) },
	)
	_ = shardpool.RunShards(ctx, workers, children,
		func() *QualityUbSolverShard { return NewQualityUbSolverShard(m.qub) },
		func(sh *QualityUbSolverShard, st craftsim.State) { sh.Warm(st) },
		func(sh *QualityUbSolverShard) { sh.MergeInto(m.qub) },
	)
}

// fastLowerBound runs a cheap, single-threaded best-first search over
// only quality-sustaining actions and returns the highest Quality any
// state it reaches attains. Those states need not complete Progress, so
// the value is not the quality of a completing macro. Solve does not
// prune against it: the first completing sequence Solve finds is
// recorded whatever its quality, and later ones only when they beat it.
func (m *MacroSolver) fastLowerBound() (uint32, error) {
	combos := QualityOnlyCombos(m.settings.AllowedActions)
	arena := NewBacktracking[ActionCombo]()
	queue := newSearchQueue()
	states := make(map[int]craftsim.State)

	initial := craftsim.NewState(m.settings)
	root := arena.Push(ActionCombo{}, NoParent)
	states[root] = initial
	queue.PushNode(MaxSearchScore, root)

	const expansionCap = 4000
	best := uint32(0)

	for i := 0; i < expansionCap; i++ {
		if m.cfg.cancel != nil && m.cfg.cancel.IsSet() {
			return best, ErrInterrupted
		}
		idx, ok := queue.PopBest()
		if !ok {
			break
		}
		state := states[idx]
		for _, c := range combos {
			child, err := UseActionCombo(state, c, m.quickWarmupCondition(c), m.settings)
			if err != nil {
				continue
			}
			if child.Quality > best {
				best = child.Quality
			}
			if child.IsTerminal(m.settings) {
				continue
			}
			qub := m.qub.QualityUpperBound(child)
			childIdx := arena.Push(c, idx)
			states[childIdx] = child
			queue.PushNode(SearchScore{QualityUpperBound: qub}, childIdx)
		}
	}
	return best, nil
}

// quickWarmupCondition is always Normal: the warmup search shares the
// solver-wide convention of simulating deterministically.
func (m *MacroSolver) quickWarmupCondition(ActionCombo) craftsim.Condition {
	return craftsim.ConditionNormal
}

// comboVocabulary returns the ActionCombo set to branch on from state:
// the full vocabulary, or the narrower
// progress-only set once Quality has already been maxed and there is
// nothing left to gain by further quality actions.
func (m *MacroSolver) comboVocabulary(state craftsim.State) []ActionCombo {
	if state.Quality >= m.settings.MaxQuality {
		return ProgressOnlyCombos(m.settings.AllowedActions)
	}
	return FullCombos(m.settings.AllowedActions)
}

// shouldUseAction rejects branches that can never be worth taking: re-
// applying a still-active long-lived buff, buying WasteNot when
// TrainedPerfection is still available to absorb the next durability
// cost for free, and (when unsound branch pruning is enabled) using
// anything but a short list of known-good openers as the first action.
func (m *MacroSolver) shouldUseAction(state craftsim.State, combo ActionCombo) bool {
	if m.cfg.allowUnsoundPruning && state.Effects.Combo() == craftsim.ComboSynthesisBegin {
		switch combo.Actions()[0] {
		case craftsim.ActionMuscleMemory, craftsim.ActionReflect, craftsim.ActionTrainedEye,
			craftsim.ActionBasicSynthesis, craftsim.ActionBasicTouch:
		default:
			return false
		}
	}
	for _, a := range combo.Actions() {
		switch a {
		case craftsim.ActionWasteNot, craftsim.ActionWasteNot2:
			if state.Effects.WasteNot() != 0 || state.Effects.TrainedPerfectionAvailable() {
				return false
			}
			remainingDurabilityActions := uint32(state.Durability) / 10
			if !wasteNotWorthUsing(m.settings, manipulationDurabilityPrice, a, remainingDurabilityActions) {
				return false
			}
		case craftsim.ActionVeneration:
			if state.Effects.Veneration() != 0 {
				return false
			}
		case craftsim.ActionInnovation:
			if state.Effects.Innovation() != 0 {
				return false
			}
		case craftsim.ActionGreatStrides:
			if state.Effects.GreatStrides() != 0 {
				return false
			}
		case craftsim.ActionManipulation:
			if state.Effects.Manipulation() != 0 {
				return false
			}
		}
	}
	return true
}

// manipulationDurabilityPrice is the CP cost of recovering 5 durability
// through Manipulation (96 CP restores 5 durability per tick across its
// 8-tick duration, rounded up), the same per-5-durability unit
// durabilityPrice uses. It is the baseline wasteNotWorthUsing compares
// WasteNot's own cost against.
var manipulationDurabilityPrice = ceilDiv(uint32(craftsim.ActionManipulation.BaseCPCost())*5, 40)

func flattenCombos(combos []ActionCombo) []craftsim.Action {
	actions := make([]craftsim.Action, 0, len(combos))
	for _, c := range combos {
		actions = append(actions, c.Actions()...)
	}
	return actions
}
