package craftsim

import "fmt"

// PreconditionCode distinguishes the various action-specific preconditions
// that can fail, all surfaced through the same PreconditionFailed error so
// callers can pattern-match on a stable small enum instead of string
// comparing messages.
type PreconditionCode uint8

const (
	// PreconditionInnerQuietRequired: ByregotsBlessing needs InnerQuiet > 0.
	PreconditionInnerQuietRequired PreconditionCode = iota
	// PreconditionTrainedFinesseRequiresMaxIQ: TrainedFinesse needs InnerQuiet == 10.
	PreconditionTrainedFinesseRequiresMaxIQ
	// PreconditionRequiresGoodExcellentOrHeartAndSoul: PreciseTouch and
	// IntensiveSynthesis need Condition Good/Excellent, or an active
	// Heart and Soul.
	PreconditionRequiresGoodExcellentOrHeartAndSoul
	// PreconditionAlreadyUsed: a single-use action's availability flag is
	// already spent (HeartAndSoul, QuickInnovation, TrainedPerfection).
	PreconditionAlreadyUsed
	// PreconditionQualityActionsForbidden: backload_progress has disabled
	// quality-increasing actions for the remainder of the craft.
	PreconditionQualityActionsForbidden
)

func (c PreconditionCode) String() string {
	switch c {
	case PreconditionInnerQuietRequired:
		return "InnerQuietRequired"
	case PreconditionTrainedFinesseRequiresMaxIQ:
		return "TrainedFinesseRequiresMaxIQ"
	case PreconditionRequiresGoodExcellentOrHeartAndSoul:
		return "RequiresGoodExcellentOrHeartAndSoul"
	case PreconditionAlreadyUsed:
		return "AlreadyUsed"
	case PreconditionQualityActionsForbidden:
		return "QualityActionsForbidden"
	default:
		return "Unknown"
	}
}

// SimError is the error type every UseAction failure returns. It carries
// enough structure for a search loop to discriminate branch-prune causes
// without parsing strings, while still formatting as a normal Go error.
type SimError struct {
	Kind       SimErrorKind
	Action     Action
	Precond    PreconditionCode // only meaningful when Kind == PreconditionFailed
	hasPrecond bool
}

// SimErrorKind enumerates the simulator error taxonomy from the top-level
// error handling design: branch-local failures the search silently prunes.
type SimErrorKind uint8

const (
	LevelTooLow SimErrorKind = iota
	ActionDisabled
	StateFinal
	NotEnoughCp
	PreconditionFailed
	ComboMismatch
)

// Error lets a bare SimErrorKind serve as an errors.Is target, e.g.
// errors.Is(err, craftsim.NotEnoughCp).
func (k SimErrorKind) Error() string { return k.String() }

func (k SimErrorKind) String() string {
	switch k {
	case LevelTooLow:
		return "LevelTooLow"
	case ActionDisabled:
		return "ActionDisabled"
	case StateFinal:
		return "StateFinal"
	case NotEnoughCp:
		return "NotEnoughCp"
	case PreconditionFailed:
		return "PreconditionFailed"
	case ComboMismatch:
		return "ComboMismatch"
	default:
		return "Unknown"
	}
}

func (e *SimError) Error() string {
	if e.Kind == PreconditionFailed && e.hasPrecond {
		return fmt.Sprintf("UseAction: %s: %s (%s)", e.Action, e.Kind, e.Precond)
	}
	return fmt.Sprintf("UseAction: %s: %s", e.Action, e.Kind)
}

func newSimError(a Action, kind SimErrorKind) error {
	return &SimError{Kind: kind, Action: a}
}

func newPreconditionError(a Action, code PreconditionCode) error {
	return &SimError{Kind: PreconditionFailed, Action: a, Precond: code, hasPrecond: true}
}

// Is implements errors.Is against a bare SimErrorKind sentinel, so callers
// can write `errors.Is(err, craftsim.NotEnoughCp)` without a type switch.
func (e *SimError) Is(target error) bool {
	if k, ok := target.(SimErrorKind); ok {
		return e.Kind == k
	}
	return false
}
