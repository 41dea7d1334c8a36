// Command raphaelsolve is a thin CLI front end over pkg/solver, mirroring
// raphael-cli's solve command. Game-data ingestion (item/recipe lookup)
// is out of scope for this module, so the quadruple that a real CLI
// would derive from a recipe database — max progress/quality and the
// crafter's base progress/quality increments — is accepted directly as
// flags instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/gitrdm/raphael-go/pkg/craftsim"
	"github.com/gitrdm/raphael-go/pkg/solver"
	"github.com/gitrdm/raphael-go/pkg/solver/solvertest"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("raphaelsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	itemID := fs.Uint("item-id", 0, "item id (accepted, not resolved: recipe lookup is out of scope)")
	craftsmanship := fs.Uint("craftsmanship", 0, "crafter craftsmanship stat (accepted, not resolved into base-progress)")
	control := fs.Uint("control", 0, "crafter control stat (accepted, not resolved into base-quality)")
	cp := fs.Uint("cp", 400, "max crafting points")
	durability := fs.Uint("durability", 60, "max durability")
	level := fs.Uint("level", 90, "crafter job level")
	progress := fs.Uint("progress", 0, "max progress (recipe difficulty); required")
	quality := fs.Uint("quality", 0, "max quality; required")
	baseProgress := fs.Uint("base-progress", 100, "progress gained per 100% efficiency")
	baseQuality := fs.Uint("base-quality", 100, "quality gained per 100% efficiency")
	manipulation := fs.Bool("manipulation", false, "allow Manipulation")
	heartAndSoul := fs.Bool("heart-and-soul", false, "allow Heart and Soul")
	quickInnovation := fs.Bool("quick-innovation", false, "allow Quick Innovation")
	adversarial := fs.Bool("adversarial", false, "assume worst-case (Poor) condition sampling")
	backload := fs.Bool("backload-progress", false, "forbid quality actions until progress-only actions begin")
	unsound := fs.Bool("unsound", false, "enable the unsound opener-restriction branch pruning heuristic")
	timeout := fs.Duration("timeout", 0, "abort the solve after this duration (0 disables the timeout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	_ = itemID
	_ = craftsmanship
	_ = control

	if *progress == 0 || *quality == 0 {
		fmt.Fprintln(stderr, "raphaelsolve: -progress and -quality are required and must be nonzero")
		return 1
	}

	allowed := craftsim.ActionMaskAll()
	if !*manipulation {
		allowed = allowed.Remove(craftsim.ActionManipulation)
	}
	if !*heartAndSoul {
		allowed = allowed.Remove(craftsim.ActionHeartAndSoul)
	}
	if !*quickInnovation {
		allowed = allowed.Remove(craftsim.ActionQuickInnovation)
	}

	settings := craftsim.Settings{
		MaxCP:            uint32(*cp),
		MaxDurability:    uint16(*durability),
		MaxProgress:      uint32(*progress),
		MaxQuality:       uint32(*quality),
		BaseProgress:     uint32(*baseProgress),
		BaseQuality:      uint32(*baseQuality),
		JobLevel:         uint8(*level),
		AllowedActions:   allowed,
		Adversarial:      *adversarial,
		BackloadProgress: *backload,
	}

	log := zerolog.New(stderr).With().Timestamp().Logger()

	opts := []solver.Option{
		solver.WithLogger(log),
		solver.WithAllowUnsoundBranchPruning(*unsound),
	}

	var cancel *solver.AtomicFlag
	if *timeout > 0 {
		cancel = solver.NewAtomicFlag()
		opts = append(opts, solver.WithCancelFlag(cancel))
		t := time.AfterFunc(*timeout, cancel.Set)
		defer t.Stop()
	}

	actions, err := solver.NewMacroSolver(settings, opts...).Solve()
	if err != nil {
		if solverErr, ok := err.(*solver.Error); ok && solverErr.Kind == solver.NoSolution {
			fmt.Fprintln(stderr, "raphaelsolve: no solution:", err)
			return 2
		}
		fmt.Fprintln(stderr, "raphaelsolve:", err)
		return 1
	}

	_, finalQuality, steps, duration, err := solvertest.ScoreQuad(actions, settings)
	if err != nil {
		fmt.Fprintln(stderr, "raphaelsolve: internal error replaying solution:", err)
		return 1
	}

	fmt.Fprintf(stdout, "quality: %d\n", finalQuality)
	fmt.Fprintf(stdout, "steps: %d\n", steps)
	fmt.Fprintf(stdout, "duration: %d\n", duration)
	for _, a := range actions {
		fmt.Fprintln(stdout, a)
	}
	return 0
}
