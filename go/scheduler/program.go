package scheduler

import (
	"github.com/navicore/cem-sub000/go/cem"
	"github.com/navicore/cem-sub000/go/strand"
)

// RunProgram is the runtime-emitted main of §4.G: it initializes the
// scheduler, spawns entry as the entry strand (id 1) with an empty value
// stack, runs the scheduler to completion, prints the final stack for
// debugging, and tears the scheduler down. The compiler's emitted main is
// exactly a call to this with cem_main as the entry function.
func RunProgram(entry strand.EntryFunc) *cem.Cell {
	sch, err := Init()
	if err != nil {
		cem.Abort("scheduler_init", err)
		return nil
	}
	sch.Spawn(entry, nil)
	out := sch.Run()
	cem.PrintStack(out)
	sch.Shutdown()
	return out
}

// Spawn is the package-level strand_spawn of §6.1, routed through the
// singleton so running strands (and generated code, which has no scheduler
// handle of its own) can spawn siblings.
func Spawn(entry strand.EntryFunc, initialStack *cem.Cell) uint64 {
	sch := singleton
	if sch == nil {
		cem.Abort("strand_spawn", cem.ErrSchedulerNotInit)
		return 0
	}
	return sch.Spawn(entry, initialStack)
}
