// Package scheduler implements the §3.4/§4.E cooperative strand scheduler:
// a FIFO ready queue, a blocked-on-I/O set, a single scheduler CPU context,
// and a platform I/O-readiness multiplexer (epoll on Linux, kqueue on
// BSD/macOS). Tracked as a mutable package-level singleton per §9
// ("Implementations may store this behind a mutable global; the
// single-thread assumption makes this safe").
package scheduler

import (
	"container/list"
	"fmt"
	"os"

	"github.com/dsnet/golib/unitconv"

	"github.com/navicore/cem-sub000/go/cem"
	"github.com/navicore/cem-sub000/go/cpuctx"
	"github.com/navicore/cem-sub000/go/nstack"
	"github.com/navicore/cem-sub000/go/strand"
)

const maxEventsPerBatch = 32

// ioMultiplexer is the interface the scheduler's main loop needs from its
// I/O-readiness multiplexer, satisfied by the real epoll/kqueue-backed
// *poller and, in tests, by a gomock mock -- scheduler unit tests drive
// the blocked-set logic without spinning up real kernel state.
type ioMultiplexer interface {
	registerRead(fd int, strandID uint64) error
	registerWrite(fd int, strandID uint64) error
	wait() ([]uint64, error)
	close() error
}

// Scheduler is the singleton described in §3.4.
type Scheduler struct {
	ready   *list.List // FIFO of *strand.Strand
	blocked map[uint64]*strand.Strand
	all     map[uint64]*strand.Strand
	current *strand.Strand
	nextID  uint64

	schedulerCtx cpuctx.Context
	io           ioMultiplexer
	sig          *signalGuard

	entryID   uint64
	entryDone bool
	finalOut  *cem.Cell
}

var singleton *Scheduler

// Init implements scheduler_init (§6.1): creates the I/O multiplexer,
// installs the guard-page SIGSEGV handler on an alternate signal stack, and
// registers the new scheduler as the package singleton. Re-initialization
// while a scheduler is already live is a programmer error (§9).
func Init() (*Scheduler, error) {
	if singleton != nil {
		cem.Abort("scheduler_init", cem.ErrSchedulerAlreadyInit)
		return nil, cem.ErrSchedulerAlreadyInit
	}
	io, err := newPoller()
	if err != nil {
		return nil, fmt.Errorf("scheduler_init: %w", err)
	}
	sch := &Scheduler{
		ready:   list.New(),
		blocked: make(map[uint64]*strand.Strand),
		all:     make(map[uint64]*strand.Strand),
		io:      io,
	}
	sg, err := installSignalGuard(sch)
	if err != nil {
		_ = io.close()
		return nil, fmt.Errorf("scheduler_init: %w", err)
	}
	sch.sig = sg
	singleton = sch
	return sch, nil
}

// Spawn implements strand_spawn (§6.1/§4.D): allocates a value stack (owned
// by the caller-supplied initialStack), a guarded native stack, and a CPU
// context initialized to the trampoline entry, then enqueues the new strand
// as Ready.
func (sch *Scheduler) Spawn(entry strand.EntryFunc, initialStack *cem.Cell) uint64 {
	sch.nextID++
	id := sch.nextID

	ns, err := nstack.Alloc(nstack.InitialUsableSize)
	if err != nil {
		cem.Abort("strand_spawn", err)
		return 0
	}

	s := &strand.Strand{
		ID:             id,
		State:          strand.Ready,
		ValueStackHead: initialStack,
		NativeStack:    ns,
		EntryFn:        entry,
		SchedulerCtx:   &sch.schedulerCtx,
	}
	cpuctx.MakeContext(&s.CPUContext, ns.UsableBase, ns.UsableSize, trampolineEntryPtr())

	sch.all[id] = s
	sch.ready.PushBack(s)
	if id == 1 {
		sch.entryID = id
	}
	return id
}

// checkAndGrow implements the §4.C checkpoint hook, invoked immediately
// before switching into any strand.
func (sch *Scheduler) checkAndGrow(s *strand.Strand) {
	sp := s.CPUContext.SP()
	if !s.NativeStack.NeedsGrowth(sp) {
		return
	}
	next, newSP, err := s.NativeStack.Grow(sp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cem runtime: stack growth: strand %d: %v (usable_size=%s)\n",
			s.ID, err, unitconv.FormatPrefix(float64(s.NativeStack.UsableSize), unitconv.SI, 0)+"B")
		os.Exit(1)
	}
	newFP := nstack.RelocateIfInRange(s.NativeStack, next, s.CPUContext.FP())
	old := s.NativeStack
	s.NativeStack = next
	s.CPUContext.SetSP(newSP)
	s.CPUContext.SetFP(newFP)
	old.Free()
}

// Run implements scheduler_run (§4.E): the main loop. Returns the final
// value stack of the entry strand once all strands have completed.
func (sch *Scheduler) Run() *cem.Cell {
	for sch.ready.Len() > 0 || len(sch.blocked) > 0 {
		if sch.ready.Len() > 0 {
			front := sch.ready.Front()
			sch.ready.Remove(front)
			s := front.Value.(*strand.Strand)

			s.State = strand.Running
			sch.current = s
			sch.checkAndGrow(s)

			strand.Current = s
			cpuctx.SwapContext(&sch.schedulerCtx, &s.CPUContext)
			sch.current = nil

			switch s.State {
			case strand.Completed:
				delete(sch.all, s.ID)
				if s.ID == sch.entryID {
					sch.entryDone = true
					sch.finalOut = s.Result()
				}
			case strand.Yielded, strand.BlockedRead, strand.BlockedWrite:
				// already enrolled in the correct set by yield/block_on_*
			default:
				cem.Abort("scheduler_run", cem.ErrUnexpectedStrandState)
				return nil
			}
		} else {
			ready, err := sch.io.wait()
			if err != nil {
				cem.Abort("scheduler_run", err)
				return nil
			}
			for _, id := range ready {
				s, ok := sch.blocked[id]
				if !ok {
					continue
				}
				delete(sch.blocked, id)
				s.State = strand.Ready
				sch.ready.PushBack(s)
			}
		}
	}
	if sch.entryDone {
		return sch.finalOut
	}
	return nil
}

// Shutdown implements scheduler_shutdown (§4.E "Teardown"): reaps any
// remaining strands (invoking their cleanup handlers) and closes the
// multiplexer.
func (sch *Scheduler) Shutdown() {
	for _, s := range sch.all {
		s.RunCleanups()
	}
	for _, s := range sch.blocked {
		s.RunCleanups()
	}
	if sch.sig != nil {
		sch.sig.uninstall()
	}
	if err := sch.io.close(); err != nil {
		fmt.Fprintf(os.Stderr, "cem runtime: scheduler_shutdown: %v\n", err)
	}
	if singleton == sch {
		singleton = nil
	}
}

// Yield implements strand_yield (§4.D): marks the current strand Yielded,
// re-enqueues it at the tail of the ready queue, and switches back to the
// scheduler context. Execution continues immediately after this call on the
// strand's next turn.
func Yield() {
	sch := singleton
	if sch == nil || sch.current == nil {
		cem.Abort("strand_yield", cem.ErrSchedulerNotInit)
		return
	}
	s := sch.current
	s.State = strand.Yielded
	sch.ready.PushBack(s)
	cpuctx.SwapContext(&s.CPUContext, &sch.schedulerCtx)
}

// BlockOnRead implements strand_block_on_read(fd) (§4.D): registers fd for
// read-readiness (one-shot, edge-triggered), adds the current strand to the
// blocked set, and switches back.
func BlockOnRead(fd int) {
	blockOn(fd, strand.BlockedRead)
}

// BlockOnWrite implements strand_block_on_write(fd) (§4.D).
func BlockOnWrite(fd int) {
	blockOn(fd, strand.BlockedWrite)
}

func blockOn(fd int, state strand.State) {
	sch := singleton
	if sch == nil || sch.current == nil {
		cem.Abort("strand_block_on", cem.ErrSchedulerNotInit)
		return
	}
	if fd < 0 {
		cem.Abort("strand_block_on", cem.ErrBadFileDescriptor)
		return
	}
	s := sch.current
	var err error
	if state == strand.BlockedRead {
		err = sch.io.registerRead(fd, s.ID)
	} else {
		err = sch.io.registerWrite(fd, s.ID)
	}
	if err != nil {
		cem.Abort("strand_block_on", cem.ErrIORegistrationFailed)
		return
	}
	s.State = state
	s.BlockedFD = fd
	sch.blocked[s.ID] = s
	cpuctx.SwapContext(&s.CPUContext, &sch.schedulerCtx)
}
