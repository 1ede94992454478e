package scheduler

import (
	"reflect"

	"github.com/navicore/cem-sub000/go/strand"
)

// trampolineEntryPtr resolves strand.TrampolineEntry's code address for use
// as MakeContext's entryFn argument. TrampolineEntry is a top-level
// function with no captured variables, so its func value's underlying
// pointer is its entry PC.
func trampolineEntryPtr() uintptr {
	return reflect.ValueOf(strand.TrampolineEntry).Pointer()
}
