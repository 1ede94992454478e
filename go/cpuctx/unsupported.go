//go:build !((arm64 && darwin) || (amd64 && linux))

package cpuctx

// This file builds only on (architecture, OS) pairs other than the two
// supported by §6.4: (ARM64, macOS) and (x86-64, Linux). No file defines
// archContext, makeContext or swapContext for such a pair, so the package
// fails to compile there with undefined-name errors; the init panic below
// names the supported pairs but is not reached by such a build.
func init() {
	panic("cem runtime: unsupported (architecture, OS) pair; supported: (arm64, darwin), (amd64, linux)")
}
