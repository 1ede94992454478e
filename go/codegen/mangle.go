// Package codegen implements the small, pure parts of the §4.G codegen
// boundary that this repository owns directly: user-word name mangling
// (including the main → cem_main rewrite) and the reserved runtime-ABI
// symbol table of §6.1. The bulk of §4.G -- LLVM IR emission itself -- is
// the external compiler's responsibility and out of scope here.
package codegen

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ReservedSymbols lists the stable C-ABI names of §6.1 that generated code
// may reference but must never redefine.
var ReservedSymbols = map[string]bool{
	"push_int": true, "push_bool": true, "push_string": true,
	"dup": true, "drop": true, "swap": true, "over": true, "rot": true, "nip": true, "tuck": true,
	"add": true, "subtract": true, "multiply": true, "divide_op": true,
	"equal": true, "string_equal": true,
	"string_length": true, "string_concat": true, "int_to_string": true, "bool_to_string": true,
	"call_quotation":        true,
	"scheduler_init":        true,
	"scheduler_run":         true,
	"scheduler_shutdown":    true,
	"strand_spawn":          true,
	"strand_yield":          true,
	"strand_block_on_read":  true,
	"strand_block_on_write": true,
	"write_line":            true, "read_line": true,
	"print_stack":   true,
	"runtime_error": true,
	"cem_main":      true,
}

// entryPointName is the user-defined name rewritten to avoid clashing with
// the C entry point (§4.G).
const entryPointName = "main"

// cemEntryPointName is what it is rewritten to.
const cemEntryPointName = "cem_main"

const mangleCacheSize = 4096

// Mangler maps user-defined word names to stable C-ABI symbols, memoizing
// results in a bounded LRU cache since a real compilation unit may mangle
// the same word thousands of times across call sites.
type Mangler struct {
	cache *lru.Cache[string, string]
}

// NewMangler constructs a Mangler with the default cache size.
func NewMangler() *Mangler {
	cache, err := lru.New[string, string](mangleCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size, which never happens
		// with the package constant above.
		panic(err)
	}
	return &Mangler{cache: cache}
}

// Mangle returns word's stable C-ABI symbol name, applying the main →
// cem_main rewrite (§4.G) and prefixing every other user word with
// "cem_user_" so user identifiers can never collide with a reserved
// runtime symbol even if the source language permitted the same
// spelling.
func (m *Mangler) Mangle(word string) string {
	if word == entryPointName {
		return cemEntryPointName
	}
	if hit, ok := m.cache.Get(word); ok {
		return hit
	}
	mangled := "cem_user_" + word
	m.cache.Add(word, mangled)
	return mangled
}
