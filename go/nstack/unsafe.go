package nstack

import "unsafe"

// unsafePointerOf returns the address of the first byte backing mapping,
// used once at allocation time to record the stack's base address.
func unsafePointerOf(mapping []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(mapping))
}
