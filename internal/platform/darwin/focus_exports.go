//go:build darwin && cgo

package darwin

/*
#include <stdint.h>
*/
import "C"

//export goAppActivated
func goAppActivated(token C.uintptr_t, pid C.int) {
	registryMu.RLock()
	fn := activations[uintptr(token)]
	registryMu.RUnlock()

	if fn != nil {
		fn(int(pid))
	}
}

//export goFocusChanged
func goFocusChanged(pid C.int) {
	registryMu.RLock()
	obs := observers[int(pid)]
	registryMu.RUnlock()

	if obs != nil {
		obs.fn()
	}
}
