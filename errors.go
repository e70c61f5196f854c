package gc

import (
	"github.com/tersgc/gogc/internal/errors"
)

func errRefcountUnderflow[T any](b *managedBox[T]) error {
	return errors.RefcountUnderflow(addrOf(b))
}

func errDoubleFree(addr uintptr) error {
	return errors.DoubleFree(addr)
}

func errCrossThreadHandle(addr uintptr) error {
	return errors.CrossThreadHandle(addr)
}

func errStackRangeImplausible(low, high uintptr) error {
	return errors.StackRangeImplausible(low, high)
}
