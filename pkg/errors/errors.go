package errors

import "errors"

// ErrOptimisticLock reports that a record changed since it was read.
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")
