// Package task provides a small in-process background runner used for
// fire-and-forget durable writes. Tasks are applied in memory first by the
// caller; the runner only carries the best-effort persistence side of the
// two-phase apply-then-persist contract, so tasks are never stored or
// recovered across restarts.
package task
