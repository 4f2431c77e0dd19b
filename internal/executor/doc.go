// Package executor drives the step runner over every job of a matrix.
// Jobs are independent: they share no state, one job's failure never stops
// a sibling, and a bounded pool of workers may run them in any order. The
// aggregated result always reports jobs in declaration order, each worker
// writing only its own pre-sized slot.
package executor
