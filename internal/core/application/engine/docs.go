// Package engine implements the workflow engine: the single owner of the active orders,
// the worker position and the deferral record.
//
// Every public method runs as one synchronous turn under the engine mutex. The only
// mutation that happens without a caller is the expiry of a defer-until-next-completion
// record, scheduled with a cancellable timer keyed to the record version so that a stale
// timer never clears a newer record.
//
// The deferral record is written through ports.DeferralStore on every snooze and clear
// and restored from it when the engine is built.
package engine
