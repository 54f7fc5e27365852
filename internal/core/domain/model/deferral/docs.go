// Package deferral models snoozing: temporarily keeping subtasks out of closest-task selection.
//
// Two policies exist. UntilNextCompletion defers one subtask until any subtask is completed
// or its expiry passes. UntilLast defers every order except the last active one, until the
// deferred order is the only one left. At most one Record is active at a time; creating a
// new one replaces the previous one.
//
// Deferred subtasks stay actionable: they can still be completed, they are only never
// marked as the closest task.
package deferral
