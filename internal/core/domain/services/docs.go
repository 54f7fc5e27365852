// Package services provides the domain services of the washroute task engine: the logic
// that works across orders rather than inside one of them.
//
// The package includes:
//   - DispatchRanker: ranks actionable subtasks by distance and marks the closest non-deferred one
//   - CategoryPartitioner: splits the ranked board into express and standard lists
//
// Both services are stateless and operate on snapshots (DispatchEntry) so that callers can
// hold the result after the engine state has moved on.
package services
