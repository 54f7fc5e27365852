// Package kernel provides the shared value objects of the washroute domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers of orders, subtasks and workers
//   - Location: A labelled latitude/longitude point with the planar distance used for dispatch ranking
//
// Both types are immutable and safe for concurrent use. Their zero values are invalid
// and fail Validate, so a value that was never constructed cannot slip into an aggregate.
package kernel
