// Package order provides the Order aggregate of the washroute task engine: a customer
// job made of an ordered chain of subtasks that a worker completes one visit at a time.
//
// The package includes:
//   - Order: The aggregate root that owns the chain and derives its status
//   - Subtask: One visit-and-act step (pickup, drop, collect, delivery)
//   - Status, SubtaskStatus: Lifecycle states of orders and subtasks
//   - Kind: The closed set of visit purposes, descriptive only
//   - PriorityClass: The express/standard/both tag used by the category partition
//
// Key business rules:
//   - Subtasks are completed strictly in sequence; completion is one-way
//   - At most one subtask per order is enabled and pending (the head of the chain)
//   - Order status is Completed iff all subtasks are completed, InProgress iff some are, Pending otherwise
//   - An order tagged Both is listed in the express partition
package order
