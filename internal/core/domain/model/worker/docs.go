// Package worker provides the Worker aggregate: the driver who executes the dispatch board.
//
// The engine owns exactly one worker. Its location is the origin of every distance shown
// on the board and it moves only when the worker completes a subtask, to that subtask's location.
package worker
