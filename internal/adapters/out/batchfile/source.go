// Package batchfile loads the initial assignment from a YAML file.
//
// Format (version 1):
//
//	version: 1
//	worker:
//	  id: 4b1d...          # optional, derived from the name when empty
//	  name: Sam
//	  start: {lat: 52.52, lon: 13.40, label: Depot}
//	orders:
//	  - id: 9f0c...        # optional, derived from the number when empty
//	    number: W-1001
//	    items: 3
//	    priority: express  # express | standard | both
//	    subtasks:
//	      - id: 7a2e...    # optional, derived from the order id and position
//	        kind: pickup   # pickup | drop | collect | delivery
//	        status: pending
//	        enabled: true  # optional, defaults to the first pending subtask
//	        location: {lat: 52.53, lon: 13.41, label: Main St 4}
//	        customerName: Ana
//	        contact: "+49 30 1234"
package batchfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"
	"washroute/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only batch file version understood.
const SupportedVersion = 1

type fileDTO struct {
	Version int        `yaml:"version"`
	Worker  workerDTO  `yaml:"worker"`
	Orders  []orderDTO `yaml:"orders"`
}

type workerDTO struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Start locationDTO `yaml:"start"`
}

type locationDTO struct {
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Label string  `yaml:"label"`
}

type orderDTO struct {
	ID       string       `yaml:"id"`
	Number   string       `yaml:"number"`
	Items    int          `yaml:"items"`
	Priority string       `yaml:"priority"`
	Subtasks []subtaskDTO `yaml:"subtasks"`
}

type subtaskDTO struct {
	ID           string      `yaml:"id"`
	Kind         string      `yaml:"kind"`
	Status       string      `yaml:"status"`
	Enabled      *bool       `yaml:"enabled"`
	Location     locationDTO `yaml:"location"`
	CustomerName string      `yaml:"customerName"`
	Contact      string      `yaml:"contact"`
}

// Source implements ports.AssignmentSource over a YAML file.
type Source struct {
	path string
}

// NewSource creates a source reading path on every LoadAssignment.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// LoadAssignment reads and validates the batch file.
func (s *Source) LoadAssignment(_ context.Context) (ports.Assignment, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ports.Assignment{}, err
	}

	return Parse(b)
}

// Parse decodes a batch document. All order errors are reported together.
func Parse(b []byte) (ports.Assignment, error) {
	var doc fileDTO
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return ports.Assignment{}, fmt.Errorf("decode batch file: %w", err)
	}

	if doc.Version != SupportedVersion {
		return ports.Assignment{}, errs.NewVersionIsInvalidError(
			"batch file", fmt.Errorf("unsupported batch file version: %d", doc.Version))
	}

	w, err := doc.Worker.toDomain()
	if err != nil {
		return ports.Assignment{}, fmt.Errorf("worker: %w", err)
	}

	orders := make([]*order.Order, 0, len(doc.Orders))
	var errList []error
	for i, dto := range doc.Orders {
		o, orderErr := dto.toDomain()
		if orderErr != nil {
			errList = append(errList, fmt.Errorf("order %d (%s): %w", i, dto.Number, orderErr))
			continue
		}
		orders = append(orders, o)
	}
	if err = errors.Join(errList...); err != nil {
		return ports.Assignment{}, err
	}

	return ports.Assignment{Orders: orders, Worker: w}, nil
}

func (d workerDTO) toDomain() (*worker.Worker, error) {
	id, err := idOrDerived(d.ID, "worker/"+d.Name)
	if err != nil {
		return nil, err
	}

	loc, err := d.Start.toDomain()
	if err != nil {
		return nil, err
	}

	return worker.NewWorker(id, d.Name, loc)
}

func (d locationDTO) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(d.Lat, d.Lon, d.Label)
}

func (d orderDTO) toDomain() (*order.Order, error) {
	id, err := idOrDerived(d.ID, "order/"+d.Number)
	if err != nil {
		return nil, err
	}

	priority, err := order.ParsePriorityClass(d.Priority)
	if err != nil {
		return nil, err
	}

	subtasks := make([]*order.Subtask, 0, len(d.Subtasks))
	headSeen := false
	for i, stDto := range d.Subtasks {
		status := order.SubtaskPending
		if stDto.Status != "" {
			if status, err = order.ParseSubtaskStatus(stDto.Status); err != nil {
				return nil, fmt.Errorf("subtask %d: %w", i, err)
			}
		}

		enabled := false
		if status == order.SubtaskPending && !headSeen {
			enabled = true
			headSeen = true
		}
		if stDto.Enabled != nil {
			enabled = *stDto.Enabled
		}

		st, stErr := stDto.toDomain(fmt.Sprintf("%s/subtask/%d", id, i), status, enabled)
		if stErr != nil {
			return nil, fmt.Errorf("subtask %d: %w", i, stErr)
		}
		subtasks = append(subtasks, st)
	}

	return order.RestoreOrder(id, d.Number, d.Items, priority, subtasks, nil)
}

func (d subtaskDTO) toDomain(name string, status order.SubtaskStatus, enabled bool) (*order.Subtask, error) {
	id, err := idOrDerived(d.ID, name)
	if err != nil {
		return nil, err
	}

	kind, err := order.ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}

	loc, err := d.Location.toDomain()
	if err != nil {
		return nil, err
	}

	return order.RestoreSubtask(id, kind, status, enabled, loc, d.CustomerName, d.Contact)
}

// idOrDerived parses s, or derives a stable id from name when s is empty.
// Deferral snapshots refer to these ids, so they must not change between loads of the same file.
func idOrDerived(s, name string) (kernel.UUID, error) {
	if s == "" {
		return kernel.NewNameUUID(name), nil
	}
	return kernel.UUIDFromString(s)
}
