package queries

import (
	"context"
	"errors"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/guard"
)

var ErrGetDeferralQueryIsNotConstructed = errors.New(
	"GetDeferralQuery must be created via NewGetDeferralQuery constructor",
)

// GetDeferralQuery retrieves the active deferral record.
type GetDeferralQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeferralQuery creates the query.
func NewGetDeferralQuery() GetDeferralQuery {
	return GetDeferralQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeferralQuery) Validate() error {
	return q.guard.Validate(ErrGetDeferralQueryIsNotConstructed)
}

// GetDeferralQueryResponse describes the deferral state. Only Active is set when nothing is deferred.
type GetDeferralQueryResponse struct {
	Active    bool
	Policy    string
	TargetID  kernel.UUID
	ExpiresAt *time.Time
}

// GetDeferralQueryHandler reads the record from the engine.
type GetDeferralQueryHandler struct {
	deferrals DeferralReader
}

// NewGetDeferralQueryHandler creates the handler.
func NewGetDeferralQueryHandler(deferrals DeferralReader) GetDeferralQueryHandler {
	return GetDeferralQueryHandler{deferrals: deferrals}
}

// Handle executes the query.
func (h GetDeferralQueryHandler) Handle(_ context.Context, query GetDeferralQuery) (GetDeferralQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeferralQueryResponse{}, err
	}

	record, ok := h.deferrals.Deferral()
	if !ok {
		return GetDeferralQueryResponse{}, nil
	}

	resp := GetDeferralQueryResponse{
		Active:   true,
		Policy:   record.Policy().String(),
		TargetID: record.TargetID(),
	}
	if at, ok := record.ExpiresAt(); ok {
		resp.ExpiresAt = &at
	}
	return resp, nil
}
