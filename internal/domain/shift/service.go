package shift

import "context"

// Service exposes the shift catalog reads used by clients to render
// eligibility windows. Company scope comes from the JWT claims.
type Service interface {
	ListShifts(ctx context.Context) (ListShiftsResponse, error)
	ListShiftsByPosition(ctx context.Context, position string) (ListShiftsResponse, error)
}
