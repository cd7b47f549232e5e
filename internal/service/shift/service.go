package shift

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

type shiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.Service {
	return &shiftServiceImpl{
		shiftRepo: shiftRepo,
	}
}

// ListShifts implements shift.Service.
func (s *shiftServiceImpl) ListShifts(ctx context.Context) (shift.ListShiftsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	shifts, err := s.shiftRepo.ListActive(ctx, companyID)
	if err != nil {
		return shift.ListShiftsResponse{}, fmt.Errorf("failed to list active shifts: %w", err)
	}

	return mapListResponse(shifts), nil
}

// ListShiftsByPosition implements shift.Service.
func (s *shiftServiceImpl) ListShiftsByPosition(ctx context.Context, position string) (shift.ListShiftsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ListShiftsResponse{}, err
	}

	shifts, err := s.shiftRepo.ListActiveByPosition(ctx, position, companyID)
	if err != nil {
		return shift.ListShiftsResponse{}, fmt.Errorf("failed to list shifts for position: %w", err)
	}

	return mapListResponse(shifts), nil
}

func mapListResponse(shifts []shift.Shift) shift.ListShiftsResponse {
	response := shift.ListShiftsResponse{
		Shifts: make([]shift.ShiftResponse, 0, len(shifts)),
	}
	for _, sh := range shifts {
		response.Shifts = append(response.Shifts, shift.MapShiftToResponse(sh))
	}
	return response
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}
