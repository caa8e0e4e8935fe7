package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-AmenityBookingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает правила вида объекта
func validateRequest(req *Request) (domain.AmenityRules, error) {
	if req == nil {
		return domain.AmenityRules{}, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.AmenityID <= 0 {
		return domain.AmenityRules{}, fmt.Errorf("%w: amenityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return domain.AmenityRules{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	kind, err := domain.ParseAmenityKind(req.AmenityKind)
	if err != nil {
		return domain.AmenityRules{}, fmt.Errorf("%w: %q", ErrUnknownAmenityKind, req.AmenityKind)
	}

	rules, err := domain.RulesFor(kind)
	if err != nil {
		return domain.AmenityRules{}, fmt.Errorf("%w: %v", ErrUnknownAmenityKind, err)
	}

	return rules, nil
}
