package application

import (
	"errors"

	"github.com/Ssshtea/DBMS-cp/internal/domains/store/domain"
	sharederrors "github.com/Ssshtea/DBMS-cp/internal/shared/errors"
)

var errInvalidRating = errors.New("rating must be between 1 and 5")

// mapError converts domain invariant violations into validation
// failures carrying the structured kind.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCustomer) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, errInvalidRating) {
		return sharederrors.Wrap(sharederrors.KindValidation, err.Error(), err)
	}
	return err
}
