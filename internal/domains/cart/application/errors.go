package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var (
	// ErrInvalidArgument signals an unparsable identifier or quantity from the request boundary.
	ErrInvalidArgument = errors.New("invalid cart argument")
	// ErrInvalidLineItemID and ErrInvalidQuantity narrow ErrInvalidArgument to
	// the field that failed.
	ErrInvalidLineItemID = fmt.Errorf("%w: line item id", ErrInvalidArgument)
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity", ErrInvalidArgument)
	// ErrNotFound signals the referenced product does not exist.
	ErrNotFound = errors.New("cart reference not found")
	// ErrEmptyCart tells the caller to redirect to the catalog instead of
	// showing an empty cart. It accompanies a valid, empty snapshot.
	ErrEmptyCart = errors.New("cart is empty")
)

func invalidArgument(kind error, raw string, err error) error {
	return fmt.Errorf("%w %q: %w", kind, raw, err)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrProductNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
