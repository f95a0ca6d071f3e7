package storefront

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", cartErrorMapper, catalogErrorMapper, userErrorMapper)

// respondError writes err as application/problem+json.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func cartErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrInvalidArgument):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func catalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, catalogports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func userErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrEmailTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// problemStatus gives the HTTP status an error maps to, for HTML pages.
func problemStatus(err error) int {
	return problems.Status(err)
}
