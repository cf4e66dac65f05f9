// Package apperrors defines the domain-tagged errors the services return.
// The tag doubles as the i18n message key; the HTTP status is resolved at
// the boundary, never inside a service.
package apperrors

import "net/http"

type Error struct {
	Tag    string
	Status int
	// Params feed message interpolation, e.g. the current status on a
	// refused cancellation.
	Params map[string]string
}

func (e *Error) Error() string { return e.Tag }

// Is lets errors.Is match any two instances carrying the same tag, so
// parameterized errors still compare against their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Tag == e.Tag
}

func newErr(tag string, status int) *Error {
	return &Error{Tag: tag, Status: status}
}

var (
	ErrUserExists         = newErr("auth.userExists", http.StatusConflict)
	ErrInvalidCredentials = newErr("auth.invalidCredentials", http.StatusUnauthorized)
	ErrUserNotFound       = newErr("auth.userNotFound", http.StatusNotFound)
	ErrEmailExists        = newErr("auth.emailExists", http.StatusConflict)

	ErrCategoryNameLength = newErr("category.nameLength", http.StatusBadRequest)
	ErrCategoryNotFound   = newErr("category.notFound", http.StatusNotFound)
	ErrCategoryInUse      = newErr("category.inUse", http.StatusBadRequest)

	ErrProductNotFound       = newErr("product.notFound", http.StatusNotFound)
	ErrProductImagesRequired = newErr("product.imagesRequired", http.StatusBadRequest)

	ErrOrderNoItems           = newErr("order.noItems", http.StatusBadRequest)
	ErrOrderInvalidItems      = newErr("order.invalidItems", http.StatusBadRequest)
	ErrOrderInvalidQuantity   = newErr("order.invalidQuantity", http.StatusBadRequest)
	ErrOrderProductsNotFound  = newErr("order.productsNotFound", http.StatusNotFound)
	ErrOrderOutOfStock        = newErr("order.outOfStock", http.StatusBadRequest)
	ErrOrderNotFound          = newErr("order.notFound", http.StatusNotFound)
	ErrOrderUnauthorizedView  = newErr("order.unauthorizedView", http.StatusForbidden)
	ErrOrderUnauthorizedCancel = newErr("order.unauthorizedCancel", http.StatusForbidden)
	ErrOrderCannotCancel      = newErr("order.cannotCancel", http.StatusBadRequest)
	ErrOrderInvalidStatus     = newErr("order.invalidStatus", http.StatusBadRequest)
)

// CannotCancel tags a refused cancellation with the order's current status
// so the message can name it.
func CannotCancel(status string) *Error {
	return &Error{
		Tag:    ErrOrderCannotCancel.Tag,
		Status: ErrOrderCannotCancel.Status,
		Params: map[string]string{"status": status},
	}
}

// InvalidStatus tags a rejected status value with the accepted set.
func InvalidStatus(valid string) *Error {
	return &Error{
		Tag:    ErrOrderInvalidStatus.Tag,
		Status: ErrOrderInvalidStatus.Status,
		Params: map[string]string{"statuses": valid},
	}
}

// From unwraps a tagged error, if err carries one.
func From(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
