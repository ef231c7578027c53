// services/errors.go
package services

import "errors"

// ErrForbidden marks an operation attempted by someone other than its
// owner (a non-leader responding to a join request, a non-owner pulling a
// certificate). Handlers map it to 403.
var ErrForbidden = errors.New("not allowed")
