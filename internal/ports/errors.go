package ports

import "errors"

// ErrNotFound is returned by repositories when the requested record does not
// exist. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")
