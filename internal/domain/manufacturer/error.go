package manufacturer

import "errors"

var ErrNotFound = errors.New("manufacturer not found")
