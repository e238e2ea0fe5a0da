package office

import "errors"

var ErrOfficeLocationNotFound = errors.New("office location not configured")
