package delivery

import "errors"

var ErrRecordNotFound = errors.New("delivery record not found")
