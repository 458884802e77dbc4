package org

import "errors"

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDriverNotFound   = errors.New("driver not found")
	ErrVendorNotFound   = errors.New("vendor not found")
)
