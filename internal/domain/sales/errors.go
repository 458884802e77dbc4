package sales

import "errors"

var ErrSaleNotFound = errors.New("sale not found")
