package org

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"

	DriverStatusActive   = "active"
	DriverStatusInactive = "inactive"
)
