package employee

import "github.com/ogurasousui/hrms-lite/internal/core/coreerr"

var (
	ErrInvalidEmployeeCode = coreerr.New(coreerr.ErrValidation, "employee: invalid employee code")
	ErrInvalidFullName     = coreerr.New(coreerr.ErrValidation, "employee: invalid full name")
	ErrInvalidEmail        = coreerr.New(coreerr.ErrValidation, "employee: invalid email")
	ErrInvalidDepartment   = coreerr.New(coreerr.ErrValidation, "employee: invalid department")

	ErrEmployeeNotFound = coreerr.New(coreerr.ErrNotFound, "employee: not found")

	ErrEmployeeCodeAlreadyExists = coreerr.New(coreerr.ErrDuplicateKey, "employee: employee code already exists")
	ErrEmailAlreadyExists        = coreerr.New(coreerr.ErrDuplicateKey, "employee: email already exists")
)
