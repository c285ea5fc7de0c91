package attendance

import "github.com/ogurasousui/hrms-lite/internal/core/coreerr"

var (
	ErrInvalidStatus = coreerr.New(coreerr.ErrValidation, "attendance: invalid status")
	ErrInvalidDate   = coreerr.New(coreerr.ErrValidation, "attendance: invalid date")

	// ErrEmployeeNotFound は参照先社員が存在しない場合に返却されます。
	ErrEmployeeNotFound = coreerr.New(coreerr.ErrNotFound, "attendance: employee not found")
	// ErrAlreadyMarked は同じ社員・同じ日付の記録が既に存在する場合に返却されます。
	ErrAlreadyMarked = coreerr.New(coreerr.ErrAlreadyMarked, "attendance: already marked for this date")
)
