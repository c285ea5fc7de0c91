package attendance

import (
	"strings"
	"time"
)

// Status は出欠区分です。
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// ParseStatus は大文字小文字を区別せずに出欠区分を解釈します。
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present":
		return StatusPresent, nil
	case "absent":
		return StatusAbsent, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order は履歴の並び順です。
type Order int

const (
	// OrderAscending は日付の昇順です。既定値です。
	OrderAscending Order = iota
	// OrderDescending は日付の降順です。表示用です。
	OrderDescending
)

// Record は社員 1 名・1 日分の勤怠記録です。作成後は変更されません。
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	RecordedAt time.Time
}

// DateKey は Date を YYYY-MM-DD 形式で返します。
func (r *Record) DateKey() string {
	return r.Date.Format(DateLayout)
}

// DateLayout は暦日の文字列表現です。
const DateLayout = "2006-01-02"

// NormalizeDate は時刻成分を落とし UTC の 0 時に揃えます。
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate は YYYY-MM-DD 形式の暦日を解釈します。
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
