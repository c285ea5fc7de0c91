package coreerr

import "errors"

// エラー種別です。各ドメインパッケージのエラーはいずれか 1 つをラップします。
var (
	// ErrValidation は入力値が不正な場合の種別です。
	ErrValidation = errors.New("validation error")
	// ErrDuplicateKey は一意制約に違反した場合の種別です。
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound は参照先が存在しない場合の種別です。
	ErrNotFound = errors.New("not found")
	// ErrAlreadyMarked は同一社員・同一日付の勤怠が登録済みの場合の種別です。
	ErrAlreadyMarked = errors.New("already marked")
	// ErrInconsistent は内部整合性が崩れている場合の種別です。呼び出し側の責任ではありません。
	ErrInconsistent = errors.New("internal inconsistency")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// New は kind をラップした番兵エラーを生成します。
func New(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// KindOf は err が属する種別を返します。該当しない場合は nil です。
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrDuplicateKey, ErrNotFound, ErrAlreadyMarked, ErrInconsistent} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
