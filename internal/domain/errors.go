package domain

import "errors"

var (
	ErrDataUnavailable         = errors.New("count data unavailable")
	ErrPredictionNotApplicable = errors.New("prediction not applicable")
	ErrRecoveryExhausted       = errors.New("elapsed-day total could not be recovered")
	ErrTableNotFound           = errors.New("table not found")
	ErrEmptyTable              = errors.New("table has no rows")
	ErrInvalidCellRef          = errors.New("invalid cell reference")
)
