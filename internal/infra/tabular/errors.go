package tabular

import "errors"

var (
	ErrRedisClientMissing = errors.New("redis tabular backend requires a redis client")
	ErrRowNotFound        = errors.New("row not found")
	ErrInvalidRowData     = errors.New("invalid row data")
)
