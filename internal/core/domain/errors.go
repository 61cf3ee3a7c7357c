package domain

import "errors"

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrPersistenceRead  = errors.New("persistence read failed")
	ErrPersistenceWrite = errors.New("persistence write failed")
	ErrUpdateConflict   = errors.New("concurrent update conflict, retries exhausted")
	ErrNetwork          = errors.New("remote provider unavailable")
	ErrUnknownPrayer    = errors.New("unknown prayer name")
	ErrInvalidDate      = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidRange     = errors.New("invalid date range")
)
