package sheet

import "errors"

var (
	ErrSlotOutOfRange = errors.New("time of day outside slot layout")
	ErrInvalidLayout  = errors.New("invalid slot layout")
	ErrUnknownMarker  = errors.New("unknown hour marker")
	ErrNoRecordToday  = errors.New("no record for today")
)
