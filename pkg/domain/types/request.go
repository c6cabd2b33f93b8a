package types

import "github.com/google/uuid"

type RequestID string

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

type (
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }
