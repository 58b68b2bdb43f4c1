package rating

import "time"

const (
	DefaultValue     = 1500.0
	DefaultDeviation = 350.0
)

// Rating is one point-in-time skill measurement. Rows are append-only except
// for an explicit retroactive correction.
type Rating struct {
	ID         int64
	UserID     int64
	Value      float64
	Deviation  float64
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Default returns the prior applied to users with no rating rows. The zero ID
// marks it as never persisted.
func Default(userID int64) Rating {
	return Rating{
		UserID:    userID,
		Value:     DefaultValue,
		Deviation: DefaultDeviation,
	}
}

// IsDefault reports whether r is an unpersisted prior.
func (r Rating) IsDefault() bool {
	return r.ID == 0
}
