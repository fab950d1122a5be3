package models

import "time"

// ValueType selects how a need's history is aggregated for display:
// relative needs store deltas combined via a running sum, absolute needs
// store the value outright.
type ValueType int

const (
	ValueTypeRelative ValueType = 0
	ValueTypeAbsolute ValueType = 1
)

func (valueType ValueType) Valid() bool {
	return valueType == ValueTypeRelative || valueType == ValueTypeAbsolute
}

type Status int

const (
	StatusGood    Status = 0
	StatusBad     Status = -10
	StatusProblem Status = -20
)

func (status Status) Valid() bool {
	return status == StatusGood || status == StatusBad || status == StatusProblem
}

// Trend is the relative delta recorded by a RELATIVE-typed transition.
type Trend int

const (
	TrendNegative Trend = -1
	TrendNeutral  Trend = 0
	TrendPositive Trend = 1
)

func (trend Trend) Valid() bool {
	return trend == TrendNegative || trend == TrendNeutral || trend == TrendPositive
}

type EmotionalNeed struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null"`

	// Immutable after creation; changing it would invalidate the
	// semantics of the recorded history.
	StateValueType ValueType `gorm:"not null"`

	// Sample-data bookkeeping: needs seeded for the demo pairing are
	// tagged so they can be cleaned up as a unit.
	IsSample            bool  `gorm:"not null;default:false"`
	SampleUserPartnerID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

// EmotionalNeedState is one append-only history entry of a need. Rows are
// never mutated after insert except the IsCurrent flip performed by the
// next transition.
type EmotionalNeedState struct {
	ID              uint      `gorm:"primaryKey"`
	EmotionalNeedID uint      `gorm:"not null;index"`
	Status          Status    `gorm:"not null"`
	ValueType       ValueType `gorm:"not null"`

	// Exactly one of ValueAbs/ValueRel is set, matching ValueType; both
	// nil marks an initial state carrying no value payload.
	ValueAbs *int
	ValueRel *Trend

	// Snapshot of the need owner's partner at creation time. Rows created
	// before pairing keep nil; only the current row per need is re-pointed
	// by the pairing transaction.
	PartnerUserID *uint `gorm:"index"`

	IsCurrent bool `gorm:"not null;default:true;index"`

	Text             string
	AppreciationText string

	CreatedAt time.Time `gorm:"not null"`
}

// IsInitial reports whether the row was created without a value payload
// (the optional state chained onto need creation).
func (state *EmotionalNeedState) IsInitial() bool {
	return state.ValueAbs == nil && state.ValueRel == nil
}
