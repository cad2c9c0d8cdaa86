package record

import (
	"bytes"
	"encoding/json"
)

// UpsertInput carries every mutable column of a record. Nil pointers are
// written as NULL. With KeepUTCOffset an existing row keeps its stored
// utc_offset_minutes; the offset is only written on insert.
type UpsertInput struct {
	Date             string
	Checked          bool
	ImageURL         *string
	ImagePublicID    *string
	Note             *string
	UTCOffsetMinutes *int
	KeepUTCOffset    bool
}

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Patch touches only the fields that were provided.
type Patch struct {
	Checked       *bool
	ImageURL      OptionalString
	ImagePublicID OptionalString
	Note          OptionalString
}

type UpsertRequest struct {
	Date          string  `json:"date" validate:"required,datekey"`
	Checked       bool    `json:"checked"`
	ImageURL      *string `json:"imageUrl" validate:"omitempty,url"`
	ImagePublicID *string `json:"imagePublicId"`
	Note          *string `json:"note" validate:"omitempty,max=500"`
}

func (r *UpsertRequest) Input() UpsertInput {
	return UpsertInput{
		Date:          r.Date,
		Checked:       r.Checked,
		ImageURL:      r.ImageURL,
		ImagePublicID: r.ImagePublicID,
		Note:          r.Note,
		KeepUTCOffset: true,
	}
}

type PatchRequest struct {
	Checked       *bool          `json:"checked"`
	ImageURL      OptionalString `json:"imageUrl"`
	ImagePublicID OptionalString `json:"imagePublicId"`
	Note          OptionalString `json:"note"`
}

func (r *PatchRequest) Patch() Patch {
	return Patch{
		Checked:       r.Checked,
		ImageURL:      r.ImageURL,
		ImagePublicID: r.ImagePublicID,
		Note:          r.Note,
	}
}

type RangeQuery struct {
	From string `json:"from" validate:"omitempty,datekey"`
	To   string `json:"to" validate:"omitempty,datekey"`
}

type CheckinBatchRequest struct {
	Checkins []UpsertRequest `json:"checkins"`
}
