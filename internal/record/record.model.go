package record

import "time"

type WakeupRecord struct {
	Date             string    `json:"date"`
	Checked          bool      `json:"checked"`
	ImageURL         *string   `json:"imageUrl"`
	ImagePublicID    *string   `json:"imagePublicId"`
	Note             *string   `json:"note"`
	UTCOffsetMinutes *int      `json:"utcOffsetMinutes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PublicRecord is the shape returned by the action endpoint. Store
// bookkeeping (photo references, timestamps) stays internal.
type PublicRecord struct {
	Date             string `json:"date"`
	Checked          bool   `json:"checked"`
	Note             string `json:"note,omitempty"`
	UTCOffsetMinutes *int   `json:"utcOffsetMinutes,omitempty"`
}

func (r *WakeupRecord) Public() PublicRecord {
	pub := PublicRecord{
		Date:             r.Date,
		Checked:          r.Checked,
		UTCOffsetMinutes: r.UTCOffsetMinutes,
	}
	if r.Note != nil {
		pub.Note = *r.Note
	}
	return pub
}

type DayMark struct {
	Date    string
	Checked bool
}

func Marks(records []WakeupRecord) []DayMark {
	marks := make([]DayMark, 0, len(records))
	for _, r := range records {
		marks = append(marks, DayMark{Date: r.Date, Checked: r.Checked})
	}
	return marks
}
