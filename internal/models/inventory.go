// internal/models/inventory.go
package models

import "fmt"

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Before reports whether t is strictly earlier than o.
func (t TimeOfDay) Before(o TimeOfDay) bool {
	if t.Hour != o.Hour {
		return t.Hour < o.Hour
	}
	return t.Minute < o.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Interval is a daily opening interval.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

type OpeningHours struct {
	Weekday  Interval `json:"weekday"`
	Saturday Interval `json:"saturday"`
	Sunday   Interval `json:"sunday"`
}

// LabelledInterval pairs an interval with the day group it applies to.
type LabelledInterval struct {
	Label    string
	Interval Interval
}

// Labelled returns the intervals in weekday, saturday, sunday order.
func (o OpeningHours) Labelled() []LabelledInterval {
	return []LabelledInterval{
		{Label: "weekday", Interval: o.Weekday},
		{Label: "saturday", Interval: o.Saturday},
		{Label: "sunday", Interval: o.Sunday},
	}
}

type Image struct {
	OrderNo int    `json:"orderNo"`
	URI     string `json:"uri"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ImageSet is an ordered list of images; OrderNo must match the position.
type ImageSet []Image

// Platform channel kinds an org is provisioned with.
const (
	PlatformWebsite     = "website"
	PlatformCallcenter  = "callcenter"
	PlatformEmailcenter = "emailcenter"
)

// Defaults assigned to the platform channels when an org is created.
const (
	DefaultPhoneNumber = ""
	DefaultEmailName   = "contact"
)
