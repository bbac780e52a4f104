package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayBefore(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeOfDay
		want bool
	}{
		{"earlier hour", TimeOfDay{8, 59}, TimeOfDay{9, 0}, true},
		{"same hour earlier minute", TimeOfDay{9, 0}, TimeOfDay{9, 30}, true},
		{"equal", TimeOfDay{9, 30}, TimeOfDay{9, 30}, false},
		{"later", TimeOfDay{22, 0}, TimeOfDay{9, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Before(tt.b))
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
}

func TestOpeningHoursLabelledOrder(t *testing.T) {
	oh := OpeningHours{
		Weekday:  Interval{Start: TimeOfDay{9, 0}, End: TimeOfDay{17, 0}},
		Saturday: Interval{Start: TimeOfDay{10, 0}, End: TimeOfDay{14, 0}},
		Sunday:   Interval{Start: TimeOfDay{11, 0}, End: TimeOfDay{13, 0}},
	}

	labelled := oh.Labelled()
	require.Len(t, labelled, 3)
	assert.Equal(t, "weekday", labelled[0].Label)
	assert.Equal(t, "saturday", labelled[1].Label)
	assert.Equal(t, "sunday", labelled[2].Label)
	assert.Equal(t, oh.Sunday, labelled[2].Interval)
}

func TestImageSetJSONNames(t *testing.T) {
	data, err := json.Marshal(ImageSet{{OrderNo: 0, URI: "http://img/1.png", Width: 800, Height: 450}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"orderNo":0,"uri":"http://img/1.png","width":800,"height":450}]`, string(data))
}
