package validation

import (
	"errors"
	"strings"
	"testing"

	"inventory-service/internal/models"
	"inventory-service/internal/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRegistry(t *testing.T) *schemas.Registry {
	t.Helper()
	r, err := schemas.NewRegistry()
	require.NoError(t, err)
	return r
}

func hours(start, end models.TimeOfDay) models.Interval {
	return models.Interval{Start: start, End: end}
}

func createTestOpeningHours() models.OpeningHours {
	return models.OpeningHours{
		Weekday:  hours(models.TimeOfDay{Hour: 9}, models.TimeOfDay{Hour: 22}),
		Saturday: hours(models.TimeOfDay{Hour: 10}, models.TimeOfDay{Hour: 23, Minute: 30}),
		Sunday:   hours(models.TimeOfDay{Hour: 10}, models.TimeOfDay{Hour: 20}),
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %T", err)
	assert.Equal(t, field, fe.Field)
}

// ==========================
// Ids and free text
// ==========================

func TestIDValidator(t *testing.T) {
	v := NewIDValidator()

	id, err := v.Validate(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []int64{0, -1} {
		_, err := v.Validate(bad)
		assertFieldError(t, err, "id")
	}
}

func TestNameValidator(t *testing.T) {
	v := NewNameValidator(10)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trimmed", input: "  Bistro \t", want: "Bistro"},
		{name: "exactly max", input: "abcdefghij", want: "abcdefghij"},
		{name: "max counted in runes", input: "ăâîșțăâîșț", want: "ăâîșțăâîșț"},
		{name: "empty", input: "", wantErr: true},
		{name: "only spaces", input: "   ", wantErr: true},
		{name: "too long", input: "abcdefghijk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input)
			if tt.wantErr {
				assertFieldError(t, err, "name")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptionValidator(t *testing.T) {
	v := NewDescriptionValidator(5)

	got, err := v.Validate("  ")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = v.Validate(" short ")
	require.NoError(t, err)
	assert.Equal(t, "short", got)

	_, err = v.Validate("too long")
	assertFieldError(t, err, "description")
}

func TestAddressValidator(t *testing.T) {
	v := NewAddressValidator(DefaultAddressMaxLength)

	got, err := v.Validate(" Str. Lunga 1 ")
	require.NoError(t, err)
	assert.Equal(t, "Str. Lunga 1", got)

	_, err = v.Validate(strings.Repeat("a", DefaultAddressMaxLength+1))
	assertFieldError(t, err, "address")
}

// ==========================
// String sets
// ==========================

func TestKeywordsValidator(t *testing.T) {
	v := NewKeywordsValidator(createTestRegistry(t), 8)

	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{name: "sorted and deduplicated", input: []string{"wine", " pasta", "wine ", "beer"}, want: []string{"beer", "pasta", "wine"}},
		{name: "empty list", input: []string{}, want: []string{}},
		{name: "empty element", input: []string{"pasta", "  "}, wantErr: true},
		{name: "element too long", input: []string{"vegetarian"}, wantErr: true},
		{name: "nil list", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input)
			if tt.wantErr {
				assertFieldError(t, err, "keywords")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordsValidatorIsIdempotent(t *testing.T) {
	v := NewKeywordsValidator(createTestRegistry(t), DefaultKeywordMaxLength)

	once, err := v.Validate([]string{"b", "a ", "b"})
	require.NoError(t, err)
	twice, err := v.Validate(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestIngredientsValidator(t *testing.T) {
	v := NewIngredientsValidator(createTestRegistry(t), DefaultIngredientMaxLength)

	got, err := v.Validate([]string{"tomato", "basil", "tomato"})
	require.NoError(t, err)
	assert.Equal(t, []string{"basil", "tomato"}, got)

	_, err = v.Validate([]string{""})
	assertFieldError(t, err, "ingredients")
}

// ==========================
// Structured values
// ==========================

func TestOpeningHoursValidator(t *testing.T) {
	v := NewOpeningHoursValidator(createTestRegistry(t))

	oh := createTestOpeningHours()
	got, err := v.Validate(oh)
	require.NoError(t, err)
	assert.Equal(t, oh, got)

	tests := []struct {
		name   string
		mutate func(*models.OpeningHours)
		label  string
	}{
		{
			name:   "weekday ends before start",
			mutate: func(o *models.OpeningHours) { o.Weekday = hours(models.TimeOfDay{Hour: 22}, models.TimeOfDay{Hour: 9}) },
			label:  "weekday",
		},
		{
			name:   "saturday empty interval",
			mutate: func(o *models.OpeningHours) { o.Saturday = hours(models.TimeOfDay{Hour: 10}, models.TimeOfDay{Hour: 10}) },
			label:  "saturday",
		},
		{
			name: "sunday by minute",
			mutate: func(o *models.OpeningHours) {
				o.Sunday = hours(models.TimeOfDay{Hour: 10, Minute: 30}, models.TimeOfDay{Hour: 10, Minute: 15})
			},
			label: "sunday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := createTestOpeningHours()
			tt.mutate(&bad)
			_, err := v.Validate(bad)
			assertFieldError(t, err, "openingHours")
			assert.Contains(t, err.Error(), tt.label)
		})
	}
}

func TestOpeningHoursValidatorRejectsOutOfRange(t *testing.T) {
	v := NewOpeningHoursValidator(createTestRegistry(t))

	bad := createTestOpeningHours()
	bad.Weekday.End = models.TimeOfDay{Hour: 24}
	_, err := v.Validate(bad)
	assertFieldError(t, err, "openingHours")

	var se *schemas.StructuralError
	assert.True(t, errors.As(err, &se))
}

func TestImageSetValidator(t *testing.T) {
	v := NewImageSetValidator(createTestRegistry(t))

	got, err := v.Validate(models.ImageSet{
		{OrderNo: 0, URI: " http://img/0.png ", Width: 800, Height: 450},
		{OrderNo: 1, URI: "http://img/1.png", Width: 1600, Height: 900},
	})
	require.NoError(t, err)
	assert.Equal(t, "http://img/0.png", got[0].URI)
	assert.Len(t, got, 2)

	empty, err := v.Validate(models.ImageSet{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	tests := []struct {
		name string
		set  models.ImageSet
	}{
		{name: "order mismatch", set: models.ImageSet{{OrderNo: 1, URI: "u", Width: 800, Height: 450}}},
		{name: "empty uri", set: models.ImageSet{{OrderNo: 0, URI: "  ", Width: 800, Height: 450}}},
		{name: "too small", set: models.ImageSet{{OrderNo: 0, URI: "u", Width: 799, Height: 450}}},
		{name: "nil set", set: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.set)
			assertFieldError(t, err, "imageSet")
		})
	}
}

// ==========================
// Platforms
// ==========================

func TestSubdomainValidator(t *testing.T) {
	v := NewSubdomainValidator(DefaultSubdomainMaxLength)

	got, err := v.Validate("my-shop")
	require.NoError(t, err)
	assert.Equal(t, "my-shop", got)

	for _, bad := range []string{"My Shop", "", "-shop", "café", strings.Repeat("a", DefaultSubdomainMaxLength+1)} {
		_, err := v.Validate(bad)
		assertFieldError(t, err, "subdomain")
	}
}

func TestPhoneNumberValidator(t *testing.T) {
	v := NewPhoneNumberValidator(DefaultPhoneRegion)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "national digits", input: "0740123456", want: "0740 123 456"},
		{name: "international", input: "+40740123456", want: "0740 123 456"},
		{name: "already formatted", input: "0740 123 456", want: "0740 123 456"},
		{name: "too short", input: "123", wantErr: true},
		{name: "not a number", input: "call me", wantErr: true},
		{name: "other region", input: "+44 20 7946 0958", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.input)
			if tt.wantErr {
				assertFieldError(t, err, "phoneNumber")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailNameValidator(t *testing.T) {
	v := NewEmailNameValidator(10)

	for _, good := range []string{"contact", "john.doe", "sales-ro"} {
		got, err := v.Validate(good)
		require.NoError(t, err, good)
		assert.Equal(t, good, got)
	}

	for _, bad := range []string{"", "not valid", "a@b", "abcdefghijk"} {
		_, err := v.Validate(bad)
		assertFieldError(t, err, "emailName")
	}
}
