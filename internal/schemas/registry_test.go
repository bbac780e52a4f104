package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Helpers
// ==========================

func createTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	require.NoError(t, err)
	return r
}

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v interface{}
	require.NoError(t, dec.Decode(&v))
	return v
}

const validOrgCreation = `{
	"name": "Bistro",
	"description": "Small place",
	"keywords": ["pasta", "wine"],
	"address": "Str. Lunga 1",
	"openingHours": {
		"weekday":  {"start": {"hour": 9, "minute": 0}, "end": {"hour": 22, "minute": 0}},
		"saturday": {"start": {"hour": 10, "minute": 0}, "end": {"hour": 23, "minute": 30}},
		"sunday":   {"start": {"hour": 10, "minute": 0}, "end": {"hour": 20, "minute": 0}}
	},
	"imageSet": [{"orderNo": 0, "uri": "http://img/0.png", "width": 800, "height": 450}]
}`

// ==========================
// Construction
// ==========================

func TestNewRegistry_CompilesEveryDocument(t *testing.T) {
	r := createTestRegistry(t)

	names := r.Names()
	assert.Len(t, names, 32)
	for _, name := range names {
		_, ok := r.compiled[name]
		assert.True(t, ok, "schema %s not compiled", name)
	}
}

func TestRegistry_NamesAreSorted(t *testing.T) {
	names := createTestRegistry(t).Names()
	for i := 1; i < len(names); i++ {
		assert.Less(t, string(names[i-1]), string(names[i]))
	}
}

func TestRegistry_Document(t *testing.T) {
	r := createTestRegistry(t)

	raw, err := r.Document(TimeOfDay)
	require.NoError(t, err)

	var d map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &d))
	assert.Equal(t, draft04, d["$schema"])
	assert.Equal(t, "object", d["type"])
	assert.Equal(t, false, d["additionalProperties"])

	_, err = r.Document("Nope")
	assert.True(t, errors.Is(err, ErrUnknownSchema))
}

func TestRegistry_DocumentDoesNotLeakRootKeyword(t *testing.T) {
	r := createTestRegistry(t)
	_, err := r.Document(OpeningHours)
	require.NoError(t, err)

	weekday := r.documents[OpeningHours]["properties"].(doc)["weekday"].(doc)
	_, has := weekday["$schema"]
	assert.False(t, has)
}

// ==========================
// Validation
// ==========================

func TestRegistry_Validate(t *testing.T) {
	r := createTestRegistry(t)

	tests := []struct {
		name         string
		schema       Name
		doc          string
		wantErr      bool
		wantPath     string
		wantExpected string
	}{
		{name: "valid org creation", schema: OrgCreationRequest, doc: validOrgCreation},
		{
			name:    "missing field",
			schema:  MenuSectionCreationRequest,
			doc:     `{"name": "Starters"}`,
			wantErr: true, wantPath: "(root)",
		},
		{
			name:    "extra field",
			schema:  MenuSectionCreationRequest,
			doc:     `{"name": "Starters", "description": "", "color": "red"}`,
			wantErr: true, wantPath: "(root)",
		},
		{
			name:    "wrong type",
			schema:  TimeOfDay,
			doc:     `{"hour": "nine", "minute": 0}`,
			wantErr: true, wantPath: "hour", wantExpected: "integer",
		},
		{
			name:    "out of range",
			schema:  TimeOfDay,
			doc:     `{"hour": 24, "minute": 0}`,
			wantErr: true, wantPath: "hour",
		},
		{
			name:    "image too narrow",
			schema:  ImageSet,
			doc:     `[{"orderNo": 0, "uri": "u", "width": 640, "height": 450}]`,
			wantErr: true, wantPath: "0.width",
		},
		{name: "empty keywords", schema: Keywords, doc: `[]`},
		{
			name:    "keyword not a string",
			schema:  Keywords,
			doc:     `["a", 1]`,
			wantErr: true, wantPath: "1", wantExpected: "string",
		},
		{name: "update with one field", schema: RestaurantUpdateRequest, doc: `{"address": "Str. Noua 2"}`},
		{name: "empty update", schema: RestaurantUpdateRequest, doc: `{}`, wantErr: true},
		{
			name:    "update with unknown field",
			schema:  MenuItemUpdateRequest,
			doc:     `{"sectionId": 3}`,
			wantErr: true,
		},
		{name: "top level not an object", schema: OrgCreationRequest, doc: `[1, 2]`, wantErr: true, wantPath: "(root)"},
		{
			name:   "org response",
			schema: OrgResponse,
			doc:    `{"org": {"id": 1, "timeCreatedTs": 1700000000}}`,
		},
		{
			name:    "org response with extra field",
			schema:  OrgResponse,
			doc:     `{"org": {"id": 1, "timeCreatedTs": 1700000000, "name": "x"}}`,
			wantErr: true, wantPath: "org",
		},
		{name: "empty section list", schema: MenuSectionsResponse, doc: `{"menuSections": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Validate(tt.schema, decode(t, tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.schema, se.Schema)
			assert.NotEmpty(t, se.Violations)
			assert.NotEmpty(t, se.Reason)
			if tt.wantPath != "" {
				assert.Equal(t, tt.wantPath, se.Path)
			}
			if tt.wantExpected != "" {
				assert.Equal(t, tt.wantExpected, se.ExpectedType)
			}
		})
	}
}

func TestRegistry_ValidateGoValues(t *testing.T) {
	r := createTestRegistry(t)

	type tod struct {
		Hour   int `json:"hour"`
		Minute int `json:"minute"`
	}
	assert.NoError(t, r.Validate(TimeOfDay, tod{Hour: 9, Minute: 30}))
	assert.Error(t, r.Validate(TimeOfDay, tod{Hour: 9, Minute: 60}))
	assert.Error(t, r.Validate(Keywords, []string(nil)))
}

func TestRegistry_ValidateUnknownSchema(t *testing.T) {
	err := createTestRegistry(t).Validate("Missing", map[string]interface{}{})
	assert.True(t, errors.Is(err, ErrUnknownSchema))
}

func TestRegistry_ViolationsSortedByPath(t *testing.T) {
	r := createTestRegistry(t)

	err := r.Validate(Image, decode(t, `{"orderNo": -1, "uri": 5, "width": 10, "height": 10}`))
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	require.GreaterOrEqual(t, len(se.Violations), 4)
	for i := 1; i < len(se.Violations); i++ {
		assert.LessOrEqual(t, se.Violations[i-1].Path, se.Violations[i].Path)
	}
	assert.Equal(t, "height", se.Path)
}

func TestStructuralError_Message(t *testing.T) {
	err := &StructuralError{Schema: TimeOfDay, Path: "hour", Reason: "Must be less than or equal to 23"}
	assert.Equal(t, "hour does not match TimeOfDay: Must be less than or equal to 23", err.Error())
}
