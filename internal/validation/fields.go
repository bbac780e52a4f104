// internal/validation/fields.go
package validation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"inventory-service/internal/common/slug"
	"inventory-service/internal/models"
	"inventory-service/internal/schemas"

	"github.com/asaskevich/govalidator"
	"github.com/nyaruka/phonenumbers"
)

// FieldValidator normalizes a single semantic field or rejects it.
// Validate must be pure: the same input always gives the same result.
type FieldValidator[T any] interface {
	Validate(raw T) (T, error)
}

const (
	DefaultNameMaxLength        = 100
	DefaultDescriptionMaxLength = 1000
	DefaultAddressMaxLength     = 100
	DefaultKeywordMaxLength     = 100
	DefaultIngredientMaxLength  = 100
	DefaultSubdomainMaxLength   = 100
	DefaultEmailNameMaxLength   = 100
	DefaultPhoneRegion          = "RO"
)

// emailProbeDomain completes an email name into an address for syntax checking.
const emailProbeDomain = "example.com"

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ==========================
// Ids
// ==========================

type IDValidator struct{}

func NewIDValidator() IDValidator {
	return IDValidator{}
}

func (IDValidator) Validate(id int64) (int64, error) {
	if id <= 0 {
		return 0, fieldError("id", "%d is not a positive id", id)
	}
	return id, nil
}

// ==========================
// Free text
// ==========================

type NameValidator struct {
	maxLength int
}

func NewNameValidator(maxLength int) *NameValidator {
	return &NameValidator{maxLength: maxLength}
}

func (v *NameValidator) Validate(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fieldError("name", "is empty")
	}
	if runeLen(name) > v.maxLength {
		return "", fieldError("name", "is longer than %d characters", v.maxLength)
	}
	return name, nil
}

type DescriptionValidator struct {
	maxLength int
}

func NewDescriptionValidator(maxLength int) *DescriptionValidator {
	return &DescriptionValidator{maxLength: maxLength}
}

func (v *DescriptionValidator) Validate(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if runeLen(description) > v.maxLength {
		return "", fieldError("description", "is longer than %d characters", v.maxLength)
	}
	return description, nil
}

type AddressValidator struct {
	maxLength int
}

func NewAddressValidator(maxLength int) *AddressValidator {
	return &AddressValidator{maxLength: maxLength}
}

func (v *AddressValidator) Validate(raw string) (string, error) {
	address := strings.TrimSpace(raw)
	if runeLen(address) > v.maxLength {
		return "", fieldError("address", "is longer than %d characters", v.maxLength)
	}
	return address, nil
}

// ==========================
// String sets
// ==========================

// stringSet trims, deduplicates and sorts a list of short strings.
type stringSet struct {
	registry  *schemas.Registry
	schema    schemas.Name
	field     string
	element   string
	maxLength int
}

func (s stringSet) validate(raw []string) ([]string, error) {
	if err := s.registry.Validate(s.schema, raw); err != nil {
		return nil, &FieldError{Field: s.field, Reason: "has the wrong shape", Cause: err}
	}

	out := make([]string, 0, len(raw))
	for i, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fieldError(s.field, "%s at position %d is empty", s.element, i)
		}
		if runeLen(item) > s.maxLength {
			return nil, fieldError(s.field, "%s at position %d is longer than %d characters", s.element, i, s.maxLength)
		}
		out = append(out, item)
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

type KeywordsValidator struct {
	set stringSet
}

func NewKeywordsValidator(registry *schemas.Registry, maxLength int) *KeywordsValidator {
	return &KeywordsValidator{set: stringSet{
		registry:  registry,
		schema:    schemas.Keywords,
		field:     "keywords",
		element:   "keyword",
		maxLength: maxLength,
	}}
}

func (v *KeywordsValidator) Validate(raw []string) ([]string, error) {
	return v.set.validate(raw)
}

type IngredientsValidator struct {
	set stringSet
}

func NewIngredientsValidator(registry *schemas.Registry, maxLength int) *IngredientsValidator {
	return &IngredientsValidator{set: stringSet{
		registry:  registry,
		schema:    schemas.Ingredients,
		field:     "ingredients",
		element:   "ingredient",
		maxLength: maxLength,
	}}
}

func (v *IngredientsValidator) Validate(raw []string) ([]string, error) {
	return v.set.validate(raw)
}

// ==========================
// Structured values
// ==========================

type OpeningHoursValidator struct {
	registry *schemas.Registry
}

func NewOpeningHoursValidator(registry *schemas.Registry) *OpeningHoursValidator {
	return &OpeningHoursValidator{registry: registry}
}

func (v *OpeningHoursValidator) Validate(raw models.OpeningHours) (models.OpeningHours, error) {
	if err := v.registry.Validate(schemas.OpeningHours, raw); err != nil {
		return models.OpeningHours{}, &FieldError{Field: "openingHours", Reason: "has the wrong shape", Cause: err}
	}

	for _, li := range raw.Labelled() {
		if !li.Interval.Start.Before(li.Interval.End) {
			return models.OpeningHours{}, fieldError("openingHours",
				"%s interval starts at %s which is not before its end at %s",
				li.Label, li.Interval.Start, li.Interval.End)
		}
	}
	return raw, nil
}

type ImageSetValidator struct {
	registry *schemas.Registry
}

func NewImageSetValidator(registry *schemas.Registry) *ImageSetValidator {
	return &ImageSetValidator{registry: registry}
}

func (v *ImageSetValidator) Validate(raw models.ImageSet) (models.ImageSet, error) {
	if err := v.registry.Validate(schemas.ImageSet, raw); err != nil {
		return nil, &FieldError{Field: "imageSet", Reason: "has the wrong shape", Cause: err}
	}

	out := make(models.ImageSet, len(raw))
	for i, img := range raw {
		if img.OrderNo != i {
			return nil, fieldError("imageSet", "image at position %d has order number %d", i, img.OrderNo)
		}
		img.URI = strings.TrimSpace(img.URI)
		if img.URI == "" {
			return nil, fieldError("imageSet", "image at position %d has an empty uri", i)
		}
		out[i] = img
	}
	return out, nil
}

// ==========================
// Platforms
// ==========================

type SubdomainValidator struct {
	maxLength int
}

func NewSubdomainValidator(maxLength int) *SubdomainValidator {
	return &SubdomainValidator{maxLength: maxLength}
}

func (v *SubdomainValidator) Validate(raw string) (string, error) {
	if raw == "" {
		return "", fieldError("subdomain", "is empty")
	}
	if runeLen(raw) > v.maxLength {
		return "", fieldError("subdomain", "is longer than %d characters", v.maxLength)
	}
	if canonical := slug.Make(raw); canonical != raw {
		return "", fieldError("subdomain", "%q is not in canonical form, expected %q", raw, canonical)
	}
	return raw, nil
}

type PhoneNumberValidator struct {
	region string
}

func NewPhoneNumberValidator(region string) *PhoneNumberValidator {
	return &PhoneNumberValidator{region: strings.ToUpper(region)}
}

// Validate parses raw with the region's numbering plan and renders it in the
// national format, so already-normalized input is returned unchanged.
func (v *PhoneNumberValidator) Validate(raw string) (string, error) {
	number, err := phonenumbers.Parse(raw, v.region)
	if err != nil {
		return "", &FieldError{Field: "phoneNumber", Reason: "could not be parsed", Cause: err}
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumberForRegion(number, v.region) {
		return "", fieldError("phoneNumber", "%q is not a valid number for region %s", raw, v.region)
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL), nil
}

type EmailNameValidator struct {
	maxLength int
}

func NewEmailNameValidator(maxLength int) *EmailNameValidator {
	return &EmailNameValidator{maxLength: maxLength}
}

func (v *EmailNameValidator) Validate(raw string) (string, error) {
	if runeLen(raw) > v.maxLength {
		return "", fieldError("emailName", "is longer than %d characters", v.maxLength)
	}
	if !govalidator.IsEmail(raw + "@" + emailProbeDomain) {
		return "", fieldError("emailName", "%q is not a valid email name", raw)
	}
	return raw, nil
}
