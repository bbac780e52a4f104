// internal/validation/requests.go
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"inventory-service/internal/models"
	"inventory-service/internal/schemas"
)

// ==========================
// Normalized requests
// ==========================

// Requests returned by the validators are fully normalized and must not be modified.
// Update requests use nil pointers for absent fields.

type OrgCreationRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Keywords     []string            `json:"keywords"`
	Address      string              `json:"address"`
	OpeningHours models.OpeningHours `json:"openingHours"`
	ImageSet     models.ImageSet     `json:"imageSet"`
}

// RestaurantFields returns the restaurant part of the request keyed by external names.
func (r OrgCreationRequest) RestaurantFields() map[string]interface{} {
	return map[string]interface{}{
		"name":         r.Name,
		"description":  r.Description,
		"keywords":     r.Keywords,
		"address":      r.Address,
		"openingHours": r.OpeningHours,
		"imageSet":     r.ImageSet,
	}
}

type RestaurantUpdateRequest struct {
	Name         *string              `json:"name,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Keywords     *[]string            `json:"keywords,omitempty"`
	Address      *string              `json:"address,omitempty"`
	OpeningHours *models.OpeningHours `json:"openingHours,omitempty"`
	ImageSet     *models.ImageSet     `json:"imageSet,omitempty"`
}

func (r RestaurantUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "name", r.Name)
	setIf(fields, "description", r.Description)
	setIf(fields, "keywords", r.Keywords)
	setIf(fields, "address", r.Address)
	setIf(fields, "openingHours", r.OpeningHours)
	setIf(fields, "imageSet", r.ImageSet)
	return fields
}

type MenuSectionCreationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r MenuSectionCreationRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":        r.Name,
		"description": r.Description,
	}
}

type MenuSectionUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r MenuSectionUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "name", r.Name)
	setIf(fields, "description", r.Description)
	return fields
}

type MenuItemCreationRequest struct {
	SectionID   int64           `json:"sectionId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Keywords    []string        `json:"keywords"`
	Ingredients []string        `json:"ingredients"`
	ImageSet    models.ImageSet `json:"imageSet"`
}

func (r MenuItemCreationRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"sectionId":   r.SectionID,
		"name":        r.Name,
		"description": r.Description,
		"keywords":    r.Keywords,
		"ingredients": r.Ingredients,
		"imageSet":    r.ImageSet,
	}
}

type MenuItemUpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Keywords    *[]string        `json:"keywords,omitempty"`
	Ingredients *[]string        `json:"ingredients,omitempty"`
	ImageSet    *models.ImageSet `json:"imageSet,omitempty"`
}

func (r MenuItemUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "name", r.Name)
	setIf(fields, "description", r.Description)
	setIf(fields, "keywords", r.Keywords)
	setIf(fields, "ingredients", r.Ingredients)
	setIf(fields, "imageSet", r.ImageSet)
	return fields
}

type PlatformsWebsiteUpdateRequest struct {
	Subdomain *string `json:"subdomain,omitempty"`
}

func (r PlatformsWebsiteUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "subdomain", r.Subdomain)
	return fields
}

type PlatformsCallcenterUpdateRequest struct {
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

func (r PlatformsCallcenterUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "phoneNumber", r.PhoneNumber)
	return fields
}

type PlatformsEmailcenterUpdateRequest struct {
	EmailName *string `json:"emailName,omitempty"`
}

func (r PlatformsEmailcenterUpdateRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setIf(fields, "emailName", r.EmailName)
	return fields
}

func setIf[T any](fields map[string]interface{}, key string, value *T) {
	if value != nil {
		fields[key] = *value
	}
}

// ==========================
// Pipeline
// ==========================

// parse runs the decode and structural stages and binds the document to out.
func parse(registry *schemas.Registry, subject string, schema schemas.Name, raw []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var document interface{}
	if err := dec.Decode(&document); err != nil {
		return &Error{Kind: MalformedPayload, Subject: subject, Cause: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &Error{Kind: MalformedPayload, Subject: subject, Cause: errTrailingData}
	}

	if err := registry.Validate(schema, document); err != nil {
		ve := &Error{Kind: StructuralMismatch, Subject: subject, Cause: err}
		var se *schemas.StructuralError
		if errors.As(err, &se) {
			ve.Path = se.Path
		}
		return ve
	}

	// The document has the right shape; binding can still fail on numbers such as
	// 9.0 or values that overflow the target type.
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: StructuralMismatch, Subject: subject, Cause: err}
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after the JSON document")

func check[T any](subject, field string, fv FieldValidator[T], value *T) error {
	out, err := fv.Validate(*value)
	if err != nil {
		return &Error{Kind: SemanticInvalid, Subject: subject, Field: field, Cause: err}
	}
	*value = out
	return nil
}

func checkIf[T any](subject, field string, fv FieldValidator[T], value *T) error {
	if value == nil {
		return nil
	}
	return check(subject, field, fv, value)
}

// ==========================
// Org and restaurant
// ==========================

type OrgCreationRequestValidator struct {
	registry     *schemas.Registry
	name         FieldValidator[string]
	description  FieldValidator[string]
	keywords     FieldValidator[[]string]
	address      FieldValidator[string]
	openingHours FieldValidator[models.OpeningHours]
	imageSet     FieldValidator[models.ImageSet]
}

func NewOrgCreationRequestValidator(
	registry *schemas.Registry,
	name, description FieldValidator[string],
	keywords FieldValidator[[]string],
	address FieldValidator[string],
	openingHours FieldValidator[models.OpeningHours],
	imageSet FieldValidator[models.ImageSet],
) *OrgCreationRequestValidator {
	return &OrgCreationRequestValidator{
		registry:     registry,
		name:         name,
		description:  description,
		keywords:     keywords,
		address:      address,
		openingHours: openingHours,
		imageSet:     imageSet,
	}
}

func (v *OrgCreationRequestValidator) Validate(raw []byte) (OrgCreationRequest, error) {
	const subject = "org creation"

	var req OrgCreationRequest
	if err := parse(v.registry, subject, schemas.OrgCreationRequest, raw, &req); err != nil {
		return OrgCreationRequest{}, err
	}

	if err := check(subject, "name", v.name, &req.Name); err != nil {
		return OrgCreationRequest{}, err
	}
	if err := check(subject, "description", v.description, &req.Description); err != nil {
		return OrgCreationRequest{}, err
	}
	if err := check(subject, "keywords", v.keywords, &req.Keywords); err != nil {
		return OrgCreationRequest{}, err
	}
	if err := check(subject, "address", v.address, &req.Address); err != nil {
		return OrgCreationRequest{}, err
	}
	if err := check(subject, "openingHours", v.openingHours, &req.OpeningHours); err != nil {
		return OrgCreationRequest{}, err
	}
	if err := check(subject, "imageSet", v.imageSet, &req.ImageSet); err != nil {
		return OrgCreationRequest{}, err
	}
	return req, nil
}

type RestaurantUpdateRequestValidator struct {
	registry     *schemas.Registry
	name         FieldValidator[string]
	description  FieldValidator[string]
	keywords     FieldValidator[[]string]
	address      FieldValidator[string]
	openingHours FieldValidator[models.OpeningHours]
	imageSet     FieldValidator[models.ImageSet]
}

func NewRestaurantUpdateRequestValidator(
	registry *schemas.Registry,
	name, description FieldValidator[string],
	keywords FieldValidator[[]string],
	address FieldValidator[string],
	openingHours FieldValidator[models.OpeningHours],
	imageSet FieldValidator[models.ImageSet],
) *RestaurantUpdateRequestValidator {
	return &RestaurantUpdateRequestValidator{
		registry:     registry,
		name:         name,
		description:  description,
		keywords:     keywords,
		address:      address,
		openingHours: openingHours,
		imageSet:     imageSet,
	}
}

func (v *RestaurantUpdateRequestValidator) Validate(raw []byte) (RestaurantUpdateRequest, error) {
	const subject = "restaurant update"

	var req RestaurantUpdateRequest
	if err := parse(v.registry, subject, schemas.RestaurantUpdateRequest, raw, &req); err != nil {
		return RestaurantUpdateRequest{}, err
	}

	if err := checkIf(subject, "name", v.name, req.Name); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	if err := checkIf(subject, "description", v.description, req.Description); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	if err := checkIf(subject, "keywords", v.keywords, req.Keywords); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	if err := checkIf(subject, "address", v.address, req.Address); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	if err := checkIf(subject, "openingHours", v.openingHours, req.OpeningHours); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	if err := checkIf(subject, "imageSet", v.imageSet, req.ImageSet); err != nil {
		return RestaurantUpdateRequest{}, err
	}
	return req, nil
}

// ==========================
// Menu
// ==========================

type MenuSectionCreationRequestValidator struct {
	registry    *schemas.Registry
	name        FieldValidator[string]
	description FieldValidator[string]
}

func NewMenuSectionCreationRequestValidator(registry *schemas.Registry, name, description FieldValidator[string]) *MenuSectionCreationRequestValidator {
	return &MenuSectionCreationRequestValidator{registry: registry, name: name, description: description}
}

func (v *MenuSectionCreationRequestValidator) Validate(raw []byte) (MenuSectionCreationRequest, error) {
	const subject = "menu section creation"

	var req MenuSectionCreationRequest
	if err := parse(v.registry, subject, schemas.MenuSectionCreationRequest, raw, &req); err != nil {
		return MenuSectionCreationRequest{}, err
	}

	if err := check(subject, "name", v.name, &req.Name); err != nil {
		return MenuSectionCreationRequest{}, err
	}
	if err := check(subject, "description", v.description, &req.Description); err != nil {
		return MenuSectionCreationRequest{}, err
	}
	return req, nil
}

type MenuSectionUpdateRequestValidator struct {
	registry    *schemas.Registry
	name        FieldValidator[string]
	description FieldValidator[string]
}

func NewMenuSectionUpdateRequestValidator(registry *schemas.Registry, name, description FieldValidator[string]) *MenuSectionUpdateRequestValidator {
	return &MenuSectionUpdateRequestValidator{registry: registry, name: name, description: description}
}

func (v *MenuSectionUpdateRequestValidator) Validate(raw []byte) (MenuSectionUpdateRequest, error) {
	const subject = "menu section update"

	var req MenuSectionUpdateRequest
	if err := parse(v.registry, subject, schemas.MenuSectionUpdateRequest, raw, &req); err != nil {
		return MenuSectionUpdateRequest{}, err
	}

	if err := checkIf(subject, "name", v.name, req.Name); err != nil {
		return MenuSectionUpdateRequest{}, err
	}
	if err := checkIf(subject, "description", v.description, req.Description); err != nil {
		return MenuSectionUpdateRequest{}, err
	}
	return req, nil
}

type MenuItemCreationRequestValidator struct {
	registry    *schemas.Registry
	id          FieldValidator[int64]
	name        FieldValidator[string]
	description FieldValidator[string]
	keywords    FieldValidator[[]string]
	ingredients FieldValidator[[]string]
	imageSet    FieldValidator[models.ImageSet]
}

func NewMenuItemCreationRequestValidator(
	registry *schemas.Registry,
	id FieldValidator[int64],
	name, description FieldValidator[string],
	keywords, ingredients FieldValidator[[]string],
	imageSet FieldValidator[models.ImageSet],
) *MenuItemCreationRequestValidator {
	return &MenuItemCreationRequestValidator{
		registry:    registry,
		id:          id,
		name:        name,
		description: description,
		keywords:    keywords,
		ingredients: ingredients,
		imageSet:    imageSet,
	}
}

func (v *MenuItemCreationRequestValidator) Validate(raw []byte) (MenuItemCreationRequest, error) {
	const subject = "menu item creation"

	var req MenuItemCreationRequest
	if err := parse(v.registry, subject, schemas.MenuItemCreationRequest, raw, &req); err != nil {
		return MenuItemCreationRequest{}, err
	}

	if err := check(subject, "sectionId", v.id, &req.SectionID); err != nil {
		return MenuItemCreationRequest{}, err
	}
	if err := check(subject, "name", v.name, &req.Name); err != nil {
		return MenuItemCreationRequest{}, err
	}
	if err := check(subject, "description", v.description, &req.Description); err != nil {
		return MenuItemCreationRequest{}, err
	}
	if err := check(subject, "keywords", v.keywords, &req.Keywords); err != nil {
		return MenuItemCreationRequest{}, err
	}
	if err := check(subject, "ingredients", v.ingredients, &req.Ingredients); err != nil {
		return MenuItemCreationRequest{}, err
	}
	if err := check(subject, "imageSet", v.imageSet, &req.ImageSet); err != nil {
		return MenuItemCreationRequest{}, err
	}
	return req, nil
}

type MenuItemUpdateRequestValidator struct {
	registry    *schemas.Registry
	name        FieldValidator[string]
	description FieldValidator[string]
	keywords    FieldValidator[[]string]
	ingredients FieldValidator[[]string]
	imageSet    FieldValidator[models.ImageSet]
}

func NewMenuItemUpdateRequestValidator(
	registry *schemas.Registry,
	name, description FieldValidator[string],
	keywords, ingredients FieldValidator[[]string],
	imageSet FieldValidator[models.ImageSet],
) *MenuItemUpdateRequestValidator {
	return &MenuItemUpdateRequestValidator{
		registry:    registry,
		name:        name,
		description: description,
		keywords:    keywords,
		ingredients: ingredients,
		imageSet:    imageSet,
	}
}

func (v *MenuItemUpdateRequestValidator) Validate(raw []byte) (MenuItemUpdateRequest, error) {
	const subject = "menu item update"

	var req MenuItemUpdateRequest
	if err := parse(v.registry, subject, schemas.MenuItemUpdateRequest, raw, &req); err != nil {
		return MenuItemUpdateRequest{}, err
	}

	if err := checkIf(subject, "name", v.name, req.Name); err != nil {
		return MenuItemUpdateRequest{}, err
	}
	if err := checkIf(subject, "description", v.description, req.Description); err != nil {
		return MenuItemUpdateRequest{}, err
	}
	if err := checkIf(subject, "keywords", v.keywords, req.Keywords); err != nil {
		return MenuItemUpdateRequest{}, err
	}
	if err := checkIf(subject, "ingredients", v.ingredients, req.Ingredients); err != nil {
		return MenuItemUpdateRequest{}, err
	}
	if err := checkIf(subject, "imageSet", v.imageSet, req.ImageSet); err != nil {
		return MenuItemUpdateRequest{}, err
	}
	return req, nil
}

// ==========================
// Platforms
// ==========================

type PlatformsWebsiteUpdateRequestValidator struct {
	registry  *schemas.Registry
	subdomain FieldValidator[string]
}

func NewPlatformsWebsiteUpdateRequestValidator(registry *schemas.Registry, subdomain FieldValidator[string]) *PlatformsWebsiteUpdateRequestValidator {
	return &PlatformsWebsiteUpdateRequestValidator{registry: registry, subdomain: subdomain}
}

func (v *PlatformsWebsiteUpdateRequestValidator) Validate(raw []byte) (PlatformsWebsiteUpdateRequest, error) {
	const subject = "platforms website update"

	var req PlatformsWebsiteUpdateRequest
	if err := parse(v.registry, subject, schemas.PlatformsWebsiteUpdateRequest, raw, &req); err != nil {
		return PlatformsWebsiteUpdateRequest{}, err
	}
	if err := checkIf(subject, "subdomain", v.subdomain, req.Subdomain); err != nil {
		return PlatformsWebsiteUpdateRequest{}, err
	}
	return req, nil
}

type PlatformsCallcenterUpdateRequestValidator struct {
	registry    *schemas.Registry
	phoneNumber FieldValidator[string]
}

func NewPlatformsCallcenterUpdateRequestValidator(registry *schemas.Registry, phoneNumber FieldValidator[string]) *PlatformsCallcenterUpdateRequestValidator {
	return &PlatformsCallcenterUpdateRequestValidator{registry: registry, phoneNumber: phoneNumber}
}

func (v *PlatformsCallcenterUpdateRequestValidator) Validate(raw []byte) (PlatformsCallcenterUpdateRequest, error) {
	const subject = "platforms callcenter update"

	var req PlatformsCallcenterUpdateRequest
	if err := parse(v.registry, subject, schemas.PlatformsCallcenterUpdateRequest, raw, &req); err != nil {
		return PlatformsCallcenterUpdateRequest{}, err
	}
	if err := checkIf(subject, "phoneNumber", v.phoneNumber, req.PhoneNumber); err != nil {
		return PlatformsCallcenterUpdateRequest{}, err
	}
	return req, nil
}

type PlatformsEmailcenterUpdateRequestValidator struct {
	registry  *schemas.Registry
	emailName FieldValidator[string]
}

func NewPlatformsEmailcenterUpdateRequestValidator(registry *schemas.Registry, emailName FieldValidator[string]) *PlatformsEmailcenterUpdateRequestValidator {
	return &PlatformsEmailcenterUpdateRequestValidator{registry: registry, emailName: emailName}
}

func (v *PlatformsEmailcenterUpdateRequestValidator) Validate(raw []byte) (PlatformsEmailcenterUpdateRequest, error) {
	const subject = "platforms emailcenter update"

	var req PlatformsEmailcenterUpdateRequest
	if err := parse(v.registry, subject, schemas.PlatformsEmailcenterUpdateRequest, raw, &req); err != nil {
		return PlatformsEmailcenterUpdateRequest{}, err
	}
	if err := checkIf(subject, "emailName", v.emailName, req.EmailName); err != nil {
		return PlatformsEmailcenterUpdateRequest{}, err
	}
	return req, nil
}
