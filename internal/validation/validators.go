// internal/validation/validators.go
package validation

import "inventory-service/internal/schemas"

// Config carries the limits the field validators are built with.
type Config struct {
	NameMaxLength        int
	DescriptionMaxLength int
	AddressMaxLength     int
	KeywordMaxLength     int
	IngredientMaxLength  int
	SubdomainMaxLength   int
	EmailNameMaxLength   int
	PhoneRegion          string
}

func DefaultConfig() Config {
	return Config{
		NameMaxLength:        DefaultNameMaxLength,
		DescriptionMaxLength: DefaultDescriptionMaxLength,
		AddressMaxLength:     DefaultAddressMaxLength,
		KeywordMaxLength:     DefaultKeywordMaxLength,
		IngredientMaxLength:  DefaultIngredientMaxLength,
		SubdomainMaxLength:   DefaultSubdomainMaxLength,
		EmailNameMaxLength:   DefaultEmailNameMaxLength,
		PhoneRegion:          DefaultPhoneRegion,
	}
}

// Validators is the full set of request validators, sharing one instance of each
// field validator.
type Validators struct {
	ID                   IDValidator
	OrgCreation          *OrgCreationRequestValidator
	RestaurantUpdate     *RestaurantUpdateRequestValidator
	MenuSectionCreation  *MenuSectionCreationRequestValidator
	MenuSectionUpdate    *MenuSectionUpdateRequestValidator
	MenuItemCreation     *MenuItemCreationRequestValidator
	MenuItemUpdate       *MenuItemUpdateRequestValidator
	PlatformsWebsite     *PlatformsWebsiteUpdateRequestValidator
	PlatformsCallcenter  *PlatformsCallcenterUpdateRequestValidator
	PlatformsEmailcenter *PlatformsEmailcenterUpdateRequestValidator
}

func NewValidators(registry *schemas.Registry, cfg Config) *Validators {
	id := NewIDValidator()
	name := NewNameValidator(cfg.NameMaxLength)
	description := NewDescriptionValidator(cfg.DescriptionMaxLength)
	address := NewAddressValidator(cfg.AddressMaxLength)
	keywords := NewKeywordsValidator(registry, cfg.KeywordMaxLength)
	ingredients := NewIngredientsValidator(registry, cfg.IngredientMaxLength)
	openingHours := NewOpeningHoursValidator(registry)
	imageSet := NewImageSetValidator(registry)

	return &Validators{
		ID:                   id,
		OrgCreation:          NewOrgCreationRequestValidator(registry, name, description, keywords, address, openingHours, imageSet),
		RestaurantUpdate:     NewRestaurantUpdateRequestValidator(registry, name, description, keywords, address, openingHours, imageSet),
		MenuSectionCreation:  NewMenuSectionCreationRequestValidator(registry, name, description),
		MenuSectionUpdate:    NewMenuSectionUpdateRequestValidator(registry, name, description),
		MenuItemCreation:     NewMenuItemCreationRequestValidator(registry, id, name, description, keywords, ingredients, imageSet),
		MenuItemUpdate:       NewMenuItemUpdateRequestValidator(registry, name, description, keywords, ingredients, imageSet),
		PlatformsWebsite:     NewPlatformsWebsiteUpdateRequestValidator(registry, NewSubdomainValidator(cfg.SubdomainMaxLength)),
		PlatformsCallcenter:  NewPlatformsCallcenterUpdateRequestValidator(registry, NewPhoneNumberValidator(cfg.PhoneRegion)),
		PlatformsEmailcenter: NewPlatformsEmailcenterUpdateRequestValidator(registry, NewEmailNameValidator(cfg.EmailNameMaxLength)),
	}
}
