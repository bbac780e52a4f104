// internal/store/store.go
package store

import (
	"context"
	"errors"

	"inventory-service/internal/validation"
)

var (
	ErrOrgNotFound      = errors.New("ORG_NOT_FOUND")
	ErrOrgAlreadyExists = errors.New("ORG_ALREADY_EXISTS")
	ErrSectionNotFound  = errors.New("MENU_SECTION_NOT_FOUND")
	ErrItemNotFound     = errors.New("MENU_ITEM_NOT_FOUND")
)

// Store persists the inventory of each org. Every operation is scoped to the org
// owned by userID. Writes only accept normalized requests; reads return entities
// keyed by external names.
type Store interface {
	CreateOrg(ctx context.Context, userID int64, req validation.OrgCreationRequest) (Fields, error)
	GetOrg(ctx context.Context, userID int64) (Fields, error)

	GetRestaurant(ctx context.Context, userID int64) (Fields, error)
	UpdateRestaurant(ctx context.Context, userID int64, req validation.RestaurantUpdateRequest) (Fields, error)

	CreateMenuSection(ctx context.Context, userID int64, req validation.MenuSectionCreationRequest) (Fields, error)
	GetMenuSections(ctx context.Context, userID int64) ([]Fields, error)
	GetMenuSection(ctx context.Context, userID, sectionID int64) (Fields, error)
	UpdateMenuSection(ctx context.Context, userID, sectionID int64, req validation.MenuSectionUpdateRequest) (Fields, error)
	DeleteMenuSection(ctx context.Context, userID, sectionID int64) error

	CreateMenuItem(ctx context.Context, userID int64, req validation.MenuItemCreationRequest) (Fields, error)
	GetMenuItems(ctx context.Context, userID int64) ([]Fields, error)
	GetMenuItem(ctx context.Context, userID, itemID int64) (Fields, error)
	UpdateMenuItem(ctx context.Context, userID, itemID int64, req validation.MenuItemUpdateRequest) (Fields, error)
	DeleteMenuItem(ctx context.Context, userID, itemID int64) error

	GetPlatformsWebsite(ctx context.Context, userID int64) (Fields, error)
	UpdatePlatformsWebsite(ctx context.Context, userID int64, req validation.PlatformsWebsiteUpdateRequest) (Fields, error)
	GetPlatformsCallcenter(ctx context.Context, userID int64) (Fields, error)
	UpdatePlatformsCallcenter(ctx context.Context, userID int64, req validation.PlatformsCallcenterUpdateRequest) (Fields, error)
	GetPlatformsEmailcenter(ctx context.Context, userID int64) (Fields, error)
	UpdatePlatformsEmailcenter(ctx context.Context, userID int64, req validation.PlatformsEmailcenterUpdateRequest) (Fields, error)
}
