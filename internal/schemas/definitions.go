// internal/schemas/definitions.go
package schemas

// Name identifies a document in the registry.
type Name string

// Shared sub-schemas.
const (
	TimeOfDay    Name = "TimeOfDay"
	Interval     Name = "Interval"
	OpeningHours Name = "OpeningHours"
	Image        Name = "Image"
	ImageSet     Name = "ImageSet"
	Keywords     Name = "Keywords"
	Ingredients  Name = "Ingredients"
)

// Entities.
const (
	Org                  Name = "Org"
	Restaurant           Name = "Restaurant"
	MenuSection          Name = "MenuSection"
	MenuItem             Name = "MenuItem"
	PlatformsWebsite     Name = "PlatformsWebsite"
	PlatformsCallcenter  Name = "PlatformsCallcenter"
	PlatformsEmailcenter Name = "PlatformsEmailcenter"
)

// Requests.
const (
	OrgCreationRequest                Name = "OrgCreationRequest"
	RestaurantUpdateRequest           Name = "RestaurantUpdateRequest"
	MenuSectionCreationRequest        Name = "MenuSectionCreationRequest"
	MenuSectionUpdateRequest          Name = "MenuSectionUpdateRequest"
	MenuItemCreationRequest           Name = "MenuItemCreationRequest"
	MenuItemUpdateRequest             Name = "MenuItemUpdateRequest"
	PlatformsWebsiteUpdateRequest     Name = "PlatformsWebsiteUpdateRequest"
	PlatformsCallcenterUpdateRequest  Name = "PlatformsCallcenterUpdateRequest"
	PlatformsEmailcenterUpdateRequest Name = "PlatformsEmailcenterUpdateRequest"
)

// Responses.
const (
	OrgResponse                  Name = "OrgResponse"
	RestaurantResponse           Name = "RestaurantResponse"
	MenuSectionsResponse         Name = "MenuSectionsResponse"
	MenuSectionResponse          Name = "MenuSectionResponse"
	MenuItemsResponse            Name = "MenuItemsResponse"
	MenuItemResponse             Name = "MenuItemResponse"
	PlatformsWebsiteResponse     Name = "PlatformsWebsiteResponse"
	PlatformsCallcenterResponse  Name = "PlatformsCallcenterResponse"
	PlatformsEmailcenterResponse Name = "PlatformsEmailcenterResponse"
)

const draft04 = "http://json-schema.org/draft-04/schema#"

type doc = map[string]interface{}

func object(description string, properties doc, required ...string) doc {
	d := doc{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if description != "" {
		d["description"] = description
	}
	if len(required) > 0 {
		d["required"] = required
	}
	return d
}

// update is a closed object whose fields are all optional but at least one must be present.
func update(description string, properties doc) doc {
	d := object(description, properties)
	clauses := make([]interface{}, 0, len(properties))
	for _, field := range sortedKeys(properties) {
		clauses = append(clauses, doc{"required": []string{field}})
	}
	d["anyOf"] = clauses
	return d
}

func array(description string, items doc) doc {
	return doc{
		"description":     description,
		"type":            "array",
		"items":           items,
		"additionalItems": false,
	}
}

func list(key, singular string, items doc) doc {
	return object("", doc{key: array("A list of "+singular, items)}, key)
}

func envelope(key string, entity doc) doc {
	return object("", doc{key: entity}, key)
}

func str(description string) doc {
	return doc{"description": description, "type": "string"}
}

func integer(description string) doc {
	return doc{"description": description, "type": "integer"}
}

func integerMin(description string, min int) doc {
	d := integer(description)
	d["minimum"] = min
	return d
}

func integerRange(description string, min, max int) doc {
	d := integerMin(description, min)
	d["maximum"] = max
	return d
}

func timeOfDay() doc {
	return object("A time within a day", doc{
		"hour":   integerRange("The hour of the time", 0, 23),
		"minute": integerRange("The minute of the time", 0, 59),
	}, "hour", "minute")
}

func interval() doc {
	return object("A daily opening interval", doc{
		"start": timeOfDay(),
		"end":   timeOfDay(),
	}, "start", "end")
}

func openingHours() doc {
	return object("The opening hours of a restaurant", doc{
		"weekday":  interval(),
		"saturday": interval(),
		"sunday":   interval(),
	}, "weekday", "saturday", "sunday")
}

func image() doc {
	return object("An image", doc{
		"orderNo": integerMin("The position of the image within its set", 0),
		"uri":     str("The location of the image"),
		"width":   integerRange("The width of the image in pixels", 800, 1600),
		"height":  integerRange("The height of the image in pixels", 450, 900),
	}, "orderNo", "uri", "width", "height")
}

func imageSet() doc {
	return array("An ordered set of images", image())
}

func keywords() doc {
	return array("Keywords describing the entity", str("A keyword"))
}

func ingredients() doc {
	return array("Ingredients of a menu item", str("An ingredient"))
}

func restaurantFields() doc {
	return doc{
		"name":         str("The name of the restaurant"),
		"description":  str("A description of the restaurant"),
		"keywords":     keywords(),
		"address":      str("The address of the restaurant"),
		"openingHours": openingHours(),
		"imageSet":     imageSet(),
	}
}

func menuSectionFields() doc {
	return doc{
		"name":        str("The name of the menu section"),
		"description": str("A description of the menu section"),
	}
}

func menuItemFields() doc {
	return doc{
		"name":        str("The name of the menu item"),
		"description": str("A description of the menu item"),
		"keywords":    keywords(),
		"ingredients": ingredients(),
		"imageSet":    imageSet(),
	}
}

// entity adds the identity columns every stored entity carries.
func entity(description string, fields doc, required ...string) doc {
	fields["id"] = integer("The unique id of the entity")
	fields["timeCreatedTs"] = integer("The creation time in seconds since the Unix epoch, UTC")
	return object(description, fields, append([]string{"id", "timeCreatedTs"}, required...)...)
}

func org() doc {
	return entity("An organization", doc{})
}

func restaurant() doc {
	return entity("A restaurant profile", restaurantFields(),
		"name", "description", "keywords", "address", "openingHours", "imageSet")
}

func menuSection() doc {
	return entity("A section of the menu", menuSectionFields(), "name", "description")
}

func menuItem() doc {
	fields := menuItemFields()
	fields["sectionId"] = integer("The id of the section holding the item")
	return entity("An item of the menu", fields,
		"sectionId", "name", "description", "keywords", "ingredients", "imageSet")
}

func platformsWebsite() doc {
	return entity("The website platform", doc{"subdomain": str("The website subdomain")}, "subdomain")
}

func platformsCallcenter() doc {
	return entity("The callcenter platform", doc{"phoneNumber": str("The callcenter phone number")}, "phoneNumber")
}

func platformsEmailcenter() doc {
	return entity("The emailcenter platform", doc{"emailName": str("The local part of the contact email")}, "emailName")
}

// documents builds a fresh copy of every registry document.
func documents() map[Name]doc {
	menuItemCreation := menuItemFields()
	menuItemCreation["sectionId"] = integer("The id of the section to add the item to")

	return map[Name]doc{
		TimeOfDay:    timeOfDay(),
		Interval:     interval(),
		OpeningHours: openingHours(),
		Image:        image(),
		ImageSet:     imageSet(),
		Keywords:     keywords(),
		Ingredients:  ingredients(),

		Org:                  org(),
		Restaurant:           restaurant(),
		MenuSection:          menuSection(),
		MenuItem:             menuItem(),
		PlatformsWebsite:     platformsWebsite(),
		PlatformsCallcenter:  platformsCallcenter(),
		PlatformsEmailcenter: platformsEmailcenter(),

		OrgCreationRequest: object("A request to create an org", restaurantFields(),
			"name", "description", "keywords", "address", "openingHours", "imageSet"),
		RestaurantUpdateRequest:    update("A request to update the restaurant", restaurantFields()),
		MenuSectionCreationRequest: object("A request to create a menu section", menuSectionFields(), "name", "description"),
		MenuSectionUpdateRequest:   update("A request to update a menu section", menuSectionFields()),
		MenuItemCreationRequest: object("A request to create a menu item", menuItemCreation,
			"sectionId", "name", "description", "keywords", "ingredients", "imageSet"),
		MenuItemUpdateRequest: update("A request to update a menu item", menuItemFields()),
		PlatformsWebsiteUpdateRequest: update("A request to update the website platform",
			doc{"subdomain": str("The website subdomain")}),
		PlatformsCallcenterUpdateRequest: update("A request to update the callcenter platform",
			doc{"phoneNumber": str("The callcenter phone number")}),
		PlatformsEmailcenterUpdateRequest: update("A request to update the emailcenter platform",
			doc{"emailName": str("The local part of the contact email")}),

		OrgResponse:                  envelope("org", org()),
		RestaurantResponse:           envelope("restaurant", restaurant()),
		MenuSectionsResponse:         list("menuSections", "menu sections", menuSection()),
		MenuSectionResponse:          envelope("menuSection", menuSection()),
		MenuItemsResponse:            list("menuItems", "menu items", menuItem()),
		MenuItemResponse:             envelope("menuItem", menuItem()),
		PlatformsWebsiteResponse:     envelope("platformsWebsite", platformsWebsite()),
		PlatformsCallcenterResponse:  envelope("platformsCallcenter", platformsCallcenter()),
		PlatformsEmailcenterResponse: envelope("platformsEmailcenter", platformsEmailcenter()),
	}
}
