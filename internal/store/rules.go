// internal/store/rules.go
package store

var (
	idColumn          = Column{External: "id", Internal: "id", Type: Integer}
	timeCreatedColumn = Column{External: "timeCreatedTs", Internal: "time_created", Type: Timestamp}
)

var (
	orgRule = MustRule("org", idColumn, timeCreatedColumn)

	restaurantRule = MustRule("restaurant",
		idColumn,
		timeCreatedColumn,
		Column{External: "name", Internal: "name", Type: Text},
		Column{External: "description", Internal: "description", Type: Text},
		Column{External: "keywords", Internal: "keywords", Type: TextArray},
		Column{External: "address", Internal: "address", Type: Text},
		Column{External: "openingHours", Internal: "opening_hours", Type: JSON},
		Column{External: "imageSet", Internal: "image_set", Type: JSON},
	)

	menuSectionRule = MustRule("menu section",
		idColumn,
		timeCreatedColumn,
		Column{External: "name", Internal: "name", Type: Text},
		Column{External: "description", Internal: "description", Type: Text},
	)

	menuItemRule = MustRule("menu item",
		idColumn,
		Column{External: "sectionId", Internal: "section_id", Type: Integer},
		timeCreatedColumn,
		Column{External: "name", Internal: "name", Type: Text},
		Column{External: "description", Internal: "description", Type: Text},
		Column{External: "keywords", Internal: "keywords", Type: TextArray},
		Column{External: "ingredients", Internal: "ingredients", Type: JSON},
		Column{External: "imageSet", Internal: "image_set", Type: JSON},
	)

	platformsWebsiteRule = MustRule("platforms website",
		idColumn,
		timeCreatedColumn,
		Column{External: "subdomain", Internal: "subdomain", Type: Text},
	)

	platformsCallcenterRule = MustRule("platforms callcenter",
		idColumn,
		timeCreatedColumn,
		Column{External: "phoneNumber", Internal: "phone_number", Type: Text},
	)

	platformsEmailcenterRule = MustRule("platforms emailcenter",
		idColumn,
		timeCreatedColumn,
		Column{External: "emailName", Internal: "email_name", Type: Text},
	)
)
