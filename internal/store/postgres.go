// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inventory-service/internal/common/logger"
	"inventory-service/internal/common/slug"
	"inventory-service/internal/models"
	"inventory-service/internal/validation"

	sq "github.com/Masterminds/squirrel"
	"github.com/benbjohnson/clock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	orgTable                  = "inventory.org"
	orgUserTable              = "inventory.org_user"
	restaurantTable           = "inventory.restaurant"
	menuSectionTable          = "inventory.menu_section"
	menuItemTable             = "inventory.menu_item"
	platformsWebsiteTable     = "inventory.platforms_website"
	platformsCallcenterTable  = "inventory.platforms_callcenter"
	platformsEmailcenterTable = "inventory.platforms_emailcenter"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type PostgresStore struct {
	db     *sqlx.DB
	clock  clock.Clock
	logger logger.Logger
	psql   sq.StatementBuilderType
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open lib/pq connection pool.
func NewPostgresStore(db *sql.DB, clk clock.Clock, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     sqlx.NewDb(db, "postgres"),
		clock:  clk,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ==========================
// Org
// ==========================

func (s *PostgresStore) CreateOrg(ctx context.Context, userID int64, req validation.OrgCreationRequest) (Fields, error) {
	now := s.clock.Now().UTC()

	var orgID int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.psql.Insert(orgTable).
			Columns("time_created").
			Values(now).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&orgID); err != nil {
			return fmt.Errorf("insert org: %w", err)
		}

		if _, err := s.exec(ctx, tx, s.psql.Insert(orgUserTable).
			Columns("org_id", "user_id", "time_created").
			Values(orgID, userID, now)); err != nil {
			return fmt.Errorf("insert org user: %w", err)
		}

		if err := s.insert(ctx, tx, restaurantTable, restaurantRule, req.RestaurantFields(), orgID, now); err != nil {
			return fmt.Errorf("insert restaurant: %w", err)
		}
		if err := s.insert(ctx, tx, platformsWebsiteTable, platformsWebsiteRule,
			Fields{"subdomain": slug.Make(req.Name)}, orgID, now); err != nil {
			return fmt.Errorf("insert platforms website: %w", err)
		}
		if err := s.insert(ctx, tx, platformsCallcenterTable, platformsCallcenterRule,
			Fields{"phoneNumber": models.DefaultPhoneNumber}, orgID, now); err != nil {
			return fmt.Errorf("insert platforms callcenter: %w", err)
		}
		if err := s.insert(ctx, tx, platformsEmailcenterTable, platformsEmailcenterRule,
			Fields{"emailName": models.DefaultEmailName}, orgID, now); err != nil {
			return fmt.Errorf("insert platforms emailcenter: %w", err)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: user %d", ErrOrgAlreadyExists, userID)
		}
		return nil, fmt.Errorf("create org: %w", err)
	}

	s.logger.Info("org created", map[string]interface{}{"orgId": orgID, "userId": userID})
	return orgRule.ToExternal(Row{"id": orgID, "time_created": now}), nil
}

func (s *PostgresStore) GetOrg(ctx context.Context, userID int64) (Fields, error) {
	b := s.psql.Select("org.id", "org.time_created").
		From(orgUserTable).
		Join(orgTable + " ON org.id = org_user.org_id").
		Where(sq.Eq{"org_user.user_id": userID})
	return s.one(ctx, s.db, orgRule, b, ErrOrgNotFound)
}

// ==========================
// Restaurant
// ==========================

func (s *PostgresStore) GetRestaurant(ctx context.Context, userID int64) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(restaurantRule.Columns()...).
		From(restaurantTable).
		Where(sq.Eq{"org_id": orgID})
	return s.one(ctx, s.db, restaurantRule, b, ErrOrgNotFound)
}

func (s *PostgresStore) UpdateRestaurant(ctx context.Context, userID int64, req validation.RestaurantUpdateRequest) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, restaurantTable, restaurantRule, req.Fields(), sq.Eq{"org_id": orgID}, ErrOrgNotFound)
}

// ==========================
// Menu sections
// ==========================

func liveSection(orgID, sectionID int64) sq.Eq {
	return sq.Eq{"id": sectionID, "org_id": orgID, "time_archived": nil}
}

func (s *PostgresStore) CreateMenuSection(ctx context.Context, userID int64, req validation.MenuSectionCreationRequest) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.insertReturning(ctx, s.db, menuSectionTable, menuSectionRule, req.Fields(), orgID)
}

func (s *PostgresStore) GetMenuSections(ctx context.Context, userID int64) ([]Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(menuSectionRule.Columns()...).
		From(menuSectionTable).
		Where(sq.Eq{"org_id": orgID, "time_archived": nil}).
		OrderBy("id")
	return s.many(ctx, menuSectionRule, b)
}

func (s *PostgresStore) GetMenuSection(ctx context.Context, userID, sectionID int64) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(menuSectionRule.Columns()...).
		From(menuSectionTable).
		Where(liveSection(orgID, sectionID))
	return s.one(ctx, s.db, menuSectionRule, b, ErrSectionNotFound)
}

func (s *PostgresStore) UpdateMenuSection(ctx context.Context, userID, sectionID int64, req validation.MenuSectionUpdateRequest) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, menuSectionTable, menuSectionRule, req.Fields(), liveSection(orgID, sectionID), ErrSectionNotFound)
}

// DeleteMenuSection archives the section together with its live items.
func (s *PostgresStore) DeleteMenuSection(ctx context.Context, userID, sectionID int64) error {
	now := s.clock.Now().UTC()
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		orgID, err := s.orgID(ctx, tx, userID)
		if err != nil {
			return err
		}

		res, err := s.exec(ctx, tx, s.psql.Update(menuSectionTable).
			Set("time_archived", now).
			Where(liveSection(orgID, sectionID)))
		if err != nil {
			return fmt.Errorf("archive menu section: %w", err)
		}
		if err := expectAffected(res, ErrSectionNotFound); err != nil {
			return err
		}

		if _, err := s.exec(ctx, tx, s.psql.Update(menuItemTable).
			Set("time_archived", now).
			Where(sq.Eq{"section_id": sectionID, "org_id": orgID, "time_archived": nil})); err != nil {
			return fmt.Errorf("archive menu items: %w", err)
		}
		return nil
	})
}

// ==========================
// Menu items
// ==========================

func liveItem(orgID, itemID int64) sq.Eq {
	return sq.Eq{"id": itemID, "org_id": orgID, "time_archived": nil}
}

func (s *PostgresStore) CreateMenuItem(ctx context.Context, userID int64, req validation.MenuItemCreationRequest) (Fields, error) {
	var item Fields
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		orgID, err := s.orgID(ctx, tx, userID)
		if err != nil {
			return err
		}

		query, args, err := s.psql.Select("id").
			From(menuSectionTable).
			Where(liveSection(orgID, req.SectionID)).
			ToSql()
		if err != nil {
			return err
		}
		var sectionID int64
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&sectionID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSectionNotFound
			}
			return fmt.Errorf("lookup menu section: %w", err)
		}

		item, err = s.insertReturning(ctx, tx, menuItemTable, menuItemRule, req.Fields(), orgID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PostgresStore) GetMenuItems(ctx context.Context, userID int64) ([]Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(menuItemRule.Columns()...).
		From(menuItemTable).
		Where(sq.Eq{"org_id": orgID, "time_archived": nil}).
		OrderBy("section_id", "id")
	return s.many(ctx, menuItemRule, b)
}

func (s *PostgresStore) GetMenuItem(ctx context.Context, userID, itemID int64) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(menuItemRule.Columns()...).
		From(menuItemTable).
		Where(liveItem(orgID, itemID))
	return s.one(ctx, s.db, menuItemRule, b, ErrItemNotFound)
}

func (s *PostgresStore) UpdateMenuItem(ctx context.Context, userID, itemID int64, req validation.MenuItemUpdateRequest) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, menuItemTable, menuItemRule, req.Fields(), liveItem(orgID, itemID), ErrItemNotFound)
}

func (s *PostgresStore) DeleteMenuItem(ctx context.Context, userID, itemID int64) error {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	res, err := s.exec(ctx, s.db, s.psql.Update(menuItemTable).
		Set("time_archived", s.clock.Now().UTC()).
		Where(liveItem(orgID, itemID)))
	if err != nil {
		return fmt.Errorf("archive menu item: %w", err)
	}
	return expectAffected(res, ErrItemNotFound)
}

// ==========================
// Platforms
// ==========================

func (s *PostgresStore) GetPlatformsWebsite(ctx context.Context, userID int64) (Fields, error) {
	return s.getPlatform(ctx, userID, platformsWebsiteTable, platformsWebsiteRule)
}

func (s *PostgresStore) UpdatePlatformsWebsite(ctx context.Context, userID int64, req validation.PlatformsWebsiteUpdateRequest) (Fields, error) {
	return s.updatePlatform(ctx, userID, platformsWebsiteTable, platformsWebsiteRule, req.Fields())
}

func (s *PostgresStore) GetPlatformsCallcenter(ctx context.Context, userID int64) (Fields, error) {
	return s.getPlatform(ctx, userID, platformsCallcenterTable, platformsCallcenterRule)
}

func (s *PostgresStore) UpdatePlatformsCallcenter(ctx context.Context, userID int64, req validation.PlatformsCallcenterUpdateRequest) (Fields, error) {
	return s.updatePlatform(ctx, userID, platformsCallcenterTable, platformsCallcenterRule, req.Fields())
}

func (s *PostgresStore) GetPlatformsEmailcenter(ctx context.Context, userID int64) (Fields, error) {
	return s.getPlatform(ctx, userID, platformsEmailcenterTable, platformsEmailcenterRule)
}

func (s *PostgresStore) UpdatePlatformsEmailcenter(ctx context.Context, userID int64, req validation.PlatformsEmailcenterUpdateRequest) (Fields, error) {
	return s.updatePlatform(ctx, userID, platformsEmailcenterTable, platformsEmailcenterRule, req.Fields())
}

func (s *PostgresStore) getPlatform(ctx context.Context, userID int64, table string, rule *Rule) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	b := s.psql.Select(rule.Columns()...).From(table).Where(sq.Eq{"org_id": orgID})
	return s.one(ctx, s.db, rule, b, ErrOrgNotFound)
}

func (s *PostgresStore) updatePlatform(ctx context.Context, userID int64, table string, rule *Rule, fields Fields) (Fields, error) {
	orgID, err := s.orgID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, table, rule, fields, sq.Eq{"org_id": orgID}, ErrOrgNotFound)
}

// ==========================
// Plumbing
// ==========================

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Warn("rollback failed", map[string]interface{}{"error": rbErr})
		}
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) orgID(ctx context.Context, q sqlx.QueryerContext, userID int64) (int64, error) {
	query, args, err := s.psql.Select("org_id").
		From(orgUserTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var orgID int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOrgNotFound
		}
		return 0, fmt.Errorf("lookup org: %w", err)
	}
	return orgID, nil
}

// encode maps fields to columns and adds the ownership columns.
func encode(rule *Rule, fields Fields, extra Row) (Row, error) {
	row, err := rule.ToInternal(fields)
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		row[k] = v
	}
	return rule.EncodeRow(row)
}

func (s *PostgresStore) insert(ctx context.Context, q sqlx.ExecerContext, table string, rule *Rule, fields map[string]interface{}, orgID int64, now interface{}) error {
	row, err := encode(rule, fields, Row{"org_id": orgID, "time_created": now})
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, q, s.psql.Insert(table).SetMap(row))
	return err
}

func (s *PostgresStore) insertReturning(ctx context.Context, q sqlx.QueryerContext, table string, rule *Rule, fields map[string]interface{}, orgID int64) (Fields, error) {
	row, err := encode(rule, fields, Row{"org_id": orgID, "time_created": s.clock.Now().UTC()})
	if err != nil {
		return nil, err
	}
	b := s.psql.Insert(table).
		SetMap(row).
		Suffix("RETURNING " + strings.Join(rule.Columns(), ", "))
	return s.one(ctx, q, rule, b, sql.ErrNoRows)
}

func (s *PostgresStore) update(ctx context.Context, table string, rule *Rule, fields map[string]interface{}, where sq.Eq, notFound error) (Fields, error) {
	row, err := encode(rule, fields, nil)
	if err != nil {
		return nil, err
	}
	b := s.psql.Update(table).
		SetMap(row).
		Where(where).
		Suffix("RETURNING " + strings.Join(rule.Columns(), ", "))
	return s.one(ctx, s.db, rule, b, notFound)
}

func (s *PostgresStore) exec(ctx context.Context, q sqlx.ExecerContext, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return q.ExecContext(ctx, query, args...)
}

func (s *PostgresStore) one(ctx context.Context, q sqlx.QueryerContext, rule *Rule, b sq.Sqlizer, notFound error) (Fields, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	row := Row{}
	if err := q.QueryRowxContext(ctx, query, args...).MapScan(row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%s: %w", rule.Entity(), err)
	}
	return export(rule, row)
}

func (s *PostgresStore) many(ctx context.Context, rule *Rule, b sq.Sqlizer) ([]Fields, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rule.Entity(), err)
	}
	defer rows.Close()

	out := []Fields{}
	for rows.Next() {
		row := Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("%s: %w", rule.Entity(), err)
		}
		fields, err := export(rule, row)
		if err != nil {
			return nil, err
		}
		out = append(out, fields)
	}
	return out, rows.Err()
}

func export(rule *Rule, row Row) (Fields, error) {
	decoded, err := rule.DecodeRow(row)
	if err != nil {
		return nil, err
	}
	return rule.ToExternal(decoded), nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
