// Package postgres implements the repository interfaces on PostgreSQL through gorm.
//
// It is selected when DATABASE_URL is set. Models carry their own gorm column
// tags and TableName methods, so this package only translates gorm's errors
// into apperror values.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

// DB wraps a gorm handle. Inside WithTx, gorm is the transaction handle.
type DB struct {
	gorm *gorm.DB
	inTx bool
}

// NormalizeURL accepts the "postgres://" scheme some hosting platforms hand out
// alongside the canonical "postgresql://".
func NormalizeURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "postgres://"); ok {
		return "postgresql://" + rest
	}
	return url
}

// IsURL reports whether url points at a PostgreSQL server.
func IsURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

// New connects to PostgreSQL and migrates the schema.
// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey.
func New(url string, log *slog.Logger) (*DB, error) {
	conn, err := gorm.Open(pgdriver.Open(NormalizeURL(url)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: opening database: %w", err)
	}

	db := &DB{gorm: conn}
	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	log.Debug("postgres store ready")
	return db, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return fmt.Errorf("postgres: getting sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// likeForeignKeys mirrors the REFERENCES clauses of the sqlite schema.
// Like has no association fields for gorm to derive them from.
var likeForeignKeys = []struct {
	name, column, table string
}{
	{"fk_likes_user", "user_id", "users"},
	{"fk_likes_people", "people_id", "people"},
	{"fk_likes_vehicle", "vehicle_id", "vehicle"},
	{"fk_likes_planets", "planets_id", "planets"},
}

// migrate creates or alters tables to match the models, then adds the foreign
// keys and partial unique indexes gorm tags cannot express.
func (db *DB) migrate() error {
	if err := db.gorm.AutoMigrate(
		&model.User{}, &model.Character{}, &model.Vehicle{}, &model.Planet{}, &model.Like{},
	); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	for _, fk := range likeForeignKeys {
		if db.gorm.Migrator().HasConstraint(&model.Like{}, fk.name) {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE likes ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id)`,
			fk.name, fk.column, fk.table)
		if err := db.gorm.Exec(stmt).Error; err != nil {
			return fmt.Errorf("adding foreign key %s: %w", fk.name, err)
		}
	}

	for _, kind := range model.Kinds {
		column := kind.Column()
		stmt := fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_likes_user_%[1]s ON likes (user_id, %[1]s) WHERE %[1]s IS NOT NULL`,
			column,
		)
		if err := db.gorm.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating unique index on likes.%s: %w", column, err)
		}
	}
	return nil
}

func (db *DB) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if db.inTx {
		return fn(db)
	}
	return db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{gorm: tx, inTx: true})
	})
}

// =========================================================================
// generic helpers
// =========================================================================

func list[T any](ctx context.Context, db *gorm.DB, what string) ([]T, error) {
	rows := make([]T, 0)
	if err := db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: listing %s: %w", what, err)
	}
	return rows, nil
}

func get[T any](ctx context.Context, db *gorm.DB, id int64, resource string) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(resource)
		}
		return nil, fmt.Errorf("postgres: getting %s %d: %w", resource, id, err)
	}
	return &row, nil
}

func create[T any](ctx context.Context, db *gorm.DB, row *T, resource string) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict(resource)
		}
		return fmt.Errorf("postgres: creating %s: %w", resource, err)
	}
	return nil
}

// =========================================================================
// catalog
// =========================================================================

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	return list[model.User](ctx, db.gorm, "users")
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return get[model.User](ctx, db.gorm, id, "user")
}

func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	return create(ctx, db.gorm, user, "user")
}

func (db *DB) ListCharacters(ctx context.Context) ([]model.Character, error) {
	return list[model.Character](ctx, db.gorm, "characters")
}

func (db *DB) GetCharacterByID(ctx context.Context, id int64) (*model.Character, error) {
	return get[model.Character](ctx, db.gorm, id, "character")
}

func (db *DB) CreateCharacter(ctx context.Context, character *model.Character) error {
	return create(ctx, db.gorm, character, "character")
}

func (db *DB) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return list[model.Vehicle](ctx, db.gorm, "vehicles")
}

func (db *DB) GetVehicleByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return get[model.Vehicle](ctx, db.gorm, id, "vehicle")
}

func (db *DB) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return create(ctx, db.gorm, vehicle, "vehicle")
}

func (db *DB) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	return list[model.Planet](ctx, db.gorm, "planets")
}

func (db *DB) GetPlanetByID(ctx context.Context, id int64) (*model.Planet, error) {
	return get[model.Planet](ctx, db.gorm, id, "planet")
}

func (db *DB) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	return create(ctx, db.gorm, planet, "planet")
}

// =========================================================================
// likes
// =========================================================================

func (db *DB) ListLikesByUser(ctx context.Context, userID int64) ([]model.Like, error) {
	likes := make([]model.Like, 0)
	err := db.gorm.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("postgres: listing likes for user %d: %w", userID, err)
	}
	return likes, nil
}

// FindLike builds its condition from model.Kind.Column, a closed set.
func (db *DB) FindLike(ctx context.Context, userID int64, target model.Target) (*model.Like, error) {
	column := target.Kind.Column()
	if column == "" {
		return nil, fmt.Errorf("postgres: unknown favorite kind %q", target.Kind)
	}

	var like model.Like
	err := db.gorm.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(column+" = ?", target.ID).
		Order("id").
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotInFavorites(target.Kind.Label())
		}
		return nil, fmt.Errorf("postgres: finding like (user=%d %s=%d): %w", userID, column, target.ID, err)
	}
	return &like, nil
}

func (db *DB) CreateLike(ctx context.Context, like *model.Like) error {
	if err := db.gorm.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			target, _ := like.Target()
			return apperror.AlreadyAdded(target.Kind.Label())
		}
		return fmt.Errorf("postgres: creating like for user %d: %w", like.UserID, err)
	}
	return nil
}

func (db *DB) DeleteLike(ctx context.Context, id int64) error {
	result := db.gorm.WithContext(ctx).Delete(&model.Like{}, id)
	if result.Error != nil {
		return fmt.Errorf("postgres: deleting like %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("like")
	}
	return nil
}
