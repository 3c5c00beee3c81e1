package model

// Character is a person from the films (the "people" resource).
//
// NULLABLE COLUMNS AS POINTERS:
// birth_year, homeworld and starship may be NULL in the database.
// A *int64 / *string is nil for NULL and serializes as JSON null,
// so clients can tell "unknown" apart from 0 or "".
type Character struct {
	ID        int64   `json:"id"         gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `json:"name"       gorm:"column:name;type:varchar(250);uniqueIndex;not null"`
	BirthYear *int64  `json:"birth_year" gorm:"column:birth_year"`
	Homeworld *string `json:"homeworld"  gorm:"column:homeworld;type:varchar(250)"`
	Starship  *string `json:"starship"   gorm:"column:starship;type:varchar(250)"`
}

func (Character) TableName() string { return "people" }

// Vehicle is a ground or atmospheric craft. Only vehicle_class is required.
type Vehicle struct {
	ID           int64   `json:"id"            gorm:"column:id;primaryKey;autoIncrement"`
	Name         *string `json:"name"          gorm:"column:name;type:varchar(250)"`
	Model        *string `json:"model"         gorm:"column:model;type:varchar(250)"`
	VehicleClass string  `json:"vehicle_class" gorm:"column:vehicle_class;type:varchar(250);not null"`
	Passengers   *int64  `json:"passengers"    gorm:"column:passengers"`
}

func (Vehicle) TableName() string { return "vehicle" }

// Planet is a world. Climate is stored as an integer code.
type Planet struct {
	ID         int64   `json:"id"         gorm:"column:id;primaryKey;autoIncrement"`
	Name       *string `json:"name"       gorm:"column:name;type:varchar(250)"`
	Population *int64  `json:"population" gorm:"column:population"`
	Gravity    *string `json:"gravity"    gorm:"column:gravity;type:varchar(250)"`
	Climate    *int64  `json:"climate"    gorm:"column:climate"`
}

func (Planet) TableName() string { return "planets" }

// Int64 and String return pointers to their argument.
// They keep seed data and tests readable: Population: model.Int64(200000).
func Int64(v int64) *int64 { return &v }

func String(v string) *string { return &v }
