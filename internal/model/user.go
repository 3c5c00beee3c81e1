// Package model holds the entities shared by every layer: users, the three
// catalog resources (characters, planets, vehicles) and likes.
//
// SERIALIZATION:
// Every entity serializes to its plain key-value JSON shape through struct tags.
// encoding/json emits fields in declaration order, so the same entity always
// produces the same bytes.
//
// The `gorm:"..."` tags are only read by the postgres store. The sqlite store
// maps columns by hand in its SELECT/Scan calls.
package model

// User represents an account that can own favorites.
//
// WHY `json:"-"` ON Password?
// The "-" tag tells encoding/json to skip the field entirely, in both directions.
// The stored value is a bcrypt hash, but even a hash must never leave the server.
type User struct {
	ID       int64  `json:"id"    gorm:"column:id;primaryKey;autoIncrement"`
	Email    string `json:"email" gorm:"column:email;type:varchar(250);uniqueIndex;not null"`
	Password string `json:"-"     gorm:"column:password;type:varchar(80);not null"`
}

// TableName pins the table name for gorm.
func (User) TableName() string { return "users" }
