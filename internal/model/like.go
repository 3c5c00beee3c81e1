package model

// Kind identifies which entity a favorite points at.
// Its string value is the URL segment used by the favorites routes
// (/likes/planets/..., /likes/people/..., /likes/vehicles/...).
type Kind string

const (
	KindCharacter Kind = "people"
	KindVehicle   Kind = "vehicles"
	KindPlanet    Kind = "planets"
)

// Kinds lists every favorite kind in route registration order.
var Kinds = []Kind{KindPlanet, KindCharacter, KindVehicle}

// ParseKind converts a URL segment into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Column is the likes column holding the foreign key for this kind.
// Repositories interpolate it into SQL, so it must only ever come from this closed set.
func (k Kind) Column() string {
	switch k {
	case KindCharacter:
		return "people_id"
	case KindVehicle:
		return "vehicle_id"
	case KindPlanet:
		return "planets_id"
	}
	return ""
}

// Label is the human-readable entity name used in API messages,
// e.g. "planet already added".
func (k Kind) Label() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindVehicle:
		return "vehicle"
	case KindPlanet:
		return "planet"
	}
	return string(k)
}

// Target is the entity a favorite points at.
type Target struct {
	Kind Kind
	ID   int64
}

// Like records that a user favorited exactly one character, vehicle or planet.
// The two foreign keys that do not apply stay nil (NULL).
type Like struct {
	ID        int64  `json:"id"         gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64  `json:"user_id"    gorm:"column:user_id;not null;index"`
	PeopleID  *int64 `json:"people_id"  gorm:"column:people_id"`
	VehicleID *int64 `json:"vehicle_id" gorm:"column:vehicle_id"`
	PlanetsID *int64 `json:"planets_id" gorm:"column:planets_id"`
}

func (Like) TableName() string { return "likes" }

// NewLike builds an unsaved Like for the user with only the target's key set.
func NewLike(userID int64, target Target) *Like {
	like := &Like{UserID: userID}
	id := target.ID
	switch target.Kind {
	case KindCharacter:
		like.PeopleID = &id
	case KindVehicle:
		like.VehicleID = &id
	case KindPlanet:
		like.PlanetsID = &id
	}
	return like
}

// Target reports which entity the like points at.
// Rows written outside this API may set zero or several keys; the first set key wins
// and ok is false when none is set.
func (l Like) Target() (Target, bool) {
	switch {
	case l.PeopleID != nil:
		return Target{Kind: KindCharacter, ID: *l.PeopleID}, true
	case l.VehicleID != nil:
		return Target{Kind: KindVehicle, ID: *l.VehicleID}, true
	case l.PlanetsID != nil:
		return Target{Kind: KindPlanet, ID: *l.PlanetsID}, true
	}
	return Target{}, false
}
