package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

func TestCreateLike_AndFind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "luke@rebels.org")
	planet := createTestPlanet(t, db, "Tatooine")

	target := model.Target{Kind: model.KindPlanet, ID: planet.ID}
	like := model.NewLike(user.ID, target)
	if err := db.CreateLike(ctx, like); err != nil {
		t.Fatalf("CreateLike() error = %v", err)
	}
	if like.ID == 0 {
		t.Error("CreateLike() did not set like.ID")
	}

	found, err := db.FindLike(ctx, user.ID, target)
	if err != nil {
		t.Fatalf("FindLike() error = %v", err)
	}
	if found.ID != like.ID {
		t.Errorf("FindLike().ID = %d, want %d", found.ID, like.ID)
	}
	if found.PeopleID != nil || found.VehicleID != nil {
		t.Errorf("unset keys should stay NULL, got %+v", found)
	}

	// Same id, different kind: not a match.
	_, err = db.FindLike(ctx, user.ID, model.Target{Kind: model.KindCharacter, ID: planet.ID})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindLike(other kind) error = %v, want ErrNotFound", err)
	}
}

func TestCreateLike_DuplicateRejectedByIndex(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "luke@rebels.org")
	planet := createTestPlanet(t, db, "Tatooine")
	target := model.Target{Kind: model.KindPlanet, ID: planet.ID}

	if err := db.CreateLike(ctx, model.NewLike(user.ID, target)); err != nil {
		t.Fatalf("first CreateLike() error = %v", err)
	}

	err := db.CreateLike(ctx, model.NewLike(user.ID, target))
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second CreateLike() error = %v, want ErrConflict", err)
	}
	if err.Error() != "planet already added" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCreateLike_UnknownUserViolatesForeignKey(t *testing.T) {
	db := newTestDB(t)
	planet := createTestPlanet(t, db, "Tatooine")

	err := db.CreateLike(context.Background(), model.NewLike(999, model.Target{Kind: model.KindPlanet, ID: planet.ID}))
	if err == nil {
		t.Fatal("CreateLike() should fail for a user that does not exist")
	}
}

func TestListLikesByUser_OnlyOwnRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	luke := createTestUser(t, db, "luke@rebels.org")
	leia := createTestUser(t, db, "leia@rebels.org")
	tatooine := createTestPlanet(t, db, "Tatooine")
	han := createTestCharacter(t, db, "Han Solo")

	for _, like := range []*model.Like{
		model.NewLike(luke.ID, model.Target{Kind: model.KindPlanet, ID: tatooine.ID}),
		model.NewLike(luke.ID, model.Target{Kind: model.KindCharacter, ID: han.ID}),
		model.NewLike(leia.ID, model.Target{Kind: model.KindCharacter, ID: han.ID}),
	} {
		if err := db.CreateLike(ctx, like); err != nil {
			t.Fatalf("CreateLike() error = %v", err)
		}
	}

	likes, err := db.ListLikesByUser(ctx, luke.ID)
	if err != nil {
		t.Fatalf("ListLikesByUser() error = %v", err)
	}
	if len(likes) != 2 {
		t.Fatalf("len(likes) = %d, want 2", len(likes))
	}
	for _, l := range likes {
		if l.UserID != luke.ID {
			t.Errorf("like %d belongs to user %d, want %d", l.ID, l.UserID, luke.ID)
		}
	}

	none, err := db.ListLikesByUser(ctx, 12345)
	if err != nil {
		t.Fatalf("ListLikesByUser(unknown) error = %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("ListLikesByUser(unknown) = %#v, want empty non-nil slice", none)
	}
}

func TestDeleteLike(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "luke@rebels.org")
	planet := createTestPlanet(t, db, "Tatooine")
	like := model.NewLike(user.ID, model.Target{Kind: model.KindPlanet, ID: planet.ID})
	if err := db.CreateLike(ctx, like); err != nil {
		t.Fatalf("CreateLike() error = %v", err)
	}

	if err := db.DeleteLike(ctx, like.ID); err != nil {
		t.Fatalf("DeleteLike() error = %v", err)
	}

	if err := db.DeleteLike(ctx, like.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteLike() error = %v, want ErrNotFound", err)
	}

	likes, _ := db.ListLikesByUser(ctx, user.ID)
	if len(likes) != 0 {
		t.Errorf("len(likes) = %d after delete, want 0", len(likes))
	}
}
