package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	d := New(db)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func sampleWebsite(title string) models.WebsiteProject {
	return models.WebsiteProject{
		Title:       title,
		Description: "A storefront",
		Image:       "/uploads/shop.png",
		DemoURL:     "https://shop.example.com",
		GithubURL:   "https://github.com/example/shop",
		Tags:        datatypes.JSONSlice[string]{"go", "sqlite"},
	}
}

func TestCreateAssignsIDsAndDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).WebsiteProjectRepo()

	a := sampleWebsite("A")
	b := sampleWebsite("B")
	b.Tags = nil
	if err := repo.Create(ctx, &a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := repo.Create(ctx, &b); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID == uuid.Nil || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %s and %s", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	got, err := repo.Get(ctx, b.ID.String())
	if err != nil || got == nil {
		t.Fatalf("get b: %v %v", got, err)
	}
	if got.Order != "0" {
		t.Errorf("order = %q, want 0", got.Order)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("tags = %v, want empty list", got.Tags)
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).WebsiteProjectRepo()

	empty, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", empty)
	}

	for _, title := range []string{"first", "second", "third"} {
		p := sampleWebsite(title)
		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 || rows[0].Title != "first" || rows[2].Title != "third" {
		t.Fatalf("unexpected order: %+v", rows)
	}
}

func TestUpdateMergesSuppliedColumns(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).WebsiteProjectRepo()

	p := sampleWebsite("Original")
	if err := repo.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Renamed"
	order := "3"
	patch := models.WebsiteProjectPatch{Title: &title, Order: &order}
	got, err := repo.Update(ctx, p.ID.String(), patch.Columns())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil {
		t.Fatal("expected updated row")
	}
	if got.Title != "Renamed" || got.Order != "3" {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	if got.Description != p.Description || got.DemoURL != p.DemoURL || len(got.Tags) != 2 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.ID != p.ID || !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("identity changed: %+v", got)
	}

	same, err := repo.Update(ctx, p.ID.String(), map[string]any{})
	if err != nil || same == nil || same.Title != "Renamed" {
		t.Fatalf("empty update should return current row, got %+v, %v", same, err)
	}
}

func TestUnknownAndMalformedIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).VideoProjectRepo()

	for _, id := range []string{uuid.NewString(), "not-a-uuid", ""} {
		got, err := repo.Get(ctx, id)
		if err != nil || got != nil {
			t.Errorf("Get(%q) = %v, %v", id, got, err)
		}
		updated, err := repo.Update(ctx, id, map[string]any{"title": "x"})
		if err != nil || updated != nil {
			t.Errorf("Update(%q) = %v, %v", id, updated, err)
		}
		deleted, err := repo.Delete(ctx, id)
		if err != nil || deleted {
			t.Errorf("Delete(%q) = %v, %v", id, deleted, err)
		}
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).VideoProjectRepo()

	v := models.VideoProject{
		Title: "Reel", Description: "d", Duration: "1:30", Quality: "4K",
		Thumbnail: "/uploads/t.png", VideoURL: "https://youtu.be/x", Category: "Ads",
	}
	if err := repo.Create(ctx, &v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Source != models.VideoSourceEmbed {
		t.Errorf("source = %s, want embed", v.Source)
	}

	deleted, err := repo.Delete(ctx, v.ID.String())
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	again, err := repo.Delete(ctx, v.ID.String())
	if err != nil || again {
		t.Fatalf("second delete = %v, %v", again, err)
	}
}

func TestSocialProjectJSONColumns(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).SocialProjectRepo()

	lead := "250+"
	videos := datatypes.JSONSlice[models.SocialVideo]{{Name: "Launch", Views: "1.2M"}}
	p := models.SocialProject{
		Platform: "Instagram", Title: "Launch", Description: "d", Icon: "instagram",
		Image: "/uploads/a.png", LeadCount: &lead, Videos: &videos,
		Metrics: datatypes.NewJSONType(map[string]string{"followers": "+12K"}),
		Reach:   "2M", Engagement: "8%",
	}
	if err := repo.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, p.ID.String())
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.Metrics.Data()["followers"] != "+12K" {
		t.Errorf("metrics = %v", got.Metrics.Data())
	}
	if got.Videos == nil || (*got.Videos)[0].Views != "1.2M" {
		t.Errorf("videos = %v", got.Videos)
	}
	if got.CampaignURL != nil {
		t.Errorf("campaignUrl = %v, want nil", *got.CampaignURL)
	}
	if !got.IconKnown {
		t.Error("expected instagram icon to be known")
	}
}

func TestUserRepoRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).UserRepo()

	first := models.User{Username: "admin", Password: "hash-one", IsAdmin: true}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := models.User{Username: "admin", Password: "hash-two"}
	err := repo.Create(ctx, &dup)
	if !errs.IsAlreadyExists(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored, err := repo.FindByUsername(ctx, "admin")
	if err != nil || stored == nil {
		t.Fatalf("find: %v, %v", stored, err)
	}
	if stored.Password != "hash-one" || !stored.IsAdmin {
		t.Fatalf("existing user was modified: %+v", stored)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestSessionRepo(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)
	repo := d.SessionRepo()

	userID := uuid.New()
	now := time.Now().UTC()
	live := models.Session{ID: "live", UserID: userID, ExpiresAt: now.Add(time.Hour)}
	stale := models.Session{ID: "stale", UserID: uuid.New(), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []models.Session{live, stale} {
		if err := repo.Replace(ctx, s); err != nil {
			t.Fatalf("replace %s: %v", s.ID, err)
		}
	}

	removed, err := repo.DeleteExpired(ctx, now)
	if err != nil || removed != 1 {
		t.Fatalf("delete expired = %d, %v", removed, err)
	}
	if got, _ := repo.Get(ctx, "stale"); got != nil {
		t.Fatal("stale session survived cleanup")
	}

	got, err := repo.Get(ctx, "live")
	if err != nil || got == nil || got.UserID != userID {
		t.Fatalf("get live = %+v, %v", got, err)
	}

	next := models.Session{ID: "next", UserID: userID, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Replace(ctx, next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, _ := repo.Get(ctx, "live"); got != nil {
		t.Fatal("earlier session survived a new login")
	}
	if got, _ := repo.Get(ctx, "next"); got == nil {
		t.Fatal("replacement session missing")
	}
}

func TestSessionReplaceRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := newTestDatabase(t).SessionRepo()

	userID := uuid.New()
	expires := time.Now().Add(time.Hour).UTC()
	if err := repo.Replace(ctx, models.Session{ID: "kept", UserID: userID, ExpiresAt: expires}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := repo.Replace(ctx, models.Session{ID: "taken", UserID: uuid.New(), ExpiresAt: expires}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// The insert collides on the primary key, so the delete must not stick.
	err := repo.Replace(ctx, models.Session{ID: "taken", UserID: userID, ExpiresAt: expires})
	if err == nil {
		t.Fatal("expected duplicate id to fail")
	}
	if got, _ := repo.Get(ctx, "kept"); got == nil {
		t.Fatal("failed replace revoked the existing session")
	}
}

func TestSeedProjectsOnlyFillsEmptyTables(t *testing.T) {
	ctx := context.Background()
	d := newTestDatabase(t)

	existing := sampleWebsite("Already here")
	if err := d.WebsiteProjectRepo().Create(ctx, &existing); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := SeedProjects(ctx, d)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 6 {
		t.Fatalf("inserted %d rows, want 6", n)
	}

	websites, _ := d.WebsiteProjectRepo().List(ctx)
	socials, _ := d.SocialProjectRepo().List(ctx)
	if len(websites) != 1 || len(socials) != 3 {
		t.Fatalf("websites=%d socials=%d", len(websites), len(socials))
	}
	if socials[2].Videos == nil || len(*socials[2].Videos) != 3 {
		t.Fatalf("videos = %+v", socials[2].Videos)
	}

	if n, err := SeedProjects(ctx, d); err != nil || n != 0 {
		t.Fatalf("second seed inserted %d rows: %v", n, err)
	}
}
