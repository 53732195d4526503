package project

import (
	"context"
	"errors"
	"testing"

	"github.com/nilehomes/landing/internal/models"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"github.com/nilehomes/landing/internal/testutil"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

func newDTO(slug string) ProjectDTO {
	return ProjectDTO{
		Slug:        strptr(slug),
		Title:       strptr("Nile View"),
		Subtitle:    strptr("Riverside living"),
		Description: strptr("**Two** towers on the Nile"),
		HeroImage:   strptr("/images/hero.jpg"),
		Gallery:     []GalleryImageDTO{{URL: "/images/g1.jpg", Alt: strptr("Lobby")}},
		Highlights:  []string{"Gym", "Pool"},
		Videos: []VideoDTO{
			{Title: "Tour", ThumbnailURL: "/images/t1.jpg", VideoURL: "https://youtu.be/abc123"},
			{Title: "Drone", ThumbnailURL: "/images/t2.jpg", VideoURL: "/videos/drone.mp4"},
		},
	}
}

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewService(db), db
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, newDTO("nile-view"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected id")
	}

	got, err := svc.GetBySlug(ctx, "nile-view")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Nile View" || len(got.Gallery) != 1 || got.Gallery[0].Alt != "Lobby" {
		t.Fatalf("project = %+v", got)
	}
	if len(got.Highlights) != 2 || len(got.FAQs) != 0 {
		t.Fatalf("lists = %v %v", got.Highlights, got.FAQs)
	}
	if len(got.Videos) != 2 || got.Videos[0].Title != "Tour" || got.Videos[1].SortOrder != 1 {
		t.Fatalf("videos = %+v", got.Videos)
	}
}

func TestCreateAcceptsAliases(t *testing.T) {
	svc, _ := newService(t)
	dto := ProjectDTO{
		Slug:         strptr("legacy-tower"),
		Name:         strptr("Legacy Tower"),
		Tagline:      strptr("Old field names"),
		LocationText: strptr("New Cairo"),
		Description:  strptr("desc"),
	}
	p, err := svc.Create(context.Background(), dto)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Title != "Legacy Tower" || p.Subtitle != "Old field names" || p.Location != "New Cairo" {
		t.Fatalf("aliases not folded: %+v", p)
	}
}

func TestCreateRequiresCoreFields(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(context.Background(), ProjectDTO{Slug: strptr("x")})
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"title", "subtitle", "description"} {
		if !fields[want] {
			t.Errorf("missing error for %s: %v", want, verr.Fields)
		}
	}
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, newDTO("dup")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, newDTO("dup")); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestListNewestFirstWithOrderedVideos(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	first := testutil.CreateProject(t, db, "first", "First")
	testutil.CreateProject(t, db, "second", "Second")

	// inserted one by one so ids follow this order
	for _, v := range []models.ProjectVideo{
		{ProjectID: first.ID, Title: "late", SortOrder: 2},
		{ProjectID: first.ID, Title: "tie-a", SortOrder: 1},
		{ProjectID: first.ID, Title: "early", SortOrder: 0},
		{ProjectID: first.ID, Title: "tie-b", SortOrder: 1},
	} {
		v := v
		if err := db.Create(&v).Error; err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"early", "tie-a", "tie-b", "late"}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Slug != "second" {
		t.Fatalf("order = %v", []string{list[0].Slug, list[1].Slug})
	}
	assertVideoTitles(t, list[1].Videos, want)

	p, err := svc.GetBySlug(ctx, "first")
	if err != nil {
		t.Fatal(err)
	}
	assertVideoTitles(t, p.Videos, want)
}

func assertVideoTitles(t *testing.T, videos []models.ProjectVideo, want []string) {
	t.Helper()
	got := make([]string, 0, len(videos))
	for _, v := range videos {
		got = append(got, v.Title)
	}
	if len(got) != len(want) {
		t.Fatalf("videos = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("videos = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(videos); i++ {
		if videos[i].SortOrder == videos[i-1].SortOrder && videos[i].ID < videos[i-1].ID {
			t.Fatalf("tie not broken by id: %+v", videos)
		}
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.GetBySlug(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) || apperr.Message(err, apperr.ErrNotFound) != "Project not found" {
		t.Fatalf("err = %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	dto := newDTO("partial")
	dto.MapEmbedURL = strptr("https://maps.example.com/embed")
	if _, err := svc.Create(ctx, dto); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Update(ctx, "partial", ProjectDTO{MapEmbedURL: strptr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.MapEmbedURL != "" {
		t.Fatalf("map embed not cleared: %q", got.MapEmbedURL)
	}
	if got.Title != "Nile View" || got.HeroImage != "/images/hero.jpg" || len(got.Videos) != 2 || len(got.Gallery) != 1 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateReplacesVideosAndLists(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, newDTO("replace")); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Update(ctx, "replace", ProjectDTO{
		Videos:     []VideoDTO{{Title: "Only", ThumbnailURL: "/t.jpg", VideoURL: "/v.mp4"}},
		Highlights: []string{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Videos) != 1 || got.Videos[0].Title != "Only" {
		t.Fatalf("videos = %+v", got.Videos)
	}
	if len(got.Highlights) != 0 {
		t.Fatalf("highlights = %v", got.Highlights)
	}

	var count int64
	db.Model(&models.ProjectVideo{}).Count(&count)
	if count != 1 {
		t.Fatalf("video rows = %d", count)
	}
}

func TestUpdateEmptyVideosClearsAll(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, newDTO("clear-videos")); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Update(ctx, "clear-videos", ProjectDTO{Videos: []VideoDTO{}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Videos) != 0 {
		t.Fatalf("videos = %+v", got.Videos)
	}
	if resp := toResponse(got); resp.Videos == nil || len(resp.Videos) != 0 {
		t.Fatalf("response videos = %#v", resp.Videos)
	}

	var count int64
	db.Model(&models.ProjectVideo{}).Count(&count)
	if count != 0 {
		t.Fatalf("video rows = %d", count)
	}
}

func TestUpdateErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, newDTO("target")); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, "target", ProjectDTO{}); !errors.Is(err, apperr.ErrNoOpUpdate) {
		t.Fatalf("empty update: %v", err)
	}
	if _, err := svc.Update(ctx, "missing", ProjectDTO{Title: strptr("x")}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing project: %v", err)
	}
	var verr *apperr.ValidationError
	if _, err := svc.Update(ctx, "target", ProjectDTO{Slug: strptr("renamed")}); !errors.As(err, &verr) {
		t.Fatalf("slug change: %v", err)
	}
	if _, err := svc.Update(ctx, "target", ProjectDTO{Slug: strptr("target"), Title: strptr("Same slug")}); err != nil {
		t.Fatalf("unchanged slug rejected: %v", err)
	}
}

func TestDeleteCascadesVideosAndDetachesLeads(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, newDTO("gone"))
	if err != nil {
		t.Fatal(err)
	}
	lead := models.Lead{ProjectID: &p.ID, Name: "Mona", Phone: "01000000000"}
	if err := db.Create(&lead).Error; err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "gone"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}

	var videos int64
	db.Model(&models.ProjectVideo{}).Count(&videos)
	if videos != 0 {
		t.Fatalf("videos left = %d", videos)
	}
	var reloaded models.Lead
	if err := db.First(&reloaded, lead.ID).Error; err != nil {
		t.Fatalf("lead removed: %v", err)
	}
	if reloaded.ProjectID != nil || reloaded.Name != "Mona" {
		t.Fatalf("lead = %+v", reloaded)
	}
}
