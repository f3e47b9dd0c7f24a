package service

import (
	"Mingle/pkg/apperr"
	"Mingle/types"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"
)

func TestCreate_Conflict(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Alice")

	_, _, err := env.profiles.Create(context.Background(), types.CreateProfileInput{
		Email:        "  ALICE@example.com ",
		PasswordHash: "hash",
		Name:         "Alice Again",
	})
	wantKind(t, err, apperr.KindConflict)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	elevenTags := make([]string, 11)
	for i := range elevenTags {
		elevenTags[i] = fmt.Sprintf("t%d", i)
	}
	cases := []struct {
		name string
		in   types.CreateProfileInput
	}{
		{"short name", types.CreateProfileInput{Email: "a@example.com", PasswordHash: "h", Name: "A"}},
		{"blank name", types.CreateProfileInput{Email: "b@example.com", PasswordHash: "h", Name: "    "}},
		{"bad email", types.CreateProfileInput{Email: "nope", PasswordHash: "h", Name: "Alice"}},
		{"long bio", types.CreateProfileInput{Email: "c@example.com", PasswordHash: "h", Name: "Alice", Bio: strings.Repeat("b", 501)}},
		{"too many interests", types.CreateProfileInput{Email: "d@example.com", PasswordHash: "h", Name: "Alice", Interests: elevenTags}},
		{"long interest", types.CreateProfileInput{Email: "e@example.com", PasswordHash: "h", Name: "Alice", Interests: []string{strings.Repeat("x", 31)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := env.profiles.Create(ctx, c.in)
			wantKind(t, err, apperr.KindValidation)
		})
	}
}

func TestCreate_NormalizesInterests(t *testing.T) {
	env := newTestEnv(t)
	m := env.create(t, "Alice", " chess ", "", "art", "chess", "Art")

	want := []string{"chess", "art", "Art"}
	got := []string(m.profile.Interests)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("interests = %v, want %v", got, want)
	}

	own, err := env.profiles.GetOwn(context.Background(), m.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(own.Interests, ",") != strings.Join(want, ",") {
		t.Fatalf("stored interests = %v", own.Interests)
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.create(t, "Alice", "chess")

	got, err := env.profiles.Update(ctx, m.user.ID, types.UpdateProfileRequest{
		Name:      strPtr(" Alice B "),
		Interests: []string{"hiking", "art"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice B" || got.Bio != "bio of Alice" {
		t.Fatalf("update = %+v", got)
	}
	if strings.Join(got.Interests, ",") != "hiking,art" {
		t.Fatalf("interests = %v", got.Interests)
	}

	trending, err := env.feed.TrendingInterests(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range trending {
		if item.Interest == "chess" {
			t.Fatal("replaced interest still counted")
		}
	}
	if len(trending) != 2 {
		t.Fatalf("trending = %v", trending)
	}

	unchanged, err := env.profiles.Update(ctx, m.user.ID, types.UpdateProfileRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if unchanged.Name != "Alice B" {
		t.Fatalf("empty update changed profile: %+v", unchanged)
	}

	_, err = env.profiles.Update(ctx, m.user.ID, types.UpdateProfileRequest{Name: strPtr("A")})
	wantKind(t, err, apperr.KindValidation)

	_, err = env.profiles.Update(ctx, 123, types.UpdateProfileRequest{Bio: strPtr("x")})
	wantKind(t, err, apperr.KindNotFound)
}

// memMedia 记录删除过的对象
type memMedia struct {
	deleted []string
}

func (m *memMedia) Upload(context.Context, int64, *multipart.FileHeader) (*types.UploadImageResp, error) {
	return nil, apperr.Validation("not supported")
}

func (m *memMedia) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memMedia) Presign(context.Context, int64, types.PresignRequest) (*types.PresignResp, error) {
	return nil, apperr.Validation("not supported")
}

func (m *memMedia) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestUpdatePhoto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.create(t, "Alice")

	key := fmt.Sprintf("profiles/%d/a.png", m.user.ID)
	got, err := env.profiles.UpdatePhoto(ctx, m.user.ID, types.UpdatePhotoRequest{
		PhotoURL: "https://cdn.example.com/" + key,
		PhotoKey: key,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.PhotoURL != "https://cdn.example.com/"+key {
		t.Fatalf("photo url = %q", got.PhotoURL)
	}

	_, err = env.profiles.UpdatePhoto(ctx, m.user.ID, types.UpdatePhotoRequest{})
	wantKind(t, err, apperr.KindValidation)
}

func TestUpdatePhoto_ForeignKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	media := &memMedia{}
	env.profiles.Media = media
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	bobKey := fmt.Sprintf("profiles/%d/b.png", bob.user.ID)
	if _, err := env.profiles.UpdatePhoto(ctx, bob.user.ID, types.UpdatePhotoRequest{
		PhotoURL: media.PublicURL(bobKey),
		PhotoKey: bobKey,
	}); err != nil {
		t.Fatal(err)
	}

	// 引用别人的 key
	_, err := env.profiles.UpdatePhoto(ctx, alice.user.ID, types.UpdatePhotoRequest{
		PhotoURL: media.PublicURL(bobKey),
		PhotoKey: bobKey,
	})
	wantKind(t, err, apperr.KindValidation)

	traversal := fmt.Sprintf("profiles/%d/../%d/b.png", alice.user.ID, bob.user.ID)
	_, err = env.profiles.UpdatePhoto(ctx, alice.user.ID, types.UpdatePhotoRequest{
		PhotoURL: media.PublicURL(traversal),
		PhotoKey: traversal,
	})
	wantKind(t, err, apperr.KindValidation)

	// key 属于自己但 url 对不上
	aliceKey := fmt.Sprintf("profiles/%d/a.png", alice.user.ID)
	_, err = env.profiles.UpdatePhoto(ctx, alice.user.ID, types.UpdatePhotoRequest{
		PhotoURL: "https://evil.example.com/a.png",
		PhotoKey: aliceKey,
	})
	wantKind(t, err, apperr.KindValidation)

	if err := env.profiles.Delete(ctx, alice.user.ID); err != nil {
		t.Fatal(err)
	}
	if len(media.deleted) != 0 {
		t.Fatalf("deleted objects = %v", media.deleted)
	}

	// 换图后删除自己的旧图
	newKey := fmt.Sprintf("profiles/%d/c.png", bob.user.ID)
	if _, err := env.profiles.UpdatePhoto(ctx, bob.user.ID, types.UpdatePhotoRequest{
		PhotoURL: media.PublicURL(newKey),
		PhotoKey: newKey,
	}); err != nil {
		t.Fatal(err)
	}
	if len(media.deleted) != 1 || media.deleted[0] != bobKey {
		t.Fatalf("deleted objects = %v", media.deleted)
	}
}

func TestSetActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.create(t, "Alice", "chess")

	got, err := env.profiles.SetActive(ctx, m.user.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.IsActive {
		t.Fatal("profile should be inactive")
	}

	// 停用后自己仍可查看
	own, err := env.profiles.GetOwn(ctx, m.user.ID)
	if err != nil || own.IsActive {
		t.Fatalf("GetOwn = %+v, %v", own, err)
	}
	trending, err := env.feed.TrendingInterests(ctx)
	if err != nil || len(trending) != 0 {
		t.Fatalf("inactive profile counted in trending: %v, %v", trending, err)
	}

	got, err = env.profiles.SetActive(ctx, m.user.ID, true)
	if err != nil || !got.IsActive {
		t.Fatalf("reactivate = %+v, %v", got, err)
	}
}

func TestDelete_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice", "chess")
	bob := env.create(t, "Bob")

	steps := []func() error{
		func() error { _, err := env.relation.ToggleLike(ctx, alice.user.ID, bob.profile.ID); return err },
		func() error { _, err := env.relation.ToggleLike(ctx, bob.user.ID, alice.profile.ID); return err },
		func() error { _, err := env.relation.ToggleFollow(ctx, alice.user.ID, bob.user.ID); return err },
		func() error { _, err := env.relation.ToggleFollow(ctx, bob.user.ID, alice.user.ID); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	if err := env.profiles.Delete(ctx, alice.user.ID); err != nil {
		t.Fatal(err)
	}

	bobView, err := env.profiles.GetOwn(ctx, bob.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if bobView.LikesCount != 0 || bobView.FollowersCount != 0 || bobView.FollowingCount != 0 {
		t.Fatalf("relations survived delete: %+v", bobView)
	}

	_, err = env.profiles.GetOwn(ctx, alice.user.ID)
	wantKind(t, err, apperr.KindNotFound)
	_, err = env.relation.ToggleFollow(ctx, bob.user.ID, alice.user.ID)
	wantKind(t, err, apperr.KindNotFound)

	trending, err := env.feed.TrendingInterests(ctx)
	if err != nil || len(trending) != 0 {
		t.Fatalf("deleted profile counted in trending: %v, %v", trending, err)
	}

	err = env.profiles.Delete(ctx, alice.user.ID)
	wantKind(t, err, apperr.KindNotFound)

	// 邮箱可以重新注册
	env.create(t, "Alice")
}
