package service

import (
	"Mingle/pkg/apperr"
	"context"
	"database/sql"
	"sync"
	"testing"
)

func TestToggleLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	res, err := env.relation.ToggleLike(ctx, alice.user.ID, bob.profile.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Liked || res.LikesCount != 1 {
		t.Fatalf("first toggle = %+v", res)
	}

	res, err = env.relation.ToggleLike(ctx, alice.user.ID, bob.profile.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Liked || res.LikesCount != 0 {
		t.Fatalf("second toggle = %+v", res)
	}

	n, err := env.relation.CountLikes(ctx, bob.profile.ID)
	if err != nil || n != 0 {
		t.Fatalf("CountLikes = %d, %v", n, err)
	}
}

func TestToggleLike_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	_, err := env.relation.ToggleLike(ctx, alice.user.ID, alice.profile.ID)
	wantKind(t, err, apperr.KindSelfReference)

	_, err = env.relation.ToggleLike(ctx, alice.user.ID, 987654321)
	wantKind(t, err, apperr.KindNotFound)

	if _, err := env.profiles.SetActive(ctx, bob.user.ID, false); err != nil {
		t.Fatal(err)
	}
	_, err = env.relation.ToggleLike(ctx, alice.user.ID, bob.profile.ID)
	wantKind(t, err, apperr.KindNotFound)

	n, err := env.relation.CountLikes(ctx, alice.profile.ID)
	if err != nil || n != 0 {
		t.Fatalf("rejected toggles must not write: %d, %v", n, err)
	}
}

func TestToggleLike_Concurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target := env.create(t, "Target")

	fans := make([]member, 0, 6)
	for _, name := range []string{"Fan1", "Fan2", "Fan3", "Fan4", "Fan5", "Fan6"} {
		fans = append(fans, env.create(t, name))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(fans))
	for _, f := range fans {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			if _, err := env.relation.ToggleLike(ctx, uid, target.profile.ID); err != nil {
				errs <- err
			}
		}(f.user.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent toggle: %v", err)
	}

	n, err := env.relation.CountLikes(ctx, target.profile.ID)
	if err != nil || n != int64(len(fans)) {
		t.Fatalf("expected %d likes, got %d (%v)", len(fans), n, err)
	}
}

func TestToggleLike_ConcurrentSameViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	// 偶数次切换后一定回到未点赞
	const rounds = 8
	var wg sync.WaitGroup
	errs := make(chan error, rounds)
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.relation.ToggleLike(ctx, alice.user.ID, bob.profile.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent toggle: %v", err)
	}

	n, err := env.relation.CountLikes(ctx, bob.profile.ID)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 likes after even toggles, got %d (%v)", n, err)
	}
}

func TestToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	res, err := env.relation.ToggleFollow(ctx, alice.user.ID, bob.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Following || res.FollowersCount != 1 || res.FollowingCount != 0 {
		t.Fatalf("follow = %+v", res)
	}

	// 计数是被关注人的
	res, err = env.relation.ToggleFollow(ctx, bob.user.ID, alice.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Following || res.FollowersCount != 1 || res.FollowingCount != 1 {
		t.Fatalf("follow back = %+v", res)
	}

	res, err = env.relation.ToggleFollow(ctx, alice.user.ID, bob.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Following || res.FollowersCount != 0 || res.FollowingCount != 1 {
		t.Fatalf("unfollow = %+v", res)
	}

	followers, err := env.relation.CountFollowers(ctx, alice.user.ID)
	if err != nil || followers != 1 {
		t.Fatalf("CountFollowers = %d, %v", followers, err)
	}
	following, err := env.relation.CountFollowing(ctx, alice.user.ID)
	if err != nil || following != 0 {
		t.Fatalf("CountFollowing = %d, %v", following, err)
	}
}

func TestToggleFollow_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")

	_, err := env.relation.ToggleFollow(ctx, alice.user.ID, alice.user.ID)
	wantKind(t, err, apperr.KindSelfReference)

	_, err = env.relation.ToggleFollow(ctx, alice.user.ID, 424242)
	wantKind(t, err, apperr.KindNotFound)
}

func TestListConnections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")
	carol := env.create(t, "Carol")

	for _, target := range []member{bob, carol} {
		if _, err := env.relation.ToggleFollow(ctx, alice.user.ID, target.user.ID); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := env.relation.ToggleFollow(ctx, carol.user.ID, alice.user.ID); err != nil {
		t.Fatal(err)
	}

	following, err := env.relation.ListFollowing(ctx, alice.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(following) != 2 {
		t.Fatalf("expected 2 followed users, got %d", len(following))
	}
	seen := map[int64]bool{}
	for _, c := range following {
		seen[c.UserID] = true
		if c.Profile == nil || c.Profile.UserID != c.UserID {
			t.Fatalf("connection missing profile: %+v", c)
		}
		if c.FollowersCount != 1 {
			t.Fatalf("expected each followed user to have 1 follower, got %+v", c)
		}
	}
	if !seen[bob.user.ID] || !seen[carol.user.ID] {
		t.Fatalf("unexpected following set %v", seen)
	}

	followers, err := env.relation.ListFollowers(ctx, alice.user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(followers) != 1 || followers[0].UserID != carol.user.ID || followers[0].FollowingCount != 1 {
		t.Fatalf("unexpected followers %+v", followers)
	}
}

func TestToggleTxOptions(t *testing.T) {
	if toggleTxOptions.Isolation != sql.LevelReadCommitted || toggleTxOptions.ReadOnly {
		t.Fatalf("toggle tx options = %+v", toggleTxOptions)
	}

	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.create(t, "Alice")
	bob := env.create(t, "Bob")

	// 外层事务中切换走 savepoint，选项不影响结果
	err := env.relation.Tx.Transaction(ctx, func(ctx context.Context) error {
		res, err := env.relation.ToggleFollow(ctx, alice.user.ID, bob.user.ID)
		if err != nil {
			return err
		}
		if !res.Following || res.FollowersCount != 1 {
			t.Errorf("nested follow = %+v", res)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
