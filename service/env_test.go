package service

import (
	"Mingle/config"
	"Mingle/dao"
	"Mingle/dao/cache"
	"Mingle/dao/daotest"
	"Mingle/models"
	"Mingle/pkg/apperr"
	"Mingle/types"
	"context"
	"strings"
	"testing"
)

const testConfig = `
app:
  env: test
  password_cost: 4
jwt:
  secret: test-secret
`

type testEnv struct {
	cfg      *config.Config
	profiles *ProfileService
	relation *RelationService
	feed     *FeedService
	graph    *GraphService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	db := daotest.Open(t)

	tx := dao.NewTransactor(db)
	userDAO := dao.NewUserDAO(db)
	profileDAO := dao.NewProfileDAO(db)
	interestDAO := dao.NewProfileInterestDAO(db)
	likeDAO := dao.NewProfileLikeDAO(db)
	followDAO := dao.NewUserFollowDAO(db)
	trending := cache.NewTrendingStorage(nil, cfg)

	graph := &GraphService{Tx: tx, LikeDAO: likeDAO, FollowDAO: followDAO}
	profiles := &ProfileService{
		Tx:          tx,
		UserDAO:     userDAO,
		ProfileDAO:  profileDAO,
		InterestDAO: interestDAO,
		LikeDAO:     likeDAO,
		FollowDAO:   followDAO,
		Graph:       graph,
		Trending:    trending,
	}
	return &testEnv{
		cfg:      cfg,
		profiles: profiles,
		graph:    graph,
		relation: &RelationService{
			Tx:         tx,
			LikeDAO:    likeDAO,
			FollowDAO:  followDAO,
			ProfileDAO: profileDAO,
			UserDAO:    userDAO,
		},
		feed: &FeedService{
			Config:      cfg,
			ProfileDAO:  profileDAO,
			InterestDAO: interestDAO,
			Graph:       graph,
			Trending:    trending,
		},
		auth: &AuthService{Config: cfg, UserDAO: userDAO, Profiles: profiles},
	}
}

type member struct {
	user    *models.User
	profile *models.Profile
}

func (m member) viewer() *types.Viewer {
	return &types.Viewer{UserID: m.user.ID}
}

func (e *testEnv) create(t *testing.T, name string, interests ...string) member {
	t.Helper()
	user, profile, err := e.profiles.Create(context.Background(), types.CreateProfileInput{
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "hash",
		Name:         name,
		Bio:          "bio of " + name,
		Interests:    interests,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return member{user: user, profile: profile}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %v (%v)", kind, got, err)
	}
}
