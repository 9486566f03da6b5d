package service

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/database"
	"dfo-news-digest/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seq atomic.Int64

type testStack struct {
	db         *gorm.DB
	digestRepo repository.DigestRepository
	itemRepo   repository.ItemRepository
	digests    DigestService
	items      ItemService
}

func newTestStack(t *testing.T, loc *time.Location) *testStack {
	t.Helper()
	db, err := database.NewDB(database.Config{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "digest.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.AutoMigrate(db.DB))

	log := logger.NewNop()
	digestRepo := repository.NewDigestRepository(db.DB)
	candidateRepo := repository.NewCandidateRepository(db.DB, candidate.NewBuilder(nil))
	itemRepo := repository.NewItemRepository(db.DB)

	return &testStack{
		db:         db.DB,
		digestRepo: digestRepo,
		itemRepo:   itemRepo,
		digests:    NewDigestService(digestRepo, candidateRepo, log, loc, entity.DefaultDigestParams(), time.Minute),
		items:      NewItemService(itemRepo, nil, log, loc),
	}
}

type itemFixture struct {
	title     string
	body      string
	published time.Time
	business  int
	dfo       int
	interest  int
	dfoBiz    bool
	noAnalyze bool
}

func (s *testStack) seed(t *testing.T, f itemFixture) uint {
	t.Helper()
	if f.title == "" {
		f.title = "новость"
	}
	n := seq.Add(1)
	pub := f.published
	item := &entity.Item{
		SourceName:    "test",
		URL:           fmt.Sprintf("https://example.com/%d", n),
		Title:         f.title,
		Body:          f.body,
		PublishedAt:   &pub,
		FetchedAt:     pub,
		BusinessScore: f.business,
		DFOScore:      f.dfo,
	}
	item.URLCanon = item.URL
	item.Fingerprint = item.URL
	require.NoError(t, s.db.Create(item).Error)

	if !f.noAnalyze {
		require.NoError(t, s.db.Create(&entity.ItemAnalysis{
			ItemID:        item.ID,
			InterestScore: f.interest,
			IsDFOBusiness: f.dfoBiz,
			TitleShort:    "кратко " + f.title,
			Bulletin:      "бюллетень " + f.title,
		}).Error)
	}
	return item.ID
}

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// openParams accepts every analysed item.
func openParams(topN, preferDays, lookback int) entity.DigestParams {
	return entity.DigestParams{
		TopN:            topN,
		PreferDays:      preferDays,
		MaxLookbackDays: lookback,
	}
}
