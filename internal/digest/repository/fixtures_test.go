package repository

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(database.Config{
		Driver:   database.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "digest.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db.DB))
	return db.DB
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

func seed(t *testing.T, db *gorm.DB, f itemFixture) uint {
	t.Helper()
	if f.title == "" {
		f.title = "новость"
	}
	pub := f.published
	item := &entity.Item{
		SourceName:    "test",
		URL:           fmt.Sprintf("https://example.com/%d/%s", pub.UnixNano(), f.title),
		Title:         f.title,
		Body:          f.body,
		PublishedAt:   &pub,
		FetchedAt:     pub,
		BusinessScore: f.business,
		DFOScore:      f.dfo,
	}
	item.URLCanon = item.URL
	item.Fingerprint = item.URL
	require.NoError(t, db.Create(item).Error)

	if !f.noAnalyze {
		require.NoError(t, db.Create(&entity.ItemAnalysis{
			ItemID:        item.ID,
			InterestScore: f.interest,
			IsDFOBusiness: f.dfoBiz,
			TitleShort:    "кратко " + f.title,
			Bulletin:      "бюллетень",
		}).Error)
	}
	return item.ID
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openParams() entity.DigestParams {
	return entity.DigestParams{
		TopN:            5,
		PreferDays:      2,
		MaxLookbackDays: 30,
	}
}
