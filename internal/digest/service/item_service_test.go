package service

import (
	"context"
	"testing"
	"time"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_CreateItemDeduplicates(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	req := &dto.CreateItemRequest{
		SourceName:    "primamedia",
		URL:           "https://primamedia.ru/news/1?utm_source=tg&id=7#comments",
		Title:         "  Порт   Владивосток  ",
		BusinessScore: 3,
		DFOScore:      4,
	}
	first, err := st.items.CreateItem(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "https://primamedia.ru/news/1?id=7", first.URLCanon)

	dup := *req
	dup.URL = "https://primamedia.ru/news/1?id=7&yclid=123"
	second, err := st.items.CreateItem(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)

	item, err := st.itemRepo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Порт Владивосток", item.Title)
	assert.JSONEq(t, "{}", string(item.Reasons))
}

func TestItemService_CreateItemFingerprintConflictReportsExistingID(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	first, err := st.items.CreateItem(ctx, &dto.CreateItemRequest{
		SourceName: "primamedia",
		URL:        "https://primamedia.ru/News/1",
		Title:      "Порт Владивосток",
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	// same source and title, URL differs only in case: a new url_canon but the same fingerprint
	second, err := st.items.CreateItem(ctx, &dto.CreateItemRequest{
		SourceName: "primamedia",
		URL:        "https://primamedia.ru/news/1",
		Title:      "порт владивосток",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "https://primamedia.ru/news/1", second.URLCanon)
	assert.Equal(t, first.ID, second.ID)
}

func TestItemService_CreateItemValidation(t *testing.T) {
	st := newTestStack(t, time.UTC)

	tests := []struct {
		name string
		req  dto.CreateItemRequest
	}{
		{"missing source", dto.CreateItemRequest{URL: "https://a", Title: "t"}},
		{"missing url", dto.CreateItemRequest{SourceName: "s", Title: "t"}},
		{"missing title", dto.CreateItemRequest{SourceName: "s", URL: "https://a"}},
		{"business out of range", dto.CreateItemRequest{SourceName: "s", URL: "https://a", Title: "t", BusinessScore: 5}},
		{"dfo negative", dto.CreateItemRequest{SourceName: "s", URL: "https://a", Title: "t", DFOScore: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.items.CreateItem(context.Background(), &tt.req)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestItemService_AddAnalysisLatestWins(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	id := st.seed(t, itemFixture{published: utcDay(2024, 6, 1), interest: 2})

	_, err := st.items.AddAnalysis(ctx, id, &dto.CreateAnalysisRequest{InterestScore: 11})
	assert.True(t, IsValidation(err))

	_, err = st.items.AddAnalysis(ctx, 9999, &dto.CreateAnalysisRequest{InterestScore: 5})
	assert.ErrorIs(t, err, ErrItemNotFound)

	res, err := st.items.AddAnalysis(ctx, id, &dto.CreateAnalysisRequest{
		Model:         "gemini",
		InterestScore: 8,
		TitleShort:    "обновлено",
		Tags:          []string{"порт"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, res.ItemID)

	built, err := st.digests.CreateOrRefill(ctx, "2024-06-01", openParams(1, 1, 10), true, false)
	require.NoError(t, err)
	require.Len(t, built.Digest.Items, 1)
	assert.Equal(t, 8, *built.Digest.Items[0].InterestScore)
	assert.Equal(t, "обновлено", *built.Digest.Items[0].TitleShort)
}

func TestItemService_PurgeUnused(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -100)
	stale := st.seed(t, itemFixture{title: "stale", published: old})
	kept := st.seed(t, itemFixture{title: "in digest", published: old})
	fresh := st.seed(t, itemFixture{title: "fresh", published: time.Now().UTC()})

	d, err := st.digestRepo.Ensure(ctx, "2024-06-01", openParams(1, 1, 10))
	require.NoError(t, err)
	_, err = st.digestRepo.Fill(ctx, d.ID, []uint{kept}, 1)
	require.NoError(t, err)

	_, err = st.items.PurgeUnused(ctx, 0)
	assert.True(t, IsValidation(err))

	res, err := st.items.PurgeUnused(ctx, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Deleted)

	for id, exists := range map[uint]bool{stale: false, kept: true, fresh: true} {
		item, err := st.itemRepo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, exists, item != nil, "item %d", id)
	}

	var analyses int64
	require.NoError(t, st.db.Model(&entity.ItemAnalysis{}).Where("item_id = ?", stale).Count(&analyses).Error)
	assert.Zero(t, analyses)
}

func TestItemService_ListRecent(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()
	now := time.Now()

	fresh := st.seed(t, itemFixture{title: "Порт Козьмино", published: now.Add(-2 * time.Hour), business: 3, dfo: 3})
	war := st.seed(t, itemFixture{title: "Обстрел причала", published: now.Add(-time.Hour), business: 3, dfo: 3})
	st.seed(t, itemFixture{title: "Старая новость", published: now.Add(-30 * time.Hour), business: 4, dfo: 4})
	st.seed(t, itemFixture{title: "Слабая заметка", published: now.Add(-3 * time.Hour), business: 1, dfo: 1})

	resp, err := st.items.ListRecent(ctx, dto.DefaultListItemsRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, war, resp.Items[0].ID)
	assert.Equal(t, fresh, resp.Items[1].ID)

	req := dto.DefaultListItemsRequest()
	req.ExcludeWar = true
	resp, err = st.items.ListRecent(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, fresh, resp.Items[0].ID)

	req = dto.DefaultListItemsRequest()
	req.WindowHours = 48
	req.MinBusiness = 0
	req.MinDFO = 0
	resp, err = st.items.ListRecent(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Count)

	req = dto.DefaultListItemsRequest()
	req.RequireCompany = true
	resp, err = st.items.ListRecent(ctx, req)
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Zero(t, resp.Count)
}

func TestItemService_ListRecentValidation(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	cases := map[string]func(*dto.ListItemsRequest){
		"window_hours": func(r *dto.ListItemsRequest) { r.WindowHours = 0 },
		"min_business": func(r *dto.ListItemsRequest) { r.MinBusiness = 5 },
		"min_dfo":      func(r *dto.ListItemsRequest) { r.MinDFO = -1 },
		"limit":        func(r *dto.ListItemsRequest) { r.Limit = 201 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := dto.DefaultListItemsRequest()
			mutate(&req)
			_, err := st.items.ListRecent(ctx, req)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}
