package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForCount(t *testing.T) {
	assert.Equal(t, DigestStatusEmpty, StatusForCount(0, 5))
	assert.Equal(t, DigestStatusPartial, StatusForCount(3, 5))
	assert.Equal(t, DigestStatusReady, StatusForCount(5, 5))
	assert.Equal(t, DigestStatusReady, StatusForCount(6, 5))
}

func TestDigestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultDigestParams().Validate())

	cases := map[string]func(p *DigestParams){
		"top_n zero":          func(p *DigestParams) { p.TopN = 0 },
		"top_n too large":     func(p *DigestParams) { p.TopN = 51 },
		"prefer_days zero":    func(p *DigestParams) { p.PreferDays = 0 },
		"lookback below pref": func(p *DigestParams) { p.PreferDays = 7; p.MaxLookbackDays = 3 },
		"lookback too large":  func(p *DigestParams) { p.MaxLookbackDays = 367 },
		"interest too large":  func(p *DigestParams) { p.MinInterest = 11 },
		"business negative":   func(p *DigestParams) { p.MinBusiness = -1 },
		"dfo too large":       func(p *DigestParams) { p.MinDFO = 5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultDigestParams()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}

	p := DefaultDigestParams()
	p.PreferDays = 5
	p.MaxLookbackDays = 5
	assert.NoError(t, p.Validate())
}

func TestDigestParamsJSON(t *testing.T) {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(DefaultDigestParams().JSON(), &m))
	assert.EqualValues(t, 5, m["top_n"])
	assert.EqualValues(t, 60, m["max_lookback_days"])
	assert.Equal(t, true, m["only_dfo_business"])
}

func TestItemBeforeCreateNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("VLAT", 10*3600)
	pub := time.Date(2024, 6, 1, 9, 0, 0, 0, loc)
	it := &Item{PublishedAt: &pub}

	require.NoError(t, it.BeforeCreate(nil))
	assert.Equal(t, time.UTC, it.PublishedAt.Location())
	assert.Equal(t, 23, it.PublishedAt.Hour())
	assert.False(t, it.FetchedAt.IsZero())
	assert.Equal(t, "{}", string(it.Reasons))
	assert.Equal(t, *it.PublishedAt, it.EffectiveAt())
}

func TestItemBeforeCreateFoldsSearchText(t *testing.T) {
	it := &Item{Title: "ОБСТРЕЛ Порта", Body: "Удар по Терминалу"}

	require.NoError(t, it.BeforeCreate(nil))
	assert.Equal(t, "обстрел порта удар по терминалу", it.SearchText)
}
