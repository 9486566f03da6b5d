package telegram

import (
	"strings"
	"testing"
	"time"

	"dfo-news-digest/internal/digest/dto"
	"dfo-news-digest/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDigestForTelegram_Empty(t *testing.T) {
	msgs := FormatDigestForTelegram(&dto.DigestResponse{Day: "2024-06-01"})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "2024-06-01")
}

func TestFormatDigestForTelegram_Items(t *testing.T) {
	short := "Порт_Восточный"
	score := 8
	d := &dto.DigestResponse{
		Day: "2024-06-01",
		Items: []entity.DigestEntry{
			{Rank: 1, Title: "длинный заголовок", TitleShort: &short, InterestScore: &score, SourceName: "tass", URL: "https://tass.ru/1"},
			{Rank: 2, Title: "второй", SourceName: "rbc", URL: "https://rbc.ru/2"},
		},
	}

	msgs := FormatDigestForTelegram(d)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "*1. Порт\\_Восточный*")
	assert.Contains(t, msgs[0], "8/10")
	assert.Contains(t, msgs[0], "*2. второй*")
	assert.Contains(t, msgs[0], "https://rbc.ru/2")
}

func TestFormatDigestForTelegram_SplitsLongDigests(t *testing.T) {
	bulletin := strings.Repeat("б", 900)
	items := make([]entity.DigestEntry, 0, 10)
	for i := 1; i <= 10; i++ {
		items = append(items, entity.DigestEntry{Rank: i, Title: "t", Bulletin: &bulletin, URL: "https://x"})
	}

	msgs := FormatDigestForTelegram(&dto.DigestResponse{Day: "2024-06-01", Items: items})
	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.Contains(t, msgs[1], "часть 2")
}

func TestFormatErrorAlertMessage(t *testing.T) {
	msg := FormatErrorAlertMessage(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), "abc", "2024-06-01", "digest has no items")
	assert.Contains(t, msg, "run abc")
	assert.Contains(t, msg, "digest has no items")
}
