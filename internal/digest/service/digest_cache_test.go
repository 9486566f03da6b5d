package service

import (
	"context"
	"testing"
	"time"

	"dfo-news-digest/internal/digest/candidate"
	"dfo-news-digest/internal/digest/repository"
	"dfo-news-digest/internal/entity"
	"dfo-news-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestService_CachedReadSeesOtherWritersAfterTTL(t *testing.T) {
	st := newTestStack(t, time.UTC)
	ctx := context.Background()

	candidates := repository.NewCandidateRepository(st.db, candidate.NewBuilder(nil))
	reader := NewDigestService(st.digestRepo, candidates, logger.NewNop(), time.UTC, entity.DefaultDigestParams(), 100*time.Millisecond)

	_, err := st.digests.Ensure(ctx, "2024-06-01", openParams(1, 1, 10))
	require.NoError(t, err)

	before, err := reader.GetByDay(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Empty(t, before.Items)

	id := st.seed(t, itemFixture{published: utcDay(2024, 6, 1).Add(time.Hour), interest: 5})
	_, err = st.digests.CreateOrRefill(ctx, "2024-06-01", openParams(1, 1, 10), true, false)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		d, err := reader.GetByDay(ctx, "2024-06-01")
		return err == nil && len(d.Items) == 1 && d.Items[0].ItemID == id
	}, 2*time.Second, 20*time.Millisecond)
}
