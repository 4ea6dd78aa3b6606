package repository

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_CreateAndListByAd(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller")
	ad := createTestAd(t, db, &models.Ad{Title: "For sale", UserID: user.ID})
	other := createTestAd(t, db, &models.Ad{Title: "Other", UserID: user.ID})

	ownerID := user.ID
	first := &models.Message{
		AdID:        ad.ID,
		SenderName:  "Buyer One",
		SenderPhone: "+7 (999) 111-11-11",
		Body:        "Is it still available?",
		RecipientID: &ownerID,
		CreatedAt:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	second := &models.Message{
		AdID:        ad.ID,
		SenderName:  "Buyer Two",
		SenderPhone: "+7 (999) 222-22-22",
		SenderEmail: "two@example.com",
		Body:        "Would you take 40k?",
		RecipientID: &ownerID,
		CreatedAt:   time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &models.Message{
		AdID: other.ID, SenderName: "Elsewhere", SenderPhone: "+7 (999) 333-33-33", Body: "wrong thread",
	}))

	messages, err := repo.ListByAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// ordered oldest first regardless of insert order
	assert.Equal(t, "Buyer One", messages[0].SenderName)
	assert.Equal(t, "Buyer Two", messages[1].SenderName)
	require.NotNil(t, messages[0].RecipientID)
	assert.Equal(t, user.ID, *messages[0].RecipientID)
}

func TestMessageRepository_CountByAd(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller")
	ad := createTestAd(t, db, &models.Ad{Title: "For sale", UserID: user.ID})

	count, err := repo.CountByAd(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, &models.Message{
			AdID: ad.ID, SenderName: "Buyer", SenderPhone: "+7 (999) 000-00-00", Body: "hi",
		}))
	}

	count, err = repo.CountByAd(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
