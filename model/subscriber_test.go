package model_test

import (
	"testing"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/stretchr/testify/require"
)

func TestSubscriberDefaults(t *testing.T) {
	db := utils.CreateTempDB(t)

	subscriber := model.NewsletterSubscriber{
		Email:  "reader@example.com",
		Status: model.SubscriberStatusActive,
	}
	require.NoError(t, db.Create(&subscriber).Error)

	require.NotEmpty(t, subscriber.Id)
	require.NotEmpty(t, subscriber.VerificationToken)
	require.False(t, subscriber.SubscribedAt.IsZero())
	require.Nil(t, subscriber.VerifiedAt)
}

func TestSubscriberVerifyIsIdempotent(t *testing.T) {
	db := utils.CreateTempDB(t)

	subscriber := model.NewsletterSubscriber{Email: "reader@example.com", Status: model.SubscriberStatusActive}
	require.NoError(t, db.Create(&subscriber).Error)

	first := time.Now()
	require.NoError(t, subscriber.Verify(db, first))
	require.NotNil(t, subscriber.VerifiedAt)
	require.Equal(t, model.SubscriberStatusActive, subscriber.Status)

	// A second verification keeps the original timestamp.
	require.NoError(t, subscriber.Verify(db, first.Add(time.Hour)))

	var reloaded model.NewsletterSubscriber
	require.NoError(t, db.First(&reloaded, "id = ?", subscriber.Id).Error)
	require.NotNil(t, reloaded.VerifiedAt)
	require.WithinDuration(t, first, *reloaded.VerifiedAt, time.Second)
}

func TestSubscriberUnsubscribeIsIdempotent(t *testing.T) {
	db := utils.CreateTempDB(t)

	subscriber := model.NewsletterSubscriber{Email: "reader@example.com", Status: model.SubscriberStatusActive}
	require.NoError(t, db.Create(&subscriber).Error)

	first := time.Now()
	require.NoError(t, subscriber.Unsubscribe(db, first))
	require.Equal(t, model.SubscriberStatusUnsubscribed, subscriber.Status)

	require.NoError(t, subscriber.Unsubscribe(db, first.Add(time.Hour)))

	var reloaded model.NewsletterSubscriber
	require.NoError(t, db.First(&reloaded, "id = ?", subscriber.Id).Error)
	require.Equal(t, model.SubscriberStatusUnsubscribed, reloaded.Status)
	require.NotNil(t, reloaded.UnsubscribedAt)
	require.WithinDuration(t, first, *reloaded.UnsubscribedAt, time.Second)
}

func TestSubscriberVerifyAfterUnsubscribe(t *testing.T) {
	db := utils.CreateTempDB(t)

	subscriber := model.NewsletterSubscriber{Email: "reader@example.com", Status: model.SubscriberStatusActive}
	require.NoError(t, db.Create(&subscriber).Error)

	now := time.Now()
	require.NoError(t, subscriber.Unsubscribe(db, now))

	// The token stays usable, verifying reactivates the subscription.
	require.NoError(t, subscriber.Verify(db, now.Add(time.Minute)))

	var reloaded model.NewsletterSubscriber
	require.NoError(t, db.First(&reloaded, "id = ?", subscriber.Id).Error)
	require.Equal(t, model.SubscriberStatusActive, reloaded.Status)
}
