package offer_test

import (
	"crm-admin/internal/domain/offer"
	"crm-admin/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, ok := offer.ParseStatus(" Accepted ")
	assert.True(t, ok)
	assert.Equal(t, offer.StatusAccepted, st)

	_, ok = offer.ParseStatus("archived")
	assert.False(t, ok)
}

func TestStatusTransitions(t *testing.T) {
	testCases := []struct {
		from, to offer.Status
		allowed  bool
	}{
		{offer.StatusDraft, offer.StatusSent, true},
		{offer.StatusDraft, offer.StatusCancelled, true},
		{offer.StatusDraft, offer.StatusAccepted, false},
		{offer.StatusSent, offer.StatusAccepted, true},
		{offer.StatusSent, offer.StatusRejected, true},
		{offer.StatusSent, offer.StatusExpired, true},
		{offer.StatusSent, offer.StatusDraft, false},
		{offer.StatusAccepted, offer.StatusRejected, false},
		{offer.StatusExpired, offer.StatusSent, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, offer.CanTransition(tc.from, tc.to))
		})
	}

	for _, final := range []offer.Status{offer.StatusAccepted, offer.StatusRejected, offer.StatusExpired, offer.StatusCancelled} {
		assert.True(t, final.IsFinal(), string(final))
	}
	assert.False(t, offer.StatusDraft.IsFinal())
}

func TestOffer_TransitionTo(t *testing.T) {
	o := offer.NewOffer(1, offer.Details{Title: "Συντήρηση", Amount: decimal.NewFromInt(100), VATRate: offer.DefaultVATRate})
	sentAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, o.TransitionTo(offer.StatusSent, sentAt))
	assert.Equal(t, offer.StatusSent, o.Status)
	require.NotNil(t, o.SentAt)
	assert.Equal(t, sentAt, *o.SentAt)
	assert.Nil(t, o.DecidedAt)

	decidedAt := sentAt.Add(48 * time.Hour)
	require.NoError(t, o.TransitionTo(offer.StatusAccepted, decidedAt))
	require.NotNil(t, o.DecidedAt)
	assert.Equal(t, decidedAt, *o.DecidedAt)

	err := o.TransitionTo(offer.StatusRejected, decidedAt)
	assert.ErrorIs(t, err, offer.ErrInvalidTransition)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, offer.StatusAccepted, o.Status)
}

func TestOffer_Totals(t *testing.T) {
	o := offer.NewOffer(1, offer.Details{
		Title:   "Λογιστική υποστήριξη",
		Amount:  decimal.RequireFromString("1234.567"),
		VATRate: offer.DefaultVATRate,
	})

	assert.Equal(t, "1234.57", o.Amount.StringFixed(2), "amount is rounded to cents")
	assert.Equal(t, "296.30", o.VATAmount().StringFixed(2))
	assert.Equal(t, "1530.87", o.Total().StringFixed(2))
	assert.Equal(t, "24", o.VATPercent().String())
}

func TestDetails_Validate(t *testing.T) {
	valid := offer.Details{Title: "A", Amount: decimal.NewFromInt(1), VATRate: offer.DefaultVATRate}
	assert.NoError(t, valid.Validate())

	testCases := map[string]offer.Details{
		"title":   {Amount: decimal.NewFromInt(1)},
		"amount":  {Title: "A", Amount: decimal.Zero},
		"vatRate": {Title: "A", Amount: decimal.NewFromInt(1), VATRate: decimal.RequireFromString("1.5")},
	}
	for field, d := range testCases {
		t.Run(field, func(t *testing.T) {
			err := d.Validate()
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, field, vErr.Field)
		})
	}
}

func TestOffer_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	o := &offer.Offer{Status: offer.StatusSent, Details: offer.Details{ValidUntil: &past}}
	assert.True(t, o.IsOverdue(now))

	o.Status = offer.StatusDraft
	assert.False(t, o.IsOverdue(now))

	o.Status = offer.StatusSent
	o.ValidUntil = nil
	assert.False(t, o.IsOverdue(now))
}
