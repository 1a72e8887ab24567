// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/testutil"
)

func TestSetResponseReplacesPrevious(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)
	ctx := context.Background()

	in := SetResponseInput{PlanSlug: slug, Token: "tok-a", DisplayName: "Alice", Status: models.StatusIn}
	_, err := svc.SetResponse(ctx, in)
	require.NoError(t, err)
	_, err = svc.SetResponse(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CountRows(t, conn, "SELECT COUNT(*) FROM responses WHERE plan_id = $1", planID))

	in.Status = models.StatusOut
	_, err = svc.SetResponse(ctx, in)
	require.NoError(t, err)

	got, err := svc.MyResponse(ctx, slug, "tok-a")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOut, got.Status)
	assert.Equal(t, 1, testutil.CountRows(t, conn, "SELECT COUNT(*) FROM responses WHERE plan_id = $1", planID))
}

func TestSetResponseValidation(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPlaydate)

	tests := []struct {
		name  string
		in    SetResponseInput
		field string
	}{
		{"missing name", SetResponseInput{PlanSlug: slug, Token: "t", Status: models.StatusIn}, "display_name"},
		{"bad status", SetResponseInput{PlanSlug: slug, Token: "t", DisplayName: "A", Status: "yes"}, "status"},
		{"missing status", SetResponseInput{PlanSlug: slug, Token: "t", DisplayName: "A"}, "status"},
		{"bad arrival", SetResponseInput{PlanSlug: slug, Token: "t", DisplayName: "A", Status: models.StatusIn, Arrival: strPtr("tomorrow")}, "arrival"},
		{"token with spaces", SetResponseInput{PlanSlug: slug, Token: "a b", DisplayName: "A", Status: models.StatusIn}, "participant_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetResponse(context.Background(), tt.in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSetResponseUnknownPlan(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetResponse(context.Background(), SetResponseInput{
		PlanSlug: "nothere000", Token: "t", DisplayName: "A", Status: models.StatusIn,
	})
	assert.True(t, models.IsNotFound(err), "got %v", err)
}

func TestArrivalOnlyKeptForPlaydates(t *testing.T) {
	svc, conn := newTestService(t)
	_, playdate := testutil.CreateTestPlan(t, conn, models.CategoryPlaydate)
	_, potluck := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	ctx := context.Background()

	r, err := svc.SetResponse(ctx, SetResponseInput{
		PlanSlug: playdate, Token: "t", DisplayName: "A", Status: models.StatusIn, Arrival: strPtr(models.ArrivalHalfHourLate),
	})
	require.NoError(t, err)
	require.NotNil(t, r.Arrival)
	assert.Equal(t, models.ArrivalHalfHourLate, *r.Arrival)

	stored, err := svc.MyResponse(ctx, playdate, "t")
	require.NoError(t, err)
	require.NotNil(t, stored.Arrival)
	assert.Equal(t, models.ArrivalHalfHourLate, *stored.Arrival)

	r, err = svc.SetResponse(ctx, SetResponseInput{
		PlanSlug: potluck, Token: "t", DisplayName: "A", Status: models.StatusIn, Arrival: strPtr(models.ArrivalOnTime),
	})
	require.NoError(t, err)
	assert.Nil(t, r.Arrival)

	stored, err = svc.MyResponse(ctx, potluck, "t")
	require.NoError(t, err)
	assert.Nil(t, stored.Arrival)
}

func TestUpdateResponsePartial(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPlaydate)
	ctx := context.Background()

	_, err := svc.SetResponse(ctx, SetResponseInput{
		PlanSlug: slug, Token: "t", DisplayName: "Alice", Status: models.StatusMaybe, Arrival: strPtr(models.ArrivalOnTime),
	})
	require.NoError(t, err)

	// Arrival only keeps status
	r, err := svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t", Arrival: strPtr(models.ArrivalLeavingEarly)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaybe, r.Status)
	assert.Equal(t, "Alice", r.DisplayName)
	require.NotNil(t, r.Arrival)
	assert.Equal(t, models.ArrivalLeavingEarly, *r.Arrival)

	// Status only keeps arrival
	r, err = svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t", Status: strPtr(models.StatusIn)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusIn, r.Status)
	require.NotNil(t, r.Arrival)
	assert.Equal(t, models.ArrivalLeavingEarly, *r.Arrival)

	// Empty arrival clears it
	r, err = svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t", Arrival: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, r.Arrival)
	assert.Equal(t, models.StatusIn, r.Status)

	assert.Equal(t, 1, testutil.CountRows(t, conn, "SELECT COUNT(*) FROM responses"))
}

func TestUpdateResponseErrors(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPlaydate)
	ctx := context.Background()

	_, err := svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t"})
	assert.True(t, models.IsValidation(err), "got %v", err)

	// No status on record yet
	_, err = svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t", DisplayName: "A", Arrival: strPtr(models.ArrivalOnTime)})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)

	_, err = svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: "nothere000", Token: "t", Status: strPtr(models.StatusIn)})
	assert.True(t, models.IsNotFound(err), "got %v", err)

	// First response through the partial path
	r, err := svc.UpdateResponse(ctx, UpdateResponseInput{PlanSlug: slug, Token: "t", DisplayName: "A", Status: strPtr(models.StatusIn)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusIn, r.Status)
}

func TestMyResponse(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)
	ctx := context.Background()

	_, err := svc.MyResponse(ctx, slug, "t")
	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "response", nf.Kind)

	_, err = svc.MyResponse(ctx, slug, "")
	assert.True(t, models.IsValidation(err))
}

func TestConcurrentResponses(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)

	const participants = 10
	var wg sync.WaitGroup
	errs := make(chan error, participants*2)

	for i := 0; i < participants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.SetResponse(context.Background(), SetResponseInput{
				PlanSlug:    slug,
				Token:       fmt.Sprintf("tok-%d", i),
				DisplayName: fmt.Sprintf("P%d", i),
				Status:      models.StatusIn,
			})
			errs <- err
		}(i)
	}

	// Same participant racing with themselves still leaves one row
	for i := 0; i < participants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.StatusIn
			if i%2 == 0 {
				status = models.StatusOut
			}
			_, err := svc.SetResponse(context.Background(), SetResponseInput{
				PlanSlug: slug, Token: "tok-same", DisplayName: "Same", Status: status,
			})
			errs <- err
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, participants+1, testutil.CountRows(t, conn, "SELECT COUNT(*) FROM responses WHERE plan_id = $1", planID))
}

func TestParticipantPlans(t *testing.T) {
	svc, conn := newTestService(t)
	_, a := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)
	_, b := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	testutil.CreateTestPlan(t, conn, models.CategoryPlaydate)
	ctx := context.Background()

	for _, slug := range []string{a, b} {
		_, err := svc.SetResponse(ctx, SetResponseInput{PlanSlug: slug, Token: "me", DisplayName: "Me", Status: models.StatusMaybe})
		require.NoError(t, err)
	}
	_, err := svc.SetResponse(ctx, SetResponseInput{PlanSlug: a, Token: "other", DisplayName: "Other", Status: models.StatusIn})
	require.NoError(t, err)

	plans, err := svc.ParticipantPlans(ctx, "me")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	slugs := []string{plans[0].Slug, plans[1].Slug}
	assert.ElementsMatch(t, []string{a, b}, slugs)
	for _, p := range plans {
		assert.Equal(t, models.StatusMaybe, p.Status)
	}

	plans, err = svc.ParticipantPlans(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestWritesAreStampedWithServiceClock(t *testing.T) {
	svc, conn := newTestService(t)
	_, planSlug := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)
	_, reqSlug := testutil.CreateTestRequest(t, conn, models.CategoryCoworking)
	ctx := context.Background()

	_, err := svc.SetResponse(ctx, SetResponseInput{PlanSlug: planSlug, Token: "tok-a", DisplayName: "Alice", Status: models.StatusIn})
	require.NoError(t, err)
	got, err := svc.MyResponse(ctx, planSlug, "tok-a")
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(testutil.Day), "updated_at %v", got.UpdatedAt)

	_, err = svc.AddWindow(ctx, AddWindowInput{RequestSlug: reqSlug, Token: "tok-a", DisplayName: "Alice", Start: at(9, 0), End: at(10, 0)})
	require.NoError(t, err)
	windows, err := svc.ListWindows(ctx, reqSlug)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].CreatedAt.Equal(testutil.Day), "created_at %v", windows[0].CreatedAt)
}
