// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hang

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahatra/tribe-widget/metrics"
	"github.com/kahatra/tribe-widget/models"
	"github.com/kahatra/tribe-widget/store"
	"github.com/kahatra/tribe-widget/testutil"
)

func claimItems(claims []models.Claim) []string {
	items := make([]string, 0, len(claims))
	for _, c := range claims {
		items = append(items, c.Item)
	}
	return items
}

func TestPotluckFirstViewSeedsDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	plan, err := svc.CreatePlan(ctx, CreatePlanInput{
		Title: "Potluck", Category: models.CategoryPotluck, Start: at(18, 0), End: at(21, 0),
	})
	require.NoError(t, err)

	snap, err := svc.PlanSnapshot(ctx, plan.Slug)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPotluckItems, claimItems(snap.Claims))
	for _, c := range snap.Claims {
		assert.Nil(t, c.ClaimedBy, c.Item)
	}
}

func TestSeedDefaultClaimsIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	ctx := context.Background()

	first, err := svc.SeedDefaultClaims(ctx, slug)
	require.NoError(t, err)

	_, err = svc.ClaimItem(ctx, slug, "Dessert", "Alice")
	require.NoError(t, err)

	second, err := svc.SeedDefaultClaims(ctx, slug)
	require.NoError(t, err)

	assert.Equal(t, claimItems(first), claimItems(second))
	assert.Equal(t, len(models.DefaultPotluckItems),
		testutil.CountRows(t, conn, "SELECT COUNT(*) FROM claims WHERE plan_id = $1", planID))

	// Reseeding left the existing claim alone
	for _, c := range second {
		if c.Item == "Dessert" {
			require.NotNil(t, c.ClaimedBy)
			assert.Equal(t, "Alice", *c.ClaimedBy)
		}
	}
}

func TestSeedDefaultClaimsOtherCategories(t *testing.T) {
	svc, conn := newTestService(t)

	for _, category := range []string{models.CategoryCoworking, models.CategoryDanceClass, models.CategoryPlaydate} {
		t.Run(category, func(t *testing.T) {
			_, slug := testutil.CreateTestPlan(t, conn, category)
			claims, err := svc.SeedDefaultClaims(context.Background(), slug)
			require.NoError(t, err)
			assert.Empty(t, claims)
		})
	}
}

func TestAddItem(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	ctx := context.Background()

	claims, err := svc.AddItem(ctx, slug, "  Ice  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ice"}, claimItems(claims))

	// Seeded defaults sort ahead of custom items
	claims, err = svc.SeedDefaultClaims(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, models.DefaultPotluckItems...), "Ice"), claimItems(claims))

	claims, err = svc.AddItem(ctx, slug, "Ice")
	require.NoError(t, err)
	assert.Len(t, claims, len(models.DefaultPotluckItems)+1)

	_, err = svc.AddItem(ctx, slug, "   ")
	assert.True(t, models.IsValidation(err))
}

func TestClaimThenUnclaim(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	testutil.CreateTestClaim(t, conn, planID, "Salad", "")
	ctx := context.Background()

	c, err := svc.ClaimItem(ctx, slug, "Salad", "Alice")
	require.NoError(t, err)
	require.NotNil(t, c.ClaimedBy)
	assert.Equal(t, "Alice", *c.ClaimedBy)

	c, err = svc.UnclaimItem(ctx, slug, "Salad", "Alice")
	require.NoError(t, err)
	assert.Nil(t, c.ClaimedBy)
}

func TestUnclaimByAnotherNameIsRejected(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	testutil.CreateTestClaim(t, conn, planID, "Drinks", "Alice")
	ctx := context.Background()

	_, err := svc.UnclaimItem(ctx, slug, "Drinks", "Bob")
	assert.True(t, models.IsAuthorization(err), "got %v", err)

	claims, err := svc.SeedDefaultClaims(ctx, slug)
	require.NoError(t, err)
	for _, c := range claims {
		if c.Item == "Drinks" {
			require.NotNil(t, c.ClaimedBy)
			assert.Equal(t, "Alice", *c.ClaimedBy)
		}
	}
}

func TestUnclaimUnclaimedItemIsRejected(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	testutil.CreateTestClaim(t, conn, planID, "Salad", "")

	_, err := svc.UnclaimItem(context.Background(), slug, "Salad", "Alice")
	assert.True(t, models.IsAuthorization(err), "got %v", err)
}

func TestClaimLastWriteWins(t *testing.T) {
	svc, conn := newTestService(t)
	planID, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	testutil.CreateTestClaim(t, conn, planID, "Dessert", "Alice")

	c, err := svc.ClaimItem(context.Background(), slug, "Dessert", "Bob")
	require.NoError(t, err)
	require.NotNil(t, c.ClaimedBy)
	assert.Equal(t, "Bob", *c.ClaimedBy)
}

func TestClaimErrors(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	ctx := context.Background()

	_, err := svc.ClaimItem(ctx, slug, "Caviar", "Alice")
	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Kind)

	_, err = svc.UnclaimItem(ctx, slug, "Caviar", "Alice")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "item", nf.Kind)

	_, err = svc.ClaimItem(ctx, slug, "Salad", " ")
	assert.True(t, models.IsValidation(err))

	_, err = svc.ClaimItem(ctx, "nothere000", "Salad", "Alice")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "plan", nf.Kind)
}

func TestItemNamesAreTrimmedEverywhere(t *testing.T) {
	svc, conn := newTestService(t)
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryCoworking)
	ctx := context.Background()

	claims, err := svc.AddItem(ctx, slug, " Chairs ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chairs"}, claimItems(claims))

	c, err := svc.ClaimItem(ctx, slug, " Chairs ", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Chairs", c.Item)
	require.NotNil(t, c.ClaimedBy)

	c, err = svc.UnclaimItem(ctx, slug, "Chairs  ", "Alice")
	require.NoError(t, err)
	assert.Nil(t, c.ClaimedBy)

	long := strings.Repeat("x", maxItemLength+1)
	for _, item := range []string{"", "   ", long} {
		_, err = svc.ClaimItem(ctx, slug, item, "Alice")
		assert.True(t, models.IsValidation(err), "claim %q: got %v", item, err)
		_, err = svc.UnclaimItem(ctx, slug, item, "Alice")
		assert.True(t, models.IsValidation(err), "unclaim %q: got %v", item, err)
		_, err = svc.AddItem(ctx, slug, item)
		assert.True(t, models.IsValidation(err), "add %q: got %v", item, err)
	}
}

func TestSeedMetricCountsInsertedItems(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewService(store.New(conn), WithMetrics(m))
	_, slug := testutil.CreateTestPlan(t, conn, models.CategoryPotluck)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.PlanSnapshot(ctx, slug)
		require.NoError(t, err)
	}

	seeded := promtest.ToFloat64(m.ClaimActions.WithLabelValues("seed"))
	assert.Equal(t, float64(len(models.DefaultPotluckItems)), seeded)
}
