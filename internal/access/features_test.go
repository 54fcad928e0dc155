package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAccessTierMatrix(t *testing.T) {
	tests := []struct {
		plan    Plan
		feature Feature
		want    bool
	}{
		{PlanFree, FeatureDashboardBasic, true},
		{PlanFree, FeatureWeather, true},
		{PlanFree, FeatureCropHealth, false},
		{PlanFree, FeaturePredictions, false},
		{PlanFree, FeatureExportCSV, false},

		{PlanPro, FeatureDashboardBasic, true},
		{PlanPro, FeatureCropHealth, true},
		{PlanPro, FeatureSensorsAdvanced, true},
		{PlanPro, FeatureExportCSV, true},
		{PlanPro, FeaturePredictions, false},
		{PlanPro, FeatureMultiFarm, false},

		{PlanPremium, FeatureCropHealth, true},
		{PlanPremium, FeaturePredictions, true},
		{PlanPremium, FeatureAPIAccess, true},
		{PlanPremium, FeatureExportAll, true},
		// Premium supersedes CSV-only export with export-all.
		{PlanPremium, FeatureExportCSV, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, HasAccess(tt.plan, tt.feature), "%s / %s", tt.plan, tt.feature)
	}
}

func TestHasAccessFailsClosed(t *testing.T) {
	assert.False(t, HasAccess("enterprise", FeatureDashboardBasic))
	assert.False(t, HasAccess(PlanPremium, "time-travel"))
	assert.False(t, HasAccess("", ""))
}

func TestFreeFeaturesCarryUpward(t *testing.T) {
	for _, f := range Features(PlanFree) {
		assert.Truef(t, HasAccess(PlanPro, f), "pro missing free feature %s", f)
		assert.Truef(t, HasAccess(PlanPremium, f), "premium missing free feature %s", f)
	}
}

func TestFeaturesUnknownPlan(t *testing.T) {
	assert.Nil(t, Features("gold"))
}

func TestParsePlan(t *testing.T) {
	for _, s := range []string{"free", "pro", "premium"} {
		p, err := ParsePlan(s)
		assert.NoError(t, err)
		assert.Equal(t, Plan(s), p)
	}

	_, err := ParsePlan("Free")
	assert.Error(t, err)
	_, err = ParsePlan("")
	assert.Error(t, err)
}

func TestSessionSubscribe(t *testing.T) {
	s := NewSession(PlanFree)
	assert.Equal(t, PlanFree, s.Current())

	p, err := s.Subscribe("premium")
	assert.NoError(t, err)
	assert.Equal(t, PlanPremium, p)
	assert.Equal(t, PlanPremium, s.Current())

	// A bad plan leaves the current one untouched.
	_, err = s.Subscribe("platinum")
	assert.Error(t, err)
	assert.Equal(t, PlanPremium, s.Current())
}
