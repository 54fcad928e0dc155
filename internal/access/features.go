// Package access implements subscription-tier feature gating. The
// plan-to-feature table is static; lookups are pure and fail closed for
// unknown plans or feature keys.
package access

import (
	"fmt"
	"sort"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

// ParsePlan validates a plan string.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree, PlanPro, PlanPremium:
		return Plan(s), nil
	}
	return "", fmt.Errorf("unknown plan %q", s)
}

// Feature is a gated capability key.
type Feature string

const (
	FeatureDashboardBasic  Feature = "dashboard-basic"
	FeatureDashboardHealth Feature = "dashboard-health"
	FeatureDashboardYield  Feature = "dashboard-yield"
	FeatureSensorsBasic    Feature = "sensors-basic"
	FeatureSensorsAdvanced Feature = "sensors-advanced"
	FeatureWeather         Feature = "weather"
	FeatureIrrigationBasic Feature = "irrigation-basic"
	FeatureFertilizerBasic Feature = "fertilizer-basic"
	FeatureCropHealth      Feature = "crop-health"
	FeatureReports         Feature = "reports"
	FeaturePredictions     Feature = "predictions"
	FeatureExportCSV       Feature = "export-csv"
	FeatureExportAll       Feature = "export-all"
	FeatureMultiFarm       Feature = "multi-farm"
	FeatureAPIAccess       Feature = "api-access"
)

var freeFeatures = []Feature{
	FeatureDashboardBasic,
	FeatureSensorsBasic,
	FeatureWeather,
	FeatureIrrigationBasic,
	FeatureFertilizerBasic,
}

// Pro extends free; premium extends pro except that export-csv is
// superseded by export-all.
var proOnly = []Feature{
	FeatureDashboardHealth,
	FeatureSensorsAdvanced,
	FeatureCropHealth,
	FeatureReports,
	FeatureExportCSV,
}

var premiumOnly = []Feature{
	FeatureDashboardYield,
	FeaturePredictions,
	FeatureExportAll,
	FeatureMultiFarm,
	FeatureAPIAccess,
}

var planFeatures = map[Plan]map[Feature]bool{
	PlanFree:    featureSet(freeFeatures),
	PlanPro:     featureSet(freeFeatures, proOnly),
	PlanPremium: featureSet(freeFeatures, proOnly, premiumOnly),
}

func featureSet(groups ...[]Feature) map[Feature]bool {
	set := make(map[Feature]bool)
	for _, g := range groups {
		for _, f := range g {
			set[f] = true
		}
	}
	return set
}

func init() {
	// Premium exports everything; the CSV-only key belongs to pro.
	delete(planFeatures[PlanPremium], FeatureExportCSV)
}

// HasAccess reports whether the plan includes the feature. Unknown
// plans and unknown feature keys are not accessible.
func HasAccess(plan Plan, feature Feature) bool {
	set, ok := planFeatures[plan]
	if !ok {
		return false
	}
	return set[feature]
}

// Features returns the sorted feature keys available to a plan.
func Features(plan Plan) []Feature {
	set, ok := planFeatures[plan]
	if !ok {
		return nil
	}
	out := make([]Feature, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
