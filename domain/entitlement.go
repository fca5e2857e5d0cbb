package domain

import "time"

type SubscriptionType string

const (
	SubscriptionFree  SubscriptionType = "free"
	SubscriptionTrial SubscriptionType = "trial"
	SubscriptionPro   SubscriptionType = "pro"
)

// EntitlementState is recomputed from persisted keys on every status check.
type EntitlementState struct {
	IsPro            bool             `json:"isPro"`
	IsTrialActive    bool             `json:"isTrialActive"`
	TrialStartDate   *time.Time       `json:"trialStartDate,omitempty"`
	SubscriptionType SubscriptionType `json:"subscriptionType"`
}

// UsageQuota tracks today's AI usage. LastResetDate is YYYY-MM-DD in local time.
type UsageQuota struct {
	DailyCount    int    `json:"dailyCount"`
	DailyLimit    int    `json:"dailyLimit"`
	Unlimited     bool   `json:"unlimited"`
	LastResetDate string `json:"lastResetDate"`
}

type EntitlementStatus struct {
	EntitlementState
	DaysLeft int        `json:"daysLeft"`
	Quota    UsageQuota `json:"quota"`
}

// UsageDecision answers whether a gated action may proceed. Remaining is -1
// for unlimited tiers.
type UsageDecision struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"`
}
