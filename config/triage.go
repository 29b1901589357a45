package config

import (
	"log"
	"os"
	"strconv"

	"civictriage-be/services"
)

// TriagePolicyFromEnv builds the crowd-moderation policy from the
// environment, falling back to the defaults for anything unset or
// unparseable.
func TriagePolicyFromEnv() services.TriagePolicy {
	policy := services.DefaultTriagePolicy()

	if raw := os.Getenv("TRIAGE_APPROVAL_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			policy.ApprovalThreshold = v
		} else {
			log.Printf("Ignoring invalid TRIAGE_APPROVAL_THRESHOLD %q", raw)
		}
	}
	if raw := os.Getenv("TRIAGE_REJECTION_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			policy.RejectionThreshold = v
		} else {
			log.Printf("Ignoring invalid TRIAGE_REJECTION_THRESHOLD %q", raw)
		}
	}
	if raw := os.Getenv("TRIAGE_ALLOW_REOPEN"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			policy.AllowReopen = v
		} else {
			log.Printf("Ignoring invalid TRIAGE_ALLOW_REOPEN %q", raw)
		}
	}

	return policy
}
