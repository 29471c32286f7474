package services

import (
	"fmt"
	"strings"

	"github.com/Jdubz/resume-pipeline/internal/db/models"
)

// FilterResult is the outcome of a stop-list check
type FilterResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CheckStopList checks a submission against the configured exclusion rules.
// Matching is a case-insensitive substring test, with precedence companies,
// then domains, then keywords; the first match wins. The function is total:
// a nil or empty list allows everything.
func CheckStopList(url, companyName string, list *models.StopList) FilterResult {
	if list.IsEmpty() {
		return FilterResult{Allowed: true}
	}

	company := strings.ToLower(companyName)
	target := strings.ToLower(url)

	for _, excluded := range list.ExcludedCompanies {
		if excluded != "" && strings.Contains(company, strings.ToLower(excluded)) {
			return FilterResult{Reason: fmt.Sprintf("company contains %q", excluded)}
		}
	}

	for _, excluded := range list.ExcludedDomains {
		if excluded != "" && strings.Contains(target, strings.ToLower(excluded)) {
			return FilterResult{Reason: fmt.Sprintf("url contains excluded domain %q", excluded)}
		}
	}

	for _, excluded := range list.ExcludedKeywords {
		if excluded == "" {
			continue
		}
		keyword := strings.ToLower(excluded)
		if strings.Contains(target, keyword) || strings.Contains(company, keyword) {
			return FilterResult{Reason: fmt.Sprintf("submission contains excluded keyword %q", excluded)}
		}
	}

	return FilterResult{Allowed: true}
}
