package models

import (
	"gorm.io/gorm"
)

// StopList holds the exclusion rules applied to incoming submissions.
// A single row is kept; a missing row is treated as an empty list so a
// configuration gap never blocks submissions.
type StopList struct {
	gorm.Model
	ExcludedCompanies []string `json:"excluded_companies" gorm:"type:jsonb;serializer:json"`
	ExcludedKeywords  []string `json:"excluded_keywords" gorm:"type:jsonb;serializer:json"`
	ExcludedDomains   []string `json:"excluded_domains" gorm:"type:jsonb;serializer:json"`
	UpdatedBy         string   `json:"updated_by,omitempty"`
}

// IsEmpty reports whether the stop list has no exclusion rules
func (l *StopList) IsEmpty() bool {
	return l == nil ||
		(len(l.ExcludedCompanies) == 0 && len(l.ExcludedKeywords) == 0 && len(l.ExcludedDomains) == 0)
}
