// Package entity defines the domain models for the symbols feature.
package entity

import "time"

// Symbol is one entry of the symbol directory: a company display name and its ticker.
// Several display names may map to the same ticker, so Name is the unique key.
type Symbol struct {
	ID        uint      `gorm:"primaryKey" yaml:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" yaml:"name"`
	Code      string    `gorm:"size:20;not null;index" yaml:"code"`
	IsActive  bool      `gorm:"not null;default:true" yaml:"-"`
	SortKey   int       `gorm:"not null;default:0" yaml:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" yaml:"-"`
}
