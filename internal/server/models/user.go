// Package models holds the persisted domain records.
package models

import "time"

// User is the local shadow of one external identity. ExternalID is the join
// key to the provider and never changes once set; Email, ExternalID and
// Username are unique across all rows. Users are soft-deleted via Active.
type User struct {
	ID         int64
	ExternalID string
	Email      string
	Username   *string
	FullName   *string
	Active     bool
	Verified   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
