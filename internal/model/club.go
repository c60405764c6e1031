package model

import (
	"strings"
	"time"
)

// JoinType is a club's admission policy
type JoinType string

const (
	JoinTypeOpen        JoinType = "open"        // Membership granted on request
	JoinTypeApplication JoinType = "application" // Owner decides on a written application
	JoinTypeAudition    JoinType = "audition"    // Owner decides after an audition
)

// Valid reports whether j is a known join type.
func (j JoinType) Valid() bool {
	switch j {
	case JoinTypeOpen, JoinTypeApplication, JoinTypeAudition:
		return true
	}
	return false
}

// RequiresDecision reports whether joining goes through an application.
func (j JoinType) RequiresDecision() bool {
	return j != JoinTypeOpen
}

// DeadlineLayout is the format of Club.Deadline.
const DeadlineLayout = "2006-01-02"

// Club represents a student organization owned by one user.
// OwnerName and OwnerEmail are display overrides; they are independent of the
// owning user's account.
type Club struct {
	ID          int64    `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	OwnerID     int64    `db:"owner_id" json:"owner_id"`
	MeetingTime string   `db:"meeting_time" json:"meeting_time"`
	Location    string   `db:"location" json:"location"`
	JoinType    JoinType `db:"join_type" json:"join_type"`
	Deadline    *string  `db:"deadline" json:"deadline"`
	Description string   `db:"description" json:"description"`
	OwnerName   string   `db:"owner_name" json:"owner_name"`
	OwnerEmail  string   `db:"owner_email" json:"owner_email"`
}

// ClubListing is a club row with fields derived for the requesting user.
type ClubListing struct {
	Club
	MemberCount       int64  `db:"member_count" json:"member_count"`
	ApplicationStatus string `db:"application_status" json:"application_status"` // "" when no application exists
	IsMember          bool   `db:"is_member" json:"is_member"`
}

// OwnedClub is a club in its owner's dashboard.
type OwnedClub struct {
	Club
	MemberCount int64 `db:"member_count" json:"member_count"`
}

// ClubDetail is a club with its events ordered by start time.
type ClubDetail struct {
	Club   Club    `json:"club"`
	Events []Event `json:"events"`
}

// UpdateClubRequest is the body of an owner's club edit. Name and JoinType
// are required; any other empty field keeps the stored value.
type UpdateClubRequest struct {
	Name        string  `json:"name"`
	MeetingTime string  `json:"meeting_time"`
	Location    string  `json:"location"`
	JoinType    string  `json:"join_type"`
	Deadline    *string `json:"deadline"`
	Description string  `json:"description"`
	OwnerName   string  `json:"owner_name"`
	OwnerEmail  string  `json:"owner_email"`
}

// Validate checks required fields and formats.
func (r *UpdateClubRequest) Validate() []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxClubNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name must be 100 characters or less"})
	}

	if r.JoinType == "" {
		errs = append(errs, FieldError{Field: "join_type", Message: "join_type is required"})
	} else if !JoinType(r.JoinType).Valid() {
		errs = append(errs, FieldError{Field: "join_type", Message: "join_type must be open, application, or audition"})
	}

	if r.Deadline != nil && *r.Deadline != "" {
		if _, err := time.Parse(DeadlineLayout, *r.Deadline); err != nil {
			errs = append(errs, FieldError{Field: "deadline", Message: "deadline must be a date in YYYY-MM-DD format"})
		}
	}

	return errs
}

// ApplyTo returns club with the request's non-empty fields applied.
func (r *UpdateClubRequest) ApplyTo(club Club) Club {
	club.Name = strings.TrimSpace(r.Name)
	club.JoinType = JoinType(r.JoinType)
	club.MeetingTime = fallback(r.MeetingTime, club.MeetingTime)
	club.Location = fallback(r.Location, club.Location)
	club.Description = fallback(r.Description, club.Description)
	club.OwnerName = fallback(r.OwnerName, club.OwnerName)
	club.OwnerEmail = fallback(r.OwnerEmail, club.OwnerEmail)
	if r.Deadline != nil && *r.Deadline != "" {
		d := *r.Deadline
		club.Deadline = &d
	}
	return club
}

// fallback returns v unless it is empty, in which case it returns current.
func fallback(v, current string) string {
	if v == "" {
		return current
	}
	return v
}

// Validation constants
const (
	MaxClubNameLength = 100
)
