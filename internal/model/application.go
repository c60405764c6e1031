package model

import "time"

// ApplicationStatus is the owner's decision on an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every persisted status.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// Valid reports whether s is one of the three persisted statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application is a student's request to join an application or audition club.
// Unique per (club, user).
type Application struct {
	ID        int64             `db:"id" json:"id"`
	ClubID    int64             `db:"club_id" json:"club_id"`
	UserID    int64             `db:"user_id" json:"user_id"`
	Status    ApplicationStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

// ApplicationWithClub is an application as its student sees it.
type ApplicationWithClub struct {
	Application
	ClubName string `db:"club_name" json:"club_name"`
}

// ApplicationWithStudent is an application as the club owner sees it.
type ApplicationWithStudent struct {
	Application
	StudentName  string `db:"student_name" json:"student_name"`
	StudentEmail string `db:"student_email" json:"student_email"`
}

// UpdateApplicationStatusRequest is the body of an owner's decision.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}
