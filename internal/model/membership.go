package model

import "time"

// MembershipRoleMember is the role assigned to every new membership.
const MembershipRoleMember = "member"

// Membership records confirmed participation in a club. Unique per (club, user).
type Membership struct {
	ID       int64     `db:"id" json:"id"`
	ClubID   int64     `db:"club_id" json:"club_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// Member is a roster entry; ID is the member's user id.
type Member struct {
	ID       int64     `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	Role     string    `db:"role" json:"role"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// ClubMembers is a club with its roster ordered by name.
type ClubMembers struct {
	Club    Club     `json:"club"`
	Members []Member `json:"members"`
}

// Meeting is the recurring meeting of a club the user belongs to.
type Meeting struct {
	ClubID      int64  `db:"club_id" json:"club_id"`
	ClubName    string `db:"club_name" json:"club_name"`
	MeetingTime string `db:"meeting_time" json:"meeting_time"`
	Location    string `db:"location" json:"location"`
}

// JoinResult describes the outcome of a join request.
type JoinResult struct {
	Message string `json:"message"`
	// Type is "member" for open clubs, otherwise the club's join type.
	Type string `json:"type"`
}
