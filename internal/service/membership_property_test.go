package service

import (
	"context"
	"testing"

	"github.com/forgo/clubs/api/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMembershipProperties checks the state engine against random operation
// sequences.
func TestMembershipProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("joining an open club n times leaves one membership and no application", prop.ForAll(
		func(n int, staleStatus int) bool {
			f := setupMembershipService(t)
			ctx := context.Background()
			club := f.clubs.add(100, model.JoinTypeOpen)
			if staleStatus < len(model.ApplicationStatuses) {
				f.apps.add(club.ID, 1, model.ApplicationStatuses[staleStatus])
			}

			for i := 0; i < n; i++ {
				if _, err := f.svc.Join(ctx, student(1), club.ID); err != nil {
					return false
				}
			}
			app, _ := f.apps.GetByClubAndUser(ctx, club.ID, 1)
			return len(f.members.members) == 1 && app == nil
		},
		gen.IntRange(1, 5),
		gen.IntRange(0, 4),
	))

	properties.Property("join then withdraw on an application club leaves nothing", prop.ForAll(
		func(joins int, audition bool) bool {
			f := setupMembershipService(t)
			ctx := context.Background()
			jt := model.JoinTypeApplication
			if audition {
				jt = model.JoinTypeAudition
			}
			club := f.clubs.add(100, jt)

			for i := 0; i < joins; i++ {
				if _, err := f.svc.Join(ctx, student(1), club.ID); err != nil {
					return false
				}
			}
			if err := f.svc.Withdraw(ctx, student(1), club.ID); err != nil {
				return false
			}
			return len(f.apps.apps) == 0 && len(f.members.members) == 0
		},
		gen.IntRange(1, 4),
		gen.Bool(),
	))

	properties.Property("membership follows the latest owner decision", prop.ForAll(
		func(decisions []int) bool {
			f := setupMembershipService(t)
			ctx := context.Background()
			club := f.clubs.add(100, model.JoinTypeApplication)
			if _, err := f.svc.Join(ctx, student(1), club.ID); err != nil {
				return false
			}
			app, _ := f.apps.GetByClubAndUser(ctx, club.ID, 1)

			last := model.ApplicationStatusPending
			for _, d := range decisions {
				last = model.ApplicationStatuses[d]
				if err := f.svc.UpdateApplicationStatus(ctx, owner(100), app.ID, string(last)); err != nil {
					return false
				}
			}

			isMember, _ := f.members.Exists(ctx, club.ID, 1)
			return isMember == (last == model.ApplicationStatusAccepted) && len(f.members.members) <= 1
		},
		gen.SliceOf(gen.IntRange(0, len(model.ApplicationStatuses)-1)),
	))

	properties.Property("toggling an RSVP k times leaves it set iff k is odd", prop.ForAll(
		func(k int) bool {
			svc, clubs, events, rsvps, members := setupEventService(t)
			ctx := context.Background()
			club := clubs.add(100, model.JoinTypeOpen)
			event := events.add(club.ID)
			_, _ = members.Ensure(ctx, club.ID, 1)

			var state bool
			for i := 0; i < k; i++ {
				s, err := svc.SetRSVP(ctx, student(1), event.ID, nil)
				if err != nil {
					return false
				}
				state = s
			}
			exists, _ := rsvps.Exists(ctx, event.ID, 1)
			return exists == (k%2 == 1) && state == exists
		},
		gen.IntRange(1, 7),
	))

	properties.TestingRun(t)
}
