package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmat/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.svc.Profile.Current(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "[%s] %s %s (@%s)\n", p.Initials(), p.Firstname, p.Lastname, p.Username)
	fmt.Fprintln(a.out, "Email:", p.Email)
	fmt.Fprintln(a.out, "Rank: ", p.BeltTitle())

	fmt.Fprintln(a.out, "\nBookings:")
	if len(p.Bookings) == 0 {
		fmt.Fprintln(a.out, "  none")
	}
	for _, b := range p.Bookings {
		fmt.Fprintf(a.out, "  %s - %s\n", b.ClassSchedule.Title, b.ClassSchedule.Summary())
	}
	return nil
}

// EditProfile asks for each editable field; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	cur, err := a.svc.Profile.Current(ctx)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	fields := []struct {
		prompt string
		value  string
		dst    *string
	}{
		{"Username", cur.Username, &upd.Username},
		{"First name", cur.Firstname, &upd.Firstname},
		{"Last name", cur.Lastname, &upd.Lastname},
		{"Belt rank (white, blue, purple, brown, black)", cur.BeltRank, &upd.BeltRank},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.prompt, f.value), a.out)
		if err != nil {
			return err
		}
		if v != f.value {
			*f.dst = v
		}
	}

	if upd == (models.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	p, err := a.svc.Profile.Update(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s, %s\n", p.Username, p.BeltTitle())
	return nil
}
