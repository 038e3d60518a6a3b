package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/services"
)

var errNotOwner = errors.New("this command is for academy owners")

func (a *App) setOwnedAcademy(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ownedAcademy = id
}

// academyID returns the owned academy, loading the dashboard once to find it.
func (a *App) academyID(ctx context.Context) (int64, error) {
	a.mu.Lock()
	id := a.ownedAcademy
	a.mu.Unlock()
	if id != 0 {
		return id, nil
	}

	d, err := a.svc.Owner.Dashboard(ctx)
	if err != nil {
		return 0, err
	}
	a.setOwnedAcademy(d.Academy.ID)
	return d.Academy.ID, nil
}

func (a *App) Dashboard(ctx context.Context) error {
	if !a.isOwner() {
		return errNotOwner
	}
	d, err := a.svc.Owner.Dashboard(ctx)
	if errors.Is(err, services.ErrNoAcademy) {
		fmt.Fprintln(a.out, "You don't own an academy yet.")
		return nil
	}
	if err != nil {
		return err
	}
	a.setOwnedAcademy(d.Academy.ID)

	fmt.Fprintf(a.out, "Dashboard: %s\n", d.Academy.Name)
	fmt.Fprintln(a.out, "\nPending approvals:")
	if len(d.Pending) == 0 {
		fmt.Fprintln(a.out, "  none")
	}
	for _, it := range d.Pending {
		fmt.Fprintf(a.out, "  [%d] order %d, pass %d x%d, %s\n", it.ID, it.OrderID, it.PassID, it.Quantity, models.FormatCents(it.PriceAtPurchaseCents))
	}

	a.printSchedule(d.Schedules)
	a.printPasses(d.Passes)
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.review(ctx, args, "approve <item id>", a.svc.Owner.Approve, "Approved.")
}

func (a *App) Reject(ctx context.Context, args []string) error {
	return a.review(ctx, args, "reject <item id>", a.svc.Owner.Reject, "Rejected.")
}

func (a *App) review(ctx context.Context, args []string, usage string, fn func(context.Context, int64) error, done string) error {
	if !a.isOwner() {
		return errNotOwner
	}
	id, err := parseID(args, usage)
	if err != nil {
		return err
	}
	if err := fn(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, done)
	return nil
}

func (a *App) AddClass(ctx context.Context) error {
	if !a.isOwner() {
		return errNotOwner
	}
	academyID, err := a.academyID(ctx)
	if err != nil {
		return err
	}

	var in models.ClassScheduleInput
	if in.Title, err = getSimpleText(a.reader, "Class title", a.out); err != nil {
		return err
	}
	if in.DayOfWeek, err = GetChoice(a.reader, "Day of week", models.Weekdays[:], a.out); err != nil {
		return err
	}
	if in.StartTime, err = getSimpleText(a.reader, "Start time (HH:MM)", a.out); err != nil {
		return err
	}
	if in.EndTime, err = getSimpleText(a.reader, "End time (HH:MM)", a.out); err != nil {
		return err
	}

	sched, err := a.svc.Owner.AddClass(ctx, academyID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added class [%d] %s, %s\n", sched.ID, sched.Title, sched.Summary())
	return nil
}

func (a *App) DeleteClass(ctx context.Context, args []string) error {
	if !a.isOwner() {
		return errNotOwner
	}
	id, err := parseID(args, "delclass <class id>")
	if err != nil {
		return err
	}
	academyID, err := a.academyID(ctx)
	if err != nil {
		return err
	}
	if err := a.svc.Owner.DeleteClass(ctx, academyID, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Class deleted.")
	return nil
}

func (a *App) AddPass(ctx context.Context) error {
	if !a.isOwner() {
		return errNotOwner
	}
	academyID, err := a.academyID(ctx)
	if err != nil {
		return err
	}

	var in models.PassInput
	if in.Name, err = getSimpleText(a.reader, "Pass name", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.PriceDollars, err = getSimpleText(a.reader, "Price in dollars", a.out); err != nil {
		return err
	}

	labels := make([]string, len(models.PassTypes))
	for i, t := range models.PassTypes {
		labels[i] = t.Label()
	}
	idx, err := GetChoice(a.reader, "Pass type", labels, a.out)
	if err != nil {
		return err
	}
	in.PassType = models.PassTypes[idx]

	if in.PassType == models.PassPunchCard {
		if in.ClassCredits, err = getSimpleText(a.reader, "Number of classes", a.out); err != nil {
			return err
		}
	}

	p, err := a.svc.Owner.AddPass(ctx, academyID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added pass [%d] %s, %s\n", p.ID, p.Name, models.FormatCents(p.PriceCents))
	return nil
}

func (a *App) DeletePass(ctx context.Context, args []string) error {
	if !a.isOwner() {
		return errNotOwner
	}
	id, err := parseID(args, "delpass <pass id>")
	if err != nil {
		return err
	}
	academyID, err := a.academyID(ctx)
	if err != nil {
		return err
	}
	if err := a.svc.Owner.DeletePass(ctx, academyID, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Pass deleted: "+strconv.FormatInt(id, 10))
	return nil
}
