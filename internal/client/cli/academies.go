package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/openmat/internal/client/models"
	"github.com/dmitrijs2005/openmat/internal/client/services"
)

func (a *App) Academies(ctx context.Context) error {
	cat, err := a.svc.Academies.Browse(ctx)
	if err != nil {
		return err
	}
	a.printAcademies(cat.Academies)
	return nil
}

// Search asks for each filter field; an empty answer leaves it unset. With
// no field set the full list is shown.
func (a *App) Search(ctx context.Context) error {
	cat, err := a.svc.Academies.Browse(ctx)
	if err != nil {
		return err
	}

	var f services.AcademyFilter
	if f.Term, err = getSimpleText(a.reader, "Search term (empty for any)", a.out); err != nil {
		return err
	}

	amenities := make([]string, 0, len(cat.Amenities))
	for _, am := range cat.Amenities {
		amenities = append(amenities, fmt.Sprintf("%d:%s", am.ID, am.Name))
	}
	if f.AmenityID, err = a.askOptional("Amenity id ("+strings.Join(amenities, ", ")+")"); err != nil {
		return err
	}

	types := make([]string, 0, len(models.PassTypes))
	for _, t := range models.PassTypes {
		types = append(types, string(t))
	}
	if f.PassType, err = a.askOptional("Pass type (" + strings.Join(types, ", ") + ")"); err != nil {
		return err
	}
	if f.ClassDay, err = a.askOptional("Class day (0=Sunday .. 6=Saturday)"); err != nil {
		return err
	}

	countries := make([]string, 0, len(cat.Countries))
	for _, c := range cat.Countries {
		countries = append(countries, c.Value)
	}
	if f.Country, err = a.askOptional("Country (" + strings.Join(countries, ", ") + ")"); err != nil {
		return err
	}

	if f.IsEmpty() {
		a.printAcademies(cat.Academies)
		return nil
	}
	list, err := a.svc.Academies.Search(ctx, f)
	if err != nil {
		return err
	}
	a.printAcademies(list)
	return nil
}

func (a *App) askOptional(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt+" [optional]", a.out)
}

func (a *App) printAcademies(list []models.Academy) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No academies found.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tCOUNTRY\tRATING")
	for _, ac := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", ac.ID, ac.Name, ac.City, ac.Country, ac.AverageRating)
	}
	_ = tw.Flush()
}

func (a *App) Academy(ctx context.Context, args []string) error {
	id, err := parseID(args, "academy <id>")
	if err != nil {
		return err
	}
	d, err := a.svc.Academies.Detail(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s, %s)  rating %s\n", d.Name, d.City, d.Country, d.AverageRating)
	if cover := d.CoverURL(a.config.AssetBaseURL); cover != "" {
		fmt.Fprintln(a.out, "Photo:", cover)
	}
	if d.Description != "" {
		fmt.Fprintln(a.out, d.Description)
	}

	if len(d.Amenities) > 0 {
		names := make([]string, 0, len(d.Amenities))
		for _, am := range d.Amenities {
			names = append(names, am.Name)
		}
		fmt.Fprintln(a.out, "Amenities:", strings.Join(names, ", "))
	}

	a.printSchedule(d.ClassSchedules)
	a.printPasses(d.Passes)

	if len(d.Reviews) > 0 {
		fmt.Fprintln(a.out, "\nReviews:")
		for _, r := range d.Reviews {
			fmt.Fprintf(a.out, "  %s %s: %s\n", r.Stars(), r.Username, r.Comment)
		}
	}
	return nil
}

func (a *App) printSchedule(schedules []models.ClassSchedule) {
	fmt.Fprintln(a.out, "\nSchedule:")
	if len(schedules) == 0 {
		fmt.Fprintln(a.out, "  no classes")
		return
	}
	byDay := models.GroupByDay(schedules)
	for day, name := range models.Weekdays {
		classes := byDay[day]
		if len(classes) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "  %s\n", name)
		for _, c := range classes {
			fmt.Fprintf(a.out, "    [%d] %s %s\n", c.ID, c.TimeRange(), c.Title)
		}
	}
}

func (a *App) printPasses(passes []models.Pass) {
	fmt.Fprintln(a.out, "\nPasses:")
	if len(passes) == 0 {
		fmt.Fprintln(a.out, "  none")
		return
	}
	for _, p := range passes {
		extra := ""
		if p.ClassCredits != nil {
			extra = " (" + strconv.Itoa(*p.ClassCredits) + " classes)"
		}
		fmt.Fprintf(a.out, "  [%d] %s - %s, %s%s\n", p.ID, p.Name, p.PassType.Label(), models.FormatCents(p.PriceCents), extra)
	}
}
