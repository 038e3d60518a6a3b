package models

import (
	"errors"
	"strings"
	"time"
)

type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Role      string    `json:"role"`
	BeltRank  string    `json:"belt_rank"`
	Bookings  []Booking `json:"bookings"`
}

func (p *Profile) Validate() error {
	if p.ID == 0 {
		return errors.New("profile: missing id")
	}
	for i := range p.Bookings {
		if err := p.Bookings[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Initials returns the first letters of the first and last name.
func (p *Profile) Initials() string {
	var b strings.Builder
	for _, s := range []string{p.Firstname, p.Lastname} {
		if r := []rune(s); len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.ToUpper(b.String())
}

// BeltTitle renders "Blue Belt", or "No Rank" when unset.
func (p *Profile) BeltTitle() string {
	if p.BeltRank == "" {
		return "No Rank"
	}
	r := []rune(p.BeltRank)
	return strings.ToUpper(string(r[0])) + string(r[1:]) + " Belt"
}

func (p *Profile) IsOwner() bool {
	return p.Role == "owner"
}

type Booking struct {
	ID            int64         `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	ClassSchedule ClassSchedule `json:"class_schedule"`
}

func (b *Booking) Validate() error {
	if b.ID == 0 {
		return errors.New("booking: missing id")
	}
	return nil
}

// ProfileUpdate is the body of PATCH /profile. Empty fields are not sent.
type ProfileUpdate struct {
	Username  string `json:"username,omitempty"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	BeltRank  string `json:"belt_rank,omitempty"`
}
