package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/openmat/internal/common"
)

type PassType string

const (
	PassSingle    PassType = "single"
	PassDay       PassType = "day_pass"
	PassWeek      PassType = "week_pass"
	PassMonth     PassType = "month_pass"
	PassPunchCard PassType = "punch_card"
)

// PassTypes lists the known types in display order.
var PassTypes = []PassType{PassSingle, PassPunchCard, PassDay, PassWeek, PassMonth}

func (t PassType) Label() string {
	switch t {
	case PassSingle:
		return "Single Class Drop-in"
	case PassPunchCard:
		return "Punch Card (Multiple Classes)"
	case PassDay:
		return "Day Pass (24 Hours)"
	case PassWeek:
		return "Week Pass (7 Days)"
	case PassMonth:
		return "Month Pass (30 Days)"
	default:
		return string(t)
	}
}

func (t PassType) Valid() bool {
	for _, known := range PassTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Pass struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents"`
	PassType     PassType `json:"pass_type"`
	ClassCredits *int     `json:"class_credits"`
}

func (p *Pass) Validate() error {
	if p.ID == 0 {
		return errors.New("pass: missing id")
	}
	return nil
}

// PassInput is what an owner types in; ToPayload converts it to the wire form.
type PassInput struct {
	Name         string
	Description  string
	PriceDollars string
	PassType     PassType
	ClassCredits string
}

// PassPayload is the body of POST /academies/{id}/passes (under "pass").
type PassPayload struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents"`
	PassType     PassType `json:"pass_type"`
	ClassCredits *int     `json:"class_credits"`
}

// ToPayload converts dollars to rounded cents. ClassCredits is sent only for
// punch cards and is null otherwise.
func (in PassInput) ToPayload() (PassPayload, error) {
	if strings.TrimSpace(in.Name) == "" {
		return PassPayload{}, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if !in.PassType.Valid() {
		return PassPayload{}, fmt.Errorf("%w: unknown pass type %q", common.ErrorValidation, in.PassType)
	}
	dollars, err := strconv.ParseFloat(strings.TrimSpace(in.PriceDollars), 64)
	cents := math.Round(dollars * 100)
	// float64(math.MaxInt64) is 2^63, the first value that does not fit
	if err != nil || math.IsNaN(cents) || math.IsInf(cents, 0) || cents < 0 || cents >= math.MaxInt64 {
		return PassPayload{}, fmt.Errorf("%w: invalid price %q", common.ErrorValidation, in.PriceDollars)
	}

	p := PassPayload{
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  int64(cents),
		PassType:    in.PassType,
	}

	if in.PassType == PassPunchCard {
		credits, err := strconv.Atoi(strings.TrimSpace(in.ClassCredits))
		if err != nil || credits <= 0 {
			return PassPayload{}, fmt.Errorf("%w: invalid class credits %q", common.ErrorValidation, in.ClassCredits)
		}
		p.ClassCredits = &credits
	}
	return p, nil
}

// FormatCents renders 1250 as "$12.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
