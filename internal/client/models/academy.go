package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

type Academy struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Description   string `json:"description"`
	AverageRating Rating `json:"average_rating"`
}

func (a *Academy) Validate() error {
	if a.ID == 0 {
		return errors.New("academy: missing id")
	}
	return nil
}

// AcademyDetail is the payload of GET /academies/{id}.
type AcademyDetail struct {
	Academy
	Logo           *Image          `json:"logo"`
	Photos         []Image         `json:"photos"`
	Amenities      []Amenity       `json:"amenities"`
	Reviews        []Review        `json:"reviews"`
	ClassSchedules []ClassSchedule `json:"class_schedules"`
	Passes         []Pass          `json:"passes"`
}

func (d *AcademyDetail) Validate() error {
	if err := d.Academy.Validate(); err != nil {
		return err
	}
	for i := range d.Passes {
		if err := d.Passes[i].Validate(); err != nil {
			return err
		}
	}
	for i := range d.ClassSchedules {
		if err := d.ClassSchedules[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CoverURL picks the hero image: the first photo, else the logo, else "".
// Relative asset paths are resolved against assetBase.
func (d *AcademyDetail) CoverURL(assetBase string) string {
	if len(d.Photos) > 0 {
		return d.Photos[0].Resolve(assetBase)
	}
	if d.Logo != nil && d.Logo.URL != "" {
		return d.Logo.Resolve(assetBase)
	}
	return ""
}

type Image struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

func (i Image) Resolve(assetBase string) string {
	if strings.HasPrefix(i.URL, "http://") || strings.HasPrefix(i.URL, "https://") {
		return i.URL
	}
	return strings.TrimRight(assetBase, "/") + i.URL
}

type Amenity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (a *Amenity) Validate() error {
	if a.ID == 0 {
		return errors.New("amenity: missing id")
	}
	return nil
}

type Country struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (c *Country) Validate() error {
	if c.Value == "" {
		return errors.New("country: missing value")
	}
	return nil
}

type Review struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Stars renders the rating as a row of ★.
func (r Review) Stars() string {
	if r.Rating <= 0 {
		return ""
	}
	return strings.Repeat("★", r.Rating)
}

// Rating is an average score. The API sends it as a number, a decimal
// string, or null when the academy has no reviews.
type Rating struct {
	Value float64
	Valid bool
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*r = Rating{}
		return nil
	}
	var raw json.Number
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		raw = json.Number(str)
	} else {
		raw = json.Number(s)
	}
	v, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return errors.New("rating: not a number")
	}
	*r = Rating{Value: v, Valid: true}
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

func (r Rating) String() string {
	if !r.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(r.Value, 'f', 1, 64)
}
