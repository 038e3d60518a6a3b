package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/openmat/internal/client/httpclient"
	"github.com/dmitrijs2005/openmat/internal/client/models"
)

// RESTClient implements Client over HTTP/JSON.
type RESTClient struct {
	http *httpclient.Client
}

func NewRESTClient(hc *httpclient.Client) *RESTClient {
	return &RESTClient{http: hc}
}

// HTTP exposes the underlying request sender (the session installs the
// Authorization default header on it).
func (c *RESTClient) HTTP() *httpclient.Client {
	return c.http
}

// Ping probes reachability with the cheapest public endpoint.
func (c *RESTClient) Ping(ctx context.Context) error {
	_, err := c.http.Get(ctx, "/countries", nil)
	return mapError(err)
}

type loginRequest struct {
	Session loginCredentials `json:"session"`
}

type loginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (r *loginResponse) Validate() error {
	if r.Token == "" {
		return errors.New("missing token")
	}
	return nil
}

// Login exchanges credentials for a bearer token. A 4xx answer becomes
// *AuthenticationError with the server message.
func (c *RESTClient) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.http.Post(ctx, "/login", loginRequest{Session: loginCredentials{Email: email, Password: password}})
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500 {
			msg := messageFromBody(httpErr.Body)
			if msg == "" {
				msg = "authentication failed"
			}
			return "", &AuthenticationError{Status: httpErr.Status, Message: msg}
		}
		return "", mapError(err)
	}

	out, err := decodeOne[loginResponse](http.MethodPost+" /login", resp)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *RESTClient) Profile(ctx context.Context) (*models.Profile, error) {
	resp, err := c.http.Get(ctx, "/profile", nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeOne[models.Profile]("GET /profile", resp)
}

func (c *RESTClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error) {
	resp, err := c.http.Patch(ctx, "/profile", map[string]any{"user": upd})
	if err != nil {
		return nil, mapError(err)
	}
	return decodeOne[models.Profile]("PATCH /profile", resp)
}

func (c *RESTClient) Academies(ctx context.Context, params map[string]string) ([]models.Academy, error) {
	resp, err := c.http.Get(ctx, "/academies", params)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.Academy]("GET /academies", resp)
}

func (c *RESTClient) Academy(ctx context.Context, id int64) (*models.AcademyDetail, error) {
	path := academyPath(id)
	resp, err := c.http.Get(ctx, path, nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeOne[models.AcademyDetail]("GET "+path, resp)
}

func (c *RESTClient) Amenities(ctx context.Context) ([]models.Amenity, error) {
	resp, err := c.http.Get(ctx, "/amenities", nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.Amenity]("GET /amenities", resp)
}

func (c *RESTClient) Countries(ctx context.Context) ([]models.Country, error) {
	resp, err := c.http.Get(ctx, "/countries", nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.Country]("GET /countries", resp)
}

func (c *RESTClient) Orders(ctx context.Context) ([]models.Order, error) {
	resp, err := c.http.Get(ctx, "/orders", nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.Order]("GET /orders", resp)
}

// ConfirmOrder runs the (mock) payment for an order.
func (c *RESTClient) ConfirmOrder(ctx context.Context, orderID int64) error {
	_, err := c.http.Post(ctx, fmt.Sprintf("/orders/%d/confirmation", orderID), nil)
	return mapError(err)
}

func (c *RESTClient) OrderLineItems(ctx context.Context, academyID int64, status string) ([]models.OrderLineItem, error) {
	path := academyPath(academyID) + "/order_line_items"
	resp, err := c.http.Get(ctx, path, map[string]string{"status": status})
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.OrderLineItem]("GET "+path, resp)
}

func (c *RESTClient) UpdateOrderLineItem(ctx context.Context, itemID int64, status string) error {
	body := map[string]any{"order_line_item": map[string]string{"status": status}}
	_, err := c.http.Patch(ctx, "/order_line_items/"+strconv.FormatInt(itemID, 10), body)
	return mapError(err)
}

func (c *RESTClient) ClassSchedules(ctx context.Context, academyID int64) ([]models.ClassSchedule, error) {
	path := academyPath(academyID) + "/class_schedules"
	resp, err := c.http.Get(ctx, path, nil)
	if err != nil {
		return nil, mapError(err)
	}
	return decodeList[models.ClassSchedule]("GET "+path, resp)
}

func (c *RESTClient) CreateClassSchedule(ctx context.Context, academyID int64, in models.ClassScheduleInput) (*models.ClassSchedule, error) {
	path := academyPath(academyID) + "/class_schedules"
	resp, err := c.http.Post(ctx, path, map[string]any{"class_schedule": in})
	if err != nil {
		return nil, mapError(err)
	}
	return decodeOne[models.ClassSchedule]("POST "+path, resp)
}

func (c *RESTClient) DeleteClassSchedule(ctx context.Context, academyID, scheduleID int64) error {
	_, err := c.http.Delete(ctx, fmt.Sprintf("%s/class_schedules/%d", academyPath(academyID), scheduleID))
	return mapError(err)
}

func (c *RESTClient) CreatePass(ctx context.Context, academyID int64, p models.PassPayload) (*models.Pass, error) {
	path := academyPath(academyID) + "/passes"
	resp, err := c.http.Post(ctx, path, map[string]any{"pass": p})
	if err != nil {
		return nil, mapError(err)
	}
	return decodeOne[models.Pass]("POST "+path, resp)
}

func (c *RESTClient) DeletePass(ctx context.Context, academyID, passID int64) error {
	_, err := c.http.Delete(ctx, fmt.Sprintf("%s/passes/%d", academyPath(academyID), passID))
	return mapError(err)
}

func academyPath(id int64) string {
	return "/academies/" + strconv.FormatInt(id, 10)
}
