package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"

	"github.com/jvillar/filtersquash/internal/config"
	"github.com/jvillar/filtersquash/internal/filter"
	"github.com/jvillar/filtersquash/internal/output"
	"github.com/jvillar/filtersquash/internal/squash"
)

// Client is the Gmail-backed filter directory for the authenticated
// account. It implements squash.Directory.
type Client struct {
	svc  *gmailv1.Service
	user string
}

// NewClient authenticates against Gmail and returns a ready directory
// handle. Any failure here maps to squash.ErrAuth; the directory itself
// has not been touched yet.
func NewClient(ctx context.Context, cfg *config.Config, out *output.Formatter) (*Client, error) {
	svc, err := newService(ctx, cfg, out)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, user: "me"}, nil
}

func (c *Client) ListFilters(ctx context.Context) ([]filter.Rule, error) {
	resp, err := c.svc.Users.Settings.Filters.List(c.user).Context(ctx).Do()
	if err != nil {
		return nil, wrap("list", err)
	}
	rules := make([]filter.Rule, 0, len(resp.Filter))
	for _, f := range resp.Filter {
		rules = append(rules, ruleFromAPI(f))
	}
	return rules, nil
}

func (c *Client) CreateFilter(ctx context.Context, r filter.Rule) (string, error) {
	created, err := c.svc.Users.Settings.Filters.Create(c.user, ruleToAPI(r)).Context(ctx).Do()
	if err != nil {
		return "", wrap("create", err)
	}
	return created.Id, nil
}

func (c *Client) DeleteFilter(ctx context.Context, id string) error {
	if err := c.svc.Users.Settings.Filters.Delete(c.user, id).Context(ctx).Do(); err != nil {
		return wrap("delete", err)
	}
	return nil
}

// wrap classifies a Gmail API failure. Rejected credentials surface as
// squash.ErrAuth; everything else keeps the failed operation attached so
// the caller knows whether a merge was interrupted.
func wrap(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", squash.ErrAuth, err)
		}
	}
	return &squash.DirectoryError{Op: op, Err: err}
}
