package sociavault

import (
	"context"
	"encoding/json"
)

// Page is one page of raw items plus the continuation cursor for the next one.
type Page struct {
	Items  []json.RawMessage
	Cursor Cursor
}

// PageParser extracts items and the continuation cursor from one response
// body. Each endpoint has its own collection field and cursor field.
type PageParser func(body []byte) (*Page, error)

// PageRequest describes a paginated fetch.
type PageRequest struct {
	Path        string
	Params      map[string]string
	CursorParam string // query key carrying the continuation token; empty means single page
	MaxItems    int
	Parse       PageParser
}

// Paginate drives Get across successive pages until MaxItems items are
// accumulated, the response carries no further cursor, or a page yields zero
// new items (guards against cursor loops).
//
// On any error mid-run it returns the items accumulated so far together with
// the error; callers decide whether a partial yield is acceptable.
func (c *Client) Paginate(ctx context.Context, req PageRequest) ([]json.RawMessage, error) {
	var all []json.RawMessage
	var cursor Cursor

	for req.MaxItems <= 0 || len(all) < req.MaxItems {
		params := make(map[string]string, len(req.Params)+1)
		for k, v := range req.Params {
			params[k] = v
		}
		if cursor != "" && req.CursorParam != "" {
			params[req.CursorParam] = string(cursor)
		}

		body, err := c.Get(ctx, req.Path, params)
		if err != nil {
			return all, err
		}

		page, err := req.Parse(body)
		if err != nil {
			return all, err
		}
		if len(page.Items) == 0 {
			break
		}

		all = append(all, page.Items...)

		if req.CursorParam == "" || page.Cursor.Terminal() {
			break
		}
		cursor = page.Cursor
	}

	if req.MaxItems > 0 && len(all) > req.MaxItems {
		all = all[:req.MaxItems]
	}
	return all, nil
}
