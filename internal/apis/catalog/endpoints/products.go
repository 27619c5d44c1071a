package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"catalogadmin/internal/domain/models"
)

const listingBodyLimit = 4 * 1024 * 1024

type productsResp struct {
	Products *[]models.Product `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

func (c *Client) ListProducts(ctx context.Context, skip, limit int) (models.ProductsPage, error) {
	if skip < 0 {
		return models.ProductsPage{}, fmt.Errorf("ListProducts: skip must be >= 0")
	}
	if limit <= 0 {
		return models.ProductsPage{}, fmt.Errorf("ListProducts: limit must be > 0")
	}

	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return c.listing(ctx, "ListProducts", "/products", q)
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string, limit int) (models.ProductsPage, error) {
	if strings.TrimSpace(category) == "" {
		return models.ProductsPage{}, fmt.Errorf("ListProductsByCategory: category must not be empty")
	}
	if limit <= 0 {
		return models.ProductsPage{}, fmt.Errorf("ListProductsByCategory: limit must be > 0")
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.listing(ctx, "ListProductsByCategory", "/products/category/"+url.PathEscape(category), q)
}

func (c *Client) SearchProducts(ctx context.Context, query string, limit int) (models.ProductsPage, error) {
	if limit <= 0 {
		return models.ProductsPage{}, fmt.Errorf("SearchProducts: limit must be > 0")
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	return c.listing(ctx, "SearchProducts", "/products/search", q)
}

func (c *Client) listing(ctx context.Context, op, path string, q url.Values) (models.ProductsPage, error) {
	status, b, err := c.get(ctx, op, path, q, listingBodyLimit)
	if err != nil {
		return models.ProductsPage{}, err
	}
	if !isSuccess(status) {
		return models.ProductsPage{}, ParseUpstreamError(op, status, b)
	}

	var out productsResp
	if err := json.Unmarshal(b, &out); err != nil {
		return models.ProductsPage{}, &MalformedResponseError{Op: op, Reason: "invalid json", Err: err}
	}
	if out.Products == nil {
		return models.ProductsPage{}, &MalformedResponseError{Op: op, Reason: "missing products array"}
	}

	return models.ProductsPage{
		Products: *out.Products,
		Total:    out.Total,
		Skip:     out.Skip,
		Limit:    out.Limit,
	}, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (models.Product, error) {
	const op = "GetProduct"
	if id <= 0 {
		// no product can carry such an id
		return models.Product{}, &NotFoundError{Resource: "product", ID: strconv.Itoa(id)}
	}

	status, b, err := c.get(ctx, op, "/products/"+strconv.Itoa(id), nil, 256*1024)
	if err != nil {
		return models.Product{}, err
	}
	if status == http.StatusNotFound {
		ue := ParseUpstreamError(op, status, b)
		return models.Product{}, &NotFoundError{Resource: "product", ID: strconv.Itoa(id), Message: ue.Message}
	}
	if !isSuccess(status) {
		return models.Product{}, ParseUpstreamError(op, status, b)
	}

	var p models.Product
	if err := json.Unmarshal(b, &p); err != nil {
		return models.Product{}, &MalformedResponseError{Op: op, Reason: "invalid json", Err: err}
	}
	if p.ID == 0 {
		return models.Product{}, &MalformedResponseError{Op: op, Reason: "missing product id"}
	}
	return p, nil
}
