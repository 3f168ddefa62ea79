// Package api wraps the Builder OS backend REST API. Every call is a fresh
// round trip: no retries, no caching. Failures always surface as an error
// carrying the backend's detail message when one is present.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the backend over JSON (and multipart for uploads).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New builds a Client against the given base URL. The base URL is explicit
// configuration; the client never reads the environment itself.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// errorBody is the backend's structured error shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// doJSON performs one request and decodes the response into out (when out is
// non-nil). Non-2xx responses become an error with the backend detail message
// or a generic "API error: <status>" fallback.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// statusError extracts the human-readable message from a failed response.
func (c *Client) statusError(resp *http.Response) error {
	msg := fmt.Sprintf("API error: %d", resp.StatusCode)
	var eb errorBody
	if body, err := io.ReadAll(resp.Body); err == nil {
		if json.Unmarshal(body, &eb) == nil && eb.Detail != "" {
			msg = eb.Detail
		}
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

// Error is a failed API call. Message is display-ready.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ---- deals ----

// ListDeals fetches deals, optionally narrowed by filters.
func (c *Client) ListDeals(ctx context.Context, filters *DealFilters) ([]Deal, error) {
	query := url.Values{}
	if filters != nil {
		if filters.Skip != nil {
			query.Set("skip", strconv.Itoa(*filters.Skip))
		}
		if filters.Limit != nil {
			query.Set("limit", strconv.Itoa(*filters.Limit))
		}
		if filters.OperatorID != "" {
			query.Set("operator_id", filters.OperatorID)
		}
		if filters.Status != "" {
			query.Set("status", filters.Status)
		}
		if filters.AssetType != "" {
			query.Set("asset_type", filters.AssetType)
		}
		if filters.State != "" {
			query.Set("state", filters.State)
		}
	}
	var deals []Deal
	if err := c.doJSON(ctx, http.MethodGet, "/api/deals/", query, nil, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

func (c *Client) GetDeal(ctx context.Context, id string) (Deal, error) {
	var d Deal
	err := c.doJSON(ctx, http.MethodGet, "/api/deals/"+id, nil, nil, &d)
	return d, err
}

func (c *Client) CreateDeal(ctx context.Context, deal Deal) (Deal, error) {
	var d Deal
	err := c.doJSON(ctx, http.MethodPost, "/api/deals/", nil, deal, &d)
	return d, err
}

func (c *Client) UpdateDeal(ctx context.Context, id string, deal Deal) (Deal, error) {
	var d Deal
	err := c.doJSON(ctx, http.MethodPut, "/api/deals/"+id, nil, deal, &d)
	return d, err
}

func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/deals/"+id, nil, nil, nil)
}

// ---- operators ----

func (c *Client) ListOperators(ctx context.Context) ([]Operator, error) {
	var ops []Operator
	if err := c.doJSON(ctx, http.MethodGet, "/api/operators/", nil, nil, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (c *Client) GetOperator(ctx context.Context, id string) (Operator, error) {
	var op Operator
	err := c.doJSON(ctx, http.MethodGet, "/api/operators/"+id, nil, nil, &op)
	return op, err
}

func (c *Client) CreateOperator(ctx context.Context, op Operator) (Operator, error) {
	var out Operator
	err := c.doJSON(ctx, http.MethodPost, "/api/operators/", nil, op, &out)
	return out, err
}

func (c *Client) UpdateOperator(ctx context.Context, id string, op Operator) (Operator, error) {
	var out Operator
	err := c.doJSON(ctx, http.MethodPut, "/api/operators/"+id, nil, op, &out)
	return out, err
}

// ---- underwriting ----

func (c *Client) ListUnderwriting(ctx context.Context) ([]Underwriting, error) {
	var rows []Underwriting
	if err := c.doJSON(ctx, http.MethodGet, "/api/underwriting/", nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) UnderwritingByDeal(ctx context.Context, dealID string) (Underwriting, error) {
	var u Underwriting
	err := c.doJSON(ctx, http.MethodGet, "/api/underwriting/deal/"+dealID+"/", nil, nil, &u)
	return u, err
}

// ---- funds ----

func (c *Client) ListFunds(ctx context.Context) ([]Fund, error) {
	var funds []Fund
	if err := c.doJSON(ctx, http.MethodGet, "/api/funds/", nil, nil, &funds); err != nil {
		return nil, err
	}
	return funds, nil
}

func (c *Client) GetFund(ctx context.Context, id string) (Fund, error) {
	var f Fund
	err := c.doJSON(ctx, http.MethodGet, "/api/funds/"+id, nil, nil, &f)
	return f, err
}

// FundDeals fetches the deals associated with a fund.
func (c *Client) FundDeals(ctx context.Context, fundID string) ([]Deal, error) {
	var deals []Deal
	if err := c.doJSON(ctx, http.MethodGet, "/api/funds/"+fundID+"/deals", nil, nil, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// ---- documents ----

// UploadDocument streams a file as multipart form data. The multipart writer
// supplies the Content-Type boundary; callers never set one. dealID is an
// optional association.
func (c *Client) UploadDocument(ctx context.Context, fileName string, file io.Reader, dealID string) (Document, error) {
	var doc Document

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return doc, fmt.Errorf("api: multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return doc, fmt.Errorf("api: read upload: %w", err)
	}
	if dealID != "" {
		if err := w.WriteField("deal_id", dealID); err != nil {
			return doc, fmt.Errorf("api: multipart field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return doc, fmt.Errorf("api: multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/documents/upload", &buf)
	if err != nil {
		return doc, fmt.Errorf("api: build upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("upload failed", zap.String("file", fileName), zap.Error(err))
		return doc, fmt.Errorf("api: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return doc, c.statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return doc, fmt.Errorf("api: decode upload response: %w", err)
	}
	return doc, nil
}

func (c *Client) DealDocuments(ctx context.Context, dealID string) ([]Document, error) {
	var docs []Document
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents/deal/"+dealID, nil, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DocumentStatus polls the parsing status of an uploaded document.
func (c *Client) DocumentStatus(ctx context.Context, documentID string) (DocumentStatus, error) {
	var st DocumentStatus
	err := c.doJSON(ctx, http.MethodGet, "/api/documents/"+documentID+"/status", nil, nil, &st)
	return st, err
}

// ExtractDocument triggers AI extraction for a parsed document.
func (c *Client) ExtractDocument(ctx context.Context, documentID string) (ExtractionResult, error) {
	var res ExtractionResult
	err := c.doJSON(ctx, http.MethodPost, "/api/documents/"+documentID+"/extract", nil, nil, &res)
	return res, err
}
