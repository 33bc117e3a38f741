// Package firestore implements the DocumentStore contract over the Firestore
// REST API. The dashboard historically lived on Firestore, so this adapter
// lets the Go backend run against the same project unchanged.
package firestore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/patisserie-app/admin/internal/config"
	"github.com/patisserie-app/admin/internal/store"
)

const defaultBaseURL = "https://firestore.googleapis.com"

// Client is a resty-backed Firestore DocumentStore.
type Client struct {
	httpClient *resty.Client
	apiKey     string
}

// New builds a Firestore REST client for the configured project.
func New(cfg config.FirestoreConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents",
			strings.TrimSuffix(base, "/"), cfg.ProjectID)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient, apiKey: cfg.APIKey}
}

// restDocument mirrors one Firestore REST document resource.
type restDocument struct {
	Name   string               `json:"name,omitempty"`
	Fields map[string]restValue `json:"fields"`
}

type listResponse struct {
	Documents     []restDocument `json:"documents"`
	NextPageToken string         `json:"nextPageToken"`
}

// apiError mirrors the Firestore REST error envelope.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// List pages through every document in the collection.
func (c *Client) List(ctx context.Context, collection string) ([]store.Document, error) {
	var docs []store.Document
	pageToken := ""

	for {
		result := new(listResponse)
		apiErr := new(apiError)

		req := c.httpClient.R().
			SetContext(ctx).
			SetQueryParam("key", c.apiKey).
			SetQueryParam("pageSize", "300").
			SetResult(result).
			SetError(apiErr)
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		resp, err := req.Get("/" + collection)
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", store.ErrUnavailable, collection, err)
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return nil, restError("list "+collection, resp.StatusCode(), apiErr)
		}

		for _, d := range result.Documents {
			docs = append(docs, store.Document{ID: documentID(d.Name), Fields: decodeFields(d.Fields)})
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			return docs, nil
		}
	}
}

// Create writes a new document and returns the id Firestore assigned.
func (c *Client) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	result := new(restDocument)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(restDocument{Fields: encodeFields(fields)}).
		SetResult(result).
		SetError(apiErr).
		Post("/" + collection)
	if err != nil {
		return "", fmt.Errorf("%w: create in %s: %v", store.ErrUnavailable, collection, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", restError("create in "+collection, resp.StatusCode(), apiErr)
	}

	return documentID(result.Name), nil
}

// Update patches exactly the given fields via an updateMask, leaving every
// other field untouched. The exists precondition turns a missing id into
// ErrNotFound instead of an upsert.
func (c *Client) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	// A PATCH without an updateMask replaces the whole document; an empty
	// field map therefore never goes out.
	if len(fields) == 0 {
		return nil
	}

	apiErr := new(apiError)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("currentDocument.exists", "true")
	for name := range fields {
		params.Add("updateMask.fieldPaths", name)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetBody(restDocument{Fields: encodeFields(fields)}).
		SetError(apiErr).
		Patch(fmt.Sprintf("/%s/%s", collection, id))
	if err != nil {
		return fmt.Errorf("%w: update %s/%s: %v", store.ErrUnavailable, collection, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return store.ErrNotFound
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return restError(fmt.Sprintf("update %s/%s", collection, id), resp.StatusCode(), apiErr)
	}
	return nil
}

// Delete removes one document; a missing id is ErrNotFound.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetQueryParam("currentDocument.exists", "true").
		SetError(apiErr).
		Delete(fmt.Sprintf("/%s/%s", collection, id))
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", store.ErrUnavailable, collection, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return store.ErrNotFound
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return restError(fmt.Sprintf("delete %s/%s", collection, id), resp.StatusCode(), apiErr)
	}
	return nil
}

// documentID extracts the trailing id segment of a full resource name.
func documentID(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func restError(op string, status int, apiErr *apiError) error {
	message := ""
	if apiErr != nil {
		message = apiErr.Error.Message
	}
	return fmt.Errorf("firestore %s: status=%d message=%s", op, status, message)
}
