package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tresidus/tresidus-api/consulting"
	"github.com/tresidus/tresidus-api/schema"
)

const (
	defaultTimeout = 30 * time.Second
	consultingPath = "/api/consulting"
)

// APIError is a response the api reported as unsuccessful
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Created is the data returned for a newly submitted request
type Created struct {
	ID     string               `json:"id"`
	Status schema.RequestStatus `json:"status"`
}

// Client is a typed client of the consulting api
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetAPIToken sets the admin key sent with every request
func (c *Client) SetAPIToken(token string) {
	c.apiToken = token
}

func (c *Client) Create(ctx context.Context, in consulting.CreateInput) (*Created, error) {
	var created Created
	if err := c.do(ctx, http.MethodPost, consultingPath, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) List(ctx context.Context) ([]schema.ConsultingRequest, error) {
	var requests []schema.ConsultingRequest
	if err := c.do(ctx, http.MethodGet, consultingPath, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *Client) Get(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	var r schema.ConsultingRequest
	if err := c.do(ctx, http.MethodGet, requestPath(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Update(ctx context.Context, id string, in consulting.UpdateInput) (*schema.ConsultingRequest, error) {
	var r schema.ConsultingRequest
	if err := c.do(ctx, http.MethodPut, requestPath(id), in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) AddCommunication(ctx context.Context, id string, in consulting.CommunicationInput) (*schema.Communication, error) {
	var comm schema.Communication
	if err := c.do(ctx, http.MethodPost, requestPath(id)+"/communication", in, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

func (c *Client) Delete(ctx context.Context, id string) (*schema.ConsultingRequest, error) {
	var r schema.ConsultingRequest
	if err := c.do(ctx, http.MethodDelete, requestPath(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func requestPath(id string) string {
	return consultingPath + "/" + url.PathEscape(id)
}

// do sends the request and decodes the data of the envelope into out.
// Transport failures are returned as is, api failures as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Api-Token", c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var e envelope
	if err := json.Unmarshal(d, &e); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response: %s", resp.Status),
		}
	}

	if !e.Success || resp.StatusCode >= http.StatusBadRequest {
		message := e.Error
		if message == "" {
			message = e.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil || len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
