// Package session is the client side of authentication: it logs in against the API,
// keeps the token and user profile in device storage and attaches the token to calls.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Device storage keys.
const (
	KeyAuthToken                 = "authToken"
	KeyUserData                  = "userData"
	KeyHasDownloadedCertificates = "hasDownloadedCertificates"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Storage is device local key/value storage. Get reports false for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

// Client talks to the certificate API. BaseURL includes the /api prefix.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	storage Storage

	mu    sync.Mutex
	state State
	token string
	user  *User
}

func New(baseURL string, storage Storage) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		storage: storage,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) User() (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

// RequireAuth gates protected pages.
func (c *Client) RequireAuth() error {
	if c.State() != StateAuthenticated {
		return ErrAuth
	}
	return nil
}

// Restore picks up a session persisted by an earlier login.
func (c *Client) Restore(ctx context.Context) error {
	token, ok, err := c.storage.Get(ctx, KeyAuthToken)
	if err != nil || !ok || token == "" {
		return err
	}
	raw, ok, err := c.storage.Get(ctx, KeyUserData)
	if err != nil || !ok {
		return err
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return fmt.Errorf("decoding stored user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.user = &user
	c.state = StateAuthenticated
	return nil
}

type loginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	CollegeID string `json:"collegeId"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token. On failure the client stays anonymous.
func (c *Client) Login(ctx context.Context, username, password, collegeID string) (User, error) {
	c.mu.Lock()
	if c.state == StateAuthenticating {
		c.mu.Unlock()
		return User{}, ErrBusy
	}
	c.state = StateAuthenticating
	c.mu.Unlock()

	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/login", false, loginRequest{username, password, collegeID}, &out)
	if err == nil && out.Token == "" {
		err = fmt.Errorf("%w: login response has no token", ErrAuth)
	}
	if err == nil {
		err = c.persist(ctx, out)
	}

	if err != nil {
		// a failed login ends any previous session too
		c.reset()
		if rerr := c.storage.Remove(ctx, KeyAuthToken, KeyUserData); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return User{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = out.Token
	c.user = &out.User
	c.state = StateAuthenticated
	return out.User, nil
}

func (c *Client) persist(ctx context.Context, out loginResponse) error {
	userData, err := json.Marshal(out.User)
	if err != nil {
		return err
	}
	if err := c.storage.Set(ctx, KeyAuthToken, out.Token); err != nil {
		return err
	}
	return c.storage.Set(ctx, KeyUserData, string(userData))
}

// Logout forgets the session locally. The token itself is stateless on the server.
func (c *Client) Logout(ctx context.Context) error {
	c.reset()
	return c.storage.Remove(ctx, KeyAuthToken, KeyUserData, KeyHasDownloadedCertificates)
}

func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = nil
	c.state = StateAnonymous
}

func (c *Client) MarkCertificatesDownloaded(ctx context.Context) error {
	return c.storage.Set(ctx, KeyHasDownloadedCertificates, "true")
}

func (c *Client) CertificatesDownloaded(ctx context.Context) (bool, error) {
	v, ok, err := c.storage.Get(ctx, KeyHasDownloadedCertificates)
	return ok && v == "true", err
}

// do sends a JSON request and decodes a JSON response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, auth, out)
}

func (c *Client) send(req *http.Request, auth bool, out any) error {
	if auth {
		token := c.Token()
		if token == "" {
			return ErrAuth
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		// a rejected token ends the session
		if auth && errors.Is(apiErr, ErrAuth) {
			c.reset()
			c.storage.Remove(req.Context(), KeyAuthToken, KeyUserData)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if b, ok := out.(*[]byte); ok {
		*b, err = io.ReadAll(resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if b, err := io.ReadAll(resp.Body); err == nil && json.Unmarshal(b, &body) == nil {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = fallbackMessage(resp.StatusCode)
	}
	return apiErr
}

func (c *Client) Colleges(ctx context.Context) ([]College, error) {
	var out []College
	if err := c.do(ctx, http.MethodGet, "/colleges", false, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Students(ctx context.Context) ([]Student, error) {
	var out []Student
	if err := c.do(ctx, http.MethodGet, "/students", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStudent(ctx context.Context, in StudentInput) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodPost, "/students", true, in, &out)
	return out, err
}

func (c *Client) UpdateStudent(ctx context.Context, id string, in StudentInput) (Student, error) {
	var out Student
	err := c.do(ctx, http.MethodPut, "/students/"+id, true, in, &out)
	return out, err
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/students/"+id, true, nil, nil)
}

// BulkUploadStudents posts a CSV file as the csvFile form field.
func (c *Client) BulkUploadStudents(ctx context.Context, filename string, csv io.Reader) (BulkUploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csvFile", filename)
	if err != nil {
		return BulkUploadResult{}, err
	}
	if _, err := io.Copy(fw, csv); err != nil {
		return BulkUploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return BulkUploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/students/bulk", &buf)
	if err != nil {
		return BulkUploadResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out BulkUploadResult
	err = c.send(req, true, &out)
	return out, err
}

// StudentTemplate downloads the CSV skeleton for bulk uploads.
func (c *Client) StudentTemplate(ctx context.Context) ([]byte, error) {
	var out []byte
	err := c.do(ctx, http.MethodGet, "/students/template", false, nil, &out)
	return out, err
}
