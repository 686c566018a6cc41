package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"taskboard/internal/api"

	"github.com/rs/zerolog"
)

// Outcome classifies a gateway call for the caller, which decides any
// navigation itself.
type Outcome int

const (
	OK Outcome = iota
	Unauthorized
	NetworkError
	ServerError
)

const networkErrorMessage = "Network error. Please check your connection and try again."

// Result reports how a call went. Status is 0 when the request never
// reached the server.
type Result struct {
	Outcome Outcome
	Status  int
	Message string
}

func (r Result) OK() bool { return r.Outcome == OK }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client is the HTTP gateway to the task service. Every call funnels
// through do, which attaches the stored token and normalizes errors.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Store   *StateStore
	Log     zerolog.Logger
}

func New(baseURL string, store *StateStore, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		Store:   store,
		Log:     log,
	}
}

func (c *Client) do(method, path string, body any, headers map[string]string, out any) Result {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Result{Outcome: NetworkError, Message: networkErrorMessage}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return Result{Outcome: NetworkError, Message: networkErrorMessage}
	}

	req.Header.Set("Content-Type", "application/json")
	token := c.Store.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return Result{Outcome: NetworkError, Status: 0, Message: networkErrorMessage}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		c.Log.Warn().Err(err).Int("status", resp.StatusCode).Msg("undecodable response body")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		msg := env.Error
		if msg == "" {
			msg = "Session expired. Please log in again."
		}
		if token != "" {
			if err := c.Store.Clear(); err != nil {
				c.Log.Warn().Err(err).Msg("clearing session state")
			}
		}
		return Result{Outcome: Unauthorized, Status: resp.StatusCode, Message: msg}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		if out != nil && len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, out); err != nil {
				c.Log.Warn().Err(err).Msg("undecodable data payload")
				return Result{Outcome: ServerError, Status: resp.StatusCode, Message: "Unexpected server response."}
			}
		}
		return Result{Outcome: OK, Status: resp.StatusCode, Message: env.Message}
	}

	msg := env.Error
	if msg == "" {
		msg = "Something went wrong. Please try again."
	}
	return Result{Outcome: ServerError, Status: resp.StatusCode, Message: msg}
}

func (c *Client) Register(name, email, password, role string) (api.RegisterData, Result) {
	var data api.RegisterData
	res := c.do(http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}, nil, &data)
	return data, res
}

// Login exchanges credentials for a token and persists the session on
// success.
func (c *Client) Login(email, password string) (api.LoginData, Result) {
	var data api.LoginData
	res := c.do(http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Email:    email,
		Password: password,
	}, nil, &data)
	if res.OK() {
		if err := c.Store.SaveToken(data.Token); err != nil {
			c.Log.Warn().Err(err).Msg("persisting token")
		}
		if err := c.Store.SaveUser(data.User); err != nil {
			c.Log.Warn().Err(err).Msg("persisting user")
		}
	}
	return data, res
}

// Logout revokes the token server-side, best effort, then always
// clears local state.
func (c *Client) Logout() Result {
	res := c.do(http.MethodPost, "/api/v1/auth/logout", nil, nil, nil)
	if err := c.Store.Clear(); err != nil {
		c.Log.Warn().Err(err).Msg("clearing session state")
	}
	return res
}

// Me fetches the caller's profile and refreshes the cached copy.
func (c *Client) Me() (api.UserResponse, Result) {
	var u api.UserResponse
	res := c.do(http.MethodGet, "/api/v1/auth/me", nil, nil, &u)
	if res.OK() {
		if err := c.Store.SaveUser(u); err != nil {
			c.Log.Warn().Err(err).Msg("persisting user")
		}
	}
	return u, res
}

func (c *Client) Users() (api.UsersData, Result) {
	var data api.UsersData
	res := c.do(http.MethodGet, "/api/v1/auth/users", nil, nil, &data)
	return data, res
}

// TaskQuery selects a page of the task listing. Zero values are
// omitted and fall back to the server defaults.
type TaskQuery struct {
	Page   int
	Limit  int
	Status string
	All    bool
}

func (q TaskQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.All {
		v.Set("all", "true")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) Tasks(q TaskQuery) (api.TaskListData, Result) {
	var data api.TaskListData
	res := c.do(http.MethodGet, "/api/v1/tasks"+q.encode(), nil, nil, &data)
	return data, res
}

func (c *Client) Task(id int) (api.TaskResponse, Result) {
	var t api.TaskResponse
	res := c.do(http.MethodGet, fmt.Sprintf("/api/v1/tasks/%d", id), nil, nil, &t)
	return t, res
}

func (c *Client) CreateTask(req api.CreateTaskRequest) (api.TaskResponse, Result) {
	var t api.TaskResponse
	res := c.do(http.MethodPost, "/api/v1/tasks", req, nil, &t)
	return t, res
}

func (c *Client) UpdateTask(id int, req api.UpdateTaskRequest) (api.TaskResponse, Result) {
	var t api.TaskResponse
	res := c.do(http.MethodPut, fmt.Sprintf("/api/v1/tasks/%d", id), req, nil, &t)
	return t, res
}

func (c *Client) DeleteTask(id int) Result {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", id), nil, nil, nil)
}

func (c *Client) AdminDeleteTask(id int) Result {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/v1/tasks/admin/%d", id), nil, nil, nil)
}

func (c *Client) AdminAllTasks(status string, userID int) (api.AdminTaskListData, Result) {
	v := url.Values{}
	if status != "" {
		v.Set("status", status)
	}
	if userID > 0 {
		v.Set("user_id", strconv.Itoa(userID))
	}
	path := "/api/v1/tasks/admin/all"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var data api.AdminTaskListData
	res := c.do(http.MethodGet, path, nil, nil, &data)
	return data, res
}
