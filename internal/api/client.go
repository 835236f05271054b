package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/libsys/ils-importer/internal/config"
	"github.com/libsys/ils-importer/internal/models"
)

const tasksPath = "/api/importer/tasks/"

// retryLogger adapts zerolog to the retryablehttp.LeveledLogger interface.
// Only errors and warnings are forwarded; retry chatter stays quiet.
type retryLogger struct {
	zlog zerolog.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.zlog.Error().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.zlog.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Client talks to the importer service.
//
// Read endpoints go through a retry-wrapped client. Task creation is
// not idempotent, so it uses a plain client and is never retried.
type Client struct {
	readClient   *nethttp.Client
	submitClient *nethttp.Client
	baseURL      string
	apiToken     string
	logger       zerolog.Logger
}

// NewClient creates an importer API client from config.
func NewClient(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.PlatformURL) == "" {
		return nil, fmt.Errorf("cannot create API client: platform URL is empty (check config or --api-url)")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 4
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = &retryLogger{zlog: logger}

	return &Client{
		readClient:   retryClient.StandardClient(),
		submitClient: &nethttp.Client{Timeout: 2 * time.Minute},
		baseURL:      strings.TrimSuffix(cfg.PlatformURL, "/"),
		apiToken:     cfg.APIToken,
		logger:       logger,
	}, nil
}

// CreateTask submits one create-task request with the file and form
// fields as multipart/form-data. Exactly one request is issued per
// call; failures are returned to the caller, never retried here.
func (c *Client) CreateTask(ctx context.Context, req models.TaskRequest) (*models.ImportTask, error) {
	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	fields := map[string]string{
		"provider":             req.Provider,
		"mode":                 req.Mode,
		"ignore_missing_rules": strconv.FormatBool(req.IgnoreMissingRules),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, c.baseURL+tasksPath, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuth(httpReq)

	c.logger.Debug().
		Str("provider", req.Provider).
		Str("mode", req.Mode).
		Str("file", filepath.Base(req.FilePath)).
		Msg("submitting import task")

	resp, err := c.submitClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create task request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	var task models.ImportTask
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task response: %w", err)
	}
	if task.ID == "" {
		return nil, fmt.Errorf("importer returned a task without an id")
	}

	return &task, nil
}

// GetTask retrieves a single task by id.
func (c *Client) GetTask(ctx context.Context, taskID string) (*models.ImportTask, error) {
	resp, err := c.doGet(ctx, tasksPath+taskID+"/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, newAPIError(resp)
	}

	var task models.ImportTask
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to decode task: %w", err)
	}
	return &task, nil
}

// ListTasks retrieves all tasks, following pagination.
func (c *Client) ListTasks(ctx context.Context) ([]models.ImportTask, error) {
	var allTasks []models.ImportTask
	nextURL := tasksPath

	for nextURL != "" {
		resp, err := c.doGet(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != nethttp.StatusOK {
			apiErr := newAPIError(resp)
			resp.Body.Close()
			return nil, apiErr
		}

		var page struct {
			Count   int                 `json:"count"`
			Next    *string             `json:"next"`
			Results []models.ImportTask `json:"results"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to decode task list: %w", err)
		}
		resp.Body.Close()

		allTasks = append(allTasks, page.Results...)

		nextURL = ""
		if page.Next != nil && *page.Next != "" {
			// The service may report next behind a proxy on a different
			// scheme or host; only the path and query matter here.
			next, err := url.Parse(*page.Next)
			if err != nil {
				return nil, fmt.Errorf("invalid next page URL %q: %w", *page.Next, err)
			}
			nextURL = next.Path
			if next.RawQuery != "" {
				nextURL += "?" + next.RawQuery
			}
		}
	}

	return allTasks, nil
}

func (c *Client) doGet(ctx context.Context, path string) (*nethttp.Response, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setAuth(req)

	resp, err := c.readClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) setAuth(req *nethttp.Request) {
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}
