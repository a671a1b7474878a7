package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"instalytics/pkg/config"
	errs "instalytics/pkg/errors"
	"instalytics/pkg/logger"
	"instalytics/pkg/ratelimit"
)

// errLoginRedirect signals that the server bounced the request to a login
// challenge, which means the session cookie is no longer valid.
var errLoginRedirect = errors.New("redirected to login challenge")

// Client is an HTTP client authenticated with a caller-supplied session
// cookie. One client instance serves exactly one analysis run; the
// credential lives only inside the Cookie header for that lifetime and is
// never logged or written anywhere else.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// NewClient creates a client for one analysis run. credential is the raw
// cookie string from the caller, either a bare sessionid value or
// "sessionid=...; csrftoken=..." pairs as copied from a browser.
func NewClient(cfg *config.Config, credential string, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	cookie, csrfToken, err := parseCredential(credential)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"User-Agent":       cfg.Instagram.UserAgent,
		"X-IG-App-ID":      cfg.Instagram.AppID,
		"Accept":           "*/*",
		"Accept-Language":  "en-US,en;q=0.9",
		"Referer":          BaseURL + "/",
		"X-Requested-With": "XMLHttpRequest",
		"Cookie":           cookie,
	}
	if csrfToken != "" {
		headers["x-csrftoken"] = csrfToken
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Fetch.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if strings.Contains(req.URL.Path, "/accounts/login") ||
					strings.Contains(req.URL.Path, "/challenge") {
					return errLoginRedirect
				}
				if len(via) >= 5 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		headers: headers,
		limiter: ratelimit.NewTokenBucket(cfg.RateLimit.RequestsPerMinute, time.Minute),
		logger:  log,
	}, nil
}

// parseCredential turns the caller-supplied cookie string into a Cookie
// header value and extracts the csrf token when present. A value without
// any "=" is treated as a bare sessionid.
func parseCredential(credential string) (cookie, csrfToken string, err error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", "", errors.New("session credential must not be empty")
	}

	if !strings.Contains(credential, "=") {
		return "sessionid=" + credential, "", nil
	}

	var pairs []string
	for _, part := range strings.Split(credential, ";") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ";"))
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "csrftoken" {
			csrfToken = value
		}
		pairs = append(pairs, key+"="+value)
	}

	if len(pairs) == 0 {
		return "", "", errors.New("no cookie pairs found in credential")
	}

	return strings.Join(pairs, "; "), csrfToken, nil
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// GetJSON performs a GET request and decodes the JSON response into target.
// Status codes and transport failures are mapped to the typed error
// taxonomy; no retrying happens at this layer.
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	if !c.limiter.Allow() {
		c.logger.Debug("local rate limit reached, waiting for budget")
		c.limiter.Wait()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.New(errs.ErrorTypeUnknown, fmt.Sprintf("failed to create request: %v", err), 0)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, errLoginRedirect) {
			c.logger.Warn("session cookie rejected, login challenge issued")
			return errs.New(errs.ErrorTypeAuthExpired, "session cookie is no longer valid", http.StatusUnauthorized)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return errs.New(errs.ErrorTypeNetwork, fmt.Sprintf("network error: %v", err), 0)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.New(errs.ErrorTypeNetwork, fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		// A login wall serves HTML with status 200
		if strings.HasPrefix(strings.TrimSpace(bodyPreview), "<") {
			c.logger.Warn("received HTML instead of JSON, treating as expired session")
			return errs.New(errs.ErrorTypeAuthExpired, "received login page instead of API response", resp.StatusCode)
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errs.New(errs.ErrorTypeMalformed, fmt.Sprintf("failed to parse JSON: %v", err), resp.StatusCode)
	}

	return nil
}

// checkResponseStatus maps HTTP status codes to the typed error taxonomy
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		c.logger.WarnWithFields("session no longer authorized", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return errs.New(errs.ErrorTypeAuthExpired, "session cookie is no longer valid", resp.StatusCode)
	case http.StatusForbidden:
		c.logger.WarnWithFields("access forbidden", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return errs.New(errs.ErrorTypeForbidden, "target exists but is not visible to this account", resp.StatusCode)
	case http.StatusNotFound:
		c.logger.WarnWithFields("resource not found", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return errs.New(errs.ErrorTypeNotFound, "resource not found", resp.StatusCode)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status":      resp.StatusCode,
			"url":         resp.Request.URL.String(),
			"retry_after": retryAfter,
		})
		return errs.NewRateLimit("rate limit exceeded", retryAfter)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		c.logger.ErrorWithFields("server error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return errs.New(errs.ErrorTypeNetwork, "server error", resp.StatusCode)
	default:
		if resp.StatusCode >= 400 {
			c.logger.ErrorWithFields("unexpected API error", map[string]interface{}{
				"status": resp.StatusCode,
				"url":    resp.Request.URL.String(),
			})
			return errs.New(errs.ErrorTypeUnknown, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), resp.StatusCode)
		}
		return nil
	}
}

// parseRetryAfter reads a Retry-After header as delay seconds or HTTP date
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if delay := time.Until(when); delay > 0 {
			return delay
		}
	}
	return 0
}
