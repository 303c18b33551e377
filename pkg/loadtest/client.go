package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client 面向 trailblazer HTTP 接口的压测客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建客户端，连接池按高并发调大
func NewClient(baseURL string) *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 1000
	t.MaxIdleConnsPerHost = 1000
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: t, Timeout: 10 * time.Second},
	}
}

// Do 发送请求，body 非 nil 时编码为 JSON；out 非 nil 时解码响应
func (c *Client) Do(ctx context.Context, method, path, token string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}

// Expect 请求 path，状态码不在 codes 中即失败
func (c *Client) Expect(method, path, token string, codes ...int) RequestFunc {
	if len(codes) == 0 {
		codes = []int{http.StatusOK}
	}
	return func(ctx context.Context) error {
		status, err := c.Do(ctx, method, path, token, nil, nil)
		if err != nil {
			return err
		}
		for _, code := range codes {
			if status == code {
				return nil
			}
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, status)
	}
}

// Health 健康检查
func (c *Client) Health(ctx context.Context) error {
	return c.Expect(http.MethodGet, "/health", "")(ctx)
}

// Register 注册压测账号并返回 token
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	status, err := c.Do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("register: unexpected status %d", status)
	}
	return out.Data.AccessToken, nil
}

// CreateTrail 创建压测用步道并返回 ID
func (c *Client) CreateTrail(ctx context.Context, token, name string, lat, lon float64) (uint, error) {
	var out struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	status, err := c.Do(ctx, http.MethodPost, "/trails", token, map[string]interface{}{
		"name": name,
		"lat":  lat,
		"lon":  lon,
	}, &out)
	if err != nil {
		return 0, err
	}
	if status != http.StatusCreated {
		return 0, fmt.Errorf("create trail: unexpected status %d", status)
	}
	return out.Data.ID, nil
}
