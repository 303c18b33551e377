// Package nps 国家公园管理局 (NPS) 开放 API 客户端，只实现按州拉取公园列表。
package nps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trailblazer/internal/pkg/config"
)

// DefaultLimit 单次拉取的最大条数
const DefaultLimit = 500

var ErrMissingAPIKey = errors.New("nps api key is not configured")

// Park NPS 返回的公园记录（只取需要的字段）
type Park struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"fullName"`
	States    string `json:"states"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Coordinates 解析经纬度，缺失或无法解析时为 nil
func (p Park) Coordinates() (lat, lon *float64) {
	return parseCoord(p.Latitude), parseCoord(p.Longitude)
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

type parksResponse struct {
	Total string `json:"total"`
	Data  []Park `json:"data"`
}

// Client NPS API 客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建客户端，超时对整次请求生效
func NewClient(cfg config.NPSConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ParksByState 拉取指定州的公园
func (c *Client) ParksByState(ctx context.Context, stateCode string) ([]Park, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("stateCode", strings.ToUpper(stateCode))
	q.Set("limit", strconv.Itoa(DefaultLimit))
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/parks?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nps request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nps returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out parksResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode nps response: %w", err)
	}
	return out.Data, nil
}
