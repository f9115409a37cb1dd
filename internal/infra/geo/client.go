package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"app/internal/usecase"
)

// Client は地域名→ID検索とジオコーディングのHTTPクライアント。
// usecase.RegionAPI と usecase.Geocoder を満たす。
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// get は一覧を取り、名前の大文字小文字を無視して一致するIDを返す
func (c *Client) get(ctx context.Context, path string, query url.Values, name string) (string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("region api: status %d", resp.StatusCode)
	}

	var list []region
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, r := range list {
		if strings.ToLower(strings.TrimSpace(r.Name)) == want {
			return r.ID, nil
		}
	}
	return "", usecase.ErrRegionNotFound
}

func (c *Client) FindProvinceID(ctx context.Context, name string) (string, error) {
	return c.get(ctx, "/provinces", nil, name)
}

func (c *Client) FindCityID(ctx context.Context, provinceID string, name string) (string, error) {
	q := url.Values{"province_id": {provinceID}}
	return c.get(ctx, "/cities", q, name)
}

func (c *Client) FindDistrictID(ctx context.Context, cityID string, name string) (string, error) {
	q := url.Values{"city_id": {cityID}}
	return c.get(ctx, "/districts", q, name)
}

func (c *Client) FindSubdistrictID(ctx context.Context, districtID string, name string) (string, error) {
	q := url.Values{"district_id": {districtID}}
	return c.get(ctx, "/subdistricts", q, name)
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode は住所文字列を緯度経度にする
func (c *Client) Geocode(ctx context.Context, fullAddress string) (float64, float64, error) {
	q := url.Values{"q": {fullAddress}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode?"+q.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, err
	}

	return out.Lat, out.Lng, nil
}
