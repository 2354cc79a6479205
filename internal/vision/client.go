package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"go-deskpilot/pkg/models"
)

// HTTPOCR talks to an external OCR daemon over a small JSON contract:
// request {image_id, image_png, regions} → response {results:[{text, box,
// confidence}]}.
type HTTPOCR struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPOCR(endpoint string) *HTTPOCR {
	return &HTTPOCR{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type ocrRequest struct {
	ImageID  string       `json:"image_id"`
	ImagePNG string       `json:"image_png"`
	Regions  []models.Box `json:"regions,omitempty"`
}

type ocrResponse struct {
	Results []models.TextBox `json:"results"`
}

func (c *HTTPOCR) Recognize(ctx context.Context, shot *models.Screenshot, regions []models.Box) ([]models.TextBox, error) {
	body, err := post(ctx, c.Client, c.Endpoint, ocrRequest{
		ImageID:  shot.ID,
		ImagePNG: encodePNG(shot),
		Regions:  regions,
	})
	if err != nil {
		return nil, err
	}

	var resp ocrResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	return resp.Results, nil
}

// HTTPDetector talks to an external UI element detection daemon.
type HTTPDetector struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPDetector(endpoint string) *HTTPDetector {
	return &HTTPDetector{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type detectRequest struct {
	ImageID  string `json:"image_id"`
	ImagePNG string `json:"image_png"`
}

type detectResponse struct {
	Results []models.UIElement `json:"results"`
}

func (c *HTTPDetector) Detect(ctx context.Context, shot *models.Screenshot) ([]models.UIElement, error) {
	body, err := post(ctx, c.Client, c.Endpoint, detectRequest{
		ImageID:  shot.ID,
		ImagePNG: encodePNG(shot),
	})
	if err != nil {
		return nil, err
	}

	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}
	return resp.Results, nil
}

func post(ctx context.Context, client *http.Client, endpoint string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func encodePNG(shot *models.Screenshot) string {
	if shot.Img == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, shot.Img); err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
