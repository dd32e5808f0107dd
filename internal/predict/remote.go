package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"knowyourplant/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Remote calls the external prediction service over HTTP. The service takes
// a multipart request with one image field named "file" and answers with a
// ranked prediction list.
type Remote struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewRemote creates a Remote for the service at baseURL.
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: defaultTimeout,
	}
}

// WithTimeout bounds each prediction call and returns the Remote.
func (p *Remote) WithTimeout(d time.Duration) *Remote {
	p.timeout = d
	return p
}

// predictResponse is the upstream payload shape.
type predictResponse struct {
	Predictions []struct {
		Class      string  `json:"class"`
		Confidence float64 `json:"confidence"`
	} `json:"predictions"`
	Error string `json:"error"`
}

// Predict uploads the image and maps the top prediction to a ScanResult.
func (p *Remote) Predict(ctx context.Context, image []byte, mime string) (*domain.ScanResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if _, err := fw.Write(image); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict-image", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read prediction: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prediction service returned %d", resp.StatusCode)
	}

	var parsed predictResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New("prediction service: " + parsed.Error)
	}
	if len(parsed.Predictions) == 0 {
		return nil, errors.New("prediction service returned no candidates")
	}

	top := parsed.Predictions[0]
	return resultFromLabel(top.Class, top.Confidence), nil
}
