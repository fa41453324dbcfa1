package collaborator

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"hospital-admin/internal/delivery/dto"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// DoctorRecordClient submits doctor payloads as JSON
type DoctorRecordClient struct {
	endpoint   string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewDoctorRecordClient(endpoint string, httpClient *http.Client, log *logrus.Logger) *DoctorRecordClient {
	return &DoctorRecordClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log,
	}
}

func (c *DoctorRecordClient) Create(ctx context.Context, payload *dto.DoctorPayload) (*dto.DoctorRecordResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode doctor payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build doctor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var result dto.DoctorRecordResult
	if err := do(ctx, c.httpClient, c.log, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
