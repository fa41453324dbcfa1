package collaborator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// ErrUnexpectedStatus is returned when a collaborator answers outside 2xx
var ErrUnexpectedStatus = errors.New("unexpected collaborator response status")

// maxResponseBytes bounds how much of a collaborator response is read
const maxResponseBytes = 1 << 20

// NewHTTPClient builds the client shared by both collaborators. A zero
// timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// do sends req and decodes a JSON body into out. Bodies that are empty or
// not JSON leave out untouched; an undecodable 2xx body is logged, not failed.
func do(ctx context.Context, httpClient *http.Client, log *logrus.Logger, req *http.Request, out interface{}) error {
	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", req.URL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, req.URL, resp.StatusCode)
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			log.WithFields(logrus.Fields{
				"url":    req.URL.String(),
				"status": resp.StatusCode,
			}).Warnf("Collaborator response is not JSON: %+v", err)
		}
	}
	return nil
}
