package collaborator

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadClient posts staged photos to the upload endpoint as multipart/form-data
type UploadClient struct {
	endpoint   string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewUploadClient(endpoint string, httpClient *http.Client, log *logrus.Logger) *UploadClient {
	return &UploadClient{
		endpoint:   endpoint,
		httpClient: httpClient,
		log:        log,
	}
}

// Upload sends the file under the "file" field and the folder tag under
// "folderName"
func (c *UploadClient) Upload(ctx context.Context, file *entity.StagedFile, folder string) (*dto.UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.WriteField("folderName", folder); err != nil {
		return nil, fmt.Errorf("failed to write folder field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result dto.UploadResult
	if err := do(ctx, c.httpClient, c.log, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
