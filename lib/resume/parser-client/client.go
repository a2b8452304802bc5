package parserclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ats-backend/config"
	"ats-backend/lib/utils/apperr"
	resumeapimodels "ats-backend/models/api/resume"

	"github.com/pkg/errors"
)

// Provider talks to the external resume parsing service.
type Provider interface {
	Parse(ctx context.Context, fileName string, data []byte) (resumeapimodels.ParsedResume, error)
}

func NewClient() Provider {
	return &impl{
		client: &http.Client{
			Timeout: time.Second * time.Duration(config.Conf.ResumeParser.TimeoutInSec),
		},
		baseURL: config.Conf.ResumeParser.BaseUrl,
	}
}

type impl struct {
	client  *http.Client
	baseURL string
}

type parseResponse struct {
	Status     string                       `json:"status"`
	ParsedData resumeapimodels.ParsedResume `json:"parsed_data"`
	Error      string                       `json:"error,omitempty"`
}

func (i impl) Parse(ctx context.Context, fileName string, data []byte) (resumeapimodels.ParsedResume, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return resumeapimodels.ParsedResume{}, errors.Wrap(err, "failed to build multipart request")
	}
	if _, err = part.Write(data); err != nil {
		return resumeapimodels.ParsedResume{}, errors.Wrap(err, "failed to build multipart request")
	}
	if err = writer.Close(); err != nil {
		return resumeapimodels.ParsedResume{}, errors.Wrap(err, "failed to build multipart request")
	}

	url := fmt.Sprintf("%s/api/v1/parse-resume", i.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return resumeapimodels.ParsedResume{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := i.client.Do(req)
	if err != nil {
		return resumeapimodels.ParsedResume{}, apperr.ExternalWrap(err, "resume parsing service is unavailable")
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resumeapimodels.ParsedResume{}, apperr.ExternalWrap(err, "failed to read parser response")
	}
	if resp.StatusCode != http.StatusOK {
		return resumeapimodels.ParsedResume{}, apperr.External(
			fmt.Sprintf("parser responded with code %d", resp.StatusCode))
	}
	parsed := parseResponse{}
	if err = json.Unmarshal(respBody, &parsed); err != nil {
		return resumeapimodels.ParsedResume{}, apperr.ExternalWrap(err, "failed to decode parser response")
	}
	if parsed.Status != "success" {
		msg := parsed.Error
		if msg == "" {
			msg = "parsing failed"
		}
		return resumeapimodels.ParsedResume{}, apperr.External(msg)
	}
	return parsed.ParsedData, nil
}
