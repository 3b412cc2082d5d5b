package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ============================================================
// Builder Client
// ============================================================

type BuilderClient struct {
	baseURL string
}

func NewBuilderClient(baseURL string) *BuilderClient {
	return &BuilderClient{baseURL: baseURL}
}

// BuildResult — интересующая архив часть ответа Builder.
type BuildResult struct {
	Project string `json:"project"`
	Walls   int    `json:"walls"`
	Report  struct {
		FileName   string            `json:"file_name"`
		Valid      bool              `json:"valid"`
		Violations []json.RawMessage `json:"violations"`
	} `json:"report"`
	Step string `json:"step"`

	// ReportRaw — отчет как есть, для сохранения в файл.
	ReportRaw json.RawMessage `json:"-"`
}

// Build отправляет запрос в Builder /build и разбирает ответ.
func (b *BuilderClient) Build(payload []byte) (*BuildResult, error) {
	if b.baseURL == "" {
		return nil, fmt.Errorf("builder url is empty")
	}

	req, err := http.NewRequest(http.MethodPost, b.baseURL+"/build", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("builder status %d: %s", resp.StatusCode, data)
	}

	var result BuildResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode builder response: %w", err)
	}

	var envelope struct {
		Report json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode builder report: %w", err)
	}
	result.ReportRaw = envelope.Report

	return &result, nil
}
