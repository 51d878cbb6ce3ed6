// Package transport implements executor.Transport over HTTP. It owns request
// assembly (URL joining, JSON encoding, auth and agent headers) and the
// split between transport success and failure; it never interprets status
// codes beyond the 2xx boundary.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tkleiven/nametag/internal/executor"
)

const userAgent = "nametag/1.0"

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Directory struct {
	httpClient   HttpClient
	baseURL      string
	authUsername string
	authPassword string
}

func NewDirectory(httpClient HttpClient, baseURL, authUsername, authPassword string) *Directory {
	return &Directory{
		httpClient:   httpClient,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		authUsername: authUsername,
		authPassword: authPassword,
	}
}

func (d *Directory) Do(ctx context.Context, execReq executor.Request) (executor.RawResponse, *executor.RawError) {
	start := time.Now()

	resp, rawErr := d.do(ctx, execReq)

	statusCode := resp.StatusCode
	if rawErr != nil {
		statusCode = rawErr.StatusCode
	}
	recordRequest(ctx, execReq.Method, execReq.Path, statusCode, time.Since(start))

	return resp, rawErr
}

func (d *Directory) do(ctx context.Context, execReq executor.Request) (executor.RawResponse, *executor.RawError) {
	var bodyReader io.Reader
	if execReq.Body != nil {
		encoded, err := json.Marshal(execReq.Body)
		if err != nil {
			return executor.RawResponse{}, &executor.RawError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, execReq.Method, d.baseURL+execReq.Path, bodyReader)
	if err != nil {
		return executor.RawResponse{}, &executor.RawError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", userAgent)
	if execReq.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.authUsername != "" {
		req.SetBasicAuth(d.authUsername, d.authPassword)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return executor.RawResponse{}, &executor.RawError{Err: fmt.Errorf("failed to send request: %w", err)}
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return executor.RawResponse{}, &executor.RawError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return executor.RawResponse{}, &executor.RawError{
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}

	return executor.RawResponse{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
