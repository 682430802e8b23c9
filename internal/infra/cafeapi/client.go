// Package cafeapi はカフェ本体のHTTP API（メニュー・注文・顔認識・ムード）のクライアント。
package cafeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	repo "kiosk/internal/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// timeout を過ぎたリクエストは通信失敗として扱う
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// JSONで送ってJSONで受ける。
// 通信失敗・読めない本文は repo.ErrUnavailable、error 付きの非2xxは *repo.RejectedError。
func (c *Client) doJSON(ctx context.Context, method string, path string, in interface{}, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, errors.Wrapf(err, "encode %s %s", method, path)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(repo.ErrUnavailable, "%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.Wrapf(repo.ErrUnavailable, "%s %s: read body: %v", method, path, err)
	}

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start).String(),
	}).Debug("cafe api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
			return resp.StatusCode, &repo.RejectedError{Status: resp.StatusCode, Message: eb.Error}
		}
		return resp.StatusCode, errors.Wrapf(repo.ErrUnavailable, "%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, errors.Wrapf(repo.ErrUnavailable, "%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, nil
}
