package mopidy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"officebot/internal/adapters/web"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	methodStop  = "core.playback.stop"
	methodClear = "core.tracklist.clear"
	methodAdd   = "core.tracklist.add"
	methodPlay  = "core.playback.play"
)

// Client talks JSON-RPC 2.0 to a Mopidy music server.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(client *http.Client, url string) *Client {
	return &Client{client: client, url: url}
}

type request struct {
	ID      int        `json:"id"`
	JSONRPC string     `json:"jsonrpc"`
	Method  string     `json:"method"`
	Params  *addParams `json:"params,omitempty"`
}

type addParams struct {
	Tracks     []string `json:"tracks"`
	AtPosition *int     `json:"at_position"`
	URI        *string  `json:"uri"`
	URIs       []string `json:"uris"`
}

func (c *Client) Stop(ctx context.Context) error {
	_, err := c.call(ctx, methodStop, nil)
	return err
}

func (c *Client) ClearTracklist(ctx context.Context) error {
	_, err := c.call(ctx, methodClear, nil)
	return err
}

func (c *Client) AddTrack(ctx context.Context, uri string) (string, error) {
	body, err := c.call(ctx, methodAdd, &addParams{URIs: []string{uri}})
	if err != nil {
		return "", err
	}

	return gjson.GetBytes(body, "result.0.track.name").String(), nil
}

func (c *Client) Play(ctx context.Context) error {
	_, err := c.call(ctx, methodPlay, nil)
	return err
}

func (c *Client) call(ctx context.Context, method string, params *addParams) ([]byte, error) {
	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(request{
		ID:      1,
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, payloadBuf)
	if err != nil {
		return nil, fmt.Errorf("error creating %s request: %w", method, err)
	}
	req.Header.Add("Content-Type", "application/json")

	body, err := web.Do(c.client, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}

	log.Debug().Str("method", method).Bytes("body", body).Msg("mopidy response")

	if rpcErr := gjson.GetBytes(body, "error"); rpcErr.Exists() {
		return nil, fmt.Errorf("%s failed: %s", method, rpcErr.Get("message").String())
	}

	return body, nil
}
