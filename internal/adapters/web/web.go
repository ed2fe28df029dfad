package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"officebot/internal/core/domain"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// BrowserUserAgent is sent to sites that refuse the default Go user agent.
const BrowserUserAgent = "Mozilla/5.0"

// Get returns the body of a GET request. A non-2xx answer is returned as *domain.StatusError.
func Get(ctx context.Context, client *http.Client, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	return Do(client, req)
}

// Do executes req and reads the whole response body.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	url := req.URL.Redacted()

	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		err := &domain.StatusError{Code: res.StatusCode, Reason: reason(res)}
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	return buf, nil
}

func reason(res *http.Response) string {
	if text := strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)+" "); text != "" && text != res.Status {
		return text
	}

	if text := http.StatusText(res.StatusCode); text != "" {
		return text
	}

	return res.Status
}
