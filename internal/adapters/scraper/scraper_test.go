package scraper

import (
	"net/http"
	"net/http/httptest"
	"officebot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commitPage = `<html><body><div id="content">
<p>fixed the build. again.
</p>
<p class="permalink">[<a href="/abc">Permalink</a>]</p>
</div></body></html>`

const reactionPage = `<html><body>
<div class="post"><h2 class="post_title"><a href="/p/1">When the deploy works on Friday</a></h2>
<div class="item"><p><img src="http://media.example.org/deploy.gif"></p></div></div>
</body></html>`

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		assert.NoError(t, err)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestScraper_CommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "first paragraph",
			status: http.StatusOK,
			body:   commitPage,
			want:   "fixed the build. again.",
		},
		{
			name:    "no content",
			status:  http.StatusOK,
			body:    "<html><body></body></html>",
			wantErr: true,
		},
		{
			name:    "site down",
			status:  http.StatusServiceUnavailable,
			body:    "down",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, tc.status, tc.body)
			s := New(srv.Client(), srv.URL, srv.URL)

			got, err := s.CommitMessage(t.Context())
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestScraper_Reaction(t *testing.T) {
	srv := newServer(t, http.StatusOK, reactionPage)
	s := New(srv.Client(), srv.URL, srv.URL)

	got, err := s.Reaction(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.Reaction{
		Title:    "When the deploy works on Friday",
		ImageURL: "http://media.example.org/deploy.gif",
	}, got)
}

func TestScraper_ReactionEmpty(t *testing.T) {
	srv := newServer(t, http.StatusOK, "<html></html>")
	s := New(srv.Client(), srv.URL, srv.URL)

	_, err := s.Reaction(t.Context())
	require.ErrorIs(t, err, domain.ErrEmptyResponse)
}

func TestScraper_ReactionStatusError(t *testing.T) {
	srv := newServer(t, http.StatusNotFound, "gone")
	s := New(srv.Client(), srv.URL, srv.URL)

	_, err := s.Reaction(t.Context())
	var statusErr *domain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Not Found", statusErr.Reason)
}
