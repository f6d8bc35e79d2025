package translate

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// DefaultEndpoint is the public Google Translate web endpoint.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleConfig configures the GoogleClient.
type GoogleConfig struct {
	// Endpoint overrides DefaultEndpoint, mainly for tests.
	Endpoint string
	// Source and Target are ISO 639-1 language codes, e.g. "en" -> "es".
	Source string
	Target string
	// Timeout bounds each translation call. Defaults to 10s.
	Timeout time.Duration
}

// GoogleClient translates text via the unauthenticated "gtx" web endpoint,
// the same backend the original deployment used.
type GoogleClient struct {
	endpoint string
	source   string
	target   string
	client   *http.Client
}

var _ Translator = (*GoogleClient)(nil)

// NewGoogleClient creates a GoogleClient for the given language pair.
func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		endpoint: endpoint,
		source:   cfg.Source,
		target:   cfg.Target,
		client:   &http.Client{Timeout: timeout},
	}
}

// Translate translates text from the source to the target language.
func (c *GoogleClient) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", c.source)
	q.Set("tl", c.target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call translator")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("translator returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read response")
	}

	translated, err := parseGTXResponse(body)
	if err != nil {
		return "", errors.Wrap(err, "parse response")
	}
	return translated, nil
}

// parseGTXResponse extracts the translated text from the gtx wire format:
// a nested array where element [0] is a list of segments and each segment's
// first element is a translated chunk.
func parseGTXResponse(body []byte) (string, error) {
	var (
		sb       strings.Builder
		outerIdx int
	)

	d := jx.DecodeBytes(body)
	err := d.Arr(func(d *jx.Decoder) error {
		outerIdx++
		if outerIdx > 1 {
			return d.Skip()
		}
		if d.Next() != jx.Array {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			if d.Next() != jx.Array {
				return d.Skip()
			}
			segIdx := 0
			return d.Arr(func(d *jx.Decoder) error {
				segIdx++
				if segIdx == 1 && d.Next() == jx.String {
					chunk, err := d.Str()
					if err != nil {
						return err
					}
					sb.WriteString(chunk)
					return nil
				}
				return d.Skip()
			})
		})
	})
	if err != nil {
		return "", err
	}
	if sb.Len() == 0 {
		return "", errors.New("no translation segments in response")
	}
	return sb.String(), nil
}
