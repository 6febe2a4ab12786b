package gocarousel

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotImage is returned when an asset's content is not a supported
	// image format.
	ErrNotImage = errors.New("asset is not an image")
	// ErrAssetTooLarge is returned when an asset exceeds MaxAssetSize.
	ErrAssetTooLarge = errors.New("asset too large")
)

// MaxAssetSize caps the bytes read for one image or logo.
const MaxAssetSize = 20 << 20 // 20 MB

// AssetLoader fetches and decodes images from http(s) URLs, data: URIs and
// local paths. Remote URLs are routed through ProxyBase when it is set.
type AssetLoader struct {
	// Client performs remote fetches. Nil uses a client with a 30s timeout.
	Client *http.Client
	// ProxyBase, when set, rewrites remote URLs to ProxyBase?url=<escaped>.
	ProxyBase string
	// AllowFiles permits plain file paths and file:// URLs.
	AllowFiles bool
}

// NewAssetLoader returns a loader that reads remote URLs through proxyBase
// (empty for direct fetches) and allows local files.
func NewAssetLoader(proxyBase string) *AssetLoader {
	return &AssetLoader{
		Client:     &http.Client{Timeout: 30 * time.Second},
		ProxyBase:  proxyBase,
		AllowFiles: true,
	}
}

// Load implements ImageSource.
func (l *AssetLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}

// Fetch returns the raw bytes behind ref after checking they hold an image.
func (l *AssetLoader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	var (
		data []byte
		err  error
	)
	switch {
	case ref == "":
		return nil, fmt.Errorf("empty asset reference")
	case strings.HasPrefix(ref, "data:"):
		data, err = decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = l.fetchRemote(ctx, l.proxied(ref))
	default:
		if !l.AllowFiles {
			return nil, fmt.Errorf("unsupported asset reference %q", ref)
		}
		data, err = readFileLimited(strings.TrimPrefix(ref, "file://"))
	}
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	return data, nil
}

func (l *AssetLoader) proxied(ref string) string {
	if l.ProxyBase == "" {
		return ref
	}
	sep := "?"
	if strings.Contains(l.ProxyBase, "?") {
		sep = "&"
	}
	return l.ProxyBase + sep + "url=" + url.QueryEscape(ref)
}

func (l *AssetLoader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (l *AssetLoader) fetchRemote(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	resp, err := l.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %s", u, resp.Status)
	}
	if resp.ContentLength > MaxAssetSize {
		return nil, ErrAssetTooLarge
	}
	return readLimited(resp.Body)
}

// readLimited reads at most MaxAssetSize bytes and fails beyond that.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxAssetSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxAssetSize {
		return nil, ErrAssetTooLarge
	}
	return data, nil
}

func readFileLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f)
}

// decodeDataURI decodes "data:[<mime>][;base64],<payload>".
func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxAssetSize {
		return nil, ErrAssetTooLarge
	}
	if !strings.HasSuffix(meta, ";base64") {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI: %w", err)
		}
		return []byte(s), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI: %w", err)
	}
	return data, nil
}

// DecodeImage decodes PNG, JPEG, GIF, WebP, BMP and TIFF data.
func DecodeImage(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrNotImage
		}
		return nil, fmt.Errorf("decode image: %w", err)
	}
	logger().Debug("image decoded", "format", format, "bounds", img.Bounds())
	return img, nil
}
