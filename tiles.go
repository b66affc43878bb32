package poiside

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultTileZoom is the zoom level used for per-POI satellite snapshots
	DefaultTileZoom = 18
	// DefaultTileSize is the tile edge in pixels
	DefaultTileSize = 512

	defaultTileBaseURL = "https://maps.hereapi.com/v3/base/mc"
)

// TileXY converts geographic coordinates to mercator tile indices at given zoom
func TileXY(lat, lon float64, zoom int) (int, int) {
	latRad := lat * math.Pi / 180.0
	n := math.Exp2(float64(zoom))
	x := int((lon + 180.0) / 360.0 * n)
	y := int((1.0 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2.0 * n)
	return x, y
}

// TileLatLon returns geographic coordinates of the north-west corner of a tile
func TileLatLon(x, y, zoom int) (float64, float64) {
	n := math.Exp2(float64(zoom))
	lon := float64(x)/n*360.0 - 180.0
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*float64(y)/n)))
	return latRad * 180.0 / math.Pi, lon
}

// TileBoundsWKT returns the tile footprint as a WKT polygon (lon lat order)
func TileBoundsWKT(x, y, zoom int) string {
	lat1, lon1 := TileLatLon(x, y, zoom)
	lat2, lon2 := TileLatLon(x+1, y, zoom)
	lat3, lon3 := TileLatLon(x+1, y+1, zoom)
	lat4, lon4 := TileLatLon(x, y+1, zoom)
	return fmt.Sprintf("POLYGON((%f %f, %f %f, %f %f, %f %f, %f %f))",
		lon1, lat1, lon2, lat2, lon3, lat3, lon4, lat4, lon1, lat1)
}

// TileClient downloads satellite raster tiles from the HERE map tile API
type TileClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	zoom    int
	size    int
	format  string
}

// NewTileClient creates a tile client with given API key
func NewTileClient(apiKey string, options ...func(*TileClient)) *TileClient {
	client := &TileClient{
		apiKey:  apiKey,
		baseURL: defaultTileBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		zoom:    DefaultTileZoom,
		size:    DefaultTileSize,
		format:  "png",
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// WithTileZoom overrides the zoom level
func WithTileZoom(zoom int) func(*TileClient) {
	return func(client *TileClient) {
		client.zoom = zoom
	}
}

// WithTileSize overrides the tile edge in pixels
func WithTileSize(size int) func(*TileClient) {
	return func(client *TileClient) {
		client.size = size
	}
}

// WithTileBaseURL overrides the tile API endpoint (used by tests)
func WithTileBaseURL(baseURL string) func(*TileClient) {
	return func(client *TileClient) {
		client.baseURL = baseURL
	}
}

// WithTileHTTPClient overrides the underlying HTTP client
func WithTileHTTPClient(httpClient *http.Client) func(*TileClient) {
	return func(client *TileClient) {
		client.client = httpClient
	}
}

// URL builds the request URL for given tile indices
func (tc *TileClient) URL(x, y int) string {
	return fmt.Sprintf("%s/%d/%d/%d/%s?style=satellite.day&size=%d&apiKey=%s",
		tc.baseURL, tc.zoom, x, y, tc.format, tc.size, tc.apiKey)
}

// Fetch downloads the satellite tile containing the given coordinates
func (tc *TileClient) Fetch(ctx context.Context, lat, lon float64) (image.Image, error) {
	x, y := TileXY(lat, lon, tc.zoom)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.URL(x, y), nil)
	if err != nil {
		return nil, errors.Wrap(err, "tiles: build request")
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tiles: request tile")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("tiles: unexpected status %d for tile %d/%d/%d", resp.StatusCode, tc.zoom, x, y)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "tiles: decode tile image")
	}
	return img, nil
}

// MarkTile draws a marker circle in the center of the tile with an optional
// label next to it, returning a mutable copy of the image
func MarkTile(img image.Image, label string) *image.RGBA {
	bounds := img.Bounds()
	marked := image.NewRGBA(bounds)
	draw.Draw(marked, bounds, img, bounds.Min, draw.Src)

	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	radius := 8
	drawCircleOutline(marked, cx, cy, radius, 3, color.RGBA{R: 255, A: 255})

	if label != "" {
		drawer := &font.Drawer{
			Dst:  marked,
			Src:  image.NewUniform(color.RGBA{G: 128, A: 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(cx+radius+5, cy),
		}
		drawer.DrawString(label)
	}
	return marked
}

// drawCircleOutline draws a circle outline of given radius and stroke width
func drawCircleOutline(img *image.RGBA, cx, cy, radius, width int, col color.Color) {
	outer := float64(radius)
	inner := float64(radius - width)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist <= outer && dist >= inner {
				img.Set(x, y, col)
			}
		}
	}
}

// SaveTilePNG writes the annotated tile to a PNG file
func SaveTilePNG(fname string, img image.Image) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "tiles: create file")
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return errors.Wrap(err, "tiles: encode png")
	}
	return nil
}
