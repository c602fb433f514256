package render

import (
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// encodeTable is the 6-bit alphabet the PlantUML server expects. It is not
// standard base64: digits sort first and the padding characters differ.
const encodeTable = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

// Encode compresses diagram text with raw deflate and encodes the result
// in the PlantUML server's URL alphabet.
func Encode(text string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return encode6bit(buf.Bytes()), nil
}

func encode6bit(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data)*8 + 5) / 6)

	var bitBuf uint32
	bitLen := 0
	for _, b := range data {
		bitBuf = bitBuf<<8 | uint32(b)
		bitLen += 8
		for bitLen >= 6 {
			bitLen -= 6
			sb.WriteByte(encodeTable[(bitBuf>>bitLen)&0x3F])
		}
	}
	// Left-align the remaining bits into a final character
	if bitLen > 0 {
		sb.WriteByte(encodeTable[(bitBuf<<(6-bitLen))&0x3F])
	}
	return sb.String()
}

// PlantUML renders diagrams through a PlantUML HTTP server. The diagram
// source travels compressed inside the request URL, so rendering needs a
// single GET per call.
type PlantUML struct {
	serverURL string
	client    *http.Client
}

// NewPlantUML creates a renderer against the given server base URL.
func NewPlantUML(serverURL string, timeout time.Duration) *PlantUML {
	return &PlantUML{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

// Render implements Renderer.
func (p *PlantUML) Render(ctx context.Context, source, format string) ([]byte, error) {
	key, err := Encode(source)
	if err != nil {
		return nil, NewRenderFailedError(RendererPlantUML, fmt.Sprintf("plantuml encoding failed: %v", err))
	}

	url := fmt.Sprintf("%s/%s/%s", p.serverURL, format, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewRenderFailedError(RendererPlantUML, fmt.Sprintf("plantuml request failed: %v", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewUnavailableError(RendererPlantUML, fmt.Sprintf("plantuml server unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewRenderFailedError(RendererPlantUML, fmt.Sprintf("plantuml response read failed: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, NewRenderFailedError(RendererPlantUML,
			fmt.Sprintf("plantuml server returned %s: %s", resp.Status, truncate(body, 200)))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
