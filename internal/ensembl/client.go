// Package ensembl fetches transcript sequences from the Ensembl REST API.
package ensembl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Client retrieves cDNA sequences from Ensembl.
// This is useful when no local transcript FASTA is available.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client for an assembly.
// assembly should be "GRCh37" or "GRCh38".
func NewClient(assembly string) *Client {
	baseURL := "https://rest.ensembl.org"
	if strings.EqualFold(assembly, "GRCh37") {
		baseURL = "https://grch37.rest.ensembl.org"
	}
	return NewClientWithURL(baseURL)
}

// NewClientWithURL creates a REST client against a custom server.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Sequence returns the cDNA sequence of a transcript. Ensembl does not
// accept versioned IDs here, so the version suffix is dropped.
func (c *Client) Sequence(ctx context.Context, transcriptID string) (string, error) {
	url := fmt.Sprintf("%s/sequence/id/%s?type=cdna", c.baseURL, stripVersion(transcriptID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build REST request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("REST API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read REST response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("REST API error %d for %s: %s", resp.StatusCode, transcriptID, strings.TrimSpace(string(body)))
	}

	seq := strings.TrimSpace(string(body))
	if seq == "" {
		return "", fmt.Errorf("REST API returned an empty sequence for %s", transcriptID)
	}
	return seq, nil
}

// Download fetches the cDNA of each transcript and writes them to a FASTA
// file at path, one record per transcript.
func (c *Client) Download(ctx context.Context, transcriptIDs []string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := c.WriteFASTA(ctx, transcriptIDs, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFASTA fetches the cDNA of each transcript and writes FASTA records to w.
func (c *Client) WriteFASTA(ctx context.Context, transcriptIDs []string, w io.Writer) error {
	fw := fasta.NewWriter(w, 60)
	for _, id := range transcriptIDs {
		seq, err := c.Sequence(ctx, id)
		if err != nil {
			return err
		}
		rec := linear.NewSeq(id, alphabet.BytesToLetters([]byte(seq)), alphabet.DNAredundant)
		rec.Desc = "cdna"
		if _, err := fw.Write(rec); err != nil {
			return fmt.Errorf("write FASTA record %s: %w", id, err)
		}
	}
	return nil
}

// stripVersion removes the version suffix from an Ensembl ID.
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}
