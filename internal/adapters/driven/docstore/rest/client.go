// Package rest implements the remote document store over its HTTP API.
//
// Requests carry the session's bearer token through an oauth2 transport
// that reads the token from the auth provider on every request, so a
// rotated token takes effect without rebuilding the client. Transient
// failures retry with backoff. Live subscriptions are synthesized by
// polling: the API has no push channel, so the adapter re-lists the
// collection on an interval and delivers a snapshot when it changes.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/oauth2"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxAttempts caps retries for transient errors.
	maxAttempts = 3

	// retryDelay is the initial delay between retries.
	retryDelay = 500 * time.Millisecond
)

// Ensure Client implements the interface.
var _ driven.DocumentStore = (*Client)(nil)

// Client talks to the remote document store.
type Client struct {
	baseURL string
	http    *http.Client
	poll    time.Duration
}

// stateTokenSource reads the bearer token from the current auth state.
type stateTokenSource struct {
	auth driven.AuthStateProvider
}

func (s stateTokenSource) Token() (*oauth2.Token, error) {
	state := s.auth.Current()
	if !state.LoggedIn() {
		return nil, domain.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: state.Identity.Token}, nil
}

// NewClient creates a document store client rooted at baseURL. The poll
// interval drives subscription refreshes.
func NewClient(baseURL string, authProvider driven.AuthStateProvider, poll time.Duration) *Client {
	httpClient := oauth2.NewClient(context.Background(), stateTokenSource{auth: authProvider})
	httpClient.Timeout = DefaultTimeout

	if poll <= 0 {
		poll = domain.DefaultSettings().SubscribePollInterval
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		poll:    poll,
	}
}

// wireDocument is the document's JSON shape on the wire.
type wireDocument struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"ownerId"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type listResponse struct {
	Documents []wireDocument `json:"documents"`
}

func toWire(doc domain.Document) wireDocument {
	return wireDocument{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Fields:    doc.Fields,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func fromWire(w wireDocument) domain.Document {
	return domain.Document{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Fields:    w.Fields,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// List returns all documents of the owner's collection.
func (c *Client) List(ctx context.Context, ownerID, collection string) ([]domain.Document, error) {
	data, err := c.do(ctx, http.MethodGet, c.collectionPath(ownerID, collection), nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode document list: %w", domain.ErrSerialization, err)
	}

	docs := make([]domain.Document, 0, len(resp.Documents))
	for _, w := range resp.Documents {
		docs = append(docs, fromWire(w))
	}
	return docs, nil
}

// Set writes a full document, creating or replacing it.
func (c *Client) Set(ctx context.Context, ownerID, collection string, doc domain.Document) error {
	body, err := json.Marshal(toWire(doc))
	if err != nil {
		return fmt.Errorf("%w: encode document: %w", domain.ErrSerialization, err)
	}
	_, err = c.do(ctx, http.MethodPut, c.documentPath(ownerID, collection, doc.ID), body)
	return err
}

// Update merges fields onto an existing document.
func (c *Client) Update(ctx context.Context, ownerID, collection string, doc domain.Document) error {
	body, err := json.Marshal(toWire(doc))
	if err != nil {
		return fmt.Errorf("%w: encode document: %w", domain.ErrSerialization, err)
	}
	_, err = c.do(ctx, http.MethodPatch, c.documentPath(ownerID, collection, doc.ID), body)
	return err
}

// Delete removes a document. The API treats missing ids as deleted.
func (c *Client) Delete(ctx context.Context, ownerID, collection, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.documentPath(ownerID, collection, id), nil)
	if err != nil && strings.Contains(err.Error(), "status 404") {
		return domain.ErrNotFound
	}
	return err
}

// Subscribe polls the collection and delivers a snapshot whenever its
// contents change. The first snapshot is delivered as soon as the
// initial list completes.
func (c *Client) Subscribe(ctx context.Context, ownerID, collection string, onSnapshot driven.SnapshotFunc, onError driven.ErrorFunc) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		var last []byte
		deliver := func() {
			docs, err := c.List(subCtx, ownerID, collection)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				if onError != nil {
					onError(err)
				}
				return
			}
			fingerprint, err := json.Marshal(docs)
			if err != nil {
				return
			}
			if bytes.Equal(fingerprint, last) {
				return
			}
			last = fingerprint
			onSnapshot(docs)
		}

		deliver()
		ticker := time.NewTicker(c.poll)
		defer ticker.Stop()
		for {
			select {
			case <-subCtx.Done():
				return
			case <-ticker.C:
				deliver()
			}
		}
	}()

	return cancel, nil
}

// Batch opens a write batch for one owner. Operations queue locally and
// apply atomically on Commit.
func (c *Client) Batch(ownerID string) driven.WriteBatch {
	return &writeBatch{client: c, ownerID: ownerID}
}

type batchWrite struct {
	Collection string       `json:"collection"`
	Document   wireDocument `json:"document"`
}

type writeBatch struct {
	client  *Client
	ownerID string
	writes  []batchWrite
}

// Set queues a full document write.
func (b *writeBatch) Set(collection string, doc domain.Document) {
	b.writes = append(b.writes, batchWrite{Collection: collection, Document: toWire(doc)})
}

// Len returns the number of queued operations.
func (b *writeBatch) Len() int {
	return len(b.writes)
}

// Commit applies all queued operations atomically.
func (b *writeBatch) Commit(ctx context.Context) error {
	body, err := json.Marshal(map[string]any{"writes": b.writes})
	if err != nil {
		return fmt.Errorf("%w: encode batch: %w", domain.ErrSerialization, err)
	}
	_, err = b.client.do(ctx, http.MethodPost, fmt.Sprintf("/owners/%s:batchWrite", b.ownerID), body)
	return err
}

func (c *Client) collectionPath(ownerID, collection string) string {
	return fmt.Sprintf("/owners/%s/%s", ownerID, collection)
}

func (c *Client) documentPath(ownerID, collection, id string) string {
	return fmt.Sprintf("/owners/%s/%s/%s", ownerID, collection, id)
}

// do performs one HTTP request with retries on transient failures.
// Network errors and 5xx responses retry; everything else fails fast.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var out []byte
	err := retry.Do(
		func() error {
			var reader io.Reader
			if body != nil {
				reader = bytes.NewReader(body)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("build request %s: %w", path, err))
			}
			if body != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.http.Do(req)
			if err != nil {
				// Token source failures surface here; a missing session
				// will not heal by retrying.
				if errors.Is(err, domain.ErrNotAuthenticated) {
					return retry.Unrecoverable(fmt.Errorf("request %s %s: %w", method, path, domain.ErrNotAuthenticated))
				}
				return fmt.Errorf("request %s %s: %w", method, path, err)
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response %s: %w", path, err)
			}

			switch {
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				out = data
				return nil
			case resp.StatusCode >= 500:
				return fmt.Errorf("request %s %s: status %d", method, path, resp.StatusCode)
			case resp.StatusCode == http.StatusUnauthorized:
				return retry.Unrecoverable(fmt.Errorf("request %s %s: %w", method, path, domain.ErrNotAuthenticated))
			default:
				return retry.Unrecoverable(fmt.Errorf("request %s %s: status %d", method, path, resp.StatusCode))
			}
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("docstore retry %d for %s %s: %v", n+1, method, path, err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
