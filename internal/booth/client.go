// Package booth is the toll-booth side of the wire protocol: one TCP
// connection, one transaction line out, one response line back.
package booth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/danmuck/tollctl/internal/toll"
)

// Client submits transactions to one toll server address.
type Client struct {
	addr    string
	timeout time.Duration
}

func NewClient(addr string) *Client {
	return &Client{
		addr:    strings.TrimSpace(addr),
		timeout: 5 * time.Second,
	}
}

// Addr returns the configured server address.
func (c *Client) Addr() string {
	return c.addr
}

// WithTimeout overrides the per-phase dial/read/write deadline.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// Send performs one transaction round trip and returns the server's response
// line verbatim, error responses included.
func (c *Client) Send(ctx context.Context, tx toll.Transaction) (string, error) {
	if c.addr == "" {
		return "", fmt.Errorf("booth: server addr required")
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return "", fmt.Errorf("booth: dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	line := fmt.Sprintf("%s,%s,%d\n", tx.Kind, tx.Plate, tx.Point)
	_ = conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if _, err := conn.Write([]byte(line)); err != nil {
		return "", fmt.Errorf("booth: write: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.timeout))
	resp, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("booth: read: %w", err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", fmt.Errorf("booth: empty response from %s", c.addr)
	}
	return resp, nil
}

// IsError reports whether a server response line is an error response.
func IsError(response string) bool {
	return strings.HasPrefix(response, "ERROR:")
}
