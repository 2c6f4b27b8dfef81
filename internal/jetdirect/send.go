// Package jetdirect delivers print jobs over the raw TCP protocol on
// port 9100.
package jetdirect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"
)

// DefaultPort is the raw printing port.
const DefaultPort = "9100"

// dialTimeout bounds connection setup when ctx has no deadline.
const dialTimeout = 10 * time.Second

// Address adds the default port to a bare host.
func Address(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, DefaultPort)
}

// Send streams r to the printer at addr and half-closes the connection so
// the printer sees the end of the job. Cancelling ctx aborts the transfer.
func Send(ctx context.Context, addr string, r io.Reader) (int64, error) {
	addr = Address(addr)
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("dial printer %s: %w", addr, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	slog.Info("sending job", "printer", addr)
	n, err := io.Copy(conn, r)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return n, fmt.Errorf("send to %s after %d bytes: %w", addr, n, err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.CloseWrite(); err != nil {
			return n, fmt.Errorf("close write to %s: %w", addr, err)
		}
	}
	slog.Info("job sent", "printer", addr, "bytes", n)
	return n, nil
}
