package antivirus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ClamAVScanner connects to a clamd daemon for malware scanning
type ClamAVScanner struct {
	address string        // TCP address (host:port) or Unix socket path
	timeout time.Duration // Connection and scan timeout
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a ClamAV scanner.
// address: TCP "localhost:3310" or Unix socket "/var/run/clamav/clamd.sock"
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

// Available checks if the clamd daemon is reachable
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := net.DialTimeout(c.network(), c.address, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err = conn.Write([]byte("PING\n")); err != nil {
		return false
	}

	buf := make([]byte, 10)
	n, err := conn.Read(buf)
	if err != nil {
		return false
	}

	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Scan checks file content for malware using the clamd INSTREAM command
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	result := ScanResult{ScannerName: c.Name()}

	conn, err := net.DialTimeout(c.network(), c.address, c.timeout)
	if err != nil {
		result.Infected = true // Fail closed
		result.Error = fmt.Errorf("failed to connect to clamd: %w", err)
		return result
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err = conn.Write([]byte("zINSTREAM\x00")); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to send command: %w", err)
		return result
	}

	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, data); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to read file data: %w", err)
		return result
	}
	fileData := buf.Bytes()

	// Chunk length prefix in network byte order (big-endian uint32)
	chunkSize := uint32(len(fileData))
	sizeBytes := []byte{
		byte(chunkSize >> 24),
		byte(chunkSize >> 16),
		byte(chunkSize >> 8),
		byte(chunkSize),
	}

	if _, err = conn.Write(sizeBytes); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to send size: %w", err)
		return result
	}
	if _, err = conn.Write(fileData); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to send file data: %w", err)
		return result
	}
	// End-of-stream marker (4 zero bytes)
	if _, err = conn.Write([]byte{0, 0, 0, 0}); err != nil {
		result.Infected = true
		result.Error = fmt.Errorf("failed to send end marker: %w", err)
		return result
	}

	response := make([]byte, 1024)
	n, err := conn.Read(response)
	if err != nil && err != io.EOF {
		result.Infected = true
		result.Error = fmt.Errorf("failed to read response: %w", err)
		return result
	}

	responseStr := strings.TrimSpace(string(response[:n]))

	// Clean:    "stream: OK"
	// Infected: "stream: Eicar-Signature FOUND"
	// Error:    "stream: <error message> ERROR"
	if strings.HasSuffix(responseStr, "FOUND") {
		result.Infected = true
		parts := strings.SplitN(responseStr, ":", 2)
		if len(parts) == 2 {
			threatPart := strings.TrimSpace(parts[1])
			result.ThreatName = strings.TrimSuffix(threatPart, " FOUND")
		}
	} else if strings.HasSuffix(responseStr, "ERROR") {
		result.Infected = true // Fail closed on scan errors
		result.Error = fmt.Errorf("scan error: %s", responseStr)
	}

	return result
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}
