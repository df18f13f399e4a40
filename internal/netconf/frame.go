package netconf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// NETCONF 1.0 end-of-message framing (RFC 6242 §4.3): every message on the
// wire is terminated by the character sequence "]]>]]>".
const endOfMessage = "]]>]]>"

// MaxMessageSize caps a single framed message. Device replies to the
// operations this tool issues are small; anything larger indicates a
// corrupt stream or a misbehaving peer.
const MaxMessageSize = 16 * 1024 * 1024

// ErrMessageTooLarge is returned when a peer sends a message exceeding
// MaxMessageSize without an end-of-message delimiter.
var ErrMessageTooLarge = errors.New("framed message exceeds maximum size")

// ReadMessage reads one end-of-message-framed NETCONF message from r,
// consuming the trailing delimiter. The returned bytes do not include the
// delimiter. Returns io.ErrUnexpectedEOF if the stream ends mid-message.
func ReadMessage(r *bufio.Reader) ([]byte, error) {
	var buf bytes.Buffer
	delim := []byte(endOfMessage)

	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("failed to read framed message: %w", err)
		}

		buf.WriteByte(b)

		if buf.Len() > MaxMessageSize {
			return nil, ErrMessageTooLarge
		}

		// Cheap suffix check: only compare when the last byte could
		// complete the delimiter.
		if b == '>' && buf.Len() >= len(delim) {
			tail := buf.Bytes()[buf.Len()-len(delim):]
			if bytes.Equal(tail, delim) {
				msg := buf.Bytes()[:buf.Len()-len(delim)]
				return bytes.TrimSpace(msg), nil
			}
		}
	}
}

// WriteMessage writes payload to w followed by the end-of-message delimiter
// and a newline. The newline is not required by the framing but matches
// what common NETCONF agents emit and makes captures readable.
func WriteMessage(w io.Writer, payload []byte) error {
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write message payload: %w", err)
	}
	if _, err := io.WriteString(w, "\n"+endOfMessage+"\n"); err != nil {
		return fmt.Errorf("failed to write message delimiter: %w", err)
	}
	return nil
}
