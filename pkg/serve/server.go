package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"go.uber.org/zap"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server drives one session from NDJSON requests. Requests are handled one
// at a time on the Run goroutine, which is the only one touching the session.
type Server struct {
	handler *Handler
	encoder *json.Encoder
	decoder *json.Decoder
	logger  *zap.Logger
}

// NewServer creates a new streaming server
func NewServer(sess *session.Session, in io.Reader, out io.Writer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handler: NewHandler(sess, logger),
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
		logger:  logger,
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Stops the reader goroutine once the loop returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Send ready signal
	s.encoder.Encode(s.handler.Ready())

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.logger.Warn("decode failed", zap.Error(err))
					s.encoder.Encode(ErrorResponse("decode", err))
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	resp, done := s.handler.Handle(req)
	if done {
		return true
	}
	s.encoder.Encode(resp)
	return false
}
