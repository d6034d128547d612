package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithPrincipal adds the caller principal to logger context
func (l *Logger) WithPrincipal(principalID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("principal_id", principalID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Ledger logging methods

// LogRoleChange logs a role grant or revocation
func (l *Logger) LogRoleChange(ctx context.Context, action, role, principalID, actorID string) {
	l.Logger.InfoContext(ctx,
		"Role Change",
		slog.String("action", action),
		slog.String("role", role),
		slog.String("principal_id", principalID),
		slog.String("actor_id", actorID),
	)
}

// LogEventCreated logs when an event is registered
func (l *Logger) LogEventCreated(ctx context.Context, eventID uint64, organizerID string) {
	l.Logger.InfoContext(ctx,
		"Event Created",
		slog.Uint64("event_id", eventID),
		slog.String("organizer_id", organizerID),
	)
}

// LogTicketMinted logs when a ticket is minted
func (l *Logger) LogTicketMinted(ctx context.Context, ticketID, eventID uint64, ownerID string) {
	l.Logger.InfoContext(ctx,
		"Ticket Minted",
		slog.Uint64("ticket_id", ticketID),
		slog.Uint64("event_id", eventID),
		slog.String("owner_id", ownerID),
	)
}

// LogTicketTransferred logs an ownership change
func (l *Logger) LogTicketTransferred(ctx context.Context, ticketID uint64, fromID, toID string) {
	l.Logger.InfoContext(ctx,
		"Ticket Transferred",
		slog.Uint64("ticket_id", ticketID),
		slog.String("from_id", fromID),
		slog.String("to_id", toID),
	)
}

// LogResaleSettled logs a completed marketplace purchase
func (l *Logger) LogResaleSettled(ctx context.Context, ticketID uint64, sellerID, buyerID string, askPrice, royalty int64) {
	l.Logger.InfoContext(ctx,
		"Resale Settled",
		slog.Uint64("ticket_id", ticketID),
		slog.String("seller_id", sellerID),
		slog.String("buyer_id", buyerID),
		slog.Int64("ask_price", askPrice),
		slog.Int64("royalty", royalty),
	)
}

// LogPauseChanged logs a pause-gate state change
func (l *Logger) LogPauseChanged(ctx context.Context, paused bool, actorID string) {
	l.Logger.InfoContext(ctx,
		"Pause Gate Changed",
		slog.Bool("paused", paused),
		slog.String("actor_id", actorID),
	)
}

// Security logging methods

// LogAuthSuccess logs successful authentication
func (l *Logger) LogAuthSuccess(ctx context.Context, principalID, method string) {
	l.Logger.InfoContext(ctx,
		"Authentication Success",
		slog.String("principal_id", principalID),
		slog.String("method", method),
	)
}

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
