package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Category represents a log category
type Category string

const (
	CategoryAPI       Category = "api"
	CategoryDB        Category = "db"
	CategoryVision    Category = "vision"
	CategoryPipeline  Category = "pipeline"
	CategoryCatalog   Category = "catalog"
	CategoryCache     Category = "cache"
	CategoryWebSocket Category = "websocket"
	CategoryScheduler Category = "scheduler"
	CategoryStartup   Category = "startup"
)

// AllCategories lists every category that gets its own log file
var AllCategories = []Category{
	CategoryAPI, CategoryDB, CategoryVision, CategoryPipeline, CategoryCatalog,
	CategoryCache, CategoryWebSocket, CategoryScheduler, CategoryStartup,
}

// Level represents log level. Values match zerolog level names so files can be read back.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time              `json:"time"`
	Level     Level                  `json:"level"`
	Category  Category               `json:"category"`
	Action    string                 `json:"action"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type categoryWriter struct {
	file   *os.File
	day    string
	logger zerolog.Logger
}

// Logger writes one JSON file per category per day, optionally mirrored to the console
type Logger struct {
	mu       sync.Mutex
	logDir   string
	writers  map[Category]*categoryWriter
	console  *zerolog.Logger
	minLevel Level
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger
func Init(logDir string, console bool) error {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logDir, console)
	})
	return err
}

// NewLogger creates a new logger
func NewLogger(logDir string, console bool) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := &Logger{
		logDir:   logDir,
		writers:  make(map[Category]*categoryWriter),
		minLevel: LevelDebug,
	}
	if console {
		cl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"}).
			With().Timestamp().Logger()
		l.console = &cl
	}
	return l, nil
}

// SetMinLevel drops entries below the given level
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// getWriter returns or creates the zerolog logger for the category, rotating daily
func (l *Logger) getWriter(category Category) (zerolog.Logger, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	if w, exists := l.writers[category]; exists {
		if w.day == today {
			return w.logger, nil
		}
		w.file.Close()
	}

	filename := fmt.Sprintf("%s_%s.log", category, today)
	file, err := os.OpenFile(filepath.Join(l.logDir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), err
	}

	w := &categoryWriter{
		file:   file,
		day:    today,
		logger: zerolog.New(file).With().Timestamp().Logger(),
	}
	l.writers[category] = w
	return w.logger, nil
}

// Log writes a log entry
func (l *Logger) Log(entry LogEntry) {
	if entry.Level == "" {
		entry.Level = LevelInfo
	}
	if entry.Level.zerolog() < l.minLevel.zerolog() {
		return
	}

	fileLogger, err := l.getWriter(entry.Category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting log writer: %v\n", err)
	} else {
		emit(fileLogger, entry)
	}

	if l.console != nil {
		emit(*l.console, entry)
	}
}

func emit(zl zerolog.Logger, entry LogEntry) {
	ev := zl.WithLevel(entry.Level.zerolog()).
		Str("category", string(entry.Category)).
		Str("action", entry.Action)
	if len(entry.Data) > 0 {
		ev = ev.Interface("data", entry.Data)
	}
	if entry.RequestID != "" {
		ev = ev.Str("request_id", entry.RequestID)
	}
	if entry.Duration != "" {
		ev = ev.Str("duration", entry.Duration)
	}
	if entry.Error != "" {
		ev = ev.Str("error", entry.Error)
	}
	ev.Msg(entry.Message)
}

// Close closes all file writers
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, w := range l.writers {
		w.file.Close()
	}
	l.writers = make(map[Category]*categoryWriter)
}

// Default returns the default logger
func Default() *Logger {
	if defaultLogger == nil {
		// Initialize with default settings if not initialized
		Init("logs", true)
	}
	return defaultLogger
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Helper functions for common log operations

// API logs API request/response events
func API(action, message string, data map[string]interface{}) {
	Info(CategoryAPI, action, message, data)
}

// DB logs database operations
func DB(action, message string, data map[string]interface{}) {
	Debug(CategoryDB, action, message, data)
}

// DBError logs database errors
func DBError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryDB, action, message, err, data)
}

// Vision logs calls to the multimodal model
func Vision(action, message string, data map[string]interface{}) {
	Info(CategoryVision, action, message, data)
}

// VisionError logs model call and parsing failures
func VisionError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryVision, action, message, err, data)
}

// Pipeline logs board analysis steps
func Pipeline(action, message string, data map[string]interface{}) {
	Info(CategoryPipeline, action, message, data)
}

// PipelineWarn logs recoverable pipeline problems
func PipelineWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryPipeline, action, message, data)
}

// PipelineError logs pipeline failures
func PipelineError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryPipeline, action, message, err, data)
}

// Catalog logs product matching events
func Catalog(action, message string, data map[string]interface{}) {
	Info(CategoryCatalog, action, message, data)
}

// CatalogError logs product matching errors
func CatalogError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryCatalog, action, message, err, data)
}

// WebSocket logs WebSocket related events
func WebSocket(action, message string, data map[string]interface{}) {
	Info(CategoryWebSocket, action, message, data)
}

// WebSocketError logs WebSocket errors
func WebSocketError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryWebSocket, action, message, err, data)
}

// Scheduler logs scheduler events
func Scheduler(action, message string, data map[string]interface{}) {
	Info(CategoryScheduler, action, message, data)
}

// SchedulerWarn logs scheduler warnings
func SchedulerWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryScheduler, action, message, data)
}

// SchedulerError logs scheduler errors
func SchedulerError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryScheduler, action, message, err, data)
}

// Startup logs startup/initialization events
func Startup(action, message string, data map[string]interface{}) {
	Info(CategoryStartup, action, message, data)
}

// StartupError logs startup errors
func StartupError(action, message string, err error, data map[string]interface{}) {
	Error(CategoryStartup, action, message, err, data)
}

// StartupWarn logs startup warnings
func StartupWarn(action, message string, data map[string]interface{}) {
	Warn(CategoryStartup, action, message, data)
}

// Info logs info level message
func Info(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelInfo,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Error logs error level message
func Error(category Category, action, message string, err error, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelError,
		Category: category,
		Action:   action,
		Message:  message,
		Error:    errString(err),
		Data:     data,
	})
}

// Debug logs debug level message
func Debug(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelDebug,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// Warn logs warning level message
func Warn(category Category, action, message string, data map[string]interface{}) {
	Default().Log(LogEntry{
		Level:    LevelWarn,
		Category: category,
		Action:   action,
		Message:  message,
		Data:     data,
	})
}

// ReadLogsOptions options for reading logs
type ReadLogsOptions struct {
	Category Category // Filter by category (empty = all)
	Level    Level    // Filter by level (empty = all)
	Lines    int      // Number of lines to return (default 100)
	Search   string   // Search in message/action/error
}

// ReadLogs reads log entries from files
func ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	return Default().ReadLogs(opts)
}

// ReadLogs reads today's log entries from the logger's log directory, newest first
func (l *Logger) ReadLogs(opts ReadLogsOptions) ([]LogEntry, error) {
	if opts.Lines <= 0 {
		opts.Lines = 100
	}
	if opts.Lines > 1000 {
		opts.Lines = 1000
	}

	today := time.Now().Format("2006-01-02")

	categories := AllCategories
	if opts.Category != "" {
		categories = []Category{opts.Category}
	}

	search := strings.ToLower(opts.Search)
	var entries []LogEntry
	for _, cat := range categories {
		file, err := os.Open(filepath.Join(l.logDir, fmt.Sprintf("%s_%s.log", cat, today)))
		if err != nil {
			continue
		}
		entries = append(entries, scanEntries(file, opts.Level, search)...)
		file.Close()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > opts.Lines {
		entries = entries[:opts.Lines]
	}
	return entries, nil
}

func scanEntries(r io.Reader, level Level, search string) []LogEntry {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if level != "" && !strings.EqualFold(string(entry.Level), string(level)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Message), search) &&
			!strings.Contains(strings.ToLower(entry.Action), search) &&
			!strings.Contains(strings.ToLower(entry.Error), search) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// GetLogDir returns the log directory path
func GetLogDir() string {
	return Default().logDir
}

// ListLogFiles returns list of log files
func ListLogFiles() ([]string, error) {
	return Default().ListLogFiles()
}

// ListLogFiles returns list of log files in the log directory
func (l *Logger) ListLogFiles() ([]string, error) {
	var files []string

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}
