package logger

import (
	"testing"
)

// TestNewLogger_Dev проверяет создание логгера для dev окружения
func TestNewLogger_Dev(t *testing.T) {
	log, err := NewLogger("dev", "debug", "test-service")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log == nil {
		t.Fatal("Expected logger, got nil")
	}

	// Логгер должен принимать все уровни без паники
	log.Debug("debug message", String("key", "value"))
	log.Info("info message", Int("count", 1))
	log.Warn("warn message", Bool("flag", true))
	log.Error("error message", Error(nil))
}

// TestNewLogger_UnknownLevel проверяет, что неизвестный уровень не является ошибкой
func TestNewLogger_UnknownLevel(t *testing.T) {
	log, err := NewLogger("prod", "trace", "test-service")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if log == nil {
		t.Fatal("Expected logger, got nil")
	}
}

// TestWith проверяет, что With возвращает новый логгер
func TestWith(t *testing.T) {
	log, err := NewLogger("prod", "info", "test-service")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	child := log.With(String("component", "launcher"))
	if child == nil {
		t.Fatal("Expected child logger, got nil")
	}
	child.Info("message from child")
}
