package logger

import "testing"

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
	if err := DebugConfig().Validate(); err != nil {
		t.Errorf("Debug config invalid: %v", err)
	}

	bad := &Config{Level: "loud", Format: TextFormat}
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for invalid level")
	}

	bad = &Config{Level: InfoLevel, Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for invalid format")
	}
}

func TestFieldsPersistAcrossChains(t *testing.T) {
	log, err := NewLogger(DefaultConfig())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	child := log.WithComponent("test").WithField("key", "value")
	if child == nil {
		t.Fatal("Expected chained logger")
	}
	// Chaining must not panic and must return independent loggers.
	child.WithFields(Fields{"a": 1, "b": 2}).Debug("chained")
}

func TestNewLoggerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewLogger(&Config{Level: "loud", Format: TextFormat}); err == nil {
		t.Error("Expected error for invalid configuration")
	}
}
