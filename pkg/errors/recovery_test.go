package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "TestOperation" {
		t.Errorf("Expected operation 'TestOperation', got '%s'", panicErr.Operation)
	}
	if panicErr.PanicValue != "test panic message" {
		t.Errorf("Expected panic value 'test panic message', got '%v'", panicErr.PanicValue)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "mnistexport: panic in TestOperation: test panic message"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
	}
}

// TestRecover_WithoutPanic tests the Recover function when no panic occurs
func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_WithExistingError keeps the original error as the primary cause
func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic with existing error, got nil")
	}
	if !Is(err, originalErr) {
		t.Errorf("Expected original error to be preserved, got: %v", err)
	}
	if !strings.Contains(fmt.Sprintf("%+v", err), "panic after error") {
		t.Errorf("Expected panic value in detailed output: %+v", err)
	}
}

// TestRecover_ErrorPanicValue unwraps panics raised with an error value
func TestRecover_ErrorPanicValue(t *testing.T) {
	sentinel := New("mat: dimension mismatch")

	err := SafeExecute("matrix op", func() error {
		panic(sentinel)
	})

	if !Is(err, sentinel) {
		t.Errorf("Expected panic error to unwrap to sentinel, got: %v", err)
	}
}

func TestSafeExecute_PassesThroughError(t *testing.T) {
	want := New("plain failure")

	err := SafeExecute("op", func() error { return want })

	if !Is(err, want) {
		t.Errorf("Expected returned error to pass through, got: %v", err)
	}
}
