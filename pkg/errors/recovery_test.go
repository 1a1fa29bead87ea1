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

	// Check error message format
	expectedMsg := "panic in TestOperation: test panic message"
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
		t.Errorf("Expected nil error, got %v", err)
	}
}

// TestRecover_PreservesExistingError tests that a panic wraps an already-set error
func TestRecover_PreservesExistingError(t *testing.T) {
	baseErr := errors.New("original failure")
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = baseErr
		panic("late panic")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if !errors.Is(err, baseErr) {
		t.Error("Expected the original error to remain reachable via errors.Is")
	}

	if !strings.Contains(err.Error(), "late panic") {
		t.Errorf("Expected error message to mention the panic, got %q", err.Error())
	}
}

// TestRecover_PanicWithErrorValue tests recovery when the panic value is itself an error
func TestRecover_PanicWithErrorValue(t *testing.T) {
	panicked := errors.New("matrix dimension error")
	testFunc := func() (err error) {
		defer Recover(&err, "ClassifierFit")
		panic(panicked)
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}

	if panicErr.PanicValue != panicked {
		t.Errorf("Expected panic value to be the original error, got %v", panicErr.PanicValue)
	}
}

// TestPanicError_String verifies the detailed representation includes the stack trace
func TestPanicError_String(t *testing.T) {
	panicErr := NewPanicError("SomeOp", 42)

	detail := panicErr.String()
	if !strings.Contains(detail, "panic in SomeOp: 42") {
		t.Errorf("Expected detail to contain the error message, got %q", detail)
	}
	if !strings.Contains(detail, "Stack trace:") {
		t.Error("Expected detail to contain the stack trace section")
	}
	if fmt.Sprintf("%v", panicErr) != "panic in SomeOp: 42" {
		t.Errorf("Unexpected Error() output: %v", panicErr)
	}
}
