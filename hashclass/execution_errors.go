package hashclass

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StackFrame names a function and the position it was executing.
type StackFrame struct {
	Function string
	Pos      Position
}

type callFrame = StackFrame

// RuntimeError is a script-level failure. Type is one of TypeError,
// ReferenceError, InternalError, AssertionError or RuntimeError.
type RuntimeError struct {
	Type      string
	Message   string
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorTypeBase      = "RuntimeError"
	runtimeErrorTypeType      = "TypeError"
	runtimeErrorTypeReference = "ReferenceError"
	runtimeErrorTypeInternal  = "InternalError"
	runtimeErrorTypeAssertion = "AssertionError"
	syntaxErrorType           = "SyntaxError"

	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
	ErrFunctionNotFound  = errors.New("function not found")
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	if re.Type != "" {
		b.WriteString(re.Type)
		b.WriteString(": ")
	}
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

// ErrorType classifies err the way scripts see it: the RuntimeError type,
// SyntaxError for compile failures, and RuntimeError for host failures such
// as quota exhaustion or cancellation. nil yields "".
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErrorType
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) && runtimeErr.Type != "" {
		return runtimeErr.Type
	}
	return runtimeErrorTypeBase
}

// ErrorMessage returns the message of a script error without its code frame
// or stack.
func ErrorMessage(err error) string {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Message
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// isHostControlSignal reports errors scripts must not observe or swallow.
func isHostControlSignal(err error) bool {
	return errors.Is(err, ErrStepQuotaExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return exec.newRuntimeErrorWithType(runtimeErrorTypeBase, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) typeError(pos Position, format string, args ...any) error {
	return exec.newRuntimeErrorWithType(runtimeErrorTypeType, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) referenceError(pos Position, format string, args ...any) error {
	return exec.newRuntimeErrorWithType(runtimeErrorTypeReference, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) internalError(pos Position, format string, args ...any) error {
	return exec.newRuntimeErrorWithType(runtimeErrorTypeInternal, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeErrorWithType(kind string, message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		// The innermost frame reports where the error happened; the rest
		// report their call sites.
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, exec.callStack[i])
		}
	} else {
		frames = append(frames, StackFrame{Function: "<script>", Pos: pos})
	}
	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}
	return &RuntimeError{Type: kind, Message: message, CodeFrame: codeFrame, Frames: frames}
}

// wrapError attaches position and stack to errors returned by builtins.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil || isHostControlSignal(err) {
		return err
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		if len(runtimeErr.Frames) == 0 {
			return exec.newRuntimeErrorWithType(runtimeErr.Type, runtimeErr.Message, pos)
		}
		return err
	}
	return exec.newRuntimeErrorWithType(runtimeErrorTypeBase, err.Error(), pos)
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}
