package ledger

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/pocketledger/backend/internal/currency"
	"github.com/shopspring/decimal"
)

var disallowed = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// maxAmount is the largest amount that still fits into int64 cents.
var maxAmount = decimal.New(math.MaxInt64, -2)

// floatLiterals turns integer literals into floats. Integer arithmetic
// in expr wraps around on overflow, float arithmetic does not.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// Sanitize strips every character that is not a digit, an arithmetic
// operator, a parenthesis, a decimal point or whitespace.
func Sanitize(raw string) string {
	return disallowed.ReplaceAllString(raw, "")
}

// Evaluate computes the value of an arithmetic expression, rounded to
// two decimal places.
//
// Empty input returns ErrNoChange.
func Evaluate(raw string) (decimal.Decimal, error) {
	expression := strings.TrimSpace(Sanitize(raw))
	if expression == "" {
		return decimal.Zero, ErrNoChange
	}

	program, err := expr.Compile(expression, expr.Patch(floatLiterals{}))
	if err != nil {
		return decimal.Zero, &EvaluationError{Expression: expression, Message: "Invalid expression"}
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		return decimal.Zero, &EvaluationError{Expression: expression, Message: "Invalid expression"}
	}

	var value float64
	switch v := out.(type) {
	case int:
		value = float64(v)
	case float64:
		value = v
	default:
		return decimal.Zero, &EvaluationError{Expression: expression, Message: "Invalid expression"}
	}

	if math.IsInf(value, 0) || math.IsNaN(value) {
		return decimal.Zero, &EvaluationError{Expression: expression, Message: "Cannot divide by zero"}
	}

	result := decimal.NewFromFloat(value).Round(2)
	if result.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, &EvaluationError{Expression: expression, Message: "Amount is too large"}
	}

	return result, nil
}

// MathInput is the state of a numeric entry field that accepts
// arithmetic. The text shown to the user and the last valid value are
// tracked separately so that partial input never loses the value.
type MathInput struct {
	display string
	value   decimal.Decimal
	err     error
}

// NewMathInput returns a MathInput showing the formatted initial value.
func NewMathInput(initial decimal.Decimal) *MathInput {
	return &MathInput{
		display: currency.Default.FormatDecimal(initial),
		value:   initial,
	}
}

// Change records text typed by the user. Disallowed characters are dropped.
func (m *MathInput) Change(text string) {
	m.display = Sanitize(text)
	m.err = nil
}

// Calculate evaluates the current text. On success the value is updated
// and the display is replaced by the formatted result. On failure the
// previous value is kept, the text is left as typed and the error is
// returned.
func (m *MathInput) Calculate() (decimal.Decimal, error) {
	value, err := Evaluate(m.display)
	if errors.Is(err, ErrNoChange) {
		m.display = currency.Default.FormatDecimal(m.value)
		return m.value, nil
	}

	if err != nil {
		m.err = err
		return m.value, err
	}

	m.SetValue(value)
	return value, nil
}

// SetValue replaces the value, e.g. when fresh data arrives from the store.
func (m *MathInput) SetValue(value decimal.Decimal) {
	m.value = value
	m.display = currency.Default.FormatDecimal(value)
	m.err = nil
}

// Display returns the text shown to the user.
func (m *MathInput) Display() string { return m.display }

// Value returns the last valid value.
func (m *MathInput) Value() decimal.Decimal { return m.value }

// Err returns the error of the last calculation, if any.
func (m *MathInput) Err() error { return m.err }
