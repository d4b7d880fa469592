package domain

// A Command is one discrete user action handled by the session reducer.
type Command interface {
	commandName() string
}

type (
	AddToCart struct {
		ProductID string
		Size      string
	}

	IncrementLine struct{ Key CartKey }

	DecrementLine struct{ Key CartKey }

	RemoveLine struct{ Key CartKey }

	SetQuery struct{ Query string }

	SetCategory struct{ Category string }

	ToggleSize struct{ Size string }

	// SetMinPrice clears the bound when Price is nil.
	SetMinPrice struct{ Price *int64 }

	// SetMaxPrice clears the bound when Price is nil.
	SetMaxPrice struct{ Price *int64 }

	ResetFilters struct{}

	SubmitOrder struct{ Form OrderForm }

	Navigate struct{ Fragment string }
)

func (AddToCart) commandName() string     { return "AddToCart" }
func (IncrementLine) commandName() string { return "IncrementLine" }
func (DecrementLine) commandName() string { return "DecrementLine" }
func (RemoveLine) commandName() string    { return "RemoveLine" }
func (SetQuery) commandName() string      { return "SetQuery" }
func (SetCategory) commandName() string   { return "SetCategory" }
func (ToggleSize) commandName() string    { return "ToggleSize" }
func (SetMinPrice) commandName() string   { return "SetMinPrice" }
func (SetMaxPrice) commandName() string   { return "SetMaxPrice" }
func (ResetFilters) commandName() string  { return "ResetFilters" }
func (SubmitOrder) commandName() string   { return "SubmitOrder" }
func (Navigate) commandName() string      { return "Navigate" }

// CommandName returns the name of the command type, used for logging.
func CommandName(c Command) string {
	if c == nil {
		return "<nil>"
	}
	return c.commandName()
}

// A Result is the state a view needs after a command was handled.
//
// FieldErrors is set only when a [SubmitOrder] failed validation,
// Confirmation only when it succeeded.
type Result struct {
	Section      Section
	Filter       FilterState
	Products     []Product
	Summary      Summary
	FieldErrors  FieldErrors
	Confirmation *Confirmation
}
