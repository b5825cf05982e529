package client

import "kharcha/internal/core"

// Mode is the phase of the fetch cycle the frontend is in.
type Mode int

const (
	Idle Mode = iota
	Submitting
	Editing
	Deleting
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Editing:
		return "editing"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// Form holds the four input values exactly as typed. It is also the request
// body sent to the API, so amount and date travel as strings.
type Form struct {
	Username string `json:"username"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// Field names one input of the Form.
type Field int

const (
	FieldUsername Field = iota
	FieldAmount
	FieldCategory
	FieldDate
)

// State is everything a frontend renders from.
type State struct {
	Expenses  []core.Expense
	Form      Form
	EditingID string
	Filter    string
	Mode      Mode
}

// NewState returns the initial state: empty list, empty form, no filter.
func NewState() State {
	return State{
		Expenses: []core.Expense{},
		Filter:   core.AllCategories,
		Mode:     Idle,
	}
}

// Editing reports whether the form targets an existing record.
func (s State) Editing() bool { return s.EditingID != "" }

// resting is the mode to return to once a request finishes.
func (s State) resting() Mode {
	if s.Editing() {
		return Editing
	}
	return Idle
}

// Action is a state transition request. Only Reduce interprets actions.
type Action interface{ action() }

type (
	// Loaded replaces the collection wholesale with a fresh list.
	Loaded struct{ Expenses []core.Expense }
	// FieldChanged sets one form input.
	FieldChanged struct {
		Field Field
		Value string
	}
	// EditStarted pre-fills the form from an existing record.
	EditStarted struct{ Expense core.Expense }
	EditCancelled struct{}
	SubmitStarted struct{}
	// SubmitSucceeded resets the form and leaves edit mode.
	SubmitSucceeded struct{}
	DeleteStarted   struct{ ID string }
	// RequestFailed abandons the in-flight call; list and form are untouched.
	RequestFailed struct{ Err error }
	FilterChanged struct{ Category string }
)

func (Loaded) action()          {}
func (FieldChanged) action()    {}
func (EditStarted) action()     {}
func (EditCancelled) action()   {}
func (SubmitStarted) action()   {}
func (SubmitSucceeded) action() {}
func (DeleteStarted) action()   {}
func (RequestFailed) action()   {}
func (FilterChanged) action()   {}

// FormFromExpense renders a record as form input, the date cut to YYYY-MM-DD.
func FormFromExpense(e core.Expense) Form {
	return Form{
		Username: e.Username,
		Amount:   e.Amount.String(),
		Category: e.Category,
		Date:     e.Date.FormValue(),
	}
}

// Reduce returns the state that results from applying a to s. It never
// mutates s; the Expenses slice is replaced, not edited.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		s.Expenses = a.Expenses
		if s.Expenses == nil {
			s.Expenses = []core.Expense{}
		}
		if s.Mode == Submitting || s.Mode == Deleting {
			s.Mode = s.resting()
		}
	case FieldChanged:
		switch a.Field {
		case FieldUsername:
			s.Form.Username = a.Value
		case FieldAmount:
			s.Form.Amount = a.Value
		case FieldCategory:
			s.Form.Category = a.Value
		case FieldDate:
			s.Form.Date = a.Value
		}
	case EditStarted:
		s.Form = FormFromExpense(a.Expense)
		s.EditingID = a.Expense.ID
		s.Mode = Editing
	case EditCancelled:
		s.Form = Form{}
		s.EditingID = ""
		s.Mode = Idle
	case SubmitStarted:
		s.Mode = Submitting
	case SubmitSucceeded:
		s.Form = Form{}
		s.EditingID = ""
		s.Mode = Idle
	case DeleteStarted:
		s.Mode = Deleting
	case RequestFailed:
		s.Mode = s.resting()
	case FilterChanged:
		s.Filter = a.Category
		if s.Filter == "" {
			s.Filter = core.AllCategories
		}
	}
	return s
}
