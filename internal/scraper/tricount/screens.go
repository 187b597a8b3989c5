// Package tricount implements screen detection, navigation and expense
// parsing for the Tricount web application. The UI lives inside an embedded
// iframe and exposes no API, so everything here works off markup probes.
package tricount

// Screen is one recognizable state of the Tricount UI.
type Screen int

const (
	// ScreenInvalidURL is the sentinel for "not on the site at all" or an
	// unclassifiable page. It is not part of the navigation order.
	ScreenInvalidURL Screen = iota
	ScreenPreUsersList
	ScreenUsersList
	ScreenExpensesList
	ScreenExpenseForm
)

var screenNames = map[Screen]string{
	ScreenInvalidURL:   "invalid_url",
	ScreenPreUsersList: "pre_users_list",
	ScreenUsersList:    "users_list",
	ScreenExpensesList: "expenses_list",
	ScreenExpenseForm:  "expense_form",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// Before reports whether s comes strictly before target in the fixed
// navigation order. The invalid_url sentinel never participates in the
// order: comparing it on either side returns false, which forces the
// navigator onto its reset branch instead of a forward step.
func (s Screen) Before(target Screen) bool {
	if s == ScreenInvalidURL || target == ScreenInvalidURL {
		return false
	}
	return s < target
}

// classifyOrder lists screens most-specific-first. Later screens still carry
// the scaffolding of earlier ones (the module-web iframe persists across the
// whole flow), so probing must run in reverse navigation order to avoid
// reporting an advanced screen as an earlier one.
var classifyOrder = []Screen{
	ScreenExpenseForm,
	ScreenExpensesList,
	ScreenUsersList,
	ScreenPreUsersList,
}
