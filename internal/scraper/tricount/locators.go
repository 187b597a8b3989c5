package tricount

import "fmt"

// By tags the selection mechanism a locator query uses.
type By string

const (
	ByID    By = "id"
	ByXPath By = "xpath"
)

// Locator pairs a selection mechanism with its query string.
type Locator struct {
	By    By
	Query string
}

// ScreenSpec proves a screen is loaded. Every probe must be observed within
// the probe timeout. Probes[0] doubles as the advance target when navigating
// forward from that screen, except for the start screen which advances by
// switching into the embedded iframe.
type ScreenSpec struct {
	By     By
	Probes []string
}

// Catalog holds every locator the classifier, navigator and workflow need.
// The site's markup has changed several times over the tool's history, so
// none of these are hard-coded in behavior code. Build it once at startup
// and pass it around by reference; it is never mutated afterwards.
type Catalog struct {
	// URLContains must appear in the session address for any screen to be
	// considered; anything else is classified as invalid_url.
	URLContains string

	// FrameID is the id of the iframe hosting the application.
	FrameID string

	Screens map[Screen]ScreenSpec

	// Expense form fields and the save control.
	Description Locator
	Date        Locator
	Amount      Locator
	Save        Locator

	// deselectUser is a format template taking a display name; see
	// DeselectUser.
	deselectUser string

	// ExpenseFields is the CSS selector (the extractor parses static markup
	// with goquery, which is CSS based) yielding the flat run of text nodes
	// holding expense data, ExpenseGroupSize nodes per expense.
	ExpenseFields    string
	ExpenseGroupSize int

	// UserNames is the CSS selector for the roster labels on the users list.
	UserNames string
}

// DeselectUser returns the locator for the control that removes the named
// user from the paid-for selection on the expense form.
func (c *Catalog) DeselectUser(name string) Locator {
	return Locator{By: ByXPath, Query: fmt.Sprintf(c.deselectUser, name)}
}

const (
	defaultFrameID = "module-web"

	// The application is a GWT table soup anchored under #slot1; all paths
	// below were lifted from the live site.
	userXPathTemplate = `//*[@id="slot1"]/table/tbody/tr[4]/td/table/tbody/tr/td[2]/div/table/tbody/tr/td[1]/div/div/table/tbody/tr/td/table/tbody/tr/td/table/tbody/tr/td[2]/div/div/div[text()="%s"]`

	paymentPanelXPath = `//*[@id="slot1"]/table/tbody/tr[4]/td/table/tbody/tr/td[2]/div/div/div/table[contains(@class,"paymentPanel")]`
	addExpenseXPath   = `//*[@id="slot1"]//div[contains(@class,"addPaymentButton")]`

	descriptionXPath = `//*[@id="slot1"]//input[contains(@class,"paymentDescriptionBox")]`
	dateXPath        = `//*[@id="slot1"]//input[contains(@class,"paymentDateBox")]`
	amountXPath      = `//*[@id="slot1"]//input[contains(@class,"paymentAmountBox")]`
	savePaymentXPath = `//*[@id="slot1"]//div[contains(@class,"savePaymentButton")]`

	deselectUserXPath = `//*[@id="slot1"]//tr[contains(@class,"paymentUserRow")][td/div[text()="%s"]]//input[@type="checkbox"]`

	expenseFieldsSelector = "div.paymentListContent"
	userNamesSelector     = "div.userListName"
)

// DefaultCatalog builds the locator catalog for the current site layout,
// with the runtime username baked into the users-list probe.
func DefaultCatalog(username string) *Catalog {
	userXPath := fmt.Sprintf(userXPathTemplate, username)

	return &Catalog{
		URLContains: "tricount",
		FrameID:     defaultFrameID,
		Screens: map[Screen]ScreenSpec{
			// The outer page only proves itself by the iframe marker;
			// advancing means entering the frame, not clicking.
			ScreenPreUsersList: {By: ByID, Probes: []string{defaultFrameID}},
			ScreenUsersList:    {By: ByXPath, Probes: []string{userXPath}},
			ScreenExpensesList: {By: ByXPath, Probes: []string{addExpenseXPath, paymentPanelXPath}},
			ScreenExpenseForm:  {By: ByXPath, Probes: []string{savePaymentXPath, descriptionXPath}},
		},
		Description:      Locator{By: ByXPath, Query: descriptionXPath},
		Date:             Locator{By: ByXPath, Query: dateXPath},
		Amount:           Locator{By: ByXPath, Query: amountXPath},
		Save:             Locator{By: ByXPath, Query: savePaymentXPath},
		deselectUser:     deselectUserXPath,
		ExpenseFields:    expenseFieldsSelector,
		ExpenseGroupSize: 7,
		UserNames:        userNamesSelector,
	}
}
