package tricount

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tricount-tools/tricount-sync/internal/scraper/tricount/testutil"
)

const testBaseURL = "https://tricount.example/group/abc"

func testWorkflow(cat *Catalog, opts EquivalenceOptions) *Workflow {
	nav := testNavigator(cat)
	ext := NewExtractor(cat, zap.NewNop())
	return NewWorkflow(nav, cat, ext, DefaultStepBudget, 10*time.Millisecond, opts, zap.NewNop())
}

func TestSubmit_FillsAndSaves(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenPreUsersList)

	record := Expense{
		Description: "lunch",
		Amount:      "12.50",
		Date:        "1/2/21",
		PayerName:   "alice",
		PaidForUser: PaidForAll,
	}

	err := testWorkflow(cat, EquivalenceOptions{}).Submit(fake, testBaseURL, record, []string{"alice", "bob"})
	require.NoError(t, err)

	assert.Equal(t, "lunch", fake.typed[cat.Description.Query])
	assert.Equal(t, "1/2/21", fake.typed[cat.Date.Query])
	assert.Equal(t, "12.50", fake.typed[cat.Amount.Query])
	assert.Contains(t, fake.clicked, cat.Save.Query)
	// paid_for_user is "all": nobody gets deselected.
	assert.NotContains(t, fake.clicked, cat.DeselectUser("alice").Query)
	assert.NotContains(t, fake.clicked, cat.DeselectUser("bob").Query)
}

func TestSubmit_DeselectsUsersOutsideRetainedSet(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenExpenseForm)

	record := Expense{
		Description: "taxi",
		Amount:      "20",
		Date:        "2/2/21",
		PayerName:   "alice",
		PaidForUser: "alice, bob",
	}

	err := testWorkflow(cat, EquivalenceOptions{}).Submit(fake, testBaseURL, record, []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	assert.Contains(t, fake.clicked, cat.DeselectUser("carol").Query)
	assert.NotContains(t, fake.clicked, cat.DeselectUser("alice").Query)
	assert.NotContains(t, fake.clicked, cat.DeselectUser("bob").Query)
	assert.Contains(t, fake.clicked, cat.Save.Query)
}

func TestSubmit_DeselectFailureAbortsBeforeSave(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenExpenseForm)
	fake.failClicks[cat.DeselectUser("carol").Query] = errors.New("element stale")

	record := Expense{
		Description: "taxi",
		Amount:      "20",
		Date:        "2/2/21",
		PayerName:   "alice",
		PaidForUser: "alice",
	}

	err := testWorkflow(cat, EquivalenceOptions{}).Submit(fake, testBaseURL, record, []string{"alice", "carol"})

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "deselect", subErr.Op)
	assert.NotContains(t, fake.clicked, cat.Save.Query, "a half-adjusted split must never be saved")
}

func TestSubmit_FillFailure(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenExpenseForm)
	fake.failType[cat.Amount.Query] = errors.New("element not interactable")

	record := Expense{Description: "x", Amount: "1", Date: "1/2/21", PayerName: "alice", PaidForUser: PaidForAll}

	err := testWorkflow(cat, EquivalenceOptions{}).Submit(fake, testBaseURL, record, nil)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "fill", subErr.Op)
	assert.NotContains(t, fake.clicked, cat.Save.Query)
}

func TestSubmit_FormUnreachableIsFatal(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenUsersList)
	// The user click never lands, so the form is unreachable inside the
	// step budget.
	fake.failClicks[cat.Screens[ScreenUsersList].Probes[0]] = errors.New("click intercepted")

	record := Expense{Description: "x", Amount: "1", Date: "1/2/21", PayerName: "alice", PaidForUser: PaidForAll}

	err := testWorkflow(cat, EquivalenceOptions{}).Submit(fake, testBaseURL, record, nil)
	assert.ErrorIs(t, err, ErrFormUnreachable)
}

func TestVerifySubmitted(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenExpensesList)
	fake.html[ScreenExpensesList] = testutil.LoadFixture(t, "expenses_list")

	wf := testWorkflow(cat, EquivalenceOptions{})

	record := Expense{
		Description: "lunch",
		Amount:      "12.50",
		Date:        "1/2/21",
		PayerName:   "alice",
		PaidForUser: PaidForAll,
	}
	found, err := wf.VerifySubmitted(fake, testBaseURL, record)
	require.NoError(t, err)
	assert.True(t, found)

	missing := record
	missing.Description = "dinner"
	found, err = wf.VerifySubmitted(fake, testBaseURL, missing)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRoster(t *testing.T) {
	cat := DefaultCatalog("alice")
	fake := newFakeSite(cat, ScreenExpenseForm)
	fake.html[ScreenUsersList] = testutil.LoadFixture(t, "users_list")

	// Starting past the users list forces a reset on the way back.
	roster, err := testWorkflow(cat, EquivalenceOptions{}).Roster(fake, testBaseURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, roster)
	assert.Equal(t, 1, fake.navigations)
}
