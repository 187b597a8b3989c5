package tricount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenString(t *testing.T) {
	assert.Equal(t, "pre_users_list", ScreenPreUsersList.String())
	assert.Equal(t, "users_list", ScreenUsersList.String())
	assert.Equal(t, "expenses_list", ScreenExpensesList.String())
	assert.Equal(t, "expense_form", ScreenExpenseForm.String())
	assert.Equal(t, "invalid_url", ScreenInvalidURL.String())
	assert.Equal(t, "unknown", Screen(42).String())
}

func TestScreenBefore(t *testing.T) {
	tests := []struct {
		name   string
		s      Screen
		target Screen
		want   bool
	}{
		{"start before users list", ScreenPreUsersList, ScreenUsersList, true},
		{"start before form", ScreenPreUsersList, ScreenExpenseForm, true},
		{"users list before expenses list", ScreenUsersList, ScreenExpensesList, true},
		{"expenses list before form", ScreenExpensesList, ScreenExpenseForm, true},
		{"equal screens", ScreenUsersList, ScreenUsersList, false},
		{"backward", ScreenExpenseForm, ScreenUsersList, false},
		// The sentinel never participates in the order, on either side.
		{"sentinel as source", ScreenInvalidURL, ScreenExpenseForm, false},
		{"sentinel as target", ScreenPreUsersList, ScreenInvalidURL, false},
		{"sentinel both sides", ScreenInvalidURL, ScreenInvalidURL, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.s.Before(tc.target))
		})
	}
}
