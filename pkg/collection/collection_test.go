package collection

import (
	"testing"
	"time"

	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disbursement(id, officer, account, mobile, title, date string) models.Disbursement {
	return models.Disbursement{
		ID:            id,
		AccountTitle:  title,
		AccountNumber: account,
		MobileNumber:  mobile,
		LoanOfficer:   officer,
		Date:          models.MustParseDate(date),
	}
}

func chequeBook(id, officer, account string, status models.InventoryStatus) models.ChequeBook {
	return models.ChequeBook{Instrument: models.Instrument{
		ID:            id,
		AccountNumber: account,
		LoanOfficer:   officer,
		ReceivedDate:  models.NewDate(2024, time.May, 1),
		Status:        status,
	}}
}

func officers[T any](groups []Group[T]) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Officer)
	}
	return names
}

func TestFilterAndGroupBy(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6}
	even := Filter(nums, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, even)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, nums, "input untouched")

	big := Filter(nums, func(n int) bool { return n%2 == 0 }, func(n int) bool { return n > 2 })
	assert.Equal(t, []int{4, 6}, big)

	assert.Empty(t, Filter([]int{}, func(int) bool { return true }))

	groups := GroupBy(nums, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{1, 3, 5}, groups[false])
	assert.Equal(t, []int{2, 4, 6}, groups[true])
}

func TestMatchSearch(t *testing.T) {
	items := []models.Disbursement{
		disbursement("1", "A", "1001234", "01711000001", "Rahim Uddin", "2024-05-01"),
		disbursement("2", "A", "2005678", "01811000002", "Karim Mia", "2024-05-02"),
	}

	byAccount := Filter(items, MatchSearch[models.Disbursement](models.SearchAccountNumber, "0012"))
	require.Len(t, byAccount, 1)
	assert.Equal(t, "1", byAccount[0].ID)

	byMobile := Filter(items, MatchSearch[models.Disbursement](models.SearchMobileNumber, "0181"))
	require.Len(t, byMobile, 1)
	assert.Equal(t, "2", byMobile[0].ID)

	byTitle := Filter(items, MatchSearch[models.Disbursement](models.SearchTitle, "KARIM"))
	require.Len(t, byTitle, 1)
	assert.Equal(t, "2", byTitle[0].ID)

	// only the designated field is searched
	assert.Empty(t, Filter(items, MatchSearch[models.Disbursement](models.SearchTitle, "0012")))
	assert.Len(t, Filter(items, MatchSearch[models.Disbursement](models.SearchTitle, "  ")), 2)
}

func TestSelect_SearchOverridesDate(t *testing.T) {
	items := []models.Disbursement{
		disbursement("1", "A", "1001", "", "Rahim", "2024-05-01"),
		disbursement("2", "A", "1002", "", "Karim", "2024-05-02"),
		disbursement("3", "B", "2001", "", "Salma", "2024-05-02"),
	}

	byDate := Select(items, Query{Date: "2024-05-02"})
	assert.Len(t, byDate, 2)

	global := Select(items, Query{Date: "2024-05-02", Field: models.SearchAccountNumber, Text: "100"})
	require.Len(t, global, 2)
	assert.Equal(t, "1", global[0].ID, "search ignores the date filter")

	assert.Len(t, Select(items, Query{}), 3)
}

func TestMatchDate_TransactionTimestampPrefix(t *testing.T) {
	ts := time.Date(2024, time.May, 1, 14, 30, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "a", Timestamp: ts},
		{ID: "b", Timestamp: ts.AddDate(0, 0, 1)},
	}
	got := Filter(txs, MatchDate[models.Transaction]("2024-05-01"))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestGroupByOfficer(t *testing.T) {
	roster := []string{"A", "B"}
	items := []models.Disbursement{
		disbursement("1", "A", "1001", "", "Rahim", "2024-05-01"),
		disbursement("2", "C", "2001", "", "Karim", "2024-05-01"),
	}

	t.Run("default view keeps empty roster groups", func(t *testing.T) {
		groups := GroupByOfficer(items, roster, Query{})
		assert.Equal(t, []string{"A", "B", OtherOfficers}, officers(groups))
		assert.Len(t, groups[0].Items, 1)
		assert.NotNil(t, groups[1].Items)
		assert.Len(t, groups[1].Items, 0)
		assert.Len(t, groups[2].Items, 1)
	})

	t.Run("searching drops empty groups", func(t *testing.T) {
		groups := GroupByOfficer(items, roster, Query{Field: models.SearchAccountNumber, Text: "100"})
		assert.Equal(t, []string{"A"}, officers(groups))
	})

	t.Run("officer filter hides the catch-all group", func(t *testing.T) {
		groups := GroupByOfficer(items, roster, Query{Officer: "A"})
		assert.Equal(t, []string{"A"}, officers(groups))
	})

	t.Run("ALL is no filter", func(t *testing.T) {
		groups := GroupByOfficer(items, roster, Query{Officer: AllOfficers})
		assert.Equal(t, []string{"A", "B", OtherOfficers}, officers(groups))
	})

	t.Run("no unrostered records means no catch-all group", func(t *testing.T) {
		groups := GroupByOfficer(items[:1], roster, Query{})
		assert.Equal(t, []string{"A", "B"}, officers(groups))
	})

	t.Run("date filter alone keeps empty groups", func(t *testing.T) {
		groups := GroupByOfficer(items, roster, Query{Date: "2023-01-01"})
		assert.Equal(t, []string{"A", "B"}, officers(groups))
	})
}

func TestInventory_TallyIgnoresStatusFilter(t *testing.T) {
	items := []models.ChequeBook{
		chequeBook("1", "A", "1001", models.InventoryStatusPending),
		chequeBook("2", "A", "1002", models.InventoryStatusSubmitted),
		chequeBook("3", "A", "1003", models.InventoryStatusPending),
		chequeBook("4", "B", "1004", models.InventoryStatusPending),
	}

	roster := []string{"A", "B"}
	view := Inventory(items, roster, Query{Officer: "A", Status: string(models.InventoryStatusPending)})
	assert.Len(t, view.Items, 2)
	assert.Equal(t, Tally{Total: 3, Pending: 2, Submitted: 1}, view.Tally)

	view = Inventory(items, roster, Query{Status: AllStatuses})
	assert.Len(t, view.Items, 4)
	assert.Equal(t, Tally{Total: 4, Pending: 3, Submitted: 1}, view.Tally)

	view = Inventory(items, roster, Query{Field: models.SearchAccountNumber, Text: "1002", Status: string(models.InventoryStatusPending)})
	assert.Empty(t, view.Items)
	assert.Empty(t, view.Groups)
	assert.Equal(t, Tally{Total: 1, Pending: 0, Submitted: 1}, view.Tally)
}

func TestInventory_GroupsByOfficerAndDate(t *testing.T) {
	items := []models.ChequeBook{
		chequeBook("1", "B", "1001", models.InventoryStatusPending),
		chequeBook("2", "A", "1002", models.InventoryStatusSubmitted),
		chequeBook("3", "Z", "1003", models.InventoryStatusPending),
	}
	items[2].ReceivedDate = models.NewDate(2024, time.June, 3)
	roster := []string{"A", "B", "C"}

	view := Inventory(items, roster, Query{Status: string(models.InventoryStatusPending)})
	assert.Equal(t, []string{"A", "B", "C", OtherOfficers}, officers(view.Groups))
	assert.Empty(t, view.Groups[0].Items)
	require.Len(t, view.Groups[1].Items, 1)
	assert.Equal(t, "1", view.Groups[1].Items[0].ID)
	assert.Equal(t, Tally{Total: 3, Pending: 2, Submitted: 1}, view.Tally)

	view = Inventory(items, roster, Query{Date: "2024-05", Status: AllStatuses})
	assert.Len(t, view.Items, 2)
	assert.Equal(t, []string{"A", "B", "C"}, officers(view.Groups))
	assert.Equal(t, Tally{Total: 2, Pending: 1, Submitted: 1}, view.Tally)

	view = Inventory(items, roster, Query{Officer: "A", Status: AllStatuses})
	assert.Equal(t, []string{"A"}, officers(view.Groups))
}
