package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
)

func submitInput() SubmitReportInput {
	return SubmitReportInput{
		Location:  "Riverside Park, north entrance",
		WasteType: "plastic",
		Amount:    "2 bags",
	}
}

func TestSubmitReportGrantsReportPointsOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "submit@example.com")

	report, err := env.report.SubmitReport(user.ID, submitInput())
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.NotZero(t, report.ID)

	var transactions []models.Transaction
	require.NoError(t, env.gormDB.
		Where("user_id = ? AND type = ?", user.ID, models.TransactionEarnedReport).
		Find(&transactions).Error)
	require.Len(t, transactions, 1)
	assert.Equal(t, 10, transactions[0].Amount)

	notifications, err := env.ledger.UnreadNotifications(user.ID)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)

	balance, err := env.ledger.GetBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
}

func TestSubmitReportCreatesRewardRowOnFirstReport(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "firstreport@example.com")

	// No reward row exists yet; submission creates it and lands on +10.
	var count int64
	require.NoError(t, env.gormDB.Model(&models.Reward{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)

	_, err := env.report.SubmitReport(user.ID, submitInput())
	require.NoError(t, err)

	reward, err := env.ledger.GetOrCreateReward(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reward.Points)
}

func TestSubmitReportValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "invalid@example.com")

	input := submitInput()
	input.Location = "   "
	_, err := env.report.SubmitReport(user.ID, input)
	assert.ErrorIs(t, err, errs.ErrValidation)

	// Nothing may persist from a rejected submission.
	var count int64
	require.NoError(t, env.gormDB.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListTasksNormalizesDates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "tasks@example.com")

	_, err := env.report.SubmitReport(user.ID, submitInput())
	require.NoError(t, err)

	tasks, err := env.report.ListTasks(20)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, tasks[0].Date)
	assert.Equal(t, models.ReportStatusPending, tasks[0].Status)
}

func TestListTasksHonorsLimit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "limit@example.com")

	for i := 0; i < 5; i++ {
		_, err := env.report.SubmitReport(user.ID, submitInput())
		require.NoError(t, err)
	}

	tasks, err := env.report.ListTasks(3)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestUpdateTaskStatusClaimsForCollector(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "reporter@example.com")
	collector := env.createUser(t, "collector@example.com")

	report, err := env.report.SubmitReport(reporter.ID, submitInput())
	require.NoError(t, err)

	updated, err := env.report.UpdateTaskStatus(report.ID, models.ReportStatusInProgress, &collector.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusInProgress, updated.Status)
	require.NotNil(t, updated.CollectorID)
	assert.Equal(t, collector.ID, *updated.CollectorID)
}

func TestUpdateTaskStatusRejectsIllegalTransition(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "illegal@example.com")

	report, err := env.report.SubmitReport(user.ID, submitInput())
	require.NoError(t, err)

	// A pending report cannot jump straight to verified.
	_, err = env.report.UpdateTaskStatus(report.ID, models.ReportStatusVerified, nil)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = env.report.UpdateTaskStatus(report.ID, "vanished", nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateTaskStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.report.UpdateTaskStatus(4242, models.ReportStatusInProgress, nil)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCancelAllowedFromActiveStates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "cancel@example.com")

	report, err := env.report.SubmitReport(user.ID, submitInput())
	require.NoError(t, err)

	updated, err := env.report.UpdateTaskStatus(report.ID, models.ReportStatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusCancelled, updated.Status)

	// Cancelled is terminal.
	_, err = env.report.UpdateTaskStatus(report.ID, models.ReportStatusInProgress, nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestRecordCollectionCreatesVerifiedRecord(t *testing.T) {
	env := newTestEnv(t)
	reporter := env.createUser(t, "r2@example.com")
	collector := env.createUser(t, "c2@example.com")

	report, err := env.report.SubmitReport(reporter.ID, submitInput())
	require.NoError(t, err)
	_, err = env.report.UpdateTaskStatus(report.ID, models.ReportStatusInProgress, &collector.ID)
	require.NoError(t, err)

	collected, err := env.report.RecordCollection(report.ID, collector.ID, "matches report", "picked up both bags")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusVerified, collected.Status)
	assert.Equal(t, report.ID, collected.ReportID)
	assert.Equal(t, collector.ID, collected.CollectorID)
	assert.False(t, collected.CollectionDate.IsZero())

	// RecordCollection itself never touches the ledger.
	balance, err := env.ledger.GetBalance(collector.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)

	collections, err := env.report.ListCollectionsByCollector(collector.ID)
	require.NoError(t, err)
	assert.Len(t, collections, 1)
}

func TestRecordCollectionUnknownReport(t *testing.T) {
	env := newTestEnv(t)
	collector := env.createUser(t, "c3@example.com")

	_, err := env.report.RecordCollection(777, collector.ID, "result", "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListPendingAndUserReports(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	first, err := env.report.SubmitReport(alice.ID, submitInput())
	require.NoError(t, err)
	_, err = env.report.SubmitReport(bob.ID, submitInput())
	require.NoError(t, err)

	_, err = env.report.UpdateTaskStatus(first.ID, models.ReportStatusInProgress, &bob.ID)
	require.NoError(t, err)

	pending, err := env.report.ListPendingReports()
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mine, err := env.report.ListReportsByUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)
}
