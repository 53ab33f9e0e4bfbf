package dispatch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/game-ledger/internal/fieldfmt"
)

const (
	accountsSentinel   = "END                         "
	gamesSentinel      = "END                                              "
	collectionSentinel = "END                                       "
)

func accountLine(username, userType, credit string) string {
	return fieldfmt.Username(username) + " " + userType + " " + credit
}

func listingLine(game, seller, price string) string {
	return fieldfmt.GameName(game) + " " + fieldfmt.Username(seller) + " " + price
}

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func fileContent(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// fixture builds the three seeded stores plus a transaction log and returns
// a dispatcher with captured output.
type fixture struct {
	dispatcher       *Dispatcher
	out              *bytes.Buffer
	transactionsPath string
	accountsPath     string
	gamesPath        string
	collectionPath   string
}

func newFixture(t *testing.T, accountLines, gameLines, collectionLines, transactions []string) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		out:              &bytes.Buffer{},
		transactionsPath: filepath.Join(dir, "dailytransactions.txt"),
		accountsPath:     filepath.Join(dir, "currentaccounts.txt"),
		gamesPath:        filepath.Join(dir, "availablegames.txt"),
		collectionPath:   filepath.Join(dir, "gamescollection.txt"),
	}
	writeLines(t, f.accountsPath, accountLines...)
	writeLines(t, f.gamesPath, gameLines...)
	writeLines(t, f.collectionPath, collectionLines...)
	writeLines(t, f.transactionsPath, transactions...)

	f.dispatcher = New(f.accountsPath, f.gamesPath, f.collectionPath, f.out)
	return f
}

// =============================================================================
// BATCH FLOW
// =============================================================================

func TestProcess_MissingLogAbortsBeforeProcessing(t *testing.T) {
	d := New("", "", "", &bytes.Buffer{})
	out := &bytes.Buffer{}
	d.Out = out

	results, err := d.Process("fake/dailytransactions.txt")
	require.ErrorIs(t, err, ErrMissingTransactionsFile)
	require.Nil(t, results)
	require.Equal(t, "ERROR: The file fake/dailytransactions.txt does not exist.\n", out.String())
}

func TestProcess_InvalidCodePrintsExactErrorAndMutatesNothing(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"09 TestUser AA 010.00"},
	)
	accountsBefore := fileContent(t, f.accountsPath)

	results, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.ErrorIs(t, results[0].Err, ErrInvalidTransactionCode)

	require.Equal(t, "ERROR: Invalid transaction code\n", f.out.String())
	require.Equal(t, accountsBefore, fileContent(t, f.accountsPath))
}

func TestProcess_EndOfFileMarkerStopsProcessing(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{
			"06 TestUser AA 010.00",
			"00",
			"06 TestUser AA 010.00", // must not run
		},
	)

	results, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)
	require.Len(t, results, 2)

	want := "Add credit transaction\nEnd of transactions file\n"
	require.Equal(t, want, f.out.String())
	require.Contains(t, fileContent(t, f.accountsPath), "000910.00")
}

func TestProcess_FailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{
			"06 Nobody AA 010.00",   // fails: user not found
			"06 TestUser AA 010.00", // must still run
		},
	)

	results, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)

	want := "ERROR: User 'Nobody' not found.\n" +
		"Add credit transaction\n" +
		"Add credit transaction\n"
	require.Equal(t, want, f.out.String())
}

func TestProcess_MalformedLineSkippedWithWarning(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"01 OnlyUsername"},
	)

	results, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Empty(t, results[0].Kind)
	require.Equal(t, "WARNING: Skipping malformed transaction line: 01 OnlyUsername\n", f.out.String())
}

// =============================================================================
// PER-CODE ROUTING
// =============================================================================

func TestProcess_CreateAccount(t *testing.T) {
	f := newFixture(t,
		[]string{accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"01 NewUser AA 000500.00"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Created user account\n", f.out.String())
	want := accountLine("NewUser", "AA", "000500.00") + "\n" + accountsSentinel + "\n"
	require.Equal(t, want, fileContent(t, f.accountsPath))
}

func TestProcess_DeleteAccount(t *testing.T) {
	f := newFixture(t,
		[]string{
			accountLine("TestUser", "AA", "000900.00"),
			accountLine("Keeper", "BS", "000100.00"),
			accountsSentinel,
		},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"02 TestUser"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Deleted user account\n", f.out.String())
	require.NotContains(t, fileContent(t, f.accountsPath), "TestUser ")
	require.Contains(t, fileContent(t, f.accountsPath), "Keeper")
}

func TestProcess_SellGameWithMultiTokenName(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "SS", "000100.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"03 Game With Spaces TestUser 012.50"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Sell game transaction\n", f.out.String())
	want := listingLine("Game With Spaces", "TestUser", "012.50") + "\n" + gamesSentinel + "\n"
	require.Equal(t, want, fileContent(t, f.gamesPath))
}

func TestProcess_BuyGameScenario(t *testing.T) {
	// Reference scenario: TestUser3 buys "Game Name" from TestUser for 20.00.
	f := newFixture(t,
		[]string{
			accountLine("TestUser", "AA", "000909.00"),
			accountLine("TestUser3", "BS", "001370.00"),
			accountsSentinel,
		},
		[]string{listingLine("Game Name", "TestUser", "020.00"), gamesSentinel},
		[]string{collectionSentinel},
		[]string{"04 Game Name TestUser TestUser3 020.00"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Buy game transaction\n", f.out.String())

	wantAccounts := accountLine("TestUser", "AA", "000929.00") + "\n" +
		accountLine("TestUser3", "BS", "001350.00") + "\n" +
		accountsSentinel + "\n"
	require.Equal(t, wantAccounts, fileContent(t, f.accountsPath))

	wantCollection := fieldfmt.GameName("Game Name") + " " + fieldfmt.Owner("TestUser3") + "\n" +
		collectionSentinel + "\n"
	require.Equal(t, wantCollection, fileContent(t, f.collectionPath))
}

func TestProcess_Refund(t *testing.T) {
	f := newFixture(t,
		[]string{
			accountLine("Buyer", "AA", "000100.00"),
			accountLine("Seller", "SS", "000050.00"),
			accountsSentinel,
		},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"05 Buyer Seller 025.00"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Refund transaction\n", f.out.String())
	require.Contains(t, fileContent(t, f.accountsPath), "000125.00")
	require.Contains(t, fileContent(t, f.accountsPath), "000025.00")
}

func TestProcess_RefundNegativeAmountRejected(t *testing.T) {
	f := newFixture(t,
		[]string{
			accountLine("Buyer", "AA", "000100.00"),
			accountLine("Seller", "SS", "000050.00"),
			accountsSentinel,
		},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"05 Buyer Seller -25.00"},
	)
	before := fileContent(t, f.accountsPath)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	want := "ERROR: Invalid refund amount.\nRefund transaction\n"
	require.Equal(t, want, f.out.String())
	require.Equal(t, before, fileContent(t, f.accountsPath))
}

func TestProcess_AddCreditScenario(t *testing.T) {
	// Reference scenario: 06 against 000900.00 yields 000910.00.
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"06 TestUser AA 010.00"},
	)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	require.Equal(t, "Add credit transaction\n", f.out.String())
	want := accountLine("TestUser", "AA", "000910.00") + "\n" + accountsSentinel + "\n"
	require.Equal(t, want, fileContent(t, f.accountsPath))
}

func TestProcess_DuplicateCreatePrintsErrorThenStatus(t *testing.T) {
	f := newFixture(t,
		[]string{accountLine("TestUser", "AA", "000900.00"), accountsSentinel},
		[]string{gamesSentinel},
		[]string{collectionSentinel},
		[]string{"01 TestUser AA 000100.00"},
	)
	before := fileContent(t, f.accountsPath)

	_, err := f.dispatcher.Process(f.transactionsPath)
	require.NoError(t, err)

	want := "ERROR: Username '" + fieldfmt.Username("TestUser") + "' already exists.\n" +
		"Created user account\n"
	require.Equal(t, want, f.out.String())
	require.Equal(t, before, fileContent(t, f.accountsPath))
}
