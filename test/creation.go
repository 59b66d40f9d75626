package test

import (
	"fmt"
	"sync"
	"time"

	"github.com/lawnchairsociety/dungeonkit/internal/testclient"
)

const wait = 2 * time.Second

// TestGreeting checks that a new connection gets the character sheet.
func TestGreeting(serverAddr string) TestResult {
	const testName = "Greeting"

	client, err := testclient.NewTestClient(uniqueName("Greet"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	if !client.WaitForMessage("(points left: 27)", wait) {
		return fail(testName, "Sheet with full budget not shown")
	}
	return pass(testName, "Greeting and sheet received")
}

// TestHelp checks general and topic help.
func TestHelp(serverAddr string) TestResult {
	const testName = "Help"

	client, err := testclient.NewTestClient(uniqueName("Help"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	logAction(testName, "Sending 'help'")
	client.SendCommand("help")
	if !client.WaitForMessage("Commands:", wait) {
		return fail(testName, "General help missing")
	}
	logAction(testName, "Sending 'help inc'")
	client.SendCommand("help inc")
	if !client.WaitForMessage("27 points", wait) {
		return fail(testName, "Topic help missing")
	}
	return pass(testName, "General and topic help shown")
}

// TestPointBuy raises and lowers an ability and checks the budget.
func TestPointBuy(serverAddr string) TestResult {
	const testName = "Point Buy"

	client, err := testclient.NewTestClient(uniqueName("Buy"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()
	client.ClearMessages()

	for i := 0; i < 6; i++ {
		client.SendCommand("inc str")
	}
	if !client.WaitForMessage("STR is now 14. Points left: 21.", wait) {
		return fail(testName, "Expected STR 14 with 21 points left, got %v", client.GetMessages())
	}
	client.SendCommand("inc str")
	if !client.WaitForMessage("STR is now 15. Points left: 19.", wait) {
		return fail(testName, "Step 14->15 should cost 2")
	}
	client.SendCommand("dec str")
	if !client.WaitForMessage("STR is now 14. Points left: 21.", wait) {
		return fail(testName, "Refund should mirror the step cost")
	}
	return pass(testName, "Costs and refunds match")
}

// TestAppearanceCycle wraps an appearance part backwards.
func TestAppearanceCycle(serverAddr string) TestResult {
	const testName = "Appearance"

	client, err := testclient.NewTestClient(uniqueName("Look"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	client.SendCommand("skin -1")
	if !client.WaitForMessage("Skin Tone: option 6 of 6.", wait) {
		return fail(testName, "Cycling back from the first option should wrap")
	}
	return pass(testName, "Appearance wraps")
}

// TestNameRejected keeps the session open after a bad name.
func TestNameRejected(serverAddr string) TestResult {
	const testName = "Name Rejected"

	client, err := testclient.NewTestClient(uniqueName("Bad"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	client.SendCommand("name X")
	client.SendCommand("done")
	if !client.WaitForMessage("That name is too short.", wait) {
		return fail(testName, "Short name was not rejected")
	}
	if client.WaitForClose(300 * time.Millisecond) {
		return fail(testName, "Session closed after a rejected name")
	}
	return pass(testName, "Rejected name keeps the session open")
}

// TestRandomize spends the whole budget.
func TestRandomize(serverAddr string) TestResult {
	const testName = "Randomize"

	client, err := testclient.NewTestClient(uniqueName("Rand"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()
	client.ClearMessages()

	client.SendCommand("random")
	if !client.WaitForMessage("(points left: 0)", wait) {
		return fail(testName, "Randomize left points unspent: %v", client.GetMessages())
	}
	return pass(testName, "All points spent")
}

// TestFinalize saves a character and expects the game scene.
func TestFinalize(serverAddr string) TestResult {
	const testName = "Finalize"

	name := uniqueName("Hero")
	client, err := testclient.NewTestClient(name, serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	client.SendCommand("name " + name)
	client.SendCommand("calling wizard")
	client.SendCommand("done")
	if !client.WaitForMessage(fmt.Sprintf("%s is ready. Loading GameScene.", name), wait) {
		return fail(testName, "No finalize confirmation: %v", client.GetMessages())
	}
	if !client.WaitForClose(wait) {
		return fail(testName, "Server kept the connection open after finalize")
	}
	return pass(testName, fmt.Sprintf("%s saved", name))
}

// TestQuit abandons a session.
func TestQuit(serverAddr string) TestResult {
	const testName = "Quit"

	client, err := testclient.NewTestClient(uniqueName("Quit"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect: %v", err)
	}
	defer client.Close()

	client.SendCommand("quit")
	if !client.WaitForMessage("Character creation abandoned.", wait) {
		return fail(testName, "No quit confirmation")
	}
	if !client.WaitForClose(wait) {
		return fail(testName, "Server kept the connection open after quit")
	}
	return pass(testName, "Session abandoned")
}

// TestConcurrentSessions runs independent sessions side by side.
func TestConcurrentSessions(serverAddr string) TestResult {
	const testName = "Concurrent Sessions"

	a, err := testclient.NewTestClient(uniqueName("Left"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect first client: %v", err)
	}
	defer a.Close()
	b, err := testclient.NewTestClient(uniqueName("Right"), serverAddr)
	if err != nil {
		return fail(testName, "Failed to connect second client: %v", err)
	}
	defer b.Close()
	a.ClearMessages()
	b.ClearMessages()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a.SendCommand("inc dex") }()
	go func() { defer wg.Done(); b.SendCommand("inc con") }()
	wg.Wait()

	if !a.WaitForMessage("DEX is now 9. Points left: 26.", wait) {
		return fail(testName, "First session state wrong: %v", a.GetMessages())
	}
	if !b.WaitForMessage("CON is now 9. Points left: 26.", wait) {
		return fail(testName, "Second session state wrong: %v", b.GetMessages())
	}
	return pass(testName, "Sessions are isolated")
}
