package distributor_tests

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-distributor/core/vm"
	distributor "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/precompiled"
	sol "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/distributor/solidity"
	token "github.com/Taraxa-project/taraxa-distributor/taraxa/state/contracts/token/precompiled"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_transition"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/util/tests"
)

func TestClaimPaysOncePerCumulativeAmount(t *testing.T) {
	tree := rewardTree(100, 200, 300)
	h := newHarness(t, 0, tree.Root(), 1000)
	account := tree.Entries[1].Account

	res := h.claim(account, tree, 1, "")
	var amount *big.Int
	h.Unpack(&amount, "claim", res.CodeRetval)
	h.tc.Assert.Equal(big.NewInt(200), amount)
	h.tc.Assert.Equal([]vm.LogRecord{
		token.MakeTransferLog(&reward, &h.urd, &account, tests.U256(200)),
		distributor.MakeClaimedLog(&h.urd, &account, &reward, tests.U256(200)),
	}, res.Logs)

	h.claim(account, tree, 1, distributor.ErrClaimableTooLow)
	h.tc.Assert.Equal(tests.U256(200), h.balance(account))
	h.tc.Assert.Equal(tests.U256(800), h.balance(h.urd))
	h.tc.Assert.Equal(tests.U256(200), h.claimed(account))
}

func TestClaimedIsTheMaximumClaimedCumulative(t *testing.T) {
	first := rewardTree(100, 50)
	h := newHarness(t, 0, first.Root(), 1000)
	account := first.Entries[0].Account
	h.claim(stranger, first, 0, "")

	second := rewardTree(250, 50)
	h.submitRoot(owner, second.Root(), tests.Hash(2), "")
	// The old proof does not belong to the new root
	h.claim(account, first, 0, distributor.ErrInvalidProof)

	res := h.claim(account, second, 0, "")
	var amount *big.Int
	h.Unpack(&amount, "claim", res.CodeRetval)
	h.tc.Assert.Equal(big.NewInt(150), amount)
	h.tc.Assert.Equal(tests.U256(250), h.claimed(account))
	h.tc.Assert.Equal(tests.U256(250), h.balance(account))

	// A root lowering the cumulative amount pays nothing
	third := rewardTree(200, 50)
	h.submitRoot(owner, third.Root(), common.Hash{}, "")
	h.claim(account, third, 0, distributor.ErrClaimableTooLow)
	h.tc.Assert.Equal(tests.U256(250), h.claimed(account))
}

func TestClaimOnBehalfOfAccount(t *testing.T) {
	tree := rewardTree(70)
	h := newHarness(t, 0, tree.Root(), 100)
	account := tree.Entries[0].Account
	h.claim(stranger, tree, 0, "")
	h.tc.Assert.Equal(tests.U256(70), h.balance(account))
	h.tc.Assert.True(h.balance(stranger).IsZero())
}

func TestAcceptRespectsTimelock(t *testing.T) {
	h := newHarness(t, 1000, common.Hash{}, 0)
	root := rewardTree(1, 2).Root()
	t0 := h.Time
	res := h.submitRoot(owner, root, tests.Hash(9), "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakePendingRootSetLog(&h.urd, &owner, &root, tests.HashP(9))}, res.Logs)
	pending := h.reader().PendingRoot()
	h.tc.Assert.Equal(distributor.PendingRoot{SubmittedAt: t0, Root: root, IpfsHash: tests.Hash(9)}, pending)
	h.tc.Assert.Equal(common.Hash{}, h.reader().Root())

	h.AdvanceTime(999)
	h.acceptRoot(distributor.ErrTimelockNotExpired)
	h.AdvanceTime(1)
	res = h.acceptRoot("")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeRootSetLog(&h.urd, &root, tests.HashP(9))}, res.Logs)
	h.tc.Assert.Equal(root, h.reader().Root())
	h.tc.Assert.Equal(tests.Hash(9), h.reader().IpfsHash())
	pending = h.reader().PendingRoot()
	h.tc.Assert.False(pending.Exists())

	h.acceptRoot(distributor.ErrNoPendingRoot)
}

func TestZeroTimelockSetsRootImmediately(t *testing.T) {
	h := newHarness(t, 0, common.Hash{}, 0)
	root := rewardTree(5).Root()
	res := h.submitRoot(owner, root, common.Hash{}, "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeRootSetLog(&h.urd, &root, &common.Hash{})}, res.Logs)
	h.tc.Assert.Equal(root, h.reader().Root())
	pending := h.reader().PendingRoot()
	h.tc.Assert.False(pending.Exists())
}

func TestProofOfAnotherLeafIsRejected(t *testing.T) {
	tree := rewardTree(100, 7)
	h := newHarness(t, 0, tree.Root(), 1000)
	e := tree.Entries[0]
	h.ExecuteAndCheck(e.Account, h.Pack("claim", e.Account, reward, big.NewInt(101), tree.Proof(0)), distributor.ErrInvalidProof, "")
	h.ExecuteAndCheck(e.Account, h.Pack("claim", e.Account, tests.Addr(101), big.NewInt(100), tree.Proof(0)), distributor.ErrInvalidProof, "")
	h.ExecuteAndCheck(e.Account, h.Pack("claim", e.Account, reward, big.NewInt(100), tree.Proof(1)), distributor.ErrInvalidProof, "")
	h.tc.Assert.True(h.claimed(e.Account).IsZero())
}

func TestClaimWithoutRoot(t *testing.T) {
	tree := rewardTree(100)
	h := newHarness(t, 0, common.Hash{}, 1000)
	h.claim(tree.Entries[0].Account, tree, 0, distributor.ErrRootNotSet)

	// Forcing the zero root disables claims again
	h.ExecuteAndCheck(owner, h.Pack("setRoot", tree.Root(), common.Hash{}), "", "")
	h.ExecuteAndCheck(owner, h.Pack("setRoot", common.Hash{}, common.Hash{}), "", "")
	h.claim(tree.Entries[0].Account, tree, 0, distributor.ErrRootNotSet)
}

func TestOwnerCanNotShortenTimelockForPendingRoot(t *testing.T) {
	h := newHarness(t, 1000, common.Hash{}, 0)
	t0 := h.Time
	h.submitRoot(owner, tests.Hash(1), common.Hash{}, "")

	h.AdvanceTime(5)
	h.setTimelock(owner, 10, distributor.ErrTimelockNotExpired)
	h.tc.Assert.Equal(uint64(1000), h.reader().Timelock())
	h.setTimelock(owner, 1000, "")

	h.Time = t0 + 1000
	res := h.setTimelock(owner, 10, "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeTimelockSetLog(&h.urd, 10)}, res.Logs)
	h.tc.Assert.Equal(uint64(10), h.reader().Timelock())
}

func TestLongerTimelockAppliesToPendingRoot(t *testing.T) {
	h := newHarness(t, 1000, common.Hash{}, 0)
	h.submitRoot(owner, tests.Hash(1), common.Hash{}, "")
	h.AdvanceTime(5)
	h.setTimelock(owner, 2000, "")

	h.AdvanceTime(995)
	h.acceptRoot(distributor.ErrTimelockNotExpired)
	h.AdvanceTime(1000)
	h.acceptRoot("")
	h.tc.Assert.Equal(tests.Hash(1), h.reader().Root())
}

func TestShorterTimelockWithoutPendingRoot(t *testing.T) {
	h := newHarness(t, 1000, common.Hash{}, 0)
	h.setTimelock(owner, 0, "")
	h.tc.Assert.Equal(uint64(0), h.reader().Timelock())
	h.setTimelock(stranger, 5, distributor.ErrNotOwner)
}

func TestForceUpdateClearsPendingRoot(t *testing.T) {
	h := newHarness(t, 1000, common.Hash{}, 0)
	h.submitRoot(owner, tests.Hash(1), tests.Hash(11), "")
	pending := h.reader().PendingRoot()
	h.tc.Assert.True(pending.Exists())

	res := h.ExecuteAndCheck(owner, h.Pack("setRoot", tests.Hash(2), tests.Hash(22)), "", "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeRootSetLog(&h.urd, tests.HashP(2), tests.HashP(22))}, res.Logs)
	pending = h.reader().PendingRoot()
	h.tc.Assert.False(pending.Exists())
	h.tc.Assert.Equal(tests.Hash(2), h.reader().Root())

	h.AdvanceTime(1000)
	h.acceptRoot(distributor.ErrNoPendingRoot)
	h.tc.Assert.Equal(tests.Hash(2), h.reader().Root())
}

func TestLastProposalWins(t *testing.T) {
	h := newHarness(t, 100, common.Hash{}, 0)
	h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", updater, true), "", "")
	h.submitRoot(owner, tests.Hash(1), common.Hash{}, "")
	h.AdvanceTime(50)
	h.submitRoot(updater, tests.Hash(2), common.Hash{}, "")

	h.AdvanceTime(50)
	// The replacement restarted the timelock
	h.acceptRoot(distributor.ErrTimelockNotExpired)
	h.AdvanceTime(50)
	h.acceptRoot("")
	h.tc.Assert.Equal(tests.Hash(2), h.reader().Root())
}

func TestUpdaterRoles(t *testing.T) {
	h := newHarness(t, 100, common.Hash{}, 0)
	h.submitRoot(stranger, tests.Hash(1), common.Hash{}, distributor.ErrNotUpdater)
	h.submitRoot(updater, tests.Hash(1), common.Hash{}, distributor.ErrNotUpdater)

	res := h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", updater, true), "", "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeRootUpdaterSetLog(&h.urd, &updater, true)}, res.Logs)
	h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", updater, true), "", "")
	h.submitRoot(updater, tests.Hash(1), common.Hash{}, "")

	// Updaters can only propose
	for _, input := range [][]byte{
		h.Pack("setRoot", tests.Hash(1), common.Hash{}),
		h.Pack("setTimelock", big.NewInt(0)),
		h.Pack("setRootUpdater", stranger, true),
		h.Pack("revokePendingRoot"),
		h.Pack("setOwner", updater),
	} {
		h.ExecuteAndCheck(updater, input, distributor.ErrNotOwner, "")
	}

	var is_updater bool
	h.Unpack(&is_updater, "isUpdater", h.Call("isUpdater", updater))
	h.tc.Assert.True(is_updater)
	h.Unpack(&is_updater, "isUpdater", h.Call("isUpdater", owner))
	h.tc.Assert.True(is_updater)

	h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", updater, false), "", "")
	h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", updater, false), "", "")
	h.submitRoot(updater, tests.Hash(1), common.Hash{}, distributor.ErrNotUpdater)
	h.Unpack(&is_updater, "isUpdater", h.Call("isUpdater", updater))
	h.tc.Assert.False(is_updater)
}

func TestGetUpdaters(t *testing.T) {
	h := newHarness(t, 0, common.Hash{}, 0)
	count := distributor.GetUpdatersMaxCount + 3
	for i := 0; i < count; i++ {
		h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", tests.Addr(uint64(1000+i)), true), "", "")
	}
	h.ExecuteAndCheck(owner, h.Pack("setRootUpdater", tests.Addr(1000), false), "", "")

	var page struct {
		Updaters []common.Address
		End      bool
	}
	h.Unpack(&page, "getUpdaters", h.Call("getUpdaters", uint32(0)))
	h.tc.Assert.False(page.End)
	h.tc.Assert.Len(page.Updaters, distributor.GetUpdatersMaxCount)
	// The last updater took the place of the removed one
	h.tc.Assert.Equal(tests.Addr(uint64(1000+count-1)), page.Updaters[0])

	h.Unpack(&page, "getUpdaters", h.Call("getUpdaters", uint32(1)))
	h.tc.Assert.True(page.End)
	h.tc.Assert.Len(page.Updaters, 2)
}

func TestRevokePendingRoot(t *testing.T) {
	h := newHarness(t, 100, tests.Hash(5), 0)
	h.ExecuteAndCheck(owner, h.Pack("revokePendingRoot"), distributor.ErrNoPendingRoot, "")

	h.submitRoot(owner, tests.Hash(1), common.Hash{}, "")
	h.ExecuteAndCheck(stranger, h.Pack("revokePendingRoot"), distributor.ErrNotOwner, "")
	res := h.ExecuteAndCheck(owner, h.Pack("revokePendingRoot"), "", "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakePendingRootRevokedLog(&h.urd, &owner)}, res.Logs)

	h.AdvanceTime(100)
	h.acceptRoot(distributor.ErrNoPendingRoot)
	h.tc.Assert.Equal(tests.Hash(5), h.reader().Root())
}

func TestTransferOwnership(t *testing.T) {
	h := newHarness(t, 0, common.Hash{}, 0)
	new_owner := tests.Addr(5)
	h.ExecuteAndCheck(stranger, h.Pack("setOwner", stranger), distributor.ErrNotOwner, "")
	res := h.ExecuteAndCheck(owner, h.Pack("setOwner", new_owner), "", "")
	h.tc.Assert.Equal([]vm.LogRecord{distributor.MakeOwnerSetLog(&h.urd, &owner, &new_owner)}, res.Logs)

	var current common.Address
	h.Unpack(&current, "owner", h.Call("owner"))
	h.tc.Assert.Equal(new_owner, current)
	h.ExecuteAndCheck(owner, h.Pack("setRoot", tests.Hash(1), common.Hash{}), distributor.ErrNotOwner, "")
	h.submitRoot(owner, tests.Hash(1), common.Hash{}, distributor.ErrNotUpdater)
	h.ExecuteAndCheck(new_owner, h.Pack("setRoot", tests.Hash(1), common.Hash{}), "", "")
}

func TestFailedTransferLeavesNoTrace(t *testing.T) {
	tree := rewardTree(100, 200)
	h := newHarness(t, 0, tree.Root(), 150)
	account := tree.Entries[1].Account

	res := h.claim(account, tree, 1, distributor.ErrTransferFailed)
	h.tc.Assert.Empty(res.Logs)
	h.tc.Assert.True(h.claimed(account).IsZero())
	h.tc.Assert.Equal(tests.U256(150), h.balance(h.urd))

	h.transfer(funder, h.urd, 50)
	h.claim(account, tree, 1, "")
	h.tc.Assert.Equal(tests.U256(200), h.claimed(account))
	h.tc.Assert.True(h.balance(h.urd).IsZero())
}

func TestViews(t *testing.T) {
	h := newHarness(t, 100, tests.Hash(3), 0)
	h.submitRoot(owner, tests.Hash(4), tests.Hash(44), "")
	t0 := h.Time

	var timelock *big.Int
	h.Unpack(&timelock, "timelock", h.Call("timelock"))
	h.tc.Assert.Equal(big.NewInt(100), timelock)
	var root [32]byte
	h.Unpack(&root, "root", h.Call("root"))
	h.tc.Assert.Equal(tests.Hash(3), common.Hash(root))
	var pending sol.PendingRootRet
	h.Unpack(&pending, "pendingRoot", h.Call("pendingRoot"))
	h.tc.Assert.Equal(tests.Hash(4), common.Hash(pending.Root))
	h.tc.Assert.Equal(tests.Hash(44), common.Hash(pending.IpfsHash))
	h.tc.Assert.Equal(new(big.Int).SetUint64(t0), pending.SubmittedAt)
	var claimed *big.Int
	h.Unpack(&claimed, "claimed", h.Call("claimed", tests.Addr(10), reward))
	h.tc.Assert.Zero(claimed.Sign())
}

func TestInitializeOnlyOnce(t *testing.T) {
	h := newHarness(t, 0, common.Hash{}, 0)
	h.ExecuteAndCheck(stranger, h.Pack("initialize", stranger, big.NewInt(0), tests.Hash(1), common.Hash{}), distributor.ErrAlreadyInitialized, "")
	h.tc.Assert.Equal(owner, h.reader().Owner())
}

func TestUnknownAddress(t *testing.T) {
	h := newHarness(t, 0, common.Hash{}, 0)
	h.SetContract(tests.Addr(12345), distributor.Abi)
	h.ExecuteAndCheck(owner, h.Pack("acceptRoot"), "", state_transition.ErrUnknownContract)
	_, ok := h.SUT.DistributorReader(tests.Addr(12345))
	h.tc.Assert.False(ok)
}

func TestStateSurvivesReopen(t *testing.T) {
	tree := rewardTree(100)
	h := newHarness(t, 0, tree.Root(), 100)
	account := tree.Entries[0].Account
	h.claim(account, tree, 0, "")
	last := h.SUT.LastBlock()

	h.Reopen()
	h.tc.Assert.Equal(last, h.SUT.LastBlock())
	h.tc.Assert.Equal(tests.U256(100), h.claimed(account))
	h.tc.Assert.Equal(tree.Root(), h.reader().Root())
	h.claim(account, tree, 0, distributor.ErrClaimableTooLow)
}
