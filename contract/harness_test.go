package contract

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////////////////////////
// Test harness
////////////////////////////////////////////////////////////////////////////////

const (
	owner    = Address("hive:owner")
	treasury = Address("hive:treasury")
	vault    = Address("contract:presale-vault")
	alice    = Address("hive:alice")
	bob      = Address("hive:bob")
	carol    = Address("hive:carol")

	usdc = Asset("usdc")
	dai  = Asset("dai")

	t0 = int64(1_700_000_000)
)

type recLogger struct {
	events []string
}

func (l *recLogger) Log(msg string) {
	l.events = append(l.events, msg)
}

type fakeBacking struct {
	balances map[Address]string
	failNext bool
}

func (b *fakeBacking) BalanceOf(addr Address) string {
	bal, ok := b.balances[addr]
	if !ok {
		return "0"
	}
	return bal
}

func (b *fakeBacking) Transfer(from, to Address, amount string) error {
	if b.failNext {
		b.failNext = false
		return errors.New("ledger down")
	}
	want := uint256.MustFromDecimal(amount)
	have := uint256.MustFromDecimal(b.BalanceOf(from))
	if have.Lt(want) {
		return errors.New("insufficient backing balance")
	}
	held := uint256.MustFromDecimal(b.BalanceOf(to))
	b.balances[from] = have.Sub(have, want).Dec()
	b.balances[to] = held.Add(held, want).Dec()
	return nil
}

type fakeRegistry struct {
	assets map[Asset]uint8
}

func (r *fakeRegistry) IsAllowed(asset Asset) bool {
	_, ok := r.assets[asset]
	return ok
}

func (r *fakeRegistry) DecimalsOf(asset Asset) uint8 {
	return r.assets[asset]
}

type fakePayments struct {
	received map[string]string // asset|payer -> amount
	failNext bool
}

func (p *fakePayments) TransferFrom(asset Asset, from, to Address, amount string) error {
	if p.failNext {
		p.failNext = false
		return errors.New("payment ledger down")
	}
	p.received[asset.String()+"|"+from.String()] = amount
	return nil
}

type fixture struct {
	state    *MemState
	log      *recLogger
	backing  *fakeBacking
	registry *fakeRegistry
	payments *fakePayments
	c        *Contract
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		state: NewMemState(),
		log:   &recLogger{},
		backing: &fakeBacking{balances: map[Address]string{
			vault: dec(tokens(2_000_000_000)),
		}},
		registry: &fakeRegistry{assets: map[Asset]uint8{usdc: 6, dai: 18}},
		payments: &fakePayments{received: map[string]string{}},
	}
	f.c = New(f.state, f.log, f.backing, f.registry, f.payments, Config{
		Owner:    owner,
		Treasury: treasury,
		Vault:    vault,
	})
	return f
}

// startedFixture opens the sale at t0.
func startedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.c.Start(env(owner, t0)))
	return f
}

func env(sender Address, now int64) Env {
	return Env{Sender: sender, Now: now, TxID: "tx-test"}
}

// usd renders a whole-dollar amount in 6-decimal payment units.
func usd(dollars uint64) string {
	return uint256.NewInt(dollars * 1_000_000).Dec()
}

// requireUnchanged asserts an operation left no trace in state.
func requireUnchanged(t *testing.T, before map[string]string, state *MemState) {
	t.Helper()
	require.Equal(t, before, state.Snapshot())
}
